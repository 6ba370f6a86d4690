// Package http exposes the lottery round flow over HTTP.
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	engineDomain "github.com/frankieli/casino_engine/internal/modules/engine/domain"
	"github.com/frankieli/casino_engine/internal/modules/lottery/domain"
	"github.com/frankieli/casino_engine/internal/modules/lottery/usecase"
	"github.com/frankieli/casino_engine/pkg/logger"
)

// Handler handles HTTP requests for the lottery module
type Handler struct {
	lottery *usecase.LotteryUseCase
}

// NewHandler creates a new HTTP handler
func NewHandler(lottery *usecase.LotteryUseCase) *Handler {
	return &Handler{lottery: lottery}
}

// RegisterRoutes registers all lottery routes to the given router group
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/round", h.CurrentRound)
	router.POST("/bets", h.PlaceBet)
	router.GET("/rounds/:id/result", h.GetResult)
	router.GET("/history", h.History)
	router.POST("/override", h.ForceResult)
}

// DTOs
type placeBetRequest struct {
	UserID int64         `json:"user_id" binding:"required"`
	Picks  []pickRequest `json:"picks" binding:"required"`
}

type pickRequest struct {
	Digit *int    `json:"digit,omitempty"`
	Zone  string  `json:"zone,omitempty"`
	Stake float64 `json:"stake"`
}

type overrideRequest struct {
	Digit int `json:"digit"`
}

// CurrentRound returns the ID of the round open right now
func (h *Handler) CurrentRound(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"round_id": h.lottery.CurrentRoundID()})
}

// PlaceBet stages a bet for the open round
func (h *Handler) PlaceBet(c *gin.Context) {
	var req placeBetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn(c.Request.Context()).Err(err).Msg("PlaceBet: invalid request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	picks := make([]engineDomain.LotteryPick, 0, len(req.Picks))
	for _, pick := range req.Picks {
		picks = append(picks, engineDomain.LotteryPick{
			Digit: pick.Digit,
			Zone:  engineDomain.LotteryZone(pick.Zone),
			Stake: pick.Stake,
		})
	}

	result, err := h.lottery.PlaceBet(c.Request.Context(), req.UserID, picks)
	if err != nil {
		logger.Error(c.Request.Context()).Err(err).Msg("PlaceBet: failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "bet placement failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetResult returns the settled result for a round
func (h *Handler) GetResult(c *gin.Context) {
	result, err := h.lottery.GetResult(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrRoundNotSettled) {
			c.JSON(http.StatusNotFound, gin.H{"error": "round not settled"})
			return
		}
		logger.Error(c.Request.Context()).Err(err).Msg("GetResult: failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "result lookup failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// History returns recent settled rounds
func (h *Handler) History(c *gin.Context) {
	rounds, err := h.lottery.ListRecentRounds(c.Request.Context(), 50)
	if err != nil {
		logger.Error(c.Request.Context()).Err(err).Msg("History: failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "history lookup failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rounds": rounds})
}

// ForceResult sets the admin override for the next settlement
func (h *Handler) ForceResult(c *gin.Context) {
	var req overrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.lottery.ForceNextResult(c.Request.Context(), req.Digit); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
