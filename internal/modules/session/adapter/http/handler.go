// Package http exposes progressive sessions over HTTP.
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	engineDomain "github.com/frankieli/casino_engine/internal/modules/engine/domain"
	"github.com/frankieli/casino_engine/internal/modules/session/usecase"
	"github.com/frankieli/casino_engine/pkg/logger"
)

// Handler handles HTTP requests for progressive sessions
type Handler struct {
	sessions *usecase.SessionUseCase
}

// NewHandler creates a new HTTP handler
func NewHandler(sessions *usecase.SessionUseCase) *Handler {
	return &Handler{sessions: sessions}
}

// RegisterRoutes registers all session routes to the given router group
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/start", h.Start)
	router.POST("/advance", h.Advance)
	router.POST("/cashout", h.CashOut)
	router.GET("/:game", h.Get)
}

// DTOs
type startRequest struct {
	UserID int64   `json:"user_id" binding:"required"`
	Game   string  `json:"game" binding:"required"`
	Stake  float64 `json:"stake" binding:"required"`
	Tier   string  `json:"tier,omitempty"`
	Mines  int     `json:"mines,omitempty"`
}

type advanceRequest struct {
	UserID int64  `json:"user_id" binding:"required"`
	Game   string `json:"game" binding:"required"`
	Cell   *int   `json:"cell,omitempty"` // mines cell, pointer so 0 binds
}

type cashOutRequest struct {
	UserID int64  `json:"user_id" binding:"required"`
	Game   string `json:"game" binding:"required"`
}

// Start opens a progressive session
func (h *Handler) Start(c *gin.Context) {
	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn(c.Request.Context()).Err(err).Msg("Start: invalid request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.sessions.Start(c.Request.Context(), req.UserID, usecase.StartRequest{
		Game:  engineDomain.GameKind(req.Game),
		Stake: req.Stake,
		Tier:  req.Tier,
		Mines: req.Mines,
	})
	if err != nil {
		logger.Error(c.Request.Context()).Err(err).Msg("Start: failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session start failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Advance plays one step of the active session
func (h *Handler) Advance(c *gin.Context) {
	var req advanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn(c.Request.Context()).Err(err).Msg("Advance: invalid request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cell := 0
	if req.Cell != nil {
		cell = *req.Cell
	}
	result, err := h.sessions.Advance(c.Request.Context(), req.UserID, usecase.AdvanceRequest{
		Game: engineDomain.GameKind(req.Game),
		Cell: cell,
	})
	if err != nil {
		logger.Error(c.Request.Context()).Err(err).Msg("Advance: failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session advance failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// CashOut banks the active session's multiplier
func (h *Handler) CashOut(c *gin.Context) {
	var req cashOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn(c.Request.Context()).Err(err).Msg("CashOut: invalid request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.sessions.CashOut(c.Request.Context(), req.UserID, engineDomain.GameKind(req.Game))
	if err != nil {
		logger.Error(c.Request.Context()).Err(err).Msg("CashOut: failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session cash-out failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Get returns the caller's active session, hidden state redacted
func (h *Handler) Get(c *gin.Context) {
	var query struct {
		UserID int64 `form:"user_id" binding:"required"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.sessions.GetSession(c.Request.Context(), query.UserID, engineDomain.GameKind(c.Param("game")))
	if err != nil {
		if errors.Is(err, engineDomain.ErrNoSession) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no active session"})
			return
		}
		logger.Error(c.Request.Context()).Err(err).Msg("Get: failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session lookup failed"})
		return
	}

	c.JSON(http.StatusOK, session)
}
