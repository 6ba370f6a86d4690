// Package http exposes one-shot settlement over HTTP.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/frankieli/casino_engine/internal/modules/engine/domain"
	"github.com/frankieli/casino_engine/internal/modules/engine/usecase"
	"github.com/frankieli/casino_engine/pkg/logger"
)

// Handler handles HTTP requests for the settlement engine
type Handler struct {
	settle *usecase.SettleUseCase
}

// NewHandler creates a new HTTP handler
func NewHandler(settle *usecase.SettleUseCase) *Handler {
	return &Handler{settle: settle}
}

// RegisterRoutes registers all engine routes to the given router group
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/settle", h.Settle)
	router.GET("/crash/preview", h.CrashPreview)
}

// DTOs
type settleRequest struct {
	UserID int64   `json:"user_id" binding:"required"`
	Game   string  `json:"game" binding:"required"`
	Stake  float64 `json:"stake"`

	// Per-game selection fields; which ones apply depends on Game.
	Target    float64        `json:"target,omitempty"`      // dice
	Picks     []int          `json:"picks,omitempty"`       // keno
	Risk      string         `json:"risk,omitempty"`        // keno, plinko
	Rows      int            `json:"rows,omitempty"`        // plinko
	Side      string         `json:"side,omitempty"`        // coinflip, card duel
	Chips     []chipRequest  `json:"chips,omitempty"`       // roulette
	CashOutAt float64        `json:"cash_out_at,omitempty"` // crash
}

type chipRequest struct {
	Type   string  `json:"type"`
	Number int     `json:"number,omitempty"`
	Stake  float64 `json:"stake"`
}

// Settle handles a one-shot game settlement
func (h *Handler) Settle(c *gin.Context) {
	var req settleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn(c.Request.Context()).Err(err).Msg("Settle: invalid request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	selection, ok := toSelection(req)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown game " + req.Game})
		return
	}

	result, err := h.settle.Settle(c.Request.Context(), req.UserID, domain.WagerRequest{
		Stake:     req.Stake,
		Selection: selection,
	})
	if err != nil {
		logger.Error(c.Request.Context()).Err(err).Msg("Settle: failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "settlement failed"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// CrashPreview returns the display crash point for an idle player
func (h *Handler) CrashPreview(c *gin.Context) {
	var query struct {
		UserID int64 `form:"user_id" binding:"required"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	point, err := h.settle.CrashPreview(c.Request.Context(), query.UserID)
	if err != nil {
		logger.Error(c.Request.Context()).Err(err).Msg("CrashPreview: failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "preview failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"crash_point": point})
}

// toSelection maps the flat request DTO onto the typed per-game selection.
func toSelection(req settleRequest) (domain.Selection, bool) {
	switch domain.GameKind(req.Game) {
	case domain.GameDice:
		return domain.DiceSelection{Target: req.Target}, true
	case domain.GameKeno:
		return domain.KenoSelection{Picks: req.Picks, Risk: req.Risk}, true
	case domain.GamePlinko:
		return domain.PlinkoSelection{Rows: req.Rows, Risk: req.Risk}, true
	case domain.GameCoinFlip:
		return domain.CoinFlipSelection{Side: domain.CoinSide(req.Side)}, true
	case domain.GameCardDuel:
		return domain.CardDuelSelection{Side: domain.DuelSide(req.Side)}, true
	case domain.GameRoulette:
		chips := make([]domain.RouletteChip, 0, len(req.Chips))
		for _, chip := range req.Chips {
			chips = append(chips, domain.RouletteChip{
				Type:   domain.RouletteBetType(chip.Type),
				Number: chip.Number,
				Stake:  chip.Stake,
			})
		}
		return domain.RouletteSelection{Chips: chips}, true
	case domain.GameCrash:
		return domain.CrashSelection{CashOutAt: req.CashOutAt}, true
	case domain.GameWheel:
		return domain.WheelSelection{}, true
	default:
		return nil, false
	}
}
