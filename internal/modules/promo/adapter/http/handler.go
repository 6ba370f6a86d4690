// Package http exposes promo code operations over HTTP.
package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/frankieli/casino_engine/internal/modules/promo/domain"
	"github.com/frankieli/casino_engine/internal/modules/promo/usecase"
	"github.com/frankieli/casino_engine/pkg/logger"
)

// Handler handles HTTP requests for the promo module
type Handler struct {
	promos *usecase.PromoUseCase
}

// NewHandler creates a new HTTP handler
func NewHandler(promos *usecase.PromoUseCase) *Handler {
	return &Handler{promos: promos}
}

// RegisterRoutes registers all promo routes to the given router group
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/codes", h.CreateCode)
	router.POST("/redeem", h.Redeem)
}

// DTOs
type createCodeRequest struct {
	Code           string  `json:"code" binding:"required"`
	Reward         float64 `json:"reward" binding:"required"`
	MaxRedemptions int     `json:"max_redemptions" binding:"required"`
	MinDeposited   float64 `json:"min_deposited"`
	ValidDays      int     `json:"valid_days" binding:"required"`
}

type redeemRequest struct {
	UserID int64  `json:"user_id" binding:"required"`
	Code   string `json:"code" binding:"required"`
}

// CreateCode registers an admin-issued promo code
func (h *Handler) CreateCode(c *gin.Context) {
	var req createCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	promo, err := h.promos.CreateCode(c.Request.Context(), req.Code, req.Reward, req.MaxRedemptions, req.MinDeposited, time.Duration(req.ValidDays)*24*time.Hour)
	if err != nil {
		if errors.Is(err, domain.ErrCodeExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "promo code already exists"})
			return
		}
		logger.Error(c.Request.Context()).Err(err).Msg("CreateCode: failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "promo code creation failed"})
		return
	}

	c.JSON(http.StatusOK, promo)
}

// Redeem redeems a promo code into bonus balance
func (h *Handler) Redeem(c *gin.Context) {
	var req redeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.promos.Redeem(c.Request.Context(), req.UserID, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCodeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "promo code not found"})
		case errors.Is(err, domain.ErrCodeExpired),
			errors.Is(err, domain.ErrCodeExhausted),
			errors.Is(err, domain.ErrAlreadyRedeemed),
			errors.Is(err, domain.ErrDepositGate):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error(c.Request.Context()).Err(err).Msg("Redeem: failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "redemption failed"})
		}
		return
	}

	c.JSON(http.StatusOK, account)
}
