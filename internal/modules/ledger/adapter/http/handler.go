// Package http exposes account and wallet operations over HTTP.
package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/frankieli/casino_engine/internal/modules/ledger/domain"
	"github.com/frankieli/casino_engine/internal/modules/ledger/usecase"
	"github.com/frankieli/casino_engine/pkg/logger"
)

// Handler handles HTTP requests for the ledger module
type Handler struct {
	ledger *usecase.LedgerUseCase
}

// NewHandler creates a new HTTP handler
func NewHandler(ledger *usecase.LedgerUseCase) *Handler {
	return &Handler{ledger: ledger}
}

// RegisterRoutes registers all ledger routes to the given router group
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("", h.Create)
	router.GET("/:id", h.Get)
	router.POST("/:id/deposit", h.Deposit)
	router.POST("/:id/withdraw", h.Withdraw)
}

// DTOs
type createAccountRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

type amountRequest struct {
	Amount float64 `json:"amount" binding:"required"`
}

// Create registers a new account
func (h *Handler) Create(c *gin.Context) {
	var req createAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn(c.Request.Context()).Err(err).Msg("Create: invalid request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.ledger.CreateAccount(c.Request.Context(), req.Username, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "account already exists"})
			return
		}
		logger.Error(c.Request.Context()).Err(err).Msg("Create: failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "account creation failed"})
		return
	}

	c.JSON(http.StatusOK, account)
}

// Get returns an account snapshot
func (h *Handler) Get(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account id"})
		return
	}

	account, err := h.ledger.GetAccount(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
			return
		}
		logger.Error(c.Request.Context()).Err(err).Msg("Get: failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "account lookup failed"})
		return
	}

	c.JSON(http.StatusOK, account)
}

// Deposit applies an approved deposit
func (h *Handler) Deposit(c *gin.Context) {
	h.applyAmount(c, h.ledger.CreditDeposit)
}

// Withdraw applies an approved withdrawal
func (h *Handler) Withdraw(c *gin.Context) {
	h.applyAmount(c, h.ledger.DebitWithdrawal)
}

func (h *Handler) applyAmount(c *gin.Context, apply func(ctx context.Context, userID int64, amount float64) (*domain.Account, error)) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account id"})
		return
	}

	var req amountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := apply(c.Request.Context(), userID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAccountNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
		case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrInsufficientFunds):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error(c.Request.Context()).Err(err).Msg("Wallet operation failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "wallet operation failed"})
		}
		return
	}

	c.JSON(http.StatusOK, account)
}
