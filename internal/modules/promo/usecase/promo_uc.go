// Package usecase implements promo code redemption: validation gates first,
// the atomic slot claim second, the bonus credit last.
package usecase

import (
	"context"
	"fmt"
	"time"

	ledgerDomain "github.com/frankieli/casino_engine/internal/modules/ledger/domain"
	ledgerUC "github.com/frankieli/casino_engine/internal/modules/ledger/usecase"
	"github.com/frankieli/casino_engine/internal/modules/promo/domain"
	"github.com/frankieli/casino_engine/pkg/logger"
)

// PromoUseCase handles promo code issuance and redemption.
type PromoUseCase struct {
	ledger *ledgerUC.LedgerUseCase
	promos domain.PromoRepository
}

// NewPromoUseCase creates a new promo use case
func NewPromoUseCase(ledger *ledgerUC.LedgerUseCase, promos domain.PromoRepository) *PromoUseCase {
	return &PromoUseCase{
		ledger: ledger,
		promos: promos,
	}
}

// CreateCode registers an admin-issued promo code.
func (uc *PromoUseCase) CreateCode(ctx context.Context, code string, reward float64, maxRedemptions int, minDeposited float64, validFor time.Duration) (*domain.PromoCode, error) {
	if code == "" || reward <= 0 || maxRedemptions <= 0 {
		return nil, fmt.Errorf("invalid promo code parameters")
	}
	promo := &domain.PromoCode{
		Code:           code,
		Reward:         reward,
		MaxRedemptions: maxRedemptions,
		MinDeposited:   minDeposited,
		ExpiresAt:      time.Now().Add(validFor),
		CreatedAt:      time.Now(),
	}
	if err := uc.promos.CreateCode(ctx, promo); err != nil {
		return nil, err
	}
	return promo, nil
}

// Redeem credits the code's reward into bonusBalance. The repository's
// RecordRedemption is the atomic claim; the pre-checks only exist to reject
// cheaply with a precise error.
func (uc *PromoUseCase) Redeem(ctx context.Context, userID int64, code string) (*ledgerDomain.Account, error) {
	ctx = logger.WithFields(ctx, map[string]interface{}{
		"user_id": userID,
		"code":    code,
	})

	promo, err := uc.promos.GetCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if time.Now().After(promo.ExpiresAt) {
		return nil, domain.ErrCodeExpired
	}
	if promo.RedeemedCount >= promo.MaxRedemptions {
		return nil, domain.ErrCodeExhausted
	}

	redeemed, err := uc.promos.HasRedeemed(ctx, code, userID)
	if err != nil {
		return nil, err
	}
	if redeemed {
		return nil, domain.ErrAlreadyRedeemed
	}

	account, err := uc.ledger.GetAccount(ctx, userID)
	if err != nil {
		return nil, err
	}
	if account.TotalDeposited < promo.MinDeposited {
		return nil, fmt.Errorf("%w: requires %.2f deposited", domain.ErrDepositGate, promo.MinDeposited)
	}

	if err := uc.promos.RecordRedemption(ctx, domain.NewRedemption(code, userID, promo.Reward)); err != nil {
		return nil, err
	}

	account, err = uc.ledger.CreditPayout(ctx, userID, promo.Reward, ledgerDomain.BalanceBonus)
	if err != nil {
		// The slot is consumed; surface the fault loudly so it gets
		// compensated from the redemption record.
		logger.Error(ctx).Err(err).Float64("reward", promo.Reward).Msg("Failed to credit promo reward after redemption")
		return nil, fmt.Errorf("failed to credit promo reward: %w", err)
	}

	logger.Info(ctx).Float64("reward", promo.Reward).Msg("Promo code redeemed")
	return account, nil
}
