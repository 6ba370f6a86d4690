// Package usecase implements the ledger: the only authorized path for
// changing an account's monetary fields.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/frankieli/casino_engine/internal/config"
	"github.com/frankieli/casino_engine/internal/modules/ledger/domain"
	"github.com/frankieli/casino_engine/pkg/logger"
	"github.com/sethvargo/go-retry"
)

// casMaxRetries bounds the optimistic-update retry loop. Exhaustion surfaces
// as ErrVersionConflict, never as a silently dropped request.
const casMaxRetries = 5

// LedgerUseCase applies atomic read-modify-write mutations to accounts.
type LedgerUseCase struct {
	accounts      domain.AccountRepository
	vipThresholds []config.VIPThreshold
}

// NewLedgerUseCase creates a new ledger use case
func NewLedgerUseCase(accounts domain.AccountRepository, vipThresholds []config.VIPThreshold) *LedgerUseCase {
	return &LedgerUseCase{
		accounts:      accounts,
		vipThresholds: vipThresholds,
	}
}

// GetAccount returns a snapshot of the account.
func (uc *LedgerUseCase) GetAccount(ctx context.Context, userID int64) (*domain.Account, error) {
	return uc.accounts.Get(ctx, userID)
}

// CreateAccount registers a new account with all balances zero.
func (uc *LedgerUseCase) CreateAccount(ctx context.Context, username, email string) (*domain.Account, error) {
	account := &domain.Account{
		Username: username,
		Email:    email,
		Role:     domain.RoleUser,
	}
	if err := uc.accounts.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	account.DisplayID = 100000 + account.UserID
	if err := uc.accounts.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to assign display id: %w", err)
	}
	return account, nil
}

// mutate runs fn against a fresh snapshot under the CAS retry loop. fn errors
// abort immediately; only version conflicts retry.
func (uc *LedgerUseCase) mutate(ctx context.Context, userID int64, fn func(*domain.Account) error) (*domain.Account, error) {
	var result *domain.Account

	backoff := retry.WithMaxRetries(casMaxRetries, retry.NewConstant(2*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		account, err := uc.accounts.Get(ctx, userID)
		if err != nil {
			return err
		}
		if err := fn(account); err != nil {
			return err
		}
		if err := uc.accounts.Update(ctx, account); err != nil {
			if errors.Is(err, domain.ErrVersionConflict) {
				return retry.RetryableError(err)
			}
			return err
		}
		result = account
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DebitStake reserves a wager: decreases balance by amount (bonus first, then
// winning, then deposit) and increases TotalWagered.
func (uc *LedgerUseCase) DebitStake(ctx context.Context, userID int64, amount float64) (*domain.Account, error) {
	account, _, err := uc.DebitStakeWithSplit(ctx, userID, amount)
	return account, err
}

// DebitStakeWithSplit is DebitStake but also reports which partitions the
// stake came from, for callers that may need to void the wager.
func (uc *LedgerUseCase) DebitStakeWithSplit(ctx context.Context, userID int64, amount float64) (*domain.Account, domain.StakeSplit, error) {
	var split domain.StakeSplit
	account, err := uc.mutate(ctx, userID, func(a *domain.Account) error {
		s, err := a.ApplyStake(amount)
		if err != nil {
			return err
		}
		split = s
		return nil
	})
	if err != nil {
		return nil, domain.StakeSplit{}, err
	}

	logger.Debug(ctx).
		Int64("user_id", userID).
		Float64("amount", amount).
		Float64("balance", account.Balance).
		Msg("Stake debited")
	return account, split, nil
}

// RefundStake voids a debited wager, restoring exactly the partition split
// the debit took.
func (uc *LedgerUseCase) RefundStake(ctx context.Context, userID int64, split domain.StakeSplit) (*domain.Account, error) {
	account, err := uc.mutate(ctx, userID, func(a *domain.Account) error {
		a.ApplyRefund(split)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Warn(ctx).
		Int64("user_id", userID).
		Float64("amount", split.Total()).
		Msg("Stake refunded")
	return account, nil
}

// CreditPayout adds amount into the given partition (winning for game
// payouts, bonus for promotional credit).
func (uc *LedgerUseCase) CreditPayout(ctx context.Context, userID int64, amount float64, class domain.BalanceClass) (*domain.Account, error) {
	if amount == 0 {
		return uc.accounts.Get(ctx, userID)
	}
	account, err := uc.mutate(ctx, userID, func(a *domain.Account) error {
		return a.Credit(class, amount)
	})
	if err != nil {
		return nil, err
	}

	logger.Debug(ctx).
		Int64("user_id", userID).
		Float64("amount", amount).
		Str("class", string(class)).
		Msg("Payout credited")
	return account, nil
}

// CreditDeposit applies an admin-approved deposit and recomputes the VIP
// tier. VIP level only ever rises.
func (uc *LedgerUseCase) CreditDeposit(ctx context.Context, userID int64, amount float64) (*domain.Account, error) {
	return uc.mutate(ctx, userID, func(a *domain.Account) error {
		if err := a.ApplyDeposit(amount); err != nil {
			return err
		}
		if level := uc.vipLevelFor(a.TotalDeposited); level > a.VIPLevel {
			a.VIPLevel = level
		}
		return nil
	})
}

// DebitWithdrawal applies an admin-approved withdrawal from winningBalance.
func (uc *LedgerUseCase) DebitWithdrawal(ctx context.Context, userID int64, amount float64) (*domain.Account, error) {
	return uc.mutate(ctx, userID, func(a *domain.Account) error {
		return a.ApplyWithdrawal(amount)
	})
}

// vipLevelFor scans for the highest tier whose threshold is covered.
func (uc *LedgerUseCase) vipLevelFor(totalDeposited float64) int {
	level := 0
	for _, t := range uc.vipThresholds {
		if totalDeposited >= t.MinDeposited && t.Level > level {
			level = t.Level
		}
	}
	return level
}
