// Package db provides the gorm-backed account repository.
package db

import (
	"context"
	"errors"

	"github.com/frankieli/casino_engine/internal/modules/ledger/domain"
	"gorm.io/gorm"
)

// AccountRepository implements domain.AccountRepository using gorm
type AccountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new gorm account repository
func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Get(ctx context.Context, userID int64) (*domain.Account, error) {
	var account domain.Account
	err := r.db.WithContext(ctx).First(&account, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

// Update writes the record guarded by the version column. RowsAffected == 0
// means another writer won the race.
func (r *AccountRepository) Update(ctx context.Context, account *domain.Account) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Account{}).
		Where("user_id = ? AND version = ?", account.UserID, account.Version).
		Updates(map[string]interface{}{
			"deposit_balance": account.DepositBalance,
			"winning_balance": account.WinningBalance,
			"bonus_balance":   account.BonusBalance,
			"balance":         account.Balance,
			"total_wagered":   account.TotalWagered,
			"total_deposited": account.TotalDeposited,
			"vip_level":       account.VIPLevel,
			"version":         account.Version + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrVersionConflict
	}
	account.Version++
	return nil
}
