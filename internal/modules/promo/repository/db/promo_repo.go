// Package db provides the gorm-backed promo repository.
package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/frankieli/casino_engine/internal/modules/promo/domain"
)

// PromoRepository implements domain.PromoRepository using gorm
type PromoRepository struct {
	db *gorm.DB
}

// NewPromoRepository creates a new DB promo repository
func NewPromoRepository(db *gorm.DB) *PromoRepository {
	return &PromoRepository{db: db}
}

// CreateCode registers a promo code
func (r *PromoRepository) CreateCode(ctx context.Context, code *domain.PromoCode) error {
	if err := r.db.WithContext(ctx).Create(code).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrCodeExists
		}
		return fmt.Errorf("failed to create promo code: %w", err)
	}
	return nil
}

// GetCode returns a promo code
func (r *PromoRepository) GetCode(ctx context.Context, code string) (*domain.PromoCode, error) {
	var stored domain.PromoCode
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&stored).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrCodeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get promo code: %w", err)
	}
	return &stored, nil
}

// HasRedeemed reports whether the account already used the code
func (r *PromoRepository) HasRedeemed(ctx context.Context, code string, userID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Redemption{}).
		Where("code = ? AND user_id = ?", code, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check redemption: %w", err)
	}
	return count > 0, nil
}

// RecordRedemption consumes one redemption slot inside a transaction: the
// conditional count bump enforces the cap, the unique index enforces
// once-per-account.
func (r *PromoRepository) RecordRedemption(ctx context.Context, redemption *domain.Redemption) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.PromoCode{}).
			Where("code = ? AND redeemed_count < max_redemptions", redemption.Code).
			UpdateColumn("redeemed_count", gorm.Expr("redeemed_count + 1"))
		if res.Error != nil {
			return fmt.Errorf("failed to consume redemption slot: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrCodeExhausted
		}

		if err := tx.Create(redemption).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrAlreadyRedeemed
			}
			return fmt.Errorf("failed to record redemption: %w", err)
		}
		return nil
	})
}
