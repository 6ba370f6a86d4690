// Package domain defines promo codes: bounded-redemption bonus credits
// gated on cumulative deposits.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// PromoCode is an admin-issued code paying a fixed bonus reward.
type PromoCode struct {
	Code           string    `gorm:"primaryKey;type:varchar(32)" json:"code"`
	Reward         float64   `gorm:"type:decimal(18,2);not null" json:"reward"`
	MaxRedemptions int       `gorm:"not null" json:"max_redemptions"`
	RedeemedCount  int       `gorm:"not null;default:0" json:"redeemed_count"`
	MinDeposited   float64   `gorm:"type:decimal(18,2);not null;default:0" json:"min_deposited"`
	ExpiresAt      time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
}

// TableName overrides the table name
func (PromoCode) TableName() string {
	return "promo_codes"
}

// Redemption records one account redeeming one code; the (code, user) pair
// is unique.
type Redemption struct {
	RedemptionID string    `gorm:"primaryKey;type:varchar(64)" json:"redemption_id"`
	Code         string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_redemptions_code_user" json:"code"`
	UserID       int64     `gorm:"not null;uniqueIndex:idx_redemptions_code_user" json:"user_id"`
	Reward       float64   `gorm:"type:decimal(18,2);not null" json:"reward"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
}

// TableName overrides the table name
func (Redemption) TableName() string {
	return "promo_redemptions"
}

// NewRedemption creates a redemption record
func NewRedemption(code string, userID int64, reward float64) *Redemption {
	return &Redemption{
		RedemptionID: uuid.NewString(),
		Code:         code,
		UserID:       userID,
		Reward:       reward,
		CreatedAt:    time.Now(),
	}
}

var (
	// ErrCodeNotFound indicates an unknown promo code.
	ErrCodeNotFound = errors.New("promo code not found")
	// ErrCodeExpired indicates a code past its expiry.
	ErrCodeExpired = errors.New("promo code expired")
	// ErrCodeExhausted indicates a code at its redemption cap.
	ErrCodeExhausted = errors.New("promo code fully redeemed")
	// ErrAlreadyRedeemed indicates the account already used this code.
	ErrAlreadyRedeemed = errors.New("promo code already redeemed")
	// ErrDepositGate indicates the account's deposits are below the gate.
	ErrDepositGate = errors.New("deposit requirement not met")
	// ErrCodeExists indicates a duplicate code on creation.
	ErrCodeExists = errors.New("promo code already exists")
)

// PromoRepository stores codes and redemptions. RecordRedemption must apply
// the cap atomically: it fails with ErrCodeExhausted when the count is at
// MaxRedemptions and ErrAlreadyRedeemed on a duplicate (code, user) pair.
type PromoRepository interface {
	CreateCode(ctx context.Context, code *PromoCode) error
	GetCode(ctx context.Context, code string) (*PromoCode, error)
	HasRedeemed(ctx context.Context, code string, userID int64) (bool, error)
	RecordRedemption(ctx context.Context, redemption *Redemption) error
}
