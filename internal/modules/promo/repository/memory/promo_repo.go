// Package memory provides a memory-based promo repository for monolith and
// test mode.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/frankieli/casino_engine/internal/modules/promo/domain"
)

// PromoRepository implements domain.PromoRepository using memory
type PromoRepository struct {
	codes       map[string]*domain.PromoCode
	redemptions map[string]*domain.Redemption // "code:userID"
	mu          sync.Mutex
}

// NewPromoRepository creates a new memory promo repository
func NewPromoRepository() *PromoRepository {
	return &PromoRepository{
		codes:       make(map[string]*domain.PromoCode),
		redemptions: make(map[string]*domain.Redemption),
	}
}

func redemptionKey(code string, userID int64) string {
	return fmt.Sprintf("%s:%d", code, userID)
}

// CreateCode registers a promo code
func (r *PromoRepository) CreateCode(ctx context.Context, code *domain.PromoCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.codes[code.Code]; ok {
		return domain.ErrCodeExists
	}
	stored := *code
	r.codes[code.Code] = &stored
	return nil
}

// GetCode returns a promo code
func (r *PromoRepository) GetCode(ctx context.Context, code string) (*domain.PromoCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.codes[code]
	if !ok {
		return nil, domain.ErrCodeNotFound
	}
	snapshot := *stored
	return &snapshot, nil
}

// HasRedeemed reports whether the account already used the code
func (r *PromoRepository) HasRedeemed(ctx context.Context, code string, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.redemptions[redemptionKey(code, userID)]
	return ok, nil
}

// RecordRedemption atomically consumes one redemption slot
func (r *PromoRepository) RecordRedemption(ctx context.Context, redemption *domain.Redemption) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	code, ok := r.codes[redemption.Code]
	if !ok {
		return domain.ErrCodeNotFound
	}
	key := redemptionKey(redemption.Code, redemption.UserID)
	if _, ok := r.redemptions[key]; ok {
		return domain.ErrAlreadyRedeemed
	}
	if code.RedeemedCount >= code.MaxRedemptions {
		return domain.ErrCodeExhausted
	}

	code.RedeemedCount++
	stored := *redemption
	r.redemptions[key] = &stored
	return nil
}
