// Package memory provides memory-based engine repositories for monolith and
// test mode.
package memory

import (
	"context"
	"sync"

	"github.com/frankieli/casino_engine/internal/modules/engine/domain"
)

// BetOrderRepository implements domain.BetOrderRepository using memory
type BetOrderRepository struct {
	orders []*domain.BetOrder
	mu     sync.Mutex
}

// NewBetOrderRepository creates a new memory bet order repository
func NewBetOrderRepository() *BetOrderRepository {
	return &BetOrderRepository{}
}

func (r *BetOrderRepository) BatchCreate(ctx context.Context, orders []*domain.BetOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append(r.orders, orders...)
	return nil
}

// Orders returns a snapshot of all recorded orders (test helper).
func (r *BetOrderRepository) Orders() []*domain.BetOrder {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.BetOrder, len(r.orders))
	copy(out, r.orders)
	return out
}
