package memory

import (
	"context"
	"sync"

	"github.com/frankieli/casino_engine/internal/modules/lottery/domain"
)

// ResultRepository implements domain.ResultRepository using memory
type ResultRepository struct {
	claims   map[string]bool
	results  map[string]*domain.GameRound
	override *int
	mu       sync.Mutex
}

// NewResultRepository creates a new memory result repository
func NewResultRepository() *ResultRepository {
	return &ResultRepository{
		claims:  make(map[string]bool),
		results: make(map[string]*domain.GameRound),
	}
}

// ClaimSettlement marks the round as being settled; only the first caller
// wins.
func (r *ResultRepository) ClaimSettlement(ctx context.Context, roundID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.claims[roundID] {
		return false, nil
	}
	r.claims[roundID] = true
	return true, nil
}

// SaveResult stores the settled result
func (r *ResultRepository) SaveResult(ctx context.Context, result *domain.GameRound) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *result
	r.results[result.RoundID] = &stored
	return nil
}

// GetResult returns the settled result
func (r *ResultRepository) GetResult(ctx context.Context, roundID string) (*domain.GameRound, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result, ok := r.results[roundID]
	if !ok {
		return nil, domain.ErrRoundNotSettled
	}
	snapshot := *result
	return &snapshot, nil
}

// SetOverride forces the next settled round's digit
func (r *ResultRepository) SetOverride(ctx context.Context, digit int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d := digit
	r.override = &d
	return nil
}

// PopOverride consumes the forced digit, if set
func (r *ResultRepository) PopOverride(ctx context.Context) (int, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.override == nil {
		return 0, false, nil
	}
	digit := *r.override
	r.override = nil
	return digit, true, nil
}
