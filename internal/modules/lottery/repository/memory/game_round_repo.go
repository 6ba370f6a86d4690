package memory

import (
	"context"
	"sync"

	"github.com/frankieli/casino_engine/internal/modules/lottery/domain"
)

// GameRoundRepository implements domain.GameRoundRepository using memory
type GameRoundRepository struct {
	rounds []*domain.GameRound
	mu     sync.Mutex
}

// NewGameRoundRepository creates a new memory game round repository
func NewGameRoundRepository() *GameRoundRepository {
	return &GameRoundRepository{}
}

// Create persists a round history record
func (r *GameRoundRepository) Create(ctx context.Context, round *domain.GameRound) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *round
	r.rounds = append(r.rounds, &stored)
	return nil
}

// ListRecent returns the most recent rounds, newest first
func (r *GameRoundRepository) ListRecent(ctx context.Context, limit int) ([]*domain.GameRound, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rounds := make([]*domain.GameRound, 0, limit)
	for i := len(r.rounds) - 1; i >= 0 && len(rounds) < limit; i-- {
		snapshot := *r.rounds[i]
		rounds = append(rounds, &snapshot)
	}
	return rounds, nil
}
