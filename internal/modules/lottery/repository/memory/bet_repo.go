// Package memory provides memory-based lottery repositories for monolith and
// test mode.
package memory

import (
	"context"
	"sync"

	"github.com/frankieli/casino_engine/internal/modules/lottery/domain"
)

// BetRepository implements domain.BetRepository using memory
type BetRepository struct {
	bets   map[string][]*domain.Bet // roundID -> bets
	closed map[string]bool          // roundID -> intake closed
	mu     sync.Mutex
}

// NewBetRepository creates a new memory bet repository
func NewBetRepository() *BetRepository {
	return &BetRepository{
		bets:   make(map[string][]*domain.Bet),
		closed: make(map[string]bool),
	}
}

// SaveBet saves a bet; a bet racing the settler past the close fails rather
// than landing in a round that will never evaluate it.
func (r *BetRepository) SaveBet(ctx context.Context, bet *domain.Bet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed[bet.RoundID] {
		return domain.ErrRoundClosed
	}
	stored := *bet
	r.bets[bet.RoundID] = append(r.bets[bet.RoundID], &stored)
	return nil
}

// CloseRound stops bet intake for the round
func (r *BetRepository) CloseRound(ctx context.Context, roundID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed[roundID] = true
	return nil
}

// GetBets retrieves all bets for a round
func (r *BetRepository) GetBets(ctx context.Context, roundID string) ([]*domain.Bet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bets := make([]*domain.Bet, 0, len(r.bets[roundID]))
	for _, bet := range r.bets[roundID] {
		snapshot := *bet
		bets = append(bets, &snapshot)
	}
	return bets, nil
}

// GetUserBets retrieves all bets for a user in a round
func (r *BetRepository) GetUserBets(ctx context.Context, roundID string, userID int64) ([]*domain.Bet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var bets []*domain.Bet
	for _, bet := range r.bets[roundID] {
		if bet.UserID == userID {
			snapshot := *bet
			bets = append(bets, &snapshot)
		}
	}
	return bets, nil
}

// ClearBets clears all bets for a round
func (r *BetRepository) ClearBets(ctx context.Context, roundID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.bets, roundID)
	return nil
}
