package domain

import (
	"context"

	engineDomain "github.com/frankieli/casino_engine/internal/modules/engine/domain"
)

// SessionRepository stores at most one session per (account, game-kind).
//
// Create fails with engine ErrSessionActive when a session already exists;
// this is the atomicity guard against two concurrent starts. Update and
// Delete are compare-and-swap on session.Version and fail with
// ErrSessionConflict when a concurrent advance or cash-out won, so the two
// can never both apply against the same state.
type SessionRepository interface {
	Get(ctx context.Context, userID int64, game engineDomain.GameKind) (*GameSession, error)
	Create(ctx context.Context, session *GameSession) error
	Update(ctx context.Context, session *GameSession) error
	Delete(ctx context.Context, session *GameSession) error
}
