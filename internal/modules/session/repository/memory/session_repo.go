// Package memory provides a memory-based session repository for monolith and
// test mode.
package memory

import (
	"context"
	"fmt"
	"sync"

	engineDomain "github.com/frankieli/casino_engine/internal/modules/engine/domain"
	"github.com/frankieli/casino_engine/internal/modules/session/domain"
)

// SessionRepository implements domain.SessionRepository using memory
type SessionRepository struct {
	sessions map[string]*domain.GameSession
	mu       sync.Mutex
}

// NewSessionRepository creates a new memory session repository
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		sessions: make(map[string]*domain.GameSession),
	}
}

func key(userID int64, game engineDomain.GameKind) string {
	return fmt.Sprintf("%s:%d", game, userID)
}

// clone copies the session including its slice fields. Sharing a backing
// array with a caller would let an append from a losing CAS attempt
// overwrite committed state.
func clone(session *domain.GameSession) *domain.GameSession {
	copied := *session
	copied.Revealed = append([]int(nil), session.Revealed...)
	copied.MinePositions = append([]int(nil), session.MinePositions...)
	return &copied
}

func (r *SessionRepository) Get(ctx context.Context, userID int64, game engineDomain.GameKind) (*domain.GameSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[key(userID, game)]
	if !ok {
		return nil, engineDomain.ErrNoSession
	}
	return clone(session), nil
}

func (r *SessionRepository) Create(ctx context.Context, session *domain.GameSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := key(session.UserID, session.GameKind)
	if _, ok := r.sessions[k]; ok {
		return engineDomain.ErrSessionActive
	}
	r.sessions[k] = clone(session)
	return nil
}

func (r *SessionRepository) Update(ctx context.Context, session *domain.GameSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := key(session.UserID, session.GameKind)
	stored, ok := r.sessions[k]
	if !ok {
		return engineDomain.ErrNoSession
	}
	if stored.Version != session.Version {
		return engineDomain.ErrSessionConflict
	}

	next := clone(session)
	next.Version++
	r.sessions[k] = next
	session.Version = next.Version
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, session *domain.GameSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := key(session.UserID, session.GameKind)
	stored, ok := r.sessions[k]
	if !ok {
		return engineDomain.ErrNoSession
	}
	if stored.Version != session.Version {
		return engineDomain.ErrSessionConflict
	}
	delete(r.sessions, k)
	return nil
}
