// Package redis provides the Redis-backed session repository.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	engineDomain "github.com/frankieli/casino_engine/internal/modules/engine/domain"
	"github.com/frankieli/casino_engine/internal/modules/session/domain"
)

// SessionRepository implements domain.SessionRepository using Redis
type SessionRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewSessionRepository creates a new Redis session repository
func NewSessionRepository(rdb *redis.Client) *SessionRepository {
	return &SessionRepository{
		rdb: rdb,
		ttl: 24 * time.Hour, // abandoned sessions expire with their round data
	}
}

func key(userID int64, game engineDomain.GameKind) string {
	return fmt.Sprintf("game_session:%s:%d", game, userID)
}

func (r *SessionRepository) Get(ctx context.Context, userID int64, game engineDomain.GameKind) (*domain.GameSession, error) {
	data, err := r.rdb.Get(ctx, key(userID, game)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, engineDomain.ErrNoSession
	}
	if err != nil {
		return nil, err
	}

	var session domain.GameSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Create claims the (account, game-kind) slot with SETNX.
func (r *SessionRepository) Create(ctx context.Context, session *domain.GameSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}

	ok, err := r.rdb.SetNX(ctx, key(session.UserID, session.GameKind), payload, r.ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return engineDomain.ErrSessionActive
	}
	return nil
}

// Update rewrites the session inside a WATCH transaction guarded by the
// stored version.
func (r *SessionRepository) Update(ctx context.Context, session *domain.GameSession) error {
	k := key(session.UserID, session.GameKind)

	err := r.rdb.Watch(ctx, func(tx *redis.Tx) error {
		stored, err := r.watchedGet(ctx, tx, k)
		if err != nil {
			return err
		}
		if stored.Version != session.Version {
			return engineDomain.ErrSessionConflict
		}

		next := *session
		next.Version++
		payload, err := json.Marshal(&next)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, k, payload, r.ttl)
			return nil
		})
		if err == nil {
			session.Version = next.Version
		}
		return err
	}, k)

	if errors.Is(err, redis.TxFailedErr) {
		return engineDomain.ErrSessionConflict
	}
	return err
}

// Delete removes the session inside a WATCH transaction guarded by the
// stored version, so an advance and a cash-out cannot both apply.
func (r *SessionRepository) Delete(ctx context.Context, session *domain.GameSession) error {
	k := key(session.UserID, session.GameKind)

	err := r.rdb.Watch(ctx, func(tx *redis.Tx) error {
		stored, err := r.watchedGet(ctx, tx, k)
		if err != nil {
			return err
		}
		if stored.Version != session.Version {
			return engineDomain.ErrSessionConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, k)
			return nil
		})
		return err
	}, k)

	if errors.Is(err, redis.TxFailedErr) {
		return engineDomain.ErrSessionConflict
	}
	return err
}

func (r *SessionRepository) watchedGet(ctx context.Context, tx *redis.Tx, k string) (*domain.GameSession, error) {
	data, err := tx.Get(ctx, k).Result()
	if errors.Is(err, redis.Nil) {
		return nil, engineDomain.ErrNoSession
	}
	if err != nil {
		return nil, err
	}
	var stored domain.GameSession
	if err := json.Unmarshal([]byte(data), &stored); err != nil {
		return nil, err
	}
	return &stored, nil
}
