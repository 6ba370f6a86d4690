// Package domain defines the server-authoritative session state for
// progressive games: tower climb, road crossing and the mines grid.
package domain

import (
	"time"

	"github.com/google/uuid"

	engineDomain "github.com/frankieli/casino_engine/internal/modules/engine/domain"
)

// SessionStatus is the lifecycle state of a progressive session.
type SessionStatus string

const (
	StatusActive SessionStatus = "ACTIVE"
	StatusLost   SessionStatus = "LOST"
)

// GameSession is the per-(account, game-kind) progressive state persisted
// between client round trips. At most one exists per pair.
type GameSession struct {
	SessionID string                `json:"session_id"`
	UserID    int64                 `json:"user_id"`
	GameKind  engineDomain.GameKind `json:"game_kind"`
	Status    SessionStatus         `json:"status"`
	Stake     float64               `json:"stake"`

	// Configuration: exactly one of these is meaningful per game kind.
	Tier  string `json:"tier,omitempty"`  // tower/road difficulty
	Mines int    `json:"mines,omitempty"` // mines count

	// Progress. Level counts accepted advances: reveals for mines, levels
	// for tower, stages for road.
	Level         int     `json:"level"`
	Multiplier    float64 `json:"multiplier"`
	MinePositions []int   `json:"mine_positions,omitempty"`
	Revealed      []int   `json:"revealed,omitempty"` // safe cells, reveal order

	// Version guards concurrent advance/cash-out; see SessionRepository.
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewGameSession creates a level-0 active session.
func NewGameSession(userID int64, game engineDomain.GameKind, stake float64) *GameSession {
	now := time.Now()
	return &GameSession{
		SessionID: uuid.NewString(),
		UserID:    userID,
		GameKind:  game,
		Status:    StatusActive,
		Stake:     stake,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsRevealed reports whether a mines cell was already revealed.
func (s *GameSession) IsRevealed(cell int) bool {
	for _, c := range s.Revealed {
		if c == cell {
			return true
		}
	}
	return false
}

// IsMine reports whether a mines cell holds a mine.
func (s *GameSession) IsMine(cell int) bool {
	for _, m := range s.MinePositions {
		if m == cell {
			return true
		}
	}
	return false
}
