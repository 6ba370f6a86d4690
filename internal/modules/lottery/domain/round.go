package domain

import (
	"fmt"
	"time"
)

// Round identity is a pure function of UTC time: every instance derives the
// same ID for the same instant with no coordination. The ID is the day plus
// the zero-based period index within it.

// RoundIDAt returns the round ID covering t for the given period length.
func RoundIDAt(t time.Time, period time.Duration) string {
	utc := t.UTC()
	midnight := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
	index := int64(utc.Sub(midnight) / period)
	return fmt.Sprintf("%s-%05d", utc.Format("20060102"), index)
}

// RoundWindow returns the start and end instants of the round covering t.
func RoundWindow(t time.Time, period time.Duration) (start, end time.Time) {
	utc := t.UTC()
	midnight := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
	index := utc.Sub(midnight) / period
	start = midnight.Add(index * period)
	return start, start.Add(period)
}

// RoundStatus tracks a persisted round history record.
type RoundStatus string

const (
	RoundStatusSettled RoundStatus = "SETTLED"
)

// GameRound is the durable per-round history record written at settlement.
type GameRound struct {
	RoundID     string      `gorm:"primaryKey;type:varchar(64)" json:"round_id"`
	GameCode    string      `gorm:"type:varchar(32);not null;index:idx_game_rounds_game_code" json:"game_code"`
	Result      int         `gorm:"not null" json:"result"`
	Forced      bool        `gorm:"not null;default:false" json:"forced"`
	Status      RoundStatus `gorm:"type:varchar(16);not null" json:"status"`
	BetCount    int         `gorm:"not null;default:0" json:"bet_count"`
	TotalStaked float64     `gorm:"type:decimal(18,2);not null;default:0" json:"total_staked"`
	TotalPaid   float64     `gorm:"type:decimal(18,2);not null;default:0" json:"total_paid"`
	SettledAt   time.Time   `gorm:"not null;index:idx_game_rounds_settled_at" json:"settled_at"`
}

// TableName overrides the table name
func (GameRound) TableName() string {
	return "game_rounds"
}
