// Package domain defines the round-based lottery: bets collected per round,
// settled exactly once when the round closes.
package domain

import (
	"time"

	engineDomain "github.com/frankieli/casino_engine/internal/modules/engine/domain"
	ledgerDomain "github.com/frankieli/casino_engine/internal/modules/ledger/domain"
)

// Bet is one player's staged selections for a round. The server-side
// collection is the source of truth; the client never is.
type Bet struct {
	BetID   string                     `json:"bet_id"`
	RoundID string                     `json:"round_id"`
	UserID  int64                      `json:"user_id"`
	Picks   []engineDomain.LotteryPick `json:"picks"`
	Amount  float64                    `json:"amount"` // sum of pick stakes

	// Split records which balance partitions the stake came from, so a
	// failed save can void the wager exactly.
	Split ledgerDomain.StakeSplit `json:"split"`

	Time time.Time `json:"time"`
}

// NewBet creates a new bet
func NewBet(roundID string, userID int64, picks []engineDomain.LotteryPick, amount float64, split ledgerDomain.StakeSplit) *Bet {
	return &Bet{
		BetID:   engineDomain.NewOrderID(),
		RoundID: roundID,
		UserID:  userID,
		Picks:   picks,
		Amount:  amount,
		Split:   split,
		Time:    time.Now(),
	}
}
