package domain

import (
	engineDomain "github.com/frankieli/casino_engine/internal/modules/engine/domain"
)

// SessionResult is the outcome of a start, advance or cash-out. On an
// expected rejection Success is false, Reason carries the stable code and
// the balance is unchanged.
type SessionResult struct {
	Success  bool                  `json:"success"`
	GameKind engineDomain.GameKind `json:"game_kind"`

	Session *GameSession `json:"session,omitempty"`

	// Finished marks a terminal transition: bust, cash-out, or completing
	// the final level. Busted narrows it to a loss.
	Finished bool    `json:"finished"`
	Busted   bool    `json:"busted"`
	BustCell int     `json:"bust_cell,omitempty"` // mines only
	Payout   float64 `json:"payout"`

	Balance engineDomain.BalanceSnapshot `json:"balance"`

	Reason  engineDomain.FailReason `json:"reason,omitempty"`
	Message string                  `json:"message,omitempty"`
}
