package domain

import "context"

// BetRepository stores the staged bets of open rounds.
type BetRepository interface {
	// SaveBet saves a bet, or returns ErrRoundClosed once the round's
	// settler has closed intake.
	SaveBet(ctx context.Context, bet *Bet) error

	// CloseRound stops bet intake for the round. Every SaveBet completes
	// either before the close (and is visible to GetBets) or fails with
	// ErrRoundClosed; nothing lands in between.
	CloseRound(ctx context.Context, roundID string) error

	// GetBets retrieves all bets for a round
	GetBets(ctx context.Context, roundID string) ([]*Bet, error)

	// GetUserBets retrieves all bets for a user in a round
	GetUserBets(ctx context.Context, roundID string, userID int64) ([]*Bet, error)

	// ClearBets clears all bets for a round after settlement
	ClearBets(ctx context.Context, roundID string) error
}

// ResultRepository coordinates the settle-exactly-once discipline: the claim
// is a conditional write only one caller can win, and the admin override is
// consumed by the winner.
type ResultRepository interface {
	// ClaimSettlement marks the round as being settled. Returns true for
	// the single caller that won the claim.
	ClaimSettlement(ctx context.Context, roundID string) (bool, error)

	// SaveResult stores the settled result for later reads.
	SaveResult(ctx context.Context, result *GameRound) error

	// GetResult returns the settled result, or ErrRoundNotSettled.
	GetResult(ctx context.Context, roundID string) (*GameRound, error)

	// SetOverride forces the next settled round to the given digit.
	SetOverride(ctx context.Context, digit int) error

	// PopOverride consumes the forced digit, if one is set.
	PopOverride(ctx context.Context) (digit int, ok bool, err error)
}

// GameRoundRepository persists round history.
type GameRoundRepository interface {
	Create(ctx context.Context, round *GameRound) error
	ListRecent(ctx context.Context, limit int) ([]*GameRound, error)
}
