package payout

import (
	"fmt"

	"github.com/frankieli/casino_engine/internal/modules/engine/domain"
)

// Card duel multipliers.
const (
	duelWinMultiplier = 2.0
	duelTieMultiplier = 8.0
)

// ValidateDuelSide rejects unknown sides.
func ValidateDuelSide(side domain.DuelSide) error {
	switch side {
	case domain.DuelLeft, domain.DuelRight, domain.DuelTie:
		return nil
	default:
		return fmt.Errorf("%w: unknown duel side %q", domain.ErrInvalidSelection, side)
	}
}

// DuelWinner returns which side a two-card draw favors.
func DuelWinner(left, right int) domain.DuelSide {
	switch {
	case left > right:
		return domain.DuelLeft
	case right > left:
		return domain.DuelRight
	default:
		return domain.DuelTie
	}
}

// EvaluateCardDuel pays the higher card's side at 2x and the tie side at 8x.
func EvaluateCardDuel(side domain.DuelSide, left, right int, stake float64) float64 {
	winner := DuelWinner(left, right)
	if side != winner {
		return 0
	}
	if winner == domain.DuelTie {
		return stake * duelTieMultiplier
	}
	return stake * duelWinMultiplier
}
