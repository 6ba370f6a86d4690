package payout

import (
	"fmt"

	"github.com/frankieli/casino_engine/internal/modules/engine/domain"
)

// CoinFlipMultiplier pays on a correct call. The draw itself carries the
// operator's bias; see the outcome package.
const CoinFlipMultiplier = 1.9

// ValidateCoinSide rejects unknown sides.
func ValidateCoinSide(side domain.CoinSide) error {
	switch side {
	case domain.CoinHeads, domain.CoinTails:
		return nil
	default:
		return fmt.Errorf("%w: unknown coin side %q", domain.ErrInvalidSelection, side)
	}
}

// EvaluateCoinFlip pays stake x 1.9 on a win.
func EvaluateCoinFlip(win bool, stake float64) float64 {
	if win {
		return stake * CoinFlipMultiplier
	}
	return 0
}

// OppositeSide returns the side that was not called.
func OppositeSide(side domain.CoinSide) domain.CoinSide {
	if side == domain.CoinHeads {
		return domain.CoinTails
	}
	return domain.CoinHeads
}
