// Package payout holds the pure per-game evaluators: (outcome, selection,
// stake) -> payout. No randomness, no side effects; identical inputs always
// return identical payouts.
package payout

import (
	"fmt"

	"github.com/frankieli/casino_engine/internal/modules/engine/domain"
)

// Lottery multipliers.
const (
	lotteryExactMultiplier  = 9.0
	lotteryZoneMultiplier   = 1.9
	lotteryVioletMultiplier = 4.0
)

// lotteryGreen and lotteryRed classify the non-violet digits. 0 counts as
// violet plus red, 5 as violet plus green.
var (
	lotteryGreen = map[int]bool{1: true, 3: true, 5: true, 7: true, 9: true}
	lotteryRed   = map[int]bool{0: true, 2: true, 4: true, 6: true, 8: true}
)

// ValidateLotteryPick rejects out-of-domain lottery selections before any
// mutation happens.
func ValidateLotteryPick(pick domain.LotteryPick) error {
	if pick.Stake <= 0 {
		return fmt.Errorf("%w: non-positive lottery stake", domain.ErrInvalidStake)
	}
	if pick.Digit != nil {
		if *pick.Digit < 0 || *pick.Digit > 9 {
			return fmt.Errorf("%w: lottery digit %d out of range", domain.ErrInvalidSelection, *pick.Digit)
		}
		return nil
	}
	switch pick.Zone {
	case domain.ZoneBig, domain.ZoneSmall, domain.ZoneRed, domain.ZoneGreen, domain.ZoneViolet:
		return nil
	default:
		return fmt.Errorf("%w: no lottery zone or digit chosen", domain.ErrInvalidSelection)
	}
}

// EvaluateLotteryPick returns the payout for one selection against the drawn
// digit.
func EvaluateLotteryPick(pick domain.LotteryPick, drawn int) float64 {
	if pick.Digit != nil {
		if *pick.Digit == drawn {
			return pick.Stake * lotteryExactMultiplier
		}
		return 0
	}

	switch pick.Zone {
	case domain.ZoneBig:
		if drawn >= 5 {
			return pick.Stake * lotteryZoneMultiplier
		}
	case domain.ZoneSmall:
		if drawn <= 4 {
			return pick.Stake * lotteryZoneMultiplier
		}
	case domain.ZoneRed:
		if lotteryRed[drawn] {
			return pick.Stake * lotteryZoneMultiplier
		}
	case domain.ZoneGreen:
		if lotteryGreen[drawn] {
			return pick.Stake * lotteryZoneMultiplier
		}
	case domain.ZoneViolet:
		if drawn == 0 || drawn == 5 {
			return pick.Stake * lotteryVioletMultiplier
		}
	}
	return 0
}

// EvaluateLotteryPicks evaluates each selection independently and sums.
func EvaluateLotteryPicks(picks []domain.LotteryPick, drawn int) float64 {
	total := 0.0
	for _, pick := range picks {
		total += EvaluateLotteryPick(pick, drawn)
	}
	return total
}
