package payout

import (
	"fmt"

	"github.com/frankieli/casino_engine/internal/modules/engine/domain"
)

// DoubleZeroSlot encodes the American wheel's second zero.
const DoubleZeroSlot = 37

// Roulette payout multipliers (total return on stake).
const (
	rouletteStraightMultiplier  = 35.0
	rouletteEvenMoneyMultiplier = 2.0
	rouletteThirdMultiplier     = 3.0
)

// rouletteRedNumbers is the standard red set; remaining 1-36 are black.
var rouletteRedNumbers = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true,
	14: true, 16: true, 18: true, 19: true, 21: true, 23: true,
	25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

// RouletteSlotLabel renders a slot for display ("00" for the double zero).
func RouletteSlotLabel(slot int) string {
	if slot == DoubleZeroSlot {
		return "00"
	}
	return fmt.Sprintf("%d", slot)
}

// ValidateRouletteChips rejects malformed chip sets.
func ValidateRouletteChips(chips []domain.RouletteChip) error {
	if len(chips) == 0 {
		return fmt.Errorf("%w: no roulette chips placed", domain.ErrInvalidSelection)
	}
	for _, chip := range chips {
		if chip.Stake <= 0 {
			return fmt.Errorf("%w: non-positive chip stake", domain.ErrInvalidStake)
		}
		switch chip.Type {
		case domain.RouletteStraight:
			if chip.Number < 0 || chip.Number > DoubleZeroSlot {
				return fmt.Errorf("%w: straight number %d out of range", domain.ErrInvalidSelection, chip.Number)
			}
		case domain.RouletteDozen, domain.RouletteColumn:
			if chip.Number < 1 || chip.Number > 3 {
				return fmt.Errorf("%w: %s index %d out of range", domain.ErrInvalidSelection, chip.Type, chip.Number)
			}
		case domain.RouletteRed, domain.RouletteBlack, domain.RouletteOdd,
			domain.RouletteEven, domain.RouletteLow, domain.RouletteHigh:
		default:
			return fmt.Errorf("%w: unknown roulette bet %q", domain.ErrInvalidSelection, chip.Type)
		}
	}
	return nil
}

// EvaluateRouletteChip pays one chip against the landed slot. The zero
// family (0 and 00) wins only straight bets.
func EvaluateRouletteChip(chip domain.RouletteChip, slot int) float64 {
	if chip.Type == domain.RouletteStraight {
		if chip.Number == slot {
			return chip.Stake * rouletteStraightMultiplier
		}
		return 0
	}

	// Outside bets lose on 0 and 00.
	if slot == 0 || slot == DoubleZeroSlot {
		return 0
	}

	win := false
	multiplier := rouletteEvenMoneyMultiplier
	switch chip.Type {
	case domain.RouletteRed:
		win = rouletteRedNumbers[slot]
	case domain.RouletteBlack:
		win = !rouletteRedNumbers[slot]
	case domain.RouletteOdd:
		win = slot%2 == 1
	case domain.RouletteEven:
		win = slot%2 == 0
	case domain.RouletteLow:
		win = slot <= 18
	case domain.RouletteHigh:
		win = slot >= 19
	case domain.RouletteDozen:
		win = (slot-1)/12+1 == chip.Number
		multiplier = rouletteThirdMultiplier
	case domain.RouletteColumn:
		win = (slot-1)%3+1 == chip.Number
		multiplier = rouletteThirdMultiplier
	}

	if !win {
		return 0
	}
	return chip.Stake * multiplier
}

// EvaluateRoulette evaluates every placed chip independently and sums.
func EvaluateRoulette(chips []domain.RouletteChip, slot int) float64 {
	total := 0.0
	for _, chip := range chips {
		total += EvaluateRouletteChip(chip, slot)
	}
	return total
}
