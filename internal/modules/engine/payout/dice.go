package payout

import (
	"fmt"

	"github.com/frankieli/casino_engine/internal/modules/engine/domain"
)

// Dice roll-over bounds. Target, multiplier and win chance are mutually
// derivable: multiplier = 99 / winChance, winChance = 100 - target.
const (
	DiceMinTarget = 2.0
	DiceMaxTarget = 98.0
)

// ValidateDiceTarget rejects targets outside [2, 98].
func ValidateDiceTarget(target float64) error {
	if target < DiceMinTarget || target > DiceMaxTarget {
		return fmt.Errorf("%w: dice target %.2f outside [%v, %v]", domain.ErrInvalidSelection, target, DiceMinTarget, DiceMaxTarget)
	}
	return nil
}

// DiceMultiplier returns the payout multiplier for a roll-over target.
func DiceMultiplier(target float64) float64 {
	return 99.0 / (100.0 - target)
}

// EvaluateDice pays stake x multiplier iff the roll exceeds the target.
func EvaluateDice(roll, target, stake float64) float64 {
	if roll > target {
		return stake * DiceMultiplier(target)
	}
	return 0
}
