package payout

import (
	"fmt"

	"github.com/frankieli/casino_engine/internal/modules/engine/domain"
)

// Mines board and payout constants.
const (
	MinesGridSize  = 25
	MinesRetention = 0.95 // payout-retention factor applied to the fair odds
)

// MinesCounts are the allowed mine counts by difficulty.
var MinesCounts = map[int]bool{3: true, 5: true, 10: true}

// ValidateMinesCount rejects unsupported difficulties.
func ValidateMinesCount(mines int) error {
	if !MinesCounts[mines] {
		return fmt.Errorf("%w: mines count %d not in {3,5,10}", domain.ErrInvalidSelection, mines)
	}
	return nil
}

// MinesMultiplier returns the running multiplier after `revealed` safe
// reveals on a board with `mines` mines: the product over revealed cells of
// remainingCells/remainingSafeCells, scaled by the retention factor.
// Zero reveals means no multiplier yet (1.0 unscaled would overpay).
func MinesMultiplier(revealed, mines int) float64 {
	if revealed <= 0 {
		return 0
	}
	multiplier := 1.0
	for i := 0; i < revealed; i++ {
		remaining := float64(MinesGridSize - i)
		remainingSafe := float64(MinesGridSize - mines - i)
		multiplier *= remaining / remainingSafe
	}
	return multiplier * MinesRetention
}
