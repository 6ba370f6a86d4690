package payout

import (
	"fmt"

	"github.com/frankieli/casino_engine/internal/modules/engine/domain"
)

// PlinkoTables maps risk -> rows -> bucket multipliers. Each table has
// rows+1 buckets, symmetric and U-shaped around the center; higher risk
// steepens the curve.
var PlinkoTables = map[string]map[int][]float64{
	"low": {
		8:  {5.6, 2.1, 1.1, 1, 0.5, 1, 1.1, 2.1, 5.6},
		12: {10, 3, 1.6, 1.4, 1.1, 1, 0.5, 1, 1.1, 1.4, 1.6, 3, 10},
		16: {16, 9, 2, 1.4, 1.4, 1.2, 1.1, 1, 0.5, 1, 1.1, 1.2, 1.4, 1.4, 2, 9, 16},
	},
	"medium": {
		8:  {13, 3, 1.3, 0.7, 0.4, 0.7, 1.3, 3, 13},
		12: {33, 11, 4, 2, 1.1, 0.6, 0.3, 0.6, 1.1, 2, 4, 11, 33},
		16: {110, 41, 10, 5, 3, 1.5, 1, 0.5, 0.3, 0.5, 1, 1.5, 3, 5, 10, 41, 110},
	},
	"high": {
		8:  {29, 4, 1.5, 0.3, 0.2, 0.3, 1.5, 4, 29},
		12: {170, 24, 8.1, 2, 0.7, 0.2, 0.2, 0.2, 0.7, 2, 8.1, 24, 170},
		16: {1000, 130, 26, 9, 4, 2, 0.2, 0.2, 0.2, 0.2, 0.2, 2, 4, 9, 26, 130, 1000},
	},
}

// ValidatePlinko rejects unsupported board geometries.
func ValidatePlinko(sel domain.PlinkoSelection) error {
	riskTables, ok := PlinkoTables[sel.Risk]
	if !ok {
		return fmt.Errorf("%w: unknown plinko risk %q", domain.ErrInvalidSelection, sel.Risk)
	}
	if _, ok := riskTables[sel.Rows]; !ok {
		return fmt.Errorf("%w: plinko rows %d not supported", domain.ErrInvalidSelection, sel.Rows)
	}
	return nil
}

// PlinkoBucket maps a fall path to its bucket: the count of rightward
// bounces.
func PlinkoBucket(path []bool) int {
	bucket := 0
	for _, right := range path {
		if right {
			bucket++
		}
	}
	return bucket
}

// PlinkoMultiplier looks up the bucket multiplier for a board.
func PlinkoMultiplier(risk string, rows, bucket int) (float64, error) {
	riskTables, ok := PlinkoTables[risk]
	if !ok {
		return 0, fmt.Errorf("%w: plinko tables for risk %q", domain.ErrConfigMissing, risk)
	}
	table, ok := riskTables[rows]
	if !ok {
		return 0, fmt.Errorf("%w: plinko table for %d rows", domain.ErrConfigMissing, rows)
	}
	if bucket < 0 || bucket >= len(table) {
		return 0, fmt.Errorf("%w: plinko bucket %d out of range", domain.ErrInvalidSelection, bucket)
	}
	return table[bucket], nil
}
