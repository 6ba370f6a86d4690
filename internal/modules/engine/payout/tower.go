package payout

import (
	"fmt"

	"github.com/frankieli/casino_engine/internal/modules/engine/domain"
)

// Tower climb geometry: 9 levels of 4 lanes; lane choice does not affect the
// per-level hit probability.
const (
	TowerLevels = 9
	TowerLanes  = 4
)

// TowerSurvival maps tier -> per-level survival probability.
var TowerSurvival = map[string]float64{
	"easy":   0.75,
	"medium": 0.50,
	"hard":   0.25,
}

// TowerMultipliers maps tier -> multiplier after completing level i+1.
// Each sequence is strictly increasing.
var TowerMultipliers = map[string][]float64{
	"easy":   {1.27, 1.61, 2.04, 2.58, 3.27, 4.14, 5.25, 6.65, 8.42},
	"medium": {1.90, 3.61, 6.86, 13.03, 24.76, 47.05, 89.39, 169.84, 322.69},
	"hard":   {3.80, 14.44, 54.87, 208.51, 792.35, 3010.94, 11441.57, 43477.96, 165216.25},
}

// ValidateTowerTier rejects unknown difficulty tiers.
func ValidateTowerTier(tier string) error {
	if _, ok := TowerSurvival[tier]; !ok {
		return fmt.Errorf("%w: unknown tower tier %q", domain.ErrInvalidSelection, tier)
	}
	return nil
}

// TowerMultiplier returns the cash-out multiplier at a completed level
// (1-based). Level 0 has nothing to cash out.
func TowerMultiplier(tier string, level int) (float64, error) {
	table, ok := TowerMultipliers[tier]
	if !ok {
		return 0, fmt.Errorf("%w: tower multipliers for tier %q", domain.ErrConfigMissing, tier)
	}
	if level < 1 || level > len(table) {
		return 0, fmt.Errorf("%w: tower level %d out of range", domain.ErrInvalidSelection, level)
	}
	return table[level-1], nil
}
