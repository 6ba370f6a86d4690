package payout

import (
	"fmt"

	"github.com/frankieli/casino_engine/internal/modules/engine/domain"
)

// Road-crossing geometry: 8 stages; survival is independent of which lane
// the player hops to.
const RoadStages = 8

// RoadSurvival maps tier -> per-stage survival probability.
var RoadSurvival = map[string]float64{
	"easy":      0.90,
	"medium":    0.80,
	"hard":      0.60,
	"daredevil": 0.40,
}

// RoadMultipliers maps tier -> multiplier after clearing stage i+1.
var RoadMultipliers = map[string][]float64{
	"easy":      {1.06, 1.11, 1.18, 1.24, 1.31, 1.39, 1.46, 1.55},
	"medium":    {1.19, 1.41, 1.67, 1.99, 2.36, 2.80, 3.33, 3.96},
	"hard":      {1.58, 2.51, 3.97, 6.28, 9.94, 15.73, 24.90, 39.41},
	"daredevil": {2.38, 5.64, 13.40, 31.82, 75.57, 179.48, 426.26, 1012.37},
}

// ValidateRoadTier rejects unknown difficulty tiers.
func ValidateRoadTier(tier string) error {
	if _, ok := RoadSurvival[tier]; !ok {
		return fmt.Errorf("%w: unknown road tier %q", domain.ErrInvalidSelection, tier)
	}
	return nil
}

// RoadMultiplier returns the cash-out multiplier at a cleared stage (1-based).
func RoadMultiplier(tier string, stage int) (float64, error) {
	table, ok := RoadMultipliers[tier]
	if !ok {
		return 0, fmt.Errorf("%w: road multipliers for tier %q", domain.ErrConfigMissing, tier)
	}
	if stage < 1 || stage > len(table) {
		return 0, fmt.Errorf("%w: road stage %d out of range", domain.ErrInvalidSelection, stage)
	}
	return table[stage-1], nil
}
