package payout

import (
	"fmt"

	"github.com/frankieli/casino_engine/internal/modules/engine/domain"
)

// Keno pick bounds.
const (
	KenoMinPicks  = 1
	KenoMaxPicks  = 10
	KenoMaxNumber = 40
)

// ValidateKeno rejects malformed keno selections.
func ValidateKeno(sel domain.KenoSelection) error {
	if _, ok := KenoPayouts[sel.Risk]; !ok {
		return fmt.Errorf("%w: unknown keno risk %q", domain.ErrInvalidSelection, sel.Risk)
	}
	if len(sel.Picks) < KenoMinPicks || len(sel.Picks) > KenoMaxPicks {
		return fmt.Errorf("%w: keno requires %d-%d picks, got %d", domain.ErrInvalidSelection, KenoMinPicks, KenoMaxPicks, len(sel.Picks))
	}
	seen := make(map[int]bool, len(sel.Picks))
	for _, p := range sel.Picks {
		if p < 1 || p > KenoMaxNumber {
			return fmt.Errorf("%w: keno pick %d out of range", domain.ErrInvalidSelection, p)
		}
		if seen[p] {
			return fmt.Errorf("%w: duplicate keno pick %d", domain.ErrInvalidSelection, p)
		}
		seen[p] = true
	}
	return nil
}

// KenoMultiplier looks up (risk, picks, hits) in the paytable.
func KenoMultiplier(risk string, picks, hits int) (float64, error) {
	table, ok := KenoPayouts[risk]
	if !ok {
		return 0, fmt.Errorf("%w: keno paytable for risk %q", domain.ErrConfigMissing, risk)
	}
	row, ok := table[picks]
	if !ok {
		return 0, fmt.Errorf("%w: keno paytable for %d picks", domain.ErrConfigMissing, picks)
	}
	return row[hits], nil
}

// EvaluateKeno counts hits against the draw and pays by the paytable.
func EvaluateKeno(sel domain.KenoSelection, drawn []int, stake float64) (float64, int, error) {
	drawnSet := make(map[int]bool, len(drawn))
	for _, d := range drawn {
		drawnSet[d] = true
	}

	hits := 0
	for _, p := range sel.Picks {
		if drawnSet[p] {
			hits++
		}
	}

	multiplier, err := KenoMultiplier(sel.Risk, len(sel.Picks), hits)
	if err != nil {
		return 0, hits, err
	}
	return stake * multiplier, hits, nil
}
