package outcome

import "math"

// CrashStrategy selects the crash point for one round. stake is the player's
// active wager (0 when idle) and balance the funds remaining after the stake
// was debited.
//
// The capped strategy is the production policy the operator runs; it is kept
// behind this interface so FairCrash can be substituted without touching
// settlement.
type CrashStrategy interface {
	CrashPoint(stake, balance float64) float64
}

// Stake-ratio caps: the larger the share of a player's funds on the line,
// the tighter the crash ceiling.
const (
	crashCapHalf    = 1.1 // stake >= 50% of total funds
	crashCapQuarter = 1.7 // stake >= 25%
	crashCapBase    = 2.0 // any active stake below that
)

// CappedCrash caps the crash point inversely to the player's stake-to-funds
// ratio, and shows idle players a long-tailed distribution where a large
// share of rounds crash above 5x.
type CappedCrash struct {
	gen *Uniform
}

// NewCappedCrash creates the load-aware crash strategy.
func NewCappedCrash(gen *Uniform) *CappedCrash {
	return &CappedCrash{gen: gen}
}

func (s *CappedCrash) CrashPoint(stake, balance float64) float64 {
	if stake <= 0 {
		return s.idlePoint()
	}

	ratio := stake / (balance + stake)
	ceiling := crashCapBase
	switch {
	case ratio >= 0.5:
		ceiling = crashCapHalf
	case ratio >= 0.25:
		ceiling = crashCapQuarter
	}

	return round2(1.0 + s.gen.Float64()*(ceiling-1.0))
}

// idlePoint draws the display-only distribution for players with no active
// stake: 30% in [1,2), 30% in [2,5), 30% in [5,20), 10% in [20,120).
func (s *CappedCrash) idlePoint() float64 {
	bucket := s.gen.Float64()
	f := s.gen.Float64()
	switch {
	case bucket < 0.3:
		return round2(1.0 + f*1.0)
	case bucket < 0.6:
		return round2(2.0 + f*3.0)
	case bucket < 0.9:
		return round2(5.0 + f*15.0)
	default:
		return round2(20.0 + f*100.0)
	}
}

// FairCrash is the drop-in fair distribution: the standard 1% house-edge
// curve, independent of who is staking what.
type FairCrash struct {
	gen *Uniform
}

// NewFairCrash creates the fair crash strategy.
func NewFairCrash(gen *Uniform) *FairCrash {
	return &FairCrash{gen: gen}
}

func (s *FairCrash) CrashPoint(stake, balance float64) float64 {
	f := s.gen.Float64()

	// crashPoint = floor(100 * (1 - edge) / (1 - f)) / 100
	point := math.Floor(100*0.99/(1-f)) / 100
	if point < 1.0 {
		point = 1.0
	}
	if point > 1000.0 {
		point = 1000.0
	}
	return point
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
