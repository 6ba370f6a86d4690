// Package outcome produces the random raw result for one betting round.
//
// The Uniform generator draws every outcome from a uniform distribution over
// the game's domain, independent of stake or selection, with one deliberate
// exception: the coin flip win side is a fixed-bias Bernoulli draw. The
// adversarial policies live behind the strategy types in crash.go.
package outcome

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// Coin flip wins with 45% probability regardless of stake size.
const coinFlipWinProbability = 0.45

// KenoDrawCount numbers are drawn without replacement from KenoPool.
const (
	KenoDrawCount = 10
	KenoPool      = 40
)

// Mines board geometry.
const (
	MinesGridSize = 25
)

// Uniform is the uniform-random outcome generator. Safe for concurrent use.
type Uniform struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewUniform creates a generator seeded from the wall clock.
func NewUniform() *Uniform {
	return &Uniform{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewUniformSeeded creates a deterministic generator for tests.
func NewUniformSeeded(seed int64) *Uniform {
	return &Uniform{rnd: rand.New(rand.NewSource(seed))}
}

// DiceRoll draws a roll in [0, 100) with two decimal places.
func (u *Uniform) DiceRoll() float64 {
	u.mu.Lock()
	defer u.mu.Unlock()
	return math.Floor(u.rnd.Float64()*10000) / 100
}

// KenoDraw draws 10 distinct numbers from 1-40 via Fisher-Yates.
func (u *Uniform) KenoDraw() []int {
	u.mu.Lock()
	defer u.mu.Unlock()

	pool := make([]int, KenoPool)
	for i := range pool {
		pool[i] = i + 1
	}
	u.rnd.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	drawn := make([]int, KenoDrawCount)
	copy(drawn, pool[:KenoDrawCount])
	return drawn
}

// MinePositions places k mines on the 5x5 grid via Fisher-Yates.
func (u *Uniform) MinePositions(k int) []int {
	u.mu.Lock()
	defer u.mu.Unlock()

	pool := make([]int, MinesGridSize)
	for i := range pool {
		pool[i] = i
	}
	u.rnd.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	mines := make([]int, k)
	copy(mines, pool[:k])
	return mines
}

// PlinkoPath draws the left/right choice for each row; true means right.
func (u *Uniform) PlinkoPath(rows int) []bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	path := make([]bool, rows)
	for i := range path {
		path[i] = u.rnd.Intn(2) == 1
	}
	return path
}

// CardPair draws two independent card values 1-13.
func (u *Uniform) CardPair() (int, int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.rnd.Intn(13) + 1, u.rnd.Intn(13) + 1
}

// RouletteSlot draws a slot on the American wheel: 0-36, with 37 encoding 00.
func (u *Uniform) RouletteSlot() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.rnd.Intn(38)
}

// WheelIndex draws a prize index uniformly over a table of n prizes.
func (u *Uniform) WheelIndex(n int) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.rnd.Intn(n)
}

// LotteryDigit draws a digit 0-9. Used as the no-stakes fallback for the
// lottery round draw.
func (u *Uniform) LotteryDigit() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.rnd.Intn(10)
}

// CoinFlipWin draws the biased flip: true means the player's called side
// came up.
func (u *Uniform) CoinFlipWin() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.rnd.Float64() < coinFlipWinProbability
}

// Survives draws one progressive-game advance against survival probability p.
func (u *Uniform) Survives(p float64) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.rnd.Float64() < p
}

// MinPayoutDigit selects the lottery digit 0-9 whose total payout, as
// reported by totalPayout, is globally minimal. Ties break uniformly at
// random among co-minimal digits.
func (u *Uniform) MinPayoutDigit(totalPayout func(digit int) float64) int {
	best := math.MaxFloat64
	var candidates []int
	for digit := 0; digit < 10; digit++ {
		p := totalPayout(digit)
		switch {
		case p < best:
			best = p
			candidates = candidates[:0]
			candidates = append(candidates, digit)
		case p == best:
			candidates = append(candidates, digit)
		}
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	return candidates[u.rnd.Intn(len(candidates))]
}

// Float64 exposes a raw uniform draw for strategies built on top of the
// generator.
func (u *Uniform) Float64() float64 {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.rnd.Float64()
}
