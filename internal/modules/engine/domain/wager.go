package domain

// Selection is the game-specific shape of a player's pick. Exactly one
// concrete selection type exists per one-shot game.
type Selection interface {
	Game() GameKind
}

// WagerRequest is the ephemeral input to a one-shot settlement.
type WagerRequest struct {
	Stake     float64
	Selection Selection
}

// DiceSelection picks a roll-over target in [2, 98].
type DiceSelection struct {
	Target float64 `json:"target"`
}

func (DiceSelection) Game() GameKind { return GameDice }

// KenoSelection picks 1-10 numbers from 1-40 under a risk tier.
type KenoSelection struct {
	Picks []int  `json:"picks"`
	Risk  string `json:"risk"` // low | medium | high
}

func (KenoSelection) Game() GameKind { return GameKeno }

// PlinkoSelection fixes the board geometry for one drop.
type PlinkoSelection struct {
	Rows int    `json:"rows"` // 8 | 12 | 16
	Risk string `json:"risk"` // low | medium | high
}

func (PlinkoSelection) Game() GameKind { return GamePlinko }

// CoinSide is a coin flip call.
type CoinSide string

const (
	CoinHeads CoinSide = "heads"
	CoinTails CoinSide = "tails"
)

// CoinFlipSelection calls one side.
type CoinFlipSelection struct {
	Side CoinSide `json:"side"`
}

func (CoinFlipSelection) Game() GameKind { return GameCoinFlip }

// DuelSide is a card duel call.
type DuelSide string

const (
	DuelLeft  DuelSide = "left"
	DuelRight DuelSide = "right"
	DuelTie   DuelSide = "tie"
)

// CardDuelSelection backs one side of a two-card draw.
type CardDuelSelection struct {
	Side DuelSide `json:"side"`
}

func (CardDuelSelection) Game() GameKind { return GameCardDuel }

// RouletteBetType names a standard roulette bet class.
type RouletteBetType string

const (
	RouletteStraight RouletteBetType = "straight"
	RouletteRed      RouletteBetType = "red"
	RouletteBlack    RouletteBetType = "black"
	RouletteOdd      RouletteBetType = "odd"
	RouletteEven     RouletteBetType = "even"
	RouletteLow      RouletteBetType = "low"  // 1-18
	RouletteHigh     RouletteBetType = "high" // 19-36
	RouletteDozen    RouletteBetType = "dozen"
	RouletteColumn   RouletteBetType = "column"
)

// RouletteChip is one placed chip; a request may carry many, each with its
// own stake, evaluated independently and summed.
type RouletteChip struct {
	Type   RouletteBetType `json:"type"`
	Number int             `json:"number,omitempty"` // straight target, dozen/column index 1-3
	Stake  float64         `json:"stake"`
}

// RouletteSelection is the full set of chips for one spin.
type RouletteSelection struct {
	Chips []RouletteChip `json:"chips"`
}

func (RouletteSelection) Game() GameKind { return GameRoulette }

// CrashSelection commits to an auto-cash-out multiplier before the round.
type CrashSelection struct {
	CashOutAt float64 `json:"cash_out_at"`
}

func (CrashSelection) Game() GameKind { return GameCrash }

// WheelSelection has no player choice; the spin is the wager.
type WheelSelection struct{}

func (WheelSelection) Game() GameKind { return GameWheel }

// LotteryZone is a non-exact lottery selection.
type LotteryZone string

const (
	ZoneBig    LotteryZone = "big"   // digits 5-9
	ZoneSmall  LotteryZone = "small" // digits 0-4
	ZoneRed    LotteryZone = "red"
	ZoneGreen  LotteryZone = "green"
	ZoneViolet LotteryZone = "violet"
)

// LotteryPick is one lottery selection with its own stake: either an exact
// digit or a zone.
type LotteryPick struct {
	Digit *int        `json:"digit,omitempty"` // 0-9, nil when Zone is set
	Zone  LotteryZone `json:"zone,omitempty"`
	Stake float64     `json:"stake"`
}
