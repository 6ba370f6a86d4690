package domain

// BalanceSnapshot is the post-settlement wallet view returned to the caller.
type BalanceSnapshot struct {
	Balance        float64 `json:"balance"`
	DepositBalance float64 `json:"deposit_balance"`
	WinningBalance float64 `json:"winning_balance"`
	BonusBalance   float64 `json:"bonus_balance"`
	TotalWagered   float64 `json:"total_wagered"`
}

// SettlementResult is the ephemeral output of one settlement.
type SettlementResult struct {
	Success  bool            `json:"success"`
	GameKind GameKind        `json:"game_kind"`
	Outcome  interface{}     `json:"outcome,omitempty"` // realized outcome, for display
	Payout   float64         `json:"payout"`
	Balance  BalanceSnapshot `json:"balance"`
	Reason   FailReason      `json:"reason,omitempty"`
	Message  string          `json:"message,omitempty"`
}

// Per-game realized outcomes.

type DiceOutcome struct {
	Roll       float64 `json:"roll"`
	Target     float64 `json:"target"`
	Multiplier float64 `json:"multiplier"`
	Win        bool    `json:"win"`
}

type KenoOutcome struct {
	Drawn      []int   `json:"drawn"`
	Hits       int     `json:"hits"`
	Multiplier float64 `json:"multiplier"`
}

type PlinkoOutcome struct {
	Path       []bool  `json:"path"` // true = right
	Bucket     int     `json:"bucket"`
	Multiplier float64 `json:"multiplier"`
}

type CoinFlipOutcome struct {
	Side CoinSide `json:"side"`
	Win  bool     `json:"win"`
}

type CardDuelOutcome struct {
	Left   int      `json:"left"`
	Right  int      `json:"right"`
	Winner DuelSide `json:"winner"`
}

type RouletteOutcome struct {
	Slot  int    `json:"slot"` // 0-36, 37 encodes 00
	Label string `json:"label"`
}

type CrashOutcome struct {
	CrashPoint float64 `json:"crash_point"`
	CashOutAt  float64 `json:"cash_out_at"`
	Win        bool    `json:"win"`
}

type WheelOutcome struct {
	Index int     `json:"index"`
	Prize float64 `json:"prize"`
}
