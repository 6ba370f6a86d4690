// Package domain defines the account ledger model: a wallet partitioned into
// deposit, winning and bonus classes whose sum is the spendable balance.
package domain

import (
	"time"
)

// BalanceClass names one of the three wallet partitions.
type BalanceClass string

const (
	BalanceDeposit BalanceClass = "deposit"
	BalanceWinning BalanceClass = "winning"
	BalanceBonus   BalanceClass = "bonus"
)

// Account roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Account is a player's persistent wallet and profile.
//
// Balance is always recomputed as the sum of the three partitions; it is
// stored denormalized for querying but never trusted independently.
type Account struct {
	UserID    int64  `gorm:"primaryKey;column:user_id;autoIncrement" json:"user_id"`
	DisplayID int64  `gorm:"column:display_id;uniqueIndex" json:"display_id"`
	Username  string `gorm:"column:username;not null" json:"username"`
	Email     string `gorm:"column:email;unique;not null" json:"email"`
	Role      string `gorm:"column:role;type:varchar(16);not null;default:user" json:"role"`

	DepositBalance float64 `gorm:"column:deposit_balance;type:decimal(18,2);not null;default:0" json:"deposit_balance"`
	WinningBalance float64 `gorm:"column:winning_balance;type:decimal(18,2);not null;default:0" json:"winning_balance"`
	BonusBalance   float64 `gorm:"column:bonus_balance;type:decimal(18,2);not null;default:0" json:"bonus_balance"`
	Balance        float64 `gorm:"column:balance;type:decimal(18,2);not null;default:0" json:"balance"`

	TotalWagered   float64 `gorm:"column:total_wagered;type:decimal(18,2);not null;default:0" json:"total_wagered"`
	TotalDeposited float64 `gorm:"column:total_deposited;type:decimal(18,2);not null;default:0" json:"total_deposited"`
	VIPLevel       int     `gorm:"column:vip_level;not null;default:0" json:"vip_level"`

	// Version guards every read-modify-write; see AccountRepository.Update.
	Version   int64     `gorm:"column:version;not null;default:0" json:"-"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName overrides the table name
func (Account) TableName() string {
	return "accounts"
}

// Recompute refreshes the denormalized total from the partitions.
func (a *Account) Recompute() {
	a.Balance = a.DepositBalance + a.WinningBalance + a.BonusBalance
}

// StakeSplit records how a stake debit was drawn from the partitions, so a
// voided wager can be refunded into exactly the classes it came from.
type StakeSplit struct {
	Bonus   float64
	Winning float64
	Deposit float64
}

// Total returns the full debited amount.
func (s StakeSplit) Total() float64 {
	return s.Bonus + s.Winning + s.Deposit
}

// ApplyStake debits a wager from the wallet and bumps TotalWagered.
//
// The stake is drawn down bonus first, then winning, then deposit, so that
// withdrawable funds are consumed last and the partition sum stays exact.
func (a *Account) ApplyStake(amount float64) (StakeSplit, error) {
	if amount <= 0 {
		return StakeSplit{}, ErrInvalidAmount
	}
	if a.Balance < amount {
		return StakeSplit{}, ErrInsufficientFunds
	}

	var split StakeSplit
	remaining := amount

	split.Bonus = min(remaining, a.BonusBalance)
	a.BonusBalance -= split.Bonus
	remaining -= split.Bonus

	split.Winning = min(remaining, a.WinningBalance)
	a.WinningBalance -= split.Winning
	remaining -= split.Winning

	split.Deposit = remaining
	a.DepositBalance -= remaining

	a.TotalWagered += amount
	a.Recompute()
	return split, nil
}

// ApplyRefund voids a debited stake: each partition gets back exactly what
// the debit took, and TotalWagered is rolled back since the wager never
// reached a game.
func (a *Account) ApplyRefund(split StakeSplit) {
	a.BonusBalance += split.Bonus
	a.WinningBalance += split.Winning
	a.DepositBalance += split.Deposit
	a.TotalWagered -= split.Total()
	a.Recompute()
}

// Credit adds amount into the given partition.
func (a *Account) Credit(class BalanceClass, amount float64) error {
	if amount < 0 {
		return ErrInvalidAmount
	}
	switch class {
	case BalanceDeposit:
		a.DepositBalance += amount
	case BalanceWinning:
		a.WinningBalance += amount
	case BalanceBonus:
		a.BonusBalance += amount
	default:
		return ErrInvalidAmount
	}
	a.Recompute()
	return nil
}

// ApplyDeposit credits an approved deposit and bumps TotalDeposited.
func (a *Account) ApplyDeposit(amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	a.DepositBalance += amount
	a.TotalDeposited += amount
	a.Recompute()
	return nil
}

// ApplyWithdrawal debits an approved withdrawal from the winning partition,
// the only withdrawable class.
func (a *Account) ApplyWithdrawal(amount float64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if a.WinningBalance < amount {
		return ErrInsufficientFunds
	}
	a.WinningBalance -= amount
	a.Recompute()
	return nil
}
