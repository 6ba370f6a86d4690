package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frankieli/casino_engine/internal/config"
	"github.com/frankieli/casino_engine/internal/modules/engine/domain"
	"github.com/frankieli/casino_engine/internal/modules/engine/outcome"
	"github.com/frankieli/casino_engine/internal/modules/engine/repository/memory"
	ledgerDomain "github.com/frankieli/casino_engine/internal/modules/ledger/domain"
	ledgerMemory "github.com/frankieli/casino_engine/internal/modules/ledger/repository/memory"
	ledgerUseCase "github.com/frankieli/casino_engine/internal/modules/ledger/usecase"
)

func newTestSettle(t *testing.T, seed int64) (*SettleUseCase, *ledgerUseCase.LedgerUseCase, int64, *memory.BetOrderRepository) {
	t.Helper()

	games := config.DefaultGameSettings()
	ledger := ledgerUseCase.NewLedgerUseCase(ledgerMemory.NewAccountRepository(), games.VIPThresholds)
	orders := memory.NewBetOrderRepository()
	gen := outcome.NewUniformSeeded(seed)
	uc := NewSettleUseCase(ledger, gen, outcome.NewCappedCrash(gen), orders, games)

	ctx := context.Background()
	account, err := ledger.CreateAccount(ctx, "player", "player@example.com")
	require.NoError(t, err)
	_, err = ledger.CreditDeposit(ctx, account.UserID, 1000)
	require.NoError(t, err)

	return uc, ledger, account.UserID, orders
}

func TestSettleDiceBalanceConservation(t *testing.T) {
	uc, _, userID, orders := newTestSettle(t, 42)
	ctx := context.Background()

	result, err := uc.Settle(ctx, userID, domain.WagerRequest{
		Stake:     100,
		Selection: domain.DiceSelection{Target: 50},
	})
	require.NoError(t, err)
	require.True(t, result.Success)

	// Whatever the roll was, the balance moved by exactly payout - stake.
	assert.InDelta(t, 1000-100+result.Payout, result.Balance.Balance, 0.0001)

	view, ok := result.Outcome.(domain.DiceOutcome)
	require.True(t, ok)
	if view.Win {
		assert.InDelta(t, 100*1.98, result.Payout, 0.01)
	} else {
		assert.Equal(t, 0.0, result.Payout)
	}

	// Every settlement leaves an audit record.
	require.Len(t, orders.Orders(), 1)
	order := orders.Orders()[0]
	assert.Equal(t, userID, order.UserID)
	assert.Equal(t, "dice", order.GameCode)
	assert.Equal(t, 100.0, order.Amount)
	assert.InDelta(t, result.Payout, order.Payout, 0.0001)
}

func TestSettleInvalidStake(t *testing.T) {
	uc, ledger, userID, orders := newTestSettle(t, 1)
	ctx := context.Background()

	result, err := uc.Settle(ctx, userID, domain.WagerRequest{
		Stake:     5, // below the configured minimum
		Selection: domain.DiceSelection{Target: 50},
	})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, domain.ReasonInvalidStake, result.Reason)

	account, err := ledger.GetAccount(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, account.Balance)
	assert.Empty(t, orders.Orders())
}

func TestSettleInvalidSelection(t *testing.T) {
	uc, ledger, userID, _ := newTestSettle(t, 1)
	ctx := context.Background()

	result, err := uc.Settle(ctx, userID, domain.WagerRequest{
		Stake:     100,
		Selection: domain.DiceSelection{Target: 99},
	})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, domain.ReasonInvalidSelection, result.Reason)

	account, err := ledger.GetAccount(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, account.Balance)
}

func TestSettleInsufficientFunds(t *testing.T) {
	uc, ledger, userID, _ := newTestSettle(t, 1)
	ctx := context.Background()

	result, err := uc.Settle(ctx, userID, domain.WagerRequest{
		Stake:     5000,
		Selection: domain.CoinFlipSelection{Side: domain.CoinHeads},
	})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, domain.ReasonInsufficientFunds, result.Reason)

	account, err := ledger.GetAccount(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, account.Balance)
	assert.Equal(t, 0.0, account.TotalWagered)
}

func TestSettleRouletteStakesSumOfChips(t *testing.T) {
	uc, _, userID, orders := newTestSettle(t, 7)
	ctx := context.Background()

	result, err := uc.Settle(ctx, userID, domain.WagerRequest{
		// Stake field is ignored for roulette; chips carry the wager.
		Selection: domain.RouletteSelection{Chips: []domain.RouletteChip{
			{Type: domain.RouletteRed, Stake: 30},
			{Type: domain.RouletteStraight, Number: 17, Stake: 10},
		}},
	})
	require.NoError(t, err)
	require.True(t, result.Success)

	require.Len(t, orders.Orders(), 1)
	assert.Equal(t, 40.0, orders.Orders()[0].Amount)
	assert.InDelta(t, 1000-40+result.Payout, result.Balance.Balance, 0.0001)
}

func TestSettleCoinFlipPayout(t *testing.T) {
	uc, _, userID, _ := newTestSettle(t, 99)
	ctx := context.Background()

	result, err := uc.Settle(ctx, userID, domain.WagerRequest{
		Stake:     100,
		Selection: domain.CoinFlipSelection{Side: domain.CoinHeads},
	})
	require.NoError(t, err)
	require.True(t, result.Success)

	view, ok := result.Outcome.(domain.CoinFlipOutcome)
	require.True(t, ok)
	if view.Win {
		assert.InDelta(t, 190.0, result.Payout, 0.0001)
		assert.Equal(t, domain.CoinHeads, view.Side)
	} else {
		assert.Equal(t, 0.0, result.Payout)
		assert.Equal(t, domain.CoinTails, view.Side)
	}
}

func TestSettleWheelUsesPrizeTable(t *testing.T) {
	uc, _, userID, _ := newTestSettle(t, 3)
	ctx := context.Background()

	games := config.DefaultGameSettings()
	result, err := uc.Settle(ctx, userID, domain.WagerRequest{
		Stake:     games.WheelStake,
		Selection: domain.WheelSelection{},
	})
	require.NoError(t, err)
	require.True(t, result.Success)

	view, ok := result.Outcome.(domain.WheelOutcome)
	require.True(t, ok)
	assert.Equal(t, games.WheelPrizes[view.Index], view.Prize)
	assert.Equal(t, view.Prize, result.Payout)
}

func TestSettleCrashCapAgainstLargeStake(t *testing.T) {
	uc, _, userID, _ := newTestSettle(t, 5)
	ctx := context.Background()

	// 600 of 1000 total funds is a 60% stake ratio; the crash point is
	// capped at 1.1 so a 1.2x cash-out can never win.
	result, err := uc.Settle(ctx, userID, domain.WagerRequest{
		Stake:     600,
		Selection: domain.CrashSelection{CashOutAt: 1.2},
	})
	require.NoError(t, err)
	require.True(t, result.Success)

	view, ok := result.Outcome.(domain.CrashOutcome)
	require.True(t, ok)
	assert.LessOrEqual(t, view.CrashPoint, 1.1)
	assert.False(t, view.Win)
	assert.Equal(t, 0.0, result.Payout)
}

func TestSettleFailedLedgerLeavesNoOrder(t *testing.T) {
	uc, _, _, orders := newTestSettle(t, 5)
	ctx := context.Background()

	// Unknown account surfaces as an infrastructure fault.
	_, err := uc.Settle(ctx, 424242, domain.WagerRequest{
		Stake:     100,
		Selection: domain.DiceSelection{Target: 50},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ledgerDomain.ErrAccountNotFound)
	assert.Empty(t, orders.Orders())
}
