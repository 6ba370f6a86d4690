package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frankieli/casino_engine/internal/config"
	engineDomain "github.com/frankieli/casino_engine/internal/modules/engine/domain"
	"github.com/frankieli/casino_engine/internal/modules/engine/outcome"
	engineMemory "github.com/frankieli/casino_engine/internal/modules/engine/repository/memory"
	ledgerDomain "github.com/frankieli/casino_engine/internal/modules/ledger/domain"
	ledgerMemory "github.com/frankieli/casino_engine/internal/modules/ledger/repository/memory"
	ledgerUseCase "github.com/frankieli/casino_engine/internal/modules/ledger/usecase"
	"github.com/frankieli/casino_engine/internal/modules/lottery/domain"
	lotteryMemory "github.com/frankieli/casino_engine/internal/modules/lottery/repository/memory"
)

type lotteryFixture struct {
	uc     *LotteryUseCase
	ledger *ledgerUseCase.LedgerUseCase
	bets   *lotteryMemory.BetRepository
	orders *engineMemory.BetOrderRepository
	userID int64
}

func newLotteryFixture(t *testing.T, seed int64) *lotteryFixture {
	t.Helper()

	games := config.DefaultGameSettings()
	ledger := ledgerUseCase.NewLedgerUseCase(ledgerMemory.NewAccountRepository(), games.VIPThresholds)
	bets := lotteryMemory.NewBetRepository()
	orders := engineMemory.NewBetOrderRepository()
	uc := NewLotteryUseCase(
		ledger,
		bets,
		lotteryMemory.NewResultRepository(),
		lotteryMemory.NewGameRoundRepository(),
		outcome.NewUniformSeeded(seed),
		orders,
		games,
	)

	ctx := context.Background()
	account, err := ledger.CreateAccount(ctx, "player", "player@example.com")
	require.NoError(t, err)
	_, err = ledger.CreditDeposit(ctx, account.UserID, 1000)
	require.NoError(t, err)

	return &lotteryFixture{uc: uc, ledger: ledger, bets: bets, orders: orders, userID: account.UserID}
}

func digitPick(digit int, stake float64) engineDomain.LotteryPick {
	d := digit
	return engineDomain.LotteryPick{Digit: &d, Stake: stake}
}

func TestPlaceBetDebitsAndStages(t *testing.T) {
	f := newLotteryFixture(t, 1)
	ctx := context.Background()

	result, err := f.uc.PlaceBet(ctx, f.userID, []engineDomain.LotteryPick{
		digitPick(5, 10),
		{Zone: engineDomain.ZoneBig, Stake: 20},
	})
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, 30.0, result.Amount)
	assert.Equal(t, 970.0, result.Balance.Balance)
	assert.Equal(t, f.uc.CurrentRoundID(), result.RoundID)

	staged, err := f.uc.GetUserBets(ctx, result.RoundID, f.userID)
	require.NoError(t, err)
	require.Len(t, staged, 1)
	assert.Equal(t, result.BetID, staged[0].BetID)
	assert.Equal(t, 30.0, staged[0].Amount)
}

func TestPlaceBetValidation(t *testing.T) {
	f := newLotteryFixture(t, 1)
	ctx := context.Background()

	cases := []struct {
		name   string
		picks  []engineDomain.LotteryPick
		reason engineDomain.FailReason
	}{
		{"no picks", nil, engineDomain.ReasonInvalidSelection},
		{"digit out of range", []engineDomain.LotteryPick{digitPick(12, 10)}, engineDomain.ReasonInvalidSelection},
		{"unknown zone", []engineDomain.LotteryPick{{Zone: "purple", Stake: 10}}, engineDomain.ReasonInvalidSelection},
		{"total below min", []engineDomain.LotteryPick{digitPick(3, 4)}, engineDomain.ReasonInvalidStake},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := f.uc.PlaceBet(ctx, f.userID, tc.picks)
			require.NoError(t, err)
			assert.False(t, result.Success)
			assert.Equal(t, tc.reason, result.Reason)
		})
	}

	account, err := f.ledger.GetAccount(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, account.Balance)
}

func TestSettleRoundPicksMinimalPayout(t *testing.T) {
	f := newLotteryFixture(t, 1)
	ctx := context.Background()

	// A heavy bet on digit 7 makes every other digit cheaper to draw.
	result, err := f.uc.PlaceBet(ctx, f.userID, []engineDomain.LotteryPick{digitPick(7, 100)})
	require.NoError(t, err)
	require.True(t, result.Success)

	round, err := f.uc.SettleRound(ctx, result.RoundID)
	require.NoError(t, err)
	assert.NotEqual(t, 7, round.Result, "the draw policy avoids the expensive digit")
	assert.False(t, round.Forced)
	assert.Equal(t, 1, round.BetCount)
	assert.Equal(t, 100.0, round.TotalStaked)
	assert.Equal(t, 0.0, round.TotalPaid)

	// The loss is final; the stake stays debited.
	account, err := f.ledger.GetAccount(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, 900.0, account.Balance)

	require.Len(t, f.orders.Orders(), 1)
	assert.Equal(t, "digit:7", f.orders.Orders()[0].BetArea)
}

func TestSettleRoundForcedOverride(t *testing.T) {
	f := newLotteryFixture(t, 1)
	ctx := context.Background()

	result, err := f.uc.PlaceBet(ctx, f.userID, []engineDomain.LotteryPick{digitPick(7, 100)})
	require.NoError(t, err)
	require.True(t, result.Success)

	require.NoError(t, f.uc.ForceNextResult(ctx, 7))

	round, err := f.uc.SettleRound(ctx, result.RoundID)
	require.NoError(t, err)
	assert.Equal(t, 7, round.Result, "an admin override beats the payout-minimising draw")
	assert.True(t, round.Forced)
	assert.Equal(t, 900.0, round.TotalPaid)

	// The exact-digit win lands in winnings at 9x.
	account, err := f.ledger.GetAccount(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, 900.0, account.WinningBalance)
	assert.Equal(t, 1800.0, account.Balance)
}

func TestForceNextResultValidatesDigit(t *testing.T) {
	f := newLotteryFixture(t, 1)
	ctx := context.Background()

	assert.ErrorIs(t, f.uc.ForceNextResult(ctx, 10), engineDomain.ErrInvalidSelection)
	assert.ErrorIs(t, f.uc.ForceNextResult(ctx, -1), engineDomain.ErrInvalidSelection)
}

func TestOverrideConsumedOnce(t *testing.T) {
	f := newLotteryFixture(t, 1)
	ctx := context.Background()

	require.NoError(t, f.uc.ForceNextResult(ctx, 9))

	first, err := f.uc.SettleRound(ctx, "20260101-00001")
	require.NoError(t, err)
	assert.True(t, first.Forced)
	assert.Equal(t, 9, first.Result)

	second, err := f.uc.SettleRound(ctx, "20260101-00002")
	require.NoError(t, err)
	assert.False(t, second.Forced, "a forced result applies to exactly one round")
}

func TestSettleRoundIdempotent(t *testing.T) {
	f := newLotteryFixture(t, 1)
	ctx := context.Background()

	result, err := f.uc.PlaceBet(ctx, f.userID, []engineDomain.LotteryPick{digitPick(3, 50)})
	require.NoError(t, err)
	require.True(t, result.Success)

	first, err := f.uc.SettleRound(ctx, result.RoundID)
	require.NoError(t, err)

	balanceAfter, err := f.ledger.GetAccount(ctx, f.userID)
	require.NoError(t, err)

	again, err := f.uc.SettleRound(ctx, result.RoundID)
	require.NoError(t, err)
	assert.Equal(t, first.Result, again.Result)
	assert.Equal(t, first.BetCount, again.BetCount)

	// No second credit, no second order.
	balanceNow, err := f.ledger.GetAccount(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, balanceAfter.Balance, balanceNow.Balance)
	assert.Len(t, f.orders.Orders(), 1)
}

func TestSettleRoundNoBetsFallsBackToUniform(t *testing.T) {
	f := newLotteryFixture(t, 1)
	ctx := context.Background()

	round, err := f.uc.SettleRound(ctx, "20260101-00042")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, round.Result, 0)
	assert.LessOrEqual(t, round.Result, 9)
	assert.Equal(t, 0, round.BetCount)
	assert.Equal(t, domain.RoundStatusSettled, round.Status)
}

func TestSettleRoundClearsStagedBets(t *testing.T) {
	f := newLotteryFixture(t, 1)
	ctx := context.Background()

	result, err := f.uc.PlaceBet(ctx, f.userID, []engineDomain.LotteryPick{digitPick(2, 25)})
	require.NoError(t, err)
	require.True(t, result.Success)

	_, err = f.uc.SettleRound(ctx, result.RoundID)
	require.NoError(t, err)

	staged, err := f.bets.GetBets(ctx, result.RoundID)
	require.NoError(t, err)
	assert.Empty(t, staged)
}

func TestPlaceBetIntoClosedRoundRefunds(t *testing.T) {
	f := newLotteryFixture(t, 1)
	ctx := context.Background()

	// Simulate the settler winning the boundary race: intake is closed
	// while the player's bet is still in flight.
	require.NoError(t, f.bets.CloseRound(ctx, f.uc.CurrentRoundID()))

	result, err := f.uc.PlaceBet(ctx, f.userID, []engineDomain.LotteryPick{digitPick(5, 40)})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, engineDomain.ReasonRoundClosed, result.Reason)

	// The debit was voided: balance, partitions and wager counter intact.
	account, err := f.ledger.GetAccount(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, account.Balance)
	assert.Equal(t, 1000.0, account.DepositBalance)
	assert.Equal(t, 0.0, account.TotalWagered)
}

func TestSettleRoundMissesNoAcceptedBet(t *testing.T) {
	f := newLotteryFixture(t, 1)
	ctx := context.Background()

	placed, err := f.uc.PlaceBet(ctx, f.userID, []engineDomain.LotteryPick{digitPick(5, 30)})
	require.NoError(t, err)
	require.True(t, placed.Success)

	round, err := f.uc.SettleRound(ctx, placed.RoundID)
	require.NoError(t, err)
	assert.Equal(t, 1, round.BetCount, "every accepted bet is in the settlement snapshot")

	// After settlement the round takes no further bets.
	err = f.bets.SaveBet(ctx, domain.NewBet(placed.RoundID, f.userID, []engineDomain.LotteryPick{digitPick(1, 10)}, 10, ledgerDomain.StakeSplit{Deposit: 10}))
	assert.ErrorIs(t, err, domain.ErrRoundClosed)
}

func TestRoundHistoryRecorded(t *testing.T) {
	f := newLotteryFixture(t, 1)
	ctx := context.Background()

	for _, roundID := range []string{"20260101-00001", "20260101-00002", "20260101-00003"} {
		_, err := f.uc.SettleRound(ctx, roundID)
		require.NoError(t, err)
	}

	history, err := f.uc.ListRecentRounds(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, history, 2)

	lookup, err := f.uc.GetResult(ctx, "20260101-00002")
	require.NoError(t, err)
	assert.Equal(t, "20260101-00002", lookup.RoundID)

	_, err = f.uc.GetResult(ctx, "20990101-00001")
	assert.ErrorIs(t, err, domain.ErrRoundNotSettled)
}
