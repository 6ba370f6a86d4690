package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frankieli/casino_engine/internal/config"
	engineDomain "github.com/frankieli/casino_engine/internal/modules/engine/domain"
	"github.com/frankieli/casino_engine/internal/modules/engine/outcome"
	"github.com/frankieli/casino_engine/internal/modules/engine/payout"
	engineMemory "github.com/frankieli/casino_engine/internal/modules/engine/repository/memory"
	ledgerMemory "github.com/frankieli/casino_engine/internal/modules/ledger/repository/memory"
	ledgerUseCase "github.com/frankieli/casino_engine/internal/modules/ledger/usecase"
	"github.com/frankieli/casino_engine/internal/modules/session/domain"
	sessionMemory "github.com/frankieli/casino_engine/internal/modules/session/repository/memory"
)

type sessionFixture struct {
	uc       *SessionUseCase
	ledger   *ledgerUseCase.LedgerUseCase
	sessions *sessionMemory.SessionRepository
	orders   *engineMemory.BetOrderRepository
	userID   int64
}

func newSessionFixture(t *testing.T, seed int64) *sessionFixture {
	t.Helper()

	games := config.DefaultGameSettings()
	ledger := ledgerUseCase.NewLedgerUseCase(ledgerMemory.NewAccountRepository(), games.VIPThresholds)
	sessions := sessionMemory.NewSessionRepository()
	orders := engineMemory.NewBetOrderRepository()
	uc := NewSessionUseCase(ledger, sessions, outcome.NewUniformSeeded(seed), orders, games)

	ctx := context.Background()
	account, err := ledger.CreateAccount(ctx, "player", "player@example.com")
	require.NoError(t, err)
	_, err = ledger.CreditDeposit(ctx, account.UserID, 1000)
	require.NoError(t, err)

	return &sessionFixture{uc: uc, ledger: ledger, sessions: sessions, orders: orders, userID: account.UserID}
}

// seedMinesSession plants a session with a known board so the advance path is
// deterministic.
func (f *sessionFixture) seedMinesSession(t *testing.T, stake float64, mines []int) *domain.GameSession {
	t.Helper()

	ctx := context.Background()
	_, _, err := f.ledger.DebitStakeWithSplit(ctx, f.userID, stake)
	require.NoError(t, err)

	session := domain.NewGameSession(f.userID, engineDomain.GameMines, stake)
	session.Mines = len(mines)
	session.MinePositions = mines
	require.NoError(t, f.sessions.Create(ctx, session))
	return session
}

func TestStartMinesDebitsAndHidesBoard(t *testing.T) {
	f := newSessionFixture(t, 11)
	ctx := context.Background()

	result, err := f.uc.Start(ctx, f.userID, StartRequest{Game: engineDomain.GameMines, Stake: 50, Mines: 3})
	require.NoError(t, err)
	require.True(t, result.Success)

	assert.Equal(t, 950.0, result.Balance.Balance)
	assert.Equal(t, 50.0, result.Balance.TotalWagered)
	require.NotNil(t, result.Session)
	assert.Empty(t, result.Session.MinePositions, "board must not leak to the client")
	assert.Equal(t, 0, result.Session.Level)

	stored, err := f.sessions.Get(ctx, f.userID, engineDomain.GameMines)
	require.NoError(t, err)
	assert.Len(t, stored.MinePositions, 3)
}

func TestStartRejectsSecondSession(t *testing.T) {
	f := newSessionFixture(t, 11)
	ctx := context.Background()

	first, err := f.uc.Start(ctx, f.userID, StartRequest{Game: engineDomain.GameTower, Stake: 50, Tier: "easy"})
	require.NoError(t, err)
	require.True(t, first.Success)

	second, err := f.uc.Start(ctx, f.userID, StartRequest{Game: engineDomain.GameTower, Stake: 50, Tier: "easy"})
	require.NoError(t, err)
	assert.False(t, second.Success)
	assert.Equal(t, engineDomain.ReasonSessionActive, second.Reason)

	// The rejected start must not have debited a second stake.
	account, err := f.ledger.GetAccount(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, 950.0, account.Balance)
}

func TestStartValidationNoDebit(t *testing.T) {
	f := newSessionFixture(t, 11)
	ctx := context.Background()

	cases := []struct {
		name   string
		req    StartRequest
		reason engineDomain.FailReason
	}{
		{"not progressive", StartRequest{Game: engineDomain.GameDice, Stake: 50}, engineDomain.ReasonInvalidSelection},
		{"stake below min", StartRequest{Game: engineDomain.GameMines, Stake: 1, Mines: 3}, engineDomain.ReasonInvalidStake},
		{"zero mines", StartRequest{Game: engineDomain.GameMines, Stake: 50, Mines: 0}, engineDomain.ReasonInvalidSelection},
		{"bad tower tier", StartRequest{Game: engineDomain.GameTower, Stake: 50, Tier: "impossible"}, engineDomain.ReasonInvalidSelection},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := f.uc.Start(ctx, f.userID, tc.req)
			require.NoError(t, err)
			assert.False(t, result.Success)
			assert.Equal(t, tc.reason, result.Reason)
		})
	}

	account, err := f.ledger.GetAccount(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, account.Balance)
}

func TestMinesAdvanceAndCashOut(t *testing.T) {
	f := newSessionFixture(t, 11)
	ctx := context.Background()
	f.seedMinesSession(t, 50, []int{22, 23, 24})

	for step, cell := range []int{0, 1, 2} {
		result, err := f.uc.Advance(ctx, f.userID, AdvanceRequest{Game: engineDomain.GameMines, Cell: cell})
		require.NoError(t, err)
		require.True(t, result.Success)
		assert.False(t, result.Finished)
		assert.Equal(t, step+1, result.Session.Level)
	}

	want := (25.0 / 22.0) * (24.0 / 21.0) * (23.0 / 20.0) * 0.95
	result, err := f.uc.CashOut(ctx, f.userID, engineDomain.GameMines)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.True(t, result.Finished)
	assert.False(t, result.Busted)
	assert.InDelta(t, 50*want, result.Payout, 0.0001)

	// Payout lands in winnings, on top of the post-debit deposit balance.
	assert.InDelta(t, 50*want, result.Balance.WinningBalance, 0.0001)
	assert.InDelta(t, 950+50*want, result.Balance.Balance, 0.0001)

	_, err = f.sessions.Get(ctx, f.userID, engineDomain.GameMines)
	assert.ErrorIs(t, err, engineDomain.ErrNoSession)

	require.Len(t, f.orders.Orders(), 1)
	assert.Equal(t, "mines:3", f.orders.Orders()[0].BetArea)
}

func TestMinesBustClosesSessionWithoutPayout(t *testing.T) {
	f := newSessionFixture(t, 11)
	ctx := context.Background()
	f.seedMinesSession(t, 50, []int{7, 23, 24})

	result, err := f.uc.Advance(ctx, f.userID, AdvanceRequest{Game: engineDomain.GameMines, Cell: 7})
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.True(t, result.Finished)
	assert.True(t, result.Busted)
	assert.Equal(t, 7, result.BustCell)
	assert.Equal(t, 0.0, result.Payout)
	assert.Equal(t, 950.0, result.Balance.Balance)

	_, err = f.sessions.Get(ctx, f.userID, engineDomain.GameMines)
	assert.ErrorIs(t, err, engineDomain.ErrNoSession)

	require.Len(t, f.orders.Orders(), 1)
	assert.Equal(t, 0.0, f.orders.Orders()[0].Payout)
}

func TestMinesRejectsRepeatAndOutOfBoardCells(t *testing.T) {
	f := newSessionFixture(t, 11)
	ctx := context.Background()
	f.seedMinesSession(t, 50, []int{22, 23, 24})

	result, err := f.uc.Advance(ctx, f.userID, AdvanceRequest{Game: engineDomain.GameMines, Cell: 25})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, engineDomain.ReasonInvalidSelection, result.Reason)

	first, err := f.uc.Advance(ctx, f.userID, AdvanceRequest{Game: engineDomain.GameMines, Cell: 4})
	require.NoError(t, err)
	require.True(t, first.Success)

	repeat, err := f.uc.Advance(ctx, f.userID, AdvanceRequest{Game: engineDomain.GameMines, Cell: 4})
	require.NoError(t, err)
	assert.False(t, repeat.Success)
	assert.Equal(t, engineDomain.ReasonInvalidSelection, repeat.Reason)
}

func TestMinesAutoCashOutOnLastSafeCell(t *testing.T) {
	f := newSessionFixture(t, 11)
	ctx := context.Background()

	// Ten mines in cells 15-24 leave cells 0-14 as the safe set.
	mines := make([]int, 0, 10)
	for cell := 15; cell < payout.MinesGridSize; cell++ {
		mines = append(mines, cell)
	}
	f.seedMinesSession(t, 50, mines)

	var last *domain.SessionResult
	for cell := 0; cell < 15; cell++ {
		result, err := f.uc.Advance(ctx, f.userID, AdvanceRequest{Game: engineDomain.GameMines, Cell: cell})
		require.NoError(t, err)
		require.True(t, result.Success)
		last = result
	}

	require.NotNil(t, last)
	assert.True(t, last.Finished, "revealing the final safe cell settles the session")
	assert.False(t, last.Busted)
	assert.InDelta(t, 50*payout.MinesMultiplier(15, 10), last.Payout, 0.0001)
}

func TestTowerAdvanceEitherStepsOrBusts(t *testing.T) {
	f := newSessionFixture(t, 11)
	ctx := context.Background()

	start, err := f.uc.Start(ctx, f.userID, StartRequest{Game: engineDomain.GameTower, Stake: 50, Tier: "easy"})
	require.NoError(t, err)
	require.True(t, start.Success)

	result, err := f.uc.Advance(ctx, f.userID, AdvanceRequest{Game: engineDomain.GameTower})
	require.NoError(t, err)
	require.True(t, result.Success)

	if result.Busted {
		assert.True(t, result.Finished)
		_, err = f.sessions.Get(ctx, f.userID, engineDomain.GameTower)
		assert.ErrorIs(t, err, engineDomain.ErrNoSession)
	} else {
		require.Equal(t, 1, result.Session.Level)
		want, err := payout.TowerMultiplier("easy", 1)
		require.NoError(t, err)
		assert.InDelta(t, want, result.Session.Multiplier, 0.0001)
	}
}

func TestCashOutAtLevelZero(t *testing.T) {
	f := newSessionFixture(t, 11)
	ctx := context.Background()

	start, err := f.uc.Start(ctx, f.userID, StartRequest{Game: engineDomain.GameRoad, Stake: 50, Tier: "easy"})
	require.NoError(t, err)
	require.True(t, start.Success)

	result, err := f.uc.CashOut(ctx, f.userID, engineDomain.GameRoad)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, engineDomain.ReasonNothingToCashOut, result.Reason)

	// The stake stays committed; aborting at level zero forfeits nothing
	// beyond keeping the session open.
	stored, err := f.sessions.Get(ctx, f.userID, engineDomain.GameRoad)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Level)
}

func TestAdvanceWithoutSession(t *testing.T) {
	f := newSessionFixture(t, 11)
	ctx := context.Background()

	result, err := f.uc.Advance(ctx, f.userID, AdvanceRequest{Game: engineDomain.GameMines, Cell: 3})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, engineDomain.ReasonNoSession, result.Reason)

	cashed, err := f.uc.CashOut(ctx, f.userID, engineDomain.GameTower)
	require.NoError(t, err)
	assert.False(t, cashed.Success)
	assert.Equal(t, engineDomain.ReasonNoSession, cashed.Reason)
}

func TestGetSessionRedactsBoard(t *testing.T) {
	f := newSessionFixture(t, 11)
	ctx := context.Background()
	f.seedMinesSession(t, 50, []int{22, 23, 24})

	session, err := f.uc.GetSession(ctx, f.userID, engineDomain.GameMines)
	require.NoError(t, err)
	assert.Empty(t, session.MinePositions)
	assert.Equal(t, 50.0, session.Stake)
}
