package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frankieli/casino_engine/internal/config"
	ledgerMemory "github.com/frankieli/casino_engine/internal/modules/ledger/repository/memory"
	ledgerUseCase "github.com/frankieli/casino_engine/internal/modules/ledger/usecase"
	"github.com/frankieli/casino_engine/internal/modules/promo/domain"
	promoMemory "github.com/frankieli/casino_engine/internal/modules/promo/repository/memory"
)

type promoFixture struct {
	uc     *PromoUseCase
	ledger *ledgerUseCase.LedgerUseCase
}

func newPromoFixture(t *testing.T) *promoFixture {
	t.Helper()
	ledger := ledgerUseCase.NewLedgerUseCase(ledgerMemory.NewAccountRepository(), config.DefaultGameSettings().VIPThresholds)
	return &promoFixture{
		uc:     NewPromoUseCase(ledger, promoMemory.NewPromoRepository()),
		ledger: ledger,
	}
}

func (f *promoFixture) newUser(t *testing.T, deposited float64) int64 {
	t.Helper()
	ctx := context.Background()
	account, err := f.ledger.CreateAccount(ctx, "player", "player@example.com")
	require.NoError(t, err)
	if deposited > 0 {
		_, err = f.ledger.CreditDeposit(ctx, account.UserID, deposited)
		require.NoError(t, err)
	}
	return account.UserID
}

func TestRedeemCreditsBonus(t *testing.T) {
	f := newPromoFixture(t)
	ctx := context.Background()
	userID := f.newUser(t, 100)

	_, err := f.uc.CreateCode(ctx, "WELCOME50", 50, 10, 0, 24*time.Hour)
	require.NoError(t, err)

	account, err := f.uc.Redeem(ctx, userID, "WELCOME50")
	require.NoError(t, err)
	assert.Equal(t, 50.0, account.BonusBalance)
	assert.Equal(t, 150.0, account.Balance)
	assert.Equal(t, 100.0, account.DepositBalance, "the reward never touches the deposit partition")
}

func TestRedeemUnknownCode(t *testing.T) {
	f := newPromoFixture(t)
	userID := f.newUser(t, 100)

	_, err := f.uc.Redeem(context.Background(), userID, "NOPE")
	assert.ErrorIs(t, err, domain.ErrCodeNotFound)
}

func TestRedeemExpiredCode(t *testing.T) {
	f := newPromoFixture(t)
	ctx := context.Background()
	userID := f.newUser(t, 100)

	_, err := f.uc.CreateCode(ctx, "LATE", 50, 10, 0, -time.Hour)
	require.NoError(t, err)

	_, err = f.uc.Redeem(ctx, userID, "LATE")
	assert.ErrorIs(t, err, domain.ErrCodeExpired)
}

func TestRedeemTwiceRejected(t *testing.T) {
	f := newPromoFixture(t)
	ctx := context.Background()
	userID := f.newUser(t, 100)

	_, err := f.uc.CreateCode(ctx, "ONCE", 25, 10, 0, 24*time.Hour)
	require.NoError(t, err)

	_, err = f.uc.Redeem(ctx, userID, "ONCE")
	require.NoError(t, err)

	_, err = f.uc.Redeem(ctx, userID, "ONCE")
	assert.ErrorIs(t, err, domain.ErrAlreadyRedeemed)

	account, err := f.ledger.GetAccount(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 25.0, account.BonusBalance, "the reward applies exactly once")
}

func TestRedeemExhaustedCode(t *testing.T) {
	f := newPromoFixture(t)
	ctx := context.Background()

	_, err := f.uc.CreateCode(ctx, "SCARCE", 25, 2, 0, 24*time.Hour)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		userID := f.newUser(t, 100)
		_, err = f.uc.Redeem(ctx, userID, "SCARCE")
		require.NoError(t, err)
	}

	late := f.newUser(t, 100)
	_, err = f.uc.Redeem(ctx, late, "SCARCE")
	assert.ErrorIs(t, err, domain.ErrCodeExhausted)
}

func TestRedeemDepositGate(t *testing.T) {
	f := newPromoFixture(t)
	ctx := context.Background()

	_, err := f.uc.CreateCode(ctx, "HIGHROLLER", 100, 10, 500, 24*time.Hour)
	require.NoError(t, err)

	poor := f.newUser(t, 100)
	_, err = f.uc.Redeem(ctx, poor, "HIGHROLLER")
	assert.ErrorIs(t, err, domain.ErrDepositGate)

	rich := f.newUser(t, 500)
	account, err := f.uc.Redeem(ctx, rich, "HIGHROLLER")
	require.NoError(t, err)
	assert.Equal(t, 100.0, account.BonusBalance)
}

func TestCreateCodeValidation(t *testing.T) {
	f := newPromoFixture(t)
	ctx := context.Background()

	_, err := f.uc.CreateCode(ctx, "", 50, 10, 0, time.Hour)
	assert.Error(t, err)

	_, err = f.uc.CreateCode(ctx, "FREE", 0, 10, 0, time.Hour)
	assert.Error(t, err)

	_, err = f.uc.CreateCode(ctx, "DUP", 50, 10, 0, time.Hour)
	require.NoError(t, err)
	_, err = f.uc.CreateCode(ctx, "DUP", 50, 10, 0, time.Hour)
	assert.ErrorIs(t, err, domain.ErrCodeExists)
}
