// Package usecase implements the lottery round flow: staged bets per round,
// a single-writer settlement claim, and the minimal-payout draw policy.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/frankieli/casino_engine/internal/config"
	engineDomain "github.com/frankieli/casino_engine/internal/modules/engine/domain"
	"github.com/frankieli/casino_engine/internal/modules/engine/outcome"
	"github.com/frankieli/casino_engine/internal/modules/engine/payout"
	ledgerDomain "github.com/frankieli/casino_engine/internal/modules/ledger/domain"
	ledgerUC "github.com/frankieli/casino_engine/internal/modules/ledger/usecase"
	"github.com/frankieli/casino_engine/internal/modules/lottery/domain"
	"github.com/frankieli/casino_engine/pkg/logger"
)

// LotteryUseCase drives the round-based lottery.
type LotteryUseCase struct {
	ledger  *ledgerUC.LedgerUseCase
	bets    domain.BetRepository
	results domain.ResultRepository
	rounds  domain.GameRoundRepository
	gen     *outcome.Uniform
	orders  engineDomain.BetOrderRepository
	games   config.GameSettings
	period  time.Duration

	// In-process dedup in front of the cross-instance claim.
	sf singleflight.Group
}

// NewLotteryUseCase creates a new lottery use case
func NewLotteryUseCase(
	ledger *ledgerUC.LedgerUseCase,
	bets domain.BetRepository,
	results domain.ResultRepository,
	rounds domain.GameRoundRepository,
	gen *outcome.Uniform,
	orders engineDomain.BetOrderRepository,
	games config.GameSettings,
) *LotteryUseCase {
	return &LotteryUseCase{
		ledger:  ledger,
		bets:    bets,
		results: results,
		rounds:  rounds,
		gen:     gen,
		orders:  orders,
		games:   games,
		period:  time.Duration(games.LotteryRoundSeconds) * time.Second,
	}
}

// CurrentRoundID returns the ID of the round open right now.
func (uc *LotteryUseCase) CurrentRoundID() string {
	return domain.RoundIDAt(time.Now(), uc.period)
}

// BetResult is the outcome of a bet placement.
type BetResult struct {
	Success bool                         `json:"success"`
	RoundID string                       `json:"round_id"`
	BetID   string                       `json:"bet_id,omitempty"`
	Amount  float64                      `json:"amount"`
	Balance engineDomain.BalanceSnapshot `json:"balance"`
	Reason  engineDomain.FailReason      `json:"reason,omitempty"`
	Message string                       `json:"message,omitempty"`
}

// PlaceBet validates the picks, debits their total stake and stages the bet
// for the currently open round.
func (uc *LotteryUseCase) PlaceBet(ctx context.Context, userID int64, picks []engineDomain.LotteryPick) (*BetResult, error) {
	ctx = logger.WithFields(ctx, map[string]interface{}{
		"user_id": userID,
		"game":    string(engineDomain.GameLottery),
	})

	if len(picks) == 0 {
		return uc.failure(ctx, "", engineDomain.ErrInvalidSelection)
	}
	total := 0.0
	for _, pick := range picks {
		if err := payout.ValidateLotteryPick(pick); err != nil {
			return uc.failure(ctx, "", err)
		}
		total += pick.Stake
	}
	if err := uc.validateStake(total); err != nil {
		return uc.failure(ctx, "", err)
	}

	roundID := uc.CurrentRoundID()

	account, split, err := uc.ledger.DebitStakeWithSplit(ctx, userID, total)
	if err != nil {
		reason, _ := engineDomain.Classify(err)
		if reason == engineDomain.ReasonInternal {
			return nil, err
		}
		return uc.failure(ctx, roundID, err)
	}

	bet := domain.NewBet(roundID, userID, picks, total, split)
	if err := uc.bets.SaveBet(ctx, bet); err != nil {
		// The wager was reserved but never staged: void it.
		if _, refundErr := uc.ledger.RefundStake(ctx, userID, split); refundErr != nil {
			logger.Error(ctx).Err(refundErr).Float64("amount", total).Msg("Failed to refund stake after bet save failure")
			return nil, fmt.Errorf("failed to refund stake after bet save failure: %w", refundErr)
		}
		if errors.Is(err, domain.ErrRoundClosed) {
			logger.Warn(ctx).Err(err).Str("round_id", roundID).Msg("Lottery bet rejected")
			return &BetResult{
				Success: false,
				RoundID: roundID,
				Reason:  engineDomain.ReasonRoundClosed,
				Message: "the round just closed; the stake was refunded",
			}, nil
		}
		return nil, fmt.Errorf("failed to save bet: %w", err)
	}

	logger.Info(ctx).
		Str("round_id", roundID).
		Str("bet_id", bet.BetID).
		Float64("amount", total).
		Msg("Lottery bet placed")

	return &BetResult{
		Success: true,
		RoundID: roundID,
		BetID:   bet.BetID,
		Amount:  total,
		Balance: balanceSnapshot(account),
	}, nil
}

// GetUserBets returns the caller's staged bets for a round.
func (uc *LotteryUseCase) GetUserBets(ctx context.Context, roundID string, userID int64) ([]*domain.Bet, error) {
	return uc.bets.GetUserBets(ctx, roundID, userID)
}

// GetResult returns the settled result for a round.
func (uc *LotteryUseCase) GetResult(ctx context.Context, roundID string) (*domain.GameRound, error) {
	return uc.results.GetResult(ctx, roundID)
}

// ListRecentRounds returns recent round history, newest first.
func (uc *LotteryUseCase) ListRecentRounds(ctx context.Context, limit int) ([]*domain.GameRound, error) {
	return uc.rounds.ListRecent(ctx, limit)
}

// ForceNextResult sets the admin override consumed by the next settlement.
func (uc *LotteryUseCase) ForceNextResult(ctx context.Context, digit int) error {
	if digit < 0 || digit > 9 {
		return fmt.Errorf("%w: lottery digit %d out of range", engineDomain.ErrInvalidSelection, digit)
	}
	return uc.results.SetOverride(ctx, digit)
}

// SettleRound settles a round exactly once. Concurrent callers in one
// process collapse via singleflight; across instances the repository claim
// decides, and losers read back the winner's stored result.
func (uc *LotteryUseCase) SettleRound(ctx context.Context, roundID string) (*domain.GameRound, error) {
	v, err, _ := uc.sf.Do(roundID, func() (interface{}, error) {
		return uc.settleRound(ctx, roundID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.GameRound), nil
}

func (uc *LotteryUseCase) settleRound(ctx context.Context, roundID string) (*domain.GameRound, error) {
	ctx = logger.WithFields(ctx, map[string]interface{}{
		"game":     string(engineDomain.GameLottery),
		"round_id": roundID,
	})

	claimed, err := uc.results.ClaimSettlement(ctx, roundID)
	if err != nil {
		return nil, fmt.Errorf("failed to claim settlement: %w", err)
	}
	if !claimed {
		// Another writer won; its stored result is authoritative. A read
		// racing the winner's write sees ErrRoundNotSettled and retries.
		return uc.results.GetResult(ctx, roundID)
	}

	// Stop intake before reading: any bet not rejected by the close is in
	// the snapshot below, so none can slip between the read and the clear.
	if err := uc.bets.CloseRound(ctx, roundID); err != nil {
		return nil, fmt.Errorf("failed to close round: %w", err)
	}

	bets, err := uc.bets.GetBets(ctx, roundID)
	if err != nil {
		return nil, fmt.Errorf("failed to load round bets: %w", err)
	}

	digit, forced := uc.drawDigit(ctx, bets)

	round := &domain.GameRound{
		RoundID:   roundID,
		GameCode:  string(engineDomain.GameLottery),
		Result:    digit,
		Forced:    forced,
		Status:    domain.RoundStatusSettled,
		BetCount:  len(bets),
		SettledAt: time.Now(),
	}

	orders := make([]*engineDomain.BetOrder, 0, len(bets))
	for _, bet := range bets {
		won := payout.EvaluateLotteryPicks(bet.Picks, digit)
		round.TotalStaked += bet.Amount
		round.TotalPaid += won

		if won > 0 {
			if _, err := uc.ledger.CreditPayout(ctx, bet.UserID, won, ledgerDomain.BalanceWinning); err != nil {
				// Keep settling the rest; this credit must be compensated
				// from the audit trail, not silently dropped.
				logger.Error(ctx).Err(err).
					Int64("user_id", bet.UserID).
					Str("bet_id", bet.BetID).
					Float64("payout", won).
					Msg("Failed to credit lottery payout")
			}
		}
		orders = append(orders, engineDomain.NewSettledOrder(bet.UserID, engineDomain.GameLottery, roundID, betArea(bet), bet.Amount, won))
	}

	if uc.orders != nil && len(orders) > 0 {
		if err := uc.orders.BatchCreate(ctx, orders); err != nil {
			logger.Error(ctx).Err(err).Int("count", len(orders)).Msg("Failed to persist lottery bet orders")
		}
	}

	if err := uc.results.SaveResult(ctx, round); err != nil {
		return nil, fmt.Errorf("failed to save round result: %w", err)
	}
	if uc.rounds != nil {
		if err := uc.rounds.Create(ctx, round); err != nil {
			logger.Error(ctx).Err(err).Msg("Failed to persist round history")
		}
	}
	if err := uc.bets.ClearBets(ctx, roundID); err != nil {
		logger.Error(ctx).Err(err).Msg("Failed to clear round bets")
	}

	logger.Info(ctx).
		Int("result", digit).
		Bool("forced", forced).
		Int("bets", len(bets)).
		Float64("staked", round.TotalStaked).
		Float64("paid", round.TotalPaid).
		Msg("Round settled")

	return round, nil
}

// drawDigit applies the draw policy: the admin override takes absolute
// precedence, then minimal-total-payout over the staged bets, then uniform
// when nothing is staked.
func (uc *LotteryUseCase) drawDigit(ctx context.Context, bets []*domain.Bet) (digit int, forced bool) {
	if d, ok, err := uc.results.PopOverride(ctx); err != nil {
		logger.Error(ctx).Err(err).Msg("Failed to read result override")
	} else if ok {
		return d, true
	}

	if len(bets) == 0 {
		return uc.gen.LotteryDigit(), false
	}

	return uc.gen.MinPayoutDigit(func(d int) float64 {
		total := 0.0
		for _, bet := range bets {
			total += payout.EvaluateLotteryPicks(bet.Picks, d)
		}
		return total
	}), false
}

// Run settles each round as its window closes, until ctx is cancelled.
func (uc *LotteryUseCase) Run(ctx context.Context) {
	for {
		_, end := domain.RoundWindow(time.Now(), uc.period)

		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Until(end)):
		}

		// The round that just closed is the one covering the instant
		// before the boundary.
		roundID := domain.RoundIDAt(end.Add(-time.Second), uc.period)
		if _, err := uc.SettleRound(ctx, roundID); err != nil && !errors.Is(err, domain.ErrRoundNotSettled) {
			logger.ErrorGlobal().Err(err).Str("round_id", roundID).Msg("Round settlement failed")
		}
	}
}

func (uc *LotteryUseCase) validateStake(total float64) error {
	limits, ok := uc.games.StakeLimits[string(engineDomain.GameLottery)]
	if !ok {
		return fmt.Errorf("%w: stake limits for lottery", engineDomain.ErrConfigMissing)
	}
	if total <= 0 || total < limits.Min || total > limits.Max {
		return fmt.Errorf("%w: stake %.2f outside [%.2f, %.2f]", engineDomain.ErrInvalidStake, total, limits.Min, limits.Max)
	}
	return nil
}

func betArea(bet *domain.Bet) string {
	area := ""
	for i, pick := range bet.Picks {
		if i > 0 {
			area += ","
		}
		if pick.Digit != nil {
			area += fmt.Sprintf("digit:%d", *pick.Digit)
		} else {
			area += string(pick.Zone)
		}
	}
	return area
}

func (uc *LotteryUseCase) failure(ctx context.Context, roundID string, err error) (*BetResult, error) {
	reason, message := engineDomain.Classify(err)
	logger.Warn(ctx).Err(err).Str("reason", string(reason)).Msg("Lottery bet rejected")
	return &BetResult{
		Success: false,
		RoundID: roundID,
		Reason:  reason,
		Message: message,
	}, nil
}

func balanceSnapshot(account *ledgerDomain.Account) engineDomain.BalanceSnapshot {
	return engineDomain.BalanceSnapshot{
		Balance:        account.Balance,
		DepositBalance: account.DepositBalance,
		WinningBalance: account.WinningBalance,
		BonusBalance:   account.BonusBalance,
		TotalWagered:   account.TotalWagered,
	}
}
