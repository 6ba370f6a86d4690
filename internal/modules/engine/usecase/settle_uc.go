// Package usecase implements the settlement orchestrator for one-shot games:
// validate, reserve the wager, draw the outcome, evaluate the payout, commit
// the ledger mutation.
package usecase

import (
	"context"
	"fmt"

	"github.com/frankieli/casino_engine/internal/config"
	"github.com/frankieli/casino_engine/internal/modules/engine/domain"
	"github.com/frankieli/casino_engine/internal/modules/engine/outcome"
	"github.com/frankieli/casino_engine/internal/modules/engine/payout"
	ledgerDomain "github.com/frankieli/casino_engine/internal/modules/ledger/domain"
	ledgerUC "github.com/frankieli/casino_engine/internal/modules/ledger/usecase"
	"github.com/frankieli/casino_engine/pkg/logger"
)

// SettleUseCase orchestrates one-shot settlements.
type SettleUseCase struct {
	ledger *ledgerUC.LedgerUseCase
	gen    *outcome.Uniform
	crash  outcome.CrashStrategy
	orders domain.BetOrderRepository
	games  config.GameSettings
}

// NewSettleUseCase creates a new settlement use case
func NewSettleUseCase(
	ledger *ledgerUC.LedgerUseCase,
	gen *outcome.Uniform,
	crash outcome.CrashStrategy,
	orders domain.BetOrderRepository,
	games config.GameSettings,
) *SettleUseCase {
	return &SettleUseCase{
		ledger: ledger,
		gen:    gen,
		crash:  crash,
		orders: orders,
		games:  games,
	}
}

// Settle runs one one-shot game settlement. Expected failures come back as a
// non-success result with a stable reason code and an unchanged balance;
// only infrastructure faults return a non-nil error.
func (uc *SettleUseCase) Settle(ctx context.Context, userID int64, req domain.WagerRequest) (*domain.SettlementResult, error) {
	if req.Selection == nil {
		return uc.failure(ctx, "", domain.ErrInvalidSelection)
	}
	game := req.Selection.Game()

	ctx = logger.WithFields(ctx, map[string]interface{}{
		"user_id": userID,
		"game":    string(game),
	})

	stake := req.Stake
	if sel, ok := req.Selection.(domain.RouletteSelection); ok {
		// Roulette stakes per chip; the wager total is their sum.
		stake = 0
		for _, chip := range sel.Chips {
			stake += chip.Stake
		}
	}

	if err := uc.validateStake(game, stake); err != nil {
		return uc.failure(ctx, game, err)
	}
	if err := validateSelection(req.Selection); err != nil {
		return uc.failure(ctx, game, err)
	}

	// Reserve the wager. Everything before this point performs no mutation.
	account, err := uc.ledger.DebitStake(ctx, userID, stake)
	if err != nil {
		return uc.failureOrFault(ctx, game, err)
	}

	view, won, betArea := uc.play(req.Selection, stake, account.Balance)

	if won > 0 {
		account, err = uc.ledger.CreditPayout(ctx, userID, won, ledgerDomain.BalanceWinning)
		if err != nil {
			// The stake is committed; a failed credit is an infrastructure
			// fault that must be compensated, never hidden.
			logger.Error(ctx).Err(err).Float64("payout", won).Msg("Failed to credit payout after debit")
			return nil, fmt.Errorf("failed to credit payout: %w", err)
		}
	}

	uc.recordOrder(ctx, userID, game, betArea, stake, won)

	logger.Info(ctx).
		Float64("stake", stake).
		Float64("payout", won).
		Float64("balance", account.Balance).
		Msg("Settlement completed")

	return &domain.SettlementResult{
		Success:  true,
		GameKind: game,
		Outcome:  view,
		Payout:   won,
		Balance:  snapshot(account),
	}, nil
}

// CrashPreview returns the display crash point for a player with no active
// stake.
func (uc *SettleUseCase) CrashPreview(ctx context.Context, userID int64) (float64, error) {
	account, err := uc.ledger.GetAccount(ctx, userID)
	if err != nil {
		return 0, err
	}
	return uc.crash.CrashPoint(0, account.Balance), nil
}

// play draws the outcome and evaluates the payout for a validated selection.
// balance is the post-debit account balance, which the crash cap reads.
func (uc *SettleUseCase) play(sel domain.Selection, stake, balance float64) (view interface{}, won float64, betArea string) {
	switch s := sel.(type) {
	case domain.DiceSelection:
		roll := uc.gen.DiceRoll()
		won = payout.EvaluateDice(roll, s.Target, stake)
		view = domain.DiceOutcome{
			Roll:       roll,
			Target:     s.Target,
			Multiplier: payout.DiceMultiplier(s.Target),
			Win:        won > 0,
		}
		betArea = fmt.Sprintf("over:%.2f", s.Target)

	case domain.KenoSelection:
		drawn := uc.gen.KenoDraw()
		amount, hits, _ := payout.EvaluateKeno(s, drawn, stake)
		won = amount
		multiplier, _ := payout.KenoMultiplier(s.Risk, len(s.Picks), hits)
		view = domain.KenoOutcome{Drawn: drawn, Hits: hits, Multiplier: multiplier}
		betArea = fmt.Sprintf("keno:%s:%d", s.Risk, len(s.Picks))

	case domain.PlinkoSelection:
		path := uc.gen.PlinkoPath(s.Rows)
		bucket := payout.PlinkoBucket(path)
		multiplier, _ := payout.PlinkoMultiplier(s.Risk, s.Rows, bucket)
		won = stake * multiplier
		view = domain.PlinkoOutcome{Path: path, Bucket: bucket, Multiplier: multiplier}
		betArea = fmt.Sprintf("plinko:%s:%d", s.Risk, s.Rows)

	case domain.CoinFlipSelection:
		win := uc.gen.CoinFlipWin()
		won = payout.EvaluateCoinFlip(win, stake)
		side := s.Side
		if !win {
			side = payout.OppositeSide(s.Side)
		}
		view = domain.CoinFlipOutcome{Side: side, Win: win}
		betArea = string(s.Side)

	case domain.CardDuelSelection:
		left, right := uc.gen.CardPair()
		won = payout.EvaluateCardDuel(s.Side, left, right, stake)
		view = domain.CardDuelOutcome{Left: left, Right: right, Winner: payout.DuelWinner(left, right)}
		betArea = string(s.Side)

	case domain.RouletteSelection:
		slot := uc.gen.RouletteSlot()
		won = payout.EvaluateRoulette(s.Chips, slot)
		view = domain.RouletteOutcome{Slot: slot, Label: payout.RouletteSlotLabel(slot)}
		betArea = fmt.Sprintf("chips:%d", len(s.Chips))

	case domain.CrashSelection:
		point := uc.crash.CrashPoint(stake, balance)
		win := point >= s.CashOutAt
		if win {
			won = stake * s.CashOutAt
		}
		view = domain.CrashOutcome{CrashPoint: point, CashOutAt: s.CashOutAt, Win: win}
		betArea = fmt.Sprintf("cashout:%.2f", s.CashOutAt)

	case domain.WheelSelection:
		idx := uc.gen.WheelIndex(len(uc.games.WheelPrizes))
		prize := uc.games.WheelPrizes[idx]
		won = prize
		view = domain.WheelOutcome{Index: idx, Prize: prize}
		betArea = "wheel"
	}
	return view, won, betArea
}

func (uc *SettleUseCase) validateStake(game domain.GameKind, stake float64) error {
	limits, ok := uc.games.StakeLimits[string(game)]
	if !ok {
		return fmt.Errorf("%w: stake limits for %s", domain.ErrConfigMissing, game)
	}
	if stake <= 0 || stake < limits.Min || stake > limits.Max {
		return fmt.Errorf("%w: stake %.2f outside [%.2f, %.2f]", domain.ErrInvalidStake, stake, limits.Min, limits.Max)
	}
	return nil
}

func validateSelection(sel domain.Selection) error {
	switch s := sel.(type) {
	case domain.DiceSelection:
		return payout.ValidateDiceTarget(s.Target)
	case domain.KenoSelection:
		return payout.ValidateKeno(s)
	case domain.PlinkoSelection:
		return payout.ValidatePlinko(s)
	case domain.CoinFlipSelection:
		return payout.ValidateCoinSide(s.Side)
	case domain.CardDuelSelection:
		return payout.ValidateDuelSide(s.Side)
	case domain.RouletteSelection:
		return payout.ValidateRouletteChips(s.Chips)
	case domain.CrashSelection:
		if s.CashOutAt < 1.01 {
			return fmt.Errorf("%w: crash cash-out below 1.01", domain.ErrInvalidSelection)
		}
		return nil
	case domain.WheelSelection:
		return nil
	default:
		return fmt.Errorf("%w: unsupported selection %T", domain.ErrInvalidSelection, sel)
	}
}

func (uc *SettleUseCase) recordOrder(ctx context.Context, userID int64, game domain.GameKind, betArea string, stake, won float64) {
	if uc.orders == nil {
		return
	}
	order := domain.NewSettledOrder(userID, game, "", betArea, stake, won)
	if err := uc.orders.BatchCreate(ctx, []*domain.BetOrder{order}); err != nil {
		// Audit write failure must not undo a committed settlement.
		logger.Error(ctx).Err(err).Str("order_id", order.OrderID).Msg("Failed to persist bet order")
	}
}

// failure renders an expected validation failure; the balance is untouched.
func (uc *SettleUseCase) failure(ctx context.Context, game domain.GameKind, err error) (*domain.SettlementResult, error) {
	reason, message := domain.Classify(err)
	logger.Warn(ctx).Err(err).Str("reason", string(reason)).Msg("Settlement rejected")
	return &domain.SettlementResult{
		Success:  false,
		GameKind: game,
		Reason:   reason,
		Message:  message,
	}, nil
}

// failureOrFault distinguishes expected ledger rejections from
// infrastructure faults.
func (uc *SettleUseCase) failureOrFault(ctx context.Context, game domain.GameKind, err error) (*domain.SettlementResult, error) {
	reason, _ := domain.Classify(err)
	if reason == domain.ReasonInternal {
		return nil, err
	}
	return uc.failure(ctx, game, err)
}

func snapshot(account *ledgerDomain.Account) domain.BalanceSnapshot {
	return domain.BalanceSnapshot{
		Balance:        account.Balance,
		DepositBalance: account.DepositBalance,
		WinningBalance: account.WinningBalance,
		BonusBalance:   account.BonusBalance,
		TotalWagered:   account.TotalWagered,
	}
}
