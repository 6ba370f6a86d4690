// Package usecase implements the progressive session state machine: start,
// advance and cash-out for mines, tower and road.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/frankieli/casino_engine/internal/config"
	engineDomain "github.com/frankieli/casino_engine/internal/modules/engine/domain"
	"github.com/frankieli/casino_engine/internal/modules/engine/outcome"
	"github.com/frankieli/casino_engine/internal/modules/engine/payout"
	ledgerDomain "github.com/frankieli/casino_engine/internal/modules/ledger/domain"
	ledgerUC "github.com/frankieli/casino_engine/internal/modules/ledger/usecase"
	"github.com/frankieli/casino_engine/internal/modules/session/domain"
	"github.com/frankieli/casino_engine/pkg/logger"
)

// sessionMaxRetries bounds the advance/cash-out CAS retry loop.
const sessionMaxRetries = 5

// SessionUseCase drives progressive game sessions. All monetary movement
// goes through the ledger; the repository holds the authoritative state.
type SessionUseCase struct {
	ledger   *ledgerUC.LedgerUseCase
	sessions domain.SessionRepository
	gen      *outcome.Uniform
	orders   engineDomain.BetOrderRepository
	games    config.GameSettings
}

// NewSessionUseCase creates a new session use case
func NewSessionUseCase(
	ledger *ledgerUC.LedgerUseCase,
	sessions domain.SessionRepository,
	gen *outcome.Uniform,
	orders engineDomain.BetOrderRepository,
	games config.GameSettings,
) *SessionUseCase {
	return &SessionUseCase{
		ledger:   ledger,
		sessions: sessions,
		gen:      gen,
		orders:   orders,
		games:    games,
	}
}

// StartRequest opens a progressive session. Tier applies to tower and road,
// Mines to the mines grid.
type StartRequest struct {
	Game  engineDomain.GameKind `json:"game"`
	Stake float64               `json:"stake"`
	Tier  string                `json:"tier,omitempty"`
	Mines int                   `json:"mines,omitempty"`
}

// Start validates the request, debits the stake and creates the session.
// Debit and create form an atomic pair: losing the create race refunds
// exactly the partitions the debit took.
func (uc *SessionUseCase) Start(ctx context.Context, userID int64, req StartRequest) (*domain.SessionResult, error) {
	ctx = logger.WithFields(ctx, map[string]interface{}{
		"user_id": userID,
		"game":    string(req.Game),
	})

	if !engineDomain.ProgressiveGames[req.Game] {
		return uc.failure(ctx, req.Game, fmt.Errorf("%w: %s is not a progressive game", engineDomain.ErrInvalidSelection, req.Game))
	}
	if err := uc.validateStake(req.Game, req.Stake); err != nil {
		return uc.failure(ctx, req.Game, err)
	}
	if err := validateConfig(req); err != nil {
		return uc.failure(ctx, req.Game, err)
	}

	// Cheap pre-check; the Create below is the real guard.
	if _, err := uc.sessions.Get(ctx, userID, req.Game); err == nil {
		return uc.failure(ctx, req.Game, engineDomain.ErrSessionActive)
	} else if !errors.Is(err, engineDomain.ErrNoSession) {
		return nil, fmt.Errorf("failed to check active session: %w", err)
	}

	account, split, err := uc.ledger.DebitStakeWithSplit(ctx, userID, req.Stake)
	if err != nil {
		return uc.failureOrFault(ctx, req.Game, err)
	}

	session := domain.NewGameSession(userID, req.Game, req.Stake)
	session.Tier = req.Tier
	session.Mines = req.Mines
	if req.Game == engineDomain.GameMines {
		session.MinePositions = uc.gen.MinePositions(req.Mines)
	}

	if err := uc.sessions.Create(ctx, session); err != nil {
		// The wager was reserved but the slot was taken first: void it.
		if _, refundErr := uc.ledger.RefundStake(ctx, userID, split); refundErr != nil {
			logger.Error(ctx).Err(refundErr).Float64("amount", split.Total()).Msg("Failed to refund stake after session conflict")
			return nil, fmt.Errorf("failed to refund stake after session conflict: %w", refundErr)
		}
		if errors.Is(err, engineDomain.ErrSessionActive) {
			return uc.failure(ctx, req.Game, err)
		}
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	logger.Info(ctx).
		Str("session_id", session.SessionID).
		Float64("stake", req.Stake).
		Msg("Session started")

	return &domain.SessionResult{
		Success:  true,
		GameKind: req.Game,
		Session:  publicView(session),
		Balance:  balanceSnapshot(account),
	}, nil
}

// AdvanceRequest is one step of an active session. Cell selects the mines
// cell to reveal; tower and road ignore it.
type AdvanceRequest struct {
	Game engineDomain.GameKind `json:"game"`
	Cell int                   `json:"cell,omitempty"`
}

// Advance plays one step of the active session. The session is reloaded and
// the step reapplied when a concurrent update wins the version race; a fresh
// outcome is drawn each attempt and only the committed one counts.
func (uc *SessionUseCase) Advance(ctx context.Context, userID int64, req AdvanceRequest) (*domain.SessionResult, error) {
	ctx = logger.WithFields(ctx, map[string]interface{}{
		"user_id": userID,
		"game":    string(req.Game),
	})

	var result *domain.SessionResult
	err := uc.withSessionRetry(ctx, func(ctx context.Context) error {
		session, err := uc.sessions.Get(ctx, userID, req.Game)
		if err != nil {
			return err
		}
		result, err = uc.advance(ctx, session, req)
		return err
	})
	if err != nil {
		return uc.failureOrFault(ctx, req.Game, err)
	}
	return result, nil
}

func (uc *SessionUseCase) advance(ctx context.Context, session *domain.GameSession, req AdvanceRequest) (*domain.SessionResult, error) {
	switch session.GameKind {
	case engineDomain.GameMines:
		return uc.advanceMines(ctx, session, req.Cell)
	case engineDomain.GameTower, engineDomain.GameRoad:
		return uc.advanceStep(ctx, session)
	default:
		return nil, fmt.Errorf("%w: cannot advance %s", engineDomain.ErrInvalidSelection, session.GameKind)
	}
}

func (uc *SessionUseCase) advanceMines(ctx context.Context, session *domain.GameSession, cell int) (*domain.SessionResult, error) {
	if cell < 0 || cell >= payout.MinesGridSize {
		return nil, fmt.Errorf("%w: cell %d outside the board", engineDomain.ErrInvalidSelection, cell)
	}
	if session.IsRevealed(cell) {
		return nil, fmt.Errorf("%w: cell %d already revealed", engineDomain.ErrInvalidSelection, cell)
	}

	if session.IsMine(cell) {
		return uc.bust(ctx, session, cell)
	}

	session.Revealed = append(session.Revealed, cell)
	session.Level++
	session.Multiplier = payout.MinesMultiplier(session.Level, session.Mines)
	session.UpdatedAt = time.Now()

	if session.Level == payout.MinesGridSize-session.Mines {
		// Every safe cell revealed; nothing is left to risk.
		return uc.settleWin(ctx, session)
	}
	return uc.commitStep(ctx, session)
}

func (uc *SessionUseCase) advanceStep(ctx context.Context, session *domain.GameSession) (*domain.SessionResult, error) {
	survival, maxLevel, err := stepOdds(session.GameKind, session.Tier)
	if err != nil {
		return nil, err
	}

	if !uc.gen.Survives(survival) {
		return uc.bust(ctx, session, 0)
	}

	session.Level++
	multiplier, err := levelMultiplier(session.GameKind, session.Tier, session.Level)
	if err != nil {
		return nil, err
	}
	session.Multiplier = multiplier
	session.UpdatedAt = time.Now()

	if session.Level == maxLevel {
		return uc.settleWin(ctx, session)
	}
	return uc.commitStep(ctx, session)
}

// commitStep persists a non-terminal advance.
func (uc *SessionUseCase) commitStep(ctx context.Context, session *domain.GameSession) (*domain.SessionResult, error) {
	if err := uc.sessions.Update(ctx, session); err != nil {
		return nil, err
	}

	account, err := uc.ledger.GetAccount(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	return &domain.SessionResult{
		Success:  true,
		GameKind: session.GameKind,
		Session:  publicView(session),
		Balance:  balanceSnapshot(account),
	}, nil
}

// bust closes a lost session. The Delete is the claim: if a concurrent
// cash-out deleted first, its result stands and this step is retried
// against the now-absent session.
func (uc *SessionUseCase) bust(ctx context.Context, session *domain.GameSession, cell int) (*domain.SessionResult, error) {
	if err := uc.sessions.Delete(ctx, session); err != nil {
		return nil, err
	}
	session.Status = domain.StatusLost

	uc.recordOrder(ctx, session, 0)

	logger.Info(ctx).
		Str("session_id", session.SessionID).
		Int("level", session.Level).
		Msg("Session busted")

	account, err := uc.ledger.GetAccount(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	return &domain.SessionResult{
		Success:  true,
		GameKind: session.GameKind,
		Session:  session,
		Finished: true,
		Busted:   true,
		BustCell: cell,
		Balance:  balanceSnapshot(account),
	}, nil
}

// settleWin closes a winning session and credits the payout. Delete-then-
// credit: the claim happens first so the payout can never double-apply.
func (uc *SessionUseCase) settleWin(ctx context.Context, session *domain.GameSession) (*domain.SessionResult, error) {
	if err := uc.sessions.Delete(ctx, session); err != nil {
		return nil, err
	}

	won := session.Stake * session.Multiplier
	account, err := uc.ledger.CreditPayout(ctx, session.UserID, won, ledgerDomain.BalanceWinning)
	if err != nil {
		logger.Error(ctx).Err(err).Float64("payout", won).Msg("Failed to credit payout after session close")
		return nil, fmt.Errorf("failed to credit session payout: %w", err)
	}

	uc.recordOrder(ctx, session, won)

	logger.Info(ctx).
		Str("session_id", session.SessionID).
		Int("level", session.Level).
		Float64("payout", won).
		Msg("Session cashed out")

	return &domain.SessionResult{
		Success:  true,
		GameKind: session.GameKind,
		Session:  session,
		Finished: true,
		Payout:   won,
		Balance:  balanceSnapshot(account),
	}, nil
}

// CashOut banks the running multiplier of the active session.
func (uc *SessionUseCase) CashOut(ctx context.Context, userID int64, game engineDomain.GameKind) (*domain.SessionResult, error) {
	ctx = logger.WithFields(ctx, map[string]interface{}{
		"user_id": userID,
		"game":    string(game),
	})

	var result *domain.SessionResult
	err := uc.withSessionRetry(ctx, func(ctx context.Context) error {
		session, err := uc.sessions.Get(ctx, userID, game)
		if err != nil {
			return err
		}
		if session.Level == 0 {
			return engineDomain.ErrNothingToCashOut
		}
		result, err = uc.settleWin(ctx, session)
		return err
	})
	if err != nil {
		return uc.failureOrFault(ctx, game, err)
	}
	return result, nil
}

// GetSession returns the caller's active session with hidden state redacted.
func (uc *SessionUseCase) GetSession(ctx context.Context, userID int64, game engineDomain.GameKind) (*domain.GameSession, error) {
	session, err := uc.sessions.Get(ctx, userID, game)
	if err != nil {
		return nil, err
	}
	return publicView(session), nil
}

// withSessionRetry reruns fn while it loses session version races.
func (uc *SessionUseCase) withSessionRetry(ctx context.Context, fn func(context.Context) error) error {
	backoff := retry.WithMaxRetries(sessionMaxRetries, retry.NewConstant(2*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := fn(ctx); err != nil {
			if errors.Is(err, engineDomain.ErrSessionConflict) {
				return retry.RetryableError(err)
			}
			return err
		}
		return nil
	})
}

func (uc *SessionUseCase) validateStake(game engineDomain.GameKind, stake float64) error {
	limits, ok := uc.games.StakeLimits[string(game)]
	if !ok {
		return fmt.Errorf("%w: stake limits for %s", engineDomain.ErrConfigMissing, game)
	}
	if stake <= 0 || stake < limits.Min || stake > limits.Max {
		return fmt.Errorf("%w: stake %.2f outside [%.2f, %.2f]", engineDomain.ErrInvalidStake, stake, limits.Min, limits.Max)
	}
	return nil
}

func validateConfig(req StartRequest) error {
	switch req.Game {
	case engineDomain.GameMines:
		return payout.ValidateMinesCount(req.Mines)
	case engineDomain.GameTower:
		return payout.ValidateTowerTier(req.Tier)
	case engineDomain.GameRoad:
		return payout.ValidateRoadTier(req.Tier)
	}
	return nil
}

func stepOdds(game engineDomain.GameKind, tier string) (survival float64, maxLevel int, err error) {
	switch game {
	case engineDomain.GameTower:
		p, ok := payout.TowerSurvival[tier]
		if !ok {
			return 0, 0, fmt.Errorf("%w: tower survival for tier %q", engineDomain.ErrConfigMissing, tier)
		}
		return p, payout.TowerLevels, nil
	case engineDomain.GameRoad:
		p, ok := payout.RoadSurvival[tier]
		if !ok {
			return 0, 0, fmt.Errorf("%w: road survival for tier %q", engineDomain.ErrConfigMissing, tier)
		}
		return p, payout.RoadStages, nil
	}
	return 0, 0, fmt.Errorf("%w: %s has no step odds", engineDomain.ErrInvalidSelection, game)
}

func levelMultiplier(game engineDomain.GameKind, tier string, level int) (float64, error) {
	switch game {
	case engineDomain.GameTower:
		return payout.TowerMultiplier(tier, level)
	case engineDomain.GameRoad:
		return payout.RoadMultiplier(tier, level)
	}
	return 0, fmt.Errorf("%w: %s has no level multipliers", engineDomain.ErrInvalidSelection, game)
}

func (uc *SessionUseCase) recordOrder(ctx context.Context, session *domain.GameSession, won float64) {
	if uc.orders == nil {
		return
	}
	betArea := session.Tier
	if session.GameKind == engineDomain.GameMines {
		betArea = fmt.Sprintf("mines:%d", session.Mines)
	}
	order := engineDomain.NewSettledOrder(session.UserID, session.GameKind, session.SessionID, betArea, session.Stake, won)
	if err := uc.orders.BatchCreate(ctx, []*engineDomain.BetOrder{order}); err != nil {
		// Audit write failure must not undo a committed settlement.
		logger.Error(ctx).Err(err).Str("order_id", order.OrderID).Msg("Failed to persist bet order")
	}
}

// publicView strips hidden board state from an active session.
func publicView(session *domain.GameSession) *domain.GameSession {
	view := *session
	view.MinePositions = nil
	return &view
}

func (uc *SessionUseCase) failure(ctx context.Context, game engineDomain.GameKind, err error) (*domain.SessionResult, error) {
	reason, message := engineDomain.Classify(err)
	logger.Warn(ctx).Err(err).Str("reason", string(reason)).Msg("Session request rejected")
	return &domain.SessionResult{
		Success:  false,
		GameKind: game,
		Reason:   reason,
		Message:  message,
	}, nil
}

func (uc *SessionUseCase) failureOrFault(ctx context.Context, game engineDomain.GameKind, err error) (*domain.SessionResult, error) {
	reason, _ := engineDomain.Classify(err)
	if reason == engineDomain.ReasonInternal {
		return nil, err
	}
	return uc.failure(ctx, game, err)
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
