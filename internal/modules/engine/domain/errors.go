package domain

import (
	"errors"

	ledgerDomain "github.com/frankieli/casino_engine/internal/modules/ledger/domain"
)

// FailReason is the stable reason code surfaced to callers on any
// non-success result.
type FailReason string

const (
	ReasonInvalidStake      FailReason = "INVALID_STAKE"
	ReasonInsufficientFunds FailReason = "INSUFFICIENT_FUNDS"
	ReasonInvalidSelection  FailReason = "INVALID_SELECTION"
	ReasonSessionActive     FailReason = "SESSION_ALREADY_ACTIVE"
	ReasonNoSession         FailReason = "NO_ACTIVE_SESSION"
	ReasonNothingToCashOut  FailReason = "NOTHING_TO_CASH_OUT"
	ReasonRoundClosed       FailReason = "ROUND_CLOSED"
	ReasonConflict          FailReason = "CONCURRENCY_CONFLICT"
	ReasonConfigMissing     FailReason = "CONFIGURATION_MISSING"
	ReasonInternal          FailReason = "INTERNAL"
)

var (
	// ErrInvalidStake indicates a stake outside the configured min/max.
	ErrInvalidStake = errors.New("invalid stake")
	// ErrInvalidSelection indicates a malformed or out-of-domain selection.
	ErrInvalidSelection = errors.New("invalid selection")
	// ErrConfigMissing indicates an absent paytable or game config.
	ErrConfigMissing = errors.New("game configuration missing")
	// ErrSessionActive indicates a progressive session already exists.
	ErrSessionActive = errors.New("session already active")
	// ErrNoSession indicates no active progressive session.
	ErrNoSession = errors.New("no active session")
	// ErrNothingToCashOut indicates a cash-out before any safe step.
	ErrNothingToCashOut = errors.New("nothing to cash out")
	// ErrSessionConflict indicates a session optimistic update lost a race.
	ErrSessionConflict = errors.New("session version conflict")
)

// Classify maps an error to its reason code and user-facing message. Unknown
// errors classify as internal; those are the only ones worth paging over.
func Classify(err error) (FailReason, string) {
	switch {
	case errors.Is(err, ErrInvalidStake):
		return ReasonInvalidStake, "stake is outside the allowed range"
	case errors.Is(err, ledgerDomain.ErrInvalidAmount):
		return ReasonInvalidStake, "stake must be positive"
	case errors.Is(err, ledgerDomain.ErrInsufficientFunds):
		return ReasonInsufficientFunds, "balance is too low for this stake"
	case errors.Is(err, ErrInvalidSelection):
		return ReasonInvalidSelection, "selection is not valid for this game"
	case errors.Is(err, ErrSessionActive):
		return ReasonSessionActive, "a session is already in progress"
	case errors.Is(err, ErrNoSession):
		return ReasonNoSession, "no session in progress"
	case errors.Is(err, ErrNothingToCashOut):
		return ReasonNothingToCashOut, "nothing to cash out yet"
	case errors.Is(err, ledgerDomain.ErrVersionConflict), errors.Is(err, ErrSessionConflict):
		return ReasonConflict, "please retry, a concurrent update won"
	case errors.Is(err, ErrConfigMissing):
		return ReasonConfigMissing, "game is temporarily unavailable"
	default:
		return ReasonInternal, "something went wrong"
	}
}
