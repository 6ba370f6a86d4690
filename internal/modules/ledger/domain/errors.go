package domain

import "errors"

var (
	// ErrAccountNotFound indicates no account exists for the given ID.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInsufficientFunds indicates the balance cannot cover the debit.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInvalidAmount indicates a non-positive or malformed amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrVersionConflict indicates an optimistic update lost a race.
	ErrVersionConflict = errors.New("account version conflict")
	// ErrAccountExists indicates a duplicate account creation.
	ErrAccountExists = errors.New("account already exists")
)
