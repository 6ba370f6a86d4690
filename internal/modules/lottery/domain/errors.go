package domain

import "errors"

var (
	// ErrRoundNotSettled indicates no stored result for the round yet.
	ErrRoundNotSettled = errors.New("round not settled")
	// ErrRoundClosed indicates a bet arrived after the round's window.
	ErrRoundClosed = errors.New("round closed for betting")
)
