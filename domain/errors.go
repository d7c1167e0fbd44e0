package domain

import "errors"

// Rejection errors. A rejected action is a no-op: the table state is left
// untouched and the caller is expected to resync from the current view.
var (
	ErrUnknownPlayer    = errors.New("no such player at table")
	ErrOutOfTurn        = errors.New("action out of turn")
	ErrPlayerFolded     = errors.New("player has folded")
	ErrPlayerAllIn      = errors.New("player is all-in")
	ErrHandOver         = errors.New("hand already over")
	ErrNoHandInProgress = errors.New("no hand in progress")
	ErrHandInProgress   = errors.New("hand already in progress")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrTableFull        = errors.New("table is full")
	ErrNoPlayers        = errors.New("no players seated")
)
