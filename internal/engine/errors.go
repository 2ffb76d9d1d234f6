package engine

import "errors"

// Sentinel errors surfaced to the dispatch layer. Everything else a caller
// might get wrong (illegal check, under-raise, acting while broke, ...) is
// handled by clamping in the action interpreter and never reaches here.
var (
	ErrGameAlreadyStarted = errors.New("Game already started!")
	ErrBadConfigOption    = errors.New("Bad config option!")
	ErrGameFull           = errors.New("No space to join this game")
	ErrNotYourTurn        = errors.New("Not your turn!")
)
