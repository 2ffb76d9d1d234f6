package engine

import "github.com/lox/nlhe/internal/deck"

// Player is one seat's record. A Table owns its Players exclusively; nothing
// outside the engine mutates these fields directly.
type Player struct {
	ID          int
	Name        string
	Address     string
	SecretToken string

	Chips         int
	HoleCards     [2]deck.Card
	HasHoleCards  bool
	StreetContrib int
	HandContrib   int

	Folded     bool
	AllIn      bool
	Eliminated bool
	HasOption  bool
}

// inHand reports whether p can still receive cards and contest the pot this
// hand (not folded, not eliminated).
func (p *Player) inHand() bool {
	return !p.Folded && !p.Eliminated
}

// canAct reports whether p still has a decision to make this street (in the
// hand, and not already all-in).
func (p *Player) canAct() bool {
	return p.inHand() && !p.AllIn
}
