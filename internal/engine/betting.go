package engine

import "github.com/lox/nlhe/internal/events"

// PlayerAction is the engine's single mutating entry point for a player
// command: it authenticates the secret token against the seat currently on
// the clock, normalizes the command, applies it, and runs the decide step
// (end the hand, close the street, or advance to the next actor).
func (t *Table) PlayerAction(secretToken string, cmd Command) error {
	if t.gameOver || t.toAct < 0 {
		return ErrNotYourTurn
	}
	p, ok := t.players[t.toAct]
	if !ok || p.SecretToken != secretToken {
		return ErrNotYourTurn
	}

	action := interpretAction(p, t.currentBet, t.minRaise, cmd)
	t.applyNormalized(p, action)
	t.advance()
	return nil
}

// applyNormalized mutates player/table state for a normalized action and
// emits its MoveInfo. It does not run the decide step — callers that need
// street/hand closure checked call advance separately (postBlind does not,
// since blinds have their own explicit first-actor computation).
func (t *Table) applyNormalized(p *Player, action NormAction) {
	var moveType events.MoveType
	var value int

	switch action.Kind {
	case NormCheck:
		p.HasOption = false
		moveType = events.MoveCheck

	case NormFold:
		p.Folded = true
		p.HasOption = false
		moveType = events.MoveFold

	case NormBet:
		b := action.Amount
		if p.StreetContrib+b > t.currentBet {
			t.minRaise = (p.StreetContrib + b) - t.currentBet
			t.currentBet = p.StreetContrib + b
		}
		p.StreetContrib += b
		p.Chips -= b
		p.HasOption = false
		moveType = events.MoveBet
		value = b

	case NormPostBlind:
		b := action.Amount
		p.StreetContrib += b
		p.Chips -= b
		moveType = events.MoveBlind
		value = b
	}

	if p.Chips == 0 {
		p.AllIn = true
	}
	t.broadcast(events.NewMoveInfo(t.handNumber, p.ID, moveType, value))
}

// advance runs the post-action decide step: end the hand, close the street,
// or hand the clock to the next actor.
func (t *Table) advance() {
	if t.isHandOver() {
		t.endHand()
		return
	}
	if t.isStreetOver() {
		t.nextStreet()
		return
	}
	t.toAct = t.nextPlayer(t.toAct)
	t.broadcast(events.NewToMoveInfo(t.handNumber, t.toAct))
}

// isStreetOver is true iff no player who can still act holds the option,
// and every such player has matched the current bet.
func (t *Table) isStreetOver() bool {
	for _, p := range t.players {
		if !p.canAct() {
			continue
		}
		if p.HasOption {
			return false
		}
		if p.StreetContrib != t.currentBet {
			return false
		}
	}
	return true
}

// isHandOver is true if at most one non-folded, non-eliminated player
// remains, if every such player is all-in, or if the river's street is
// over.
func (t *Table) isHandOver() bool {
	contenders := 0
	allAllIn := true
	for _, p := range t.players {
		if p.Folded || p.Eliminated {
			continue
		}
		contenders++
		if !p.AllIn {
			allAllIn = false
		}
	}
	if contenders <= 1 {
		return true
	}
	if allAllIn {
		return true
	}
	return t.street == River && t.isStreetOver()
}

// seatIndex returns id's position in seatOrder, or -1 if absent.
func (t *Table) seatIndex(id int) int {
	for i, sid := range t.seatOrder {
		if sid == id {
			return i
		}
	}
	return -1
}

// nextPlayer scans seatOrder strictly after from, wrapping once, for the
// first player who is not folded, not all-in, not eliminated. If none
// exists it returns from.
func (t *Table) nextPlayer(from int) int {
	n := len(t.seatOrder)
	fromIdx := t.seatIndex(from)
	for i := 1; i <= n; i++ {
		id := t.seatOrder[(fromIdx+i)%n]
		p := t.players[id]
		if !p.Folded && !p.AllIn && !p.Eliminated {
			return id
		}
	}
	return from
}

// prevPlayer is nextPlayer over the reversed seat order.
func (t *Table) prevPlayer(from int) int {
	n := len(t.seatOrder)
	fromIdx := t.seatIndex(from)
	for i := 1; i <= n; i++ {
		idx := ((fromIdx-i)%n + n) % n
		id := t.seatOrder[idx]
		p := t.players[id]
		if !p.Folded && !p.AllIn && !p.Eliminated {
			return id
		}
	}
	return from
}
