package engine

import (
	"github.com/lox/nlhe/internal/deck"
	"github.com/lox/nlhe/internal/events"
)

// Start transitions the table from Lobby to InHand: it announces the table
// to every seated player and deals hand #1.
func (t *Table) Start() error {
	if t.started {
		return ErrGameAlreadyStarted
	}
	t.started = true

	for _, id := range t.seatOrder {
		p := t.players[id]
		t.sink.Send(p.ID, events.NewPlayerPrivateInfo(p.ID, p.SecretToken))
	}

	playerInfos := make([]events.PlayerInfo, 0, len(t.seatOrder))
	for _, id := range t.seatOrder {
		p := t.players[id]
		playerInfos = append(playerInfos, events.PlayerInfo{PlayerID: p.ID, Name: p.Name})
	}
	seatOrderCopy := append([]int(nil), t.seatOrder...)
	t.broadcast(events.NewGameTableInfo(t.startingStack, seatOrderCopy, t.seatOrder[0], playerInfos))

	t.newHand()
	return nil
}

// playersInSeatOrder returns the currently seated Players in seatOrder.
func (t *Table) playersInSeatOrder() []*Player {
	out := make([]*Player, 0, len(t.seatOrder))
	for _, id := range t.seatOrder {
		out = append(out, t.players[id])
	}
	return out
}

// newHand deals a fresh hand: new deck, new board (hidden), two hole cards
// per non-eliminated player, blinds posted, and the first preflop actor set
// on the clock.
func (t *Table) newHand() {
	t.handNumber++
	t.minRaise = 2
	t.deck = deck.New(t.rng)
	t.boardRevealed = 0
	for i := range t.board {
		cards := t.deck.Deal(1)
		t.board[i] = cards[0]
	}

	for _, p := range t.playersInSeatOrder() {
		if p.Eliminated {
			continue
		}
		p.Folded = false
		p.AllIn = false
		p.HasOption = false
		p.StreetContrib = 0
		p.HandContrib = 0
		cards := t.deck.Deal(2)
		p.HoleCards = [2]deck.Card{cards[0], cards[1]}
		p.HasHoleCards = true
		t.sink.Send(p.ID, events.NewHoleCardInfo(t.handNumber, [2]string{cards[0].String(), cards[1].String()}))
	}

	// Rotate the button: move seatOrder[0] to the back.
	t.seatOrder = append(t.seatOrder[1:], t.seatOrder[0])

	t.street = PreFlop
	t.currentBet = 0

	button := t.seatOrder[0]
	sb := t.nextPlayer(button)
	if t.countNonEliminated() == 2 {
		sb = t.nextPlayer(sb) // heads-up: the button is the small blind
	}
	bb := t.nextPlayer(sb)
	t.players[bb].HasOption = true

	t.postBlind(sb, 1)
	t.postBlind(bb, 2)
	t.currentBet = 2

	t.toAct = t.nextPlayer(bb)

	t.broadcast(events.NewStreetInfo(t.handNumber, t.street.String(), button, nil))
	t.broadcast(events.NewToMoveInfo(t.handNumber, t.toAct))
}

// postBlind applies a PostBlind command to seat id outside the normal
// decide-step: it mutates state and emits MoveInfo through the same
// clamping and all-in detection path a real action uses, but does not
// advance to_act or check street/hand closure — the caller determines the
// first actor once both blinds are in.
func (t *Table) postBlind(id, amount int) {
	p := t.players[id]
	action := interpretAction(p, t.currentBet, t.minRaise, Command{Kind: cmdPostBlind, Amount: amount})
	t.applyNormalized(p, action)
}

// nextStreet rolls street contributions into hand contributions, advances
// the street, reveals the appropriate community cards, and sets the first
// actor (and the closing actor's option) for the new street.
func (t *Table) nextStreet() {
	for _, p := range t.players {
		if p.Eliminated {
			continue
		}
		p.HandContrib += p.StreetContrib
		p.StreetContrib = 0
		p.HasOption = false
	}
	t.currentBet = 0
	t.minRaise = 2

	var revealCount int
	switch t.street {
	case PreFlop:
		t.street = Flop
		revealCount = 3
	case Flop:
		t.street = Turn
		revealCount = 1
	case Turn:
		t.street = River
		revealCount = 1
	case River:
		return
	}

	revealed := make([]string, 0, revealCount)
	for i := 0; i < revealCount; i++ {
		revealed = append(revealed, t.board[t.boardRevealed].String())
		t.boardRevealed++
	}

	button := t.seatOrder[0]
	t.toAct = t.nextPlayer(button)
	t.players[t.prevPlayer(t.toAct)].HasOption = true

	t.broadcast(events.NewStreetInfo(t.handNumber, t.street.String(), button, revealed))
	t.broadcast(events.NewToMoveInfo(t.handNumber, t.toAct))
}

// endHand resolves the pot(s), credits winners, handles eliminations, and
// either deals the next hand or ends the game.
func (t *Table) endHand() {
	for _, p := range t.players {
		if p.Eliminated {
			continue
		}
		p.HandContrib += p.StreetContrib
		p.StreetContrib = 0
	}

	results := resolvePots(t.playersInSeatOrder(), t.seatOrder, t.board)

	payouts := make(map[int]int)
	revealedSet := make(map[int]bool)
	for _, r := range results {
		if len(r.Winners) == 0 {
			continue
		}
		per := r.Amount / len(r.Winners)
		remainder := r.Amount % len(r.Winners)
		order := clockwiseOrder(t.seatOrder, r.Winners)
		for i, id := range order {
			amt := per
			if i < remainder {
				amt++
			}
			payouts[id] += amt
		}
		if len(r.Eligible) > 1 {
			for _, id := range r.Eligible {
				revealedSet[id] = true
			}
		}
	}
	for id, amt := range payouts {
		t.players[id].Chips += amt
	}

	nonFolded := 0
	for _, p := range t.players {
		if !p.Folded && !p.Eliminated {
			nonFolded++
		}
	}
	reason := "Showdown"
	if nonFolded <= 1 {
		reason = "AllFolded"
	}

	payoutList := make([]events.Payout, 0, len(payouts))
	for _, id := range t.seatOrder {
		if amt, ok := payouts[id]; ok {
			payoutList = append(payoutList, events.Payout{PlayerID: id, Amount: amt})
		}
	}
	revealedList := make([]events.RevealedHand, 0, len(revealedSet))
	for _, id := range t.seatOrder {
		if !revealedSet[id] {
			continue
		}
		p := t.players[id]
		revealedList = append(revealedList, events.RevealedHand{
			PlayerID:  id,
			HoleCards: [2]string{p.HoleCards[0].String(), p.HoleCards[1].String()},
		})
	}
	t.broadcast(events.NewPayoutInfo(t.handNumber, reason, payoutList, revealedList))

	for _, id := range t.seatOrder {
		p := t.players[id]
		if !p.Eliminated && p.Chips == 0 {
			p.Eliminated = true
			p.Folded = true
			t.broadcast(events.NewPlayerEliminatedInfo(p.ID))
		}
	}

	survivor, remaining := -1, 0
	for _, id := range t.seatOrder {
		if !t.players[id].Eliminated {
			remaining++
			survivor = id
		}
	}
	if remaining <= 1 {
		t.gameOver = true
		t.broadcast(events.NewGameOverInfo(survivor))
		return
	}
	t.newHand()
}

func (t *Table) countNonEliminated() int {
	n := 0
	for _, p := range t.players {
		if !p.Eliminated {
			n++
		}
	}
	return n
}
