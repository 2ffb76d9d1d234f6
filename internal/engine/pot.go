package engine

import (
	"math"

	"github.com/lox/nlhe/internal/deck"
	"github.com/lox/nlhe/internal/evaluator"
)

// potResult is one resolved layer of the pot: its amount, the players who
// split it, and the full eligible set (used for the hand-reveal rule).
type potResult struct {
	Amount   int
	Winners  []int
	Eligible []int
}

// resolvePots builds the main pot and any side pots by repeated
// level-stripping over hand_contrib, then picks winners for each layer.
// players must already have this hand's final street rolled into
// hand_contrib (endHand does this before calling resolvePots).
func resolvePots(players []*Player, seatOrder []int, board [5]deck.Card) []potResult {
	remaining := make(map[int]int, len(players))
	for _, p := range players {
		remaining[p.ID] = p.HandContrib
	}

	type layer struct {
		amount   int
		eligible []int
	}
	var layers []layer

	for {
		minPositive := 0
		found := false
		for _, p := range players {
			if p.Folded || p.Eliminated {
				continue
			}
			c := remaining[p.ID]
			if c > 0 && (!found || c < minPositive) {
				minPositive = c
				found = true
			}
		}
		if !found {
			break
		}

		l := layer{}
		for _, p := range players {
			c := remaining[p.ID]
			if c <= 0 {
				continue
			}
			contrib := minPositive
			if contrib > c {
				contrib = c
			}
			remaining[p.ID] -= contrib
			l.amount += contrib
			if !p.Folded && !p.Eliminated {
				l.eligible = append(l.eligible, p.ID)
			}
		}
		layers = append(layers, l)
	}

	// Dead money: folded players' leftover hand_contrib once no contending
	// player has any left. It has no one to contest it, so it folds into
	// whatever layer is currently being fought over.
	dead := 0
	for _, p := range players {
		if remaining[p.ID] > 0 {
			dead += remaining[p.ID]
			remaining[p.ID] = 0
		}
	}
	if dead > 0 {
		if len(layers) == 0 {
			layers = append(layers, layer{amount: dead})
		} else {
			layers[len(layers)-1].amount += dead
		}
	}

	results := make([]potResult, 0, len(layers))
	for _, l := range layers {
		if len(l.eligible) == 0 {
			continue
		}
		var winners []int
		if len(l.eligible) == 1 {
			winners = l.eligible
		} else {
			winners = bestHands(players, l.eligible, board)
		}
		results = append(results, potResult{Amount: l.amount, Winners: winners, Eligible: l.eligible})
	}
	return results
}

// bestHands returns the eligible player ids sharing the strongest 7-card
// hand (hole cards plus the full board).
func bestHands(players []*Player, eligible []int, board [5]deck.Card) []int {
	byID := make(map[int]*Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	best := evaluator.HandRank(math.MaxInt32)
	var winners []int
	for _, id := range eligible {
		p := byID[id]
		cards := []deck.Card{
			p.HoleCards[0], p.HoleCards[1],
			board[0], board[1], board[2], board[3], board[4],
		}
		rank := evaluator.Evaluate7(cards)
		switch rank.Compare(best) {
		case 1:
			best = rank
			winners = []int{id}
		case 0:
			winners = append(winners, id)
		}
	}
	return winners
}

// clockwiseOrder orders ids by their seatOrder position starting just left
// of the button (seatOrder[1]) and wrapping back through the button last —
// the order odd chips are handed out in.
func clockwiseOrder(seatOrder []int, ids []int) []int {
	want := make(map[int]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	n := len(seatOrder)
	order := make([]int, 0, len(ids))
	for i := 1; i <= n; i++ {
		id := seatOrder[i%n]
		if want[id] {
			order = append(order, id)
		}
	}
	return order
}
