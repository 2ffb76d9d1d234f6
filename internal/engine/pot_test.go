package engine

import (
	"testing"

	"github.com/lox/nlhe/internal/deck"
	"github.com/stretchr/testify/require"
)

func mustCard(t *testing.T, s string) deck.Card {
	t.Helper()
	c, err := deck.Parse(s)
	require.NoError(t, err)
	return c
}

func holeCards(t *testing.T, a, b string) [2]deck.Card {
	return [2]deck.Card{mustCard(t, a), mustCard(t, b)}
}

func boardCards(t *testing.T, cards ...string) [5]deck.Card {
	var board [5]deck.Card
	for i, c := range cards {
		board[i] = mustCard(t, c)
	}
	return board
}

func TestResolvePotsUncontestedSingleEligible(t *testing.T) {
	players := []*Player{
		{ID: 0, HandContrib: 10, HoleCards: holeCards(t, "2c", "3d")},
		{ID: 1, HandContrib: 10, Folded: true, HoleCards: holeCards(t, "Ac", "Ad")},
	}
	board := boardCards(t, "2d", "7d", "9h", "Tc", "3s")

	results := resolvePots(players, []int{0, 1}, board)

	require.Len(t, results, 1)
	require.Equal(t, 20, results[0].Amount)
	require.Equal(t, []int{0}, results[0].Winners)
	require.Equal(t, []int{0}, results[0].Eligible)
}

func TestResolvePotsSidePotLevelStripping(t *testing.T) {
	// A shoves 30 and is covered by B and C, who both put in 90.
	players := []*Player{
		{ID: 0, HandContrib: 30, AllIn: true, HoleCards: holeCards(t, "As", "Ah")},
		{ID: 1, HandContrib: 90, HoleCards: holeCards(t, "Ks", "Kh")},
		{ID: 2, HandContrib: 90, HoleCards: holeCards(t, "Qs", "Qh")},
	}
	board := boardCards(t, "2c", "7d", "9h", "Tc", "3s")

	results := resolvePots(players, []int{0, 1, 2}, board)

	require.Len(t, results, 2)

	main := results[0]
	require.Equal(t, 90, main.Amount) // 30 * 3
	require.ElementsMatch(t, []int{0, 1, 2}, main.Eligible)
	require.Equal(t, []int{0}, main.Winners) // pocket aces beats kings and queens

	side := results[1]
	require.Equal(t, 120, side.Amount) // 60 * 2
	require.ElementsMatch(t, []int{1, 2}, side.Eligible)
	require.Equal(t, []int{1}, side.Winners) // kings beats queens, A is not eligible here
}

func TestResolvePotsDeadMoneyFromFoldedPlayerSweepsIntoLastLayer(t *testing.T) {
	players := []*Player{
		{ID: 0, HandContrib: 20, HoleCards: holeCards(t, "As", "Ah")},
		{ID: 1, HandContrib: 20, HoleCards: holeCards(t, "Ks", "Kh")},
		{ID: 2, HandContrib: 50, Folded: true, HoleCards: holeCards(t, "2c", "3d")},
	}
	board := boardCards(t, "2d", "7d", "9h", "Tc", "3s")

	results := resolvePots(players, []int{0, 1, 2}, board)

	require.Len(t, results, 1)
	// 20*3 stripped in round one (60), plus the folded player's leftover 30
	// dead money, with no contender left to contest a second layer.
	require.Equal(t, 90, results[0].Amount)
	require.ElementsMatch(t, []int{0, 1}, results[0].Eligible)
	require.Equal(t, []int{0}, results[0].Winners)
}

func TestResolvePotsTieSplitsAcrossWinners(t *testing.T) {
	// The board itself is a royal flush; both players' hole cards are
	// irrelevant and they tie exactly.
	players := []*Player{
		{ID: 0, HandContrib: 50, HoleCards: holeCards(t, "2c", "3d")},
		{ID: 1, HandContrib: 50, HoleCards: holeCards(t, "4c", "5d")},
	}
	board := boardCards(t, "Ah", "Kh", "Qh", "Jh", "Th")

	results := resolvePots(players, []int{0, 1}, board)

	require.Len(t, results, 1)
	require.Equal(t, 100, results[0].Amount)
	require.ElementsMatch(t, []int{0, 1}, results[0].Winners)
}

func TestClockwiseOrderStartsLeftOfButtonAndWrapsButtonLast(t *testing.T) {
	seatOrder := []int{5, 1, 2, 3, 4} // button is seatOrder[0] == 5
	order := clockwiseOrder(seatOrder, []int{1, 3, 5})
	require.Equal(t, []int{1, 3, 5}, order)
}

func TestClockwiseOrderFiltersToRequestedIDs(t *testing.T) {
	seatOrder := []int{0, 1, 2, 3}
	order := clockwiseOrder(seatOrder, []int{3, 1})
	require.Equal(t, []int{1, 3}, order)
}
