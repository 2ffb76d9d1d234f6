package deck

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDeckHas52UniqueCards(t *testing.T) {
	d := New(rand.New(rand.NewSource(42)))
	require.Equal(t, 52, d.Remaining())

	seen := make(map[Card]bool, 52)
	for i := 0; i < 52; i++ {
		cards := d.Deal(1)
		require.False(t, seen[cards[0]], "duplicate card dealt: %s", cards[0])
		seen[cards[0]] = true
	}
	require.Equal(t, 0, d.Remaining())
	require.Len(t, seen, 52)
}

func TestDealReducesRemaining(t *testing.T) {
	d := New(rand.New(rand.NewSource(1)))
	board := d.Deal(5)
	require.Len(t, board, 5)
	require.Equal(t, 47, d.Remaining())
}

func TestDealPanicsWhenExhausted(t *testing.T) {
	d := New(rand.New(rand.NewSource(1)))
	d.Deal(52)
	require.Panics(t, func() {
		d.Deal(1)
	})
}

func TestShuffleIsDeterministicPerSeed(t *testing.T) {
	a := New(rand.New(rand.NewSource(7)))
	b := New(rand.New(rand.NewSource(7)))
	require.Equal(t, a.Deal(52), b.Deal(52))
}

func TestCardStringAndParseRoundTrip(t *testing.T) {
	for _, suit := range allSuits {
		for _, rank := range allRanks {
			c := NewCard(rank, suit)
			parsed, err := Parse(c.String())
			require.NoError(t, err)
			require.Equal(t, c, parsed)
		}
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	_, err := Parse("")
	require.Error(t, err)

	_, err = Parse("Zz")
	require.Error(t, err)

	_, err = Parse("A")
	require.Error(t, err)
}

func TestCardStringCanonicalForm(t *testing.T) {
	require.Equal(t, "Ah", NewCard(Ace, Hearts).String())
	require.Equal(t, "Tc", NewCard(Ten, Clubs).String())
	require.Equal(t, "2s", NewCard(Two, Spades).String())
}
