// Package engine implements the hand-and-betting state machine for one
// No-Limit Hold'em table: seating, dealing, the action interpreter, the
// betting state machine, hand lifecycle, and pot resolution. A Table is not
// internally concurrent — the caller must serialize commands against one
// Table, typically by holding a per-game lock for the duration of a call.
package engine

import (
	"fmt"

	"github.com/lox/nlhe/internal/deck"
	"github.com/rs/zerolog"
)

// Street is one of the four betting rounds. There is no explicit Showdown
// street; a hand closes out of River directly into end_hand.
type Street int

const (
	PreFlop Street = iota
	Flop
	Turn
	River
)

func (s Street) String() string {
	switch s {
	case PreFlop:
		return "PreFlop"
	case Flop:
		return "Flop"
	case Turn:
		return "Turn"
	case River:
		return "River"
	default:
		return "Unknown"
	}
}

// TokenGenerator mints the opaque secret token handed to a player on join.
// Production wires this to internal/identity (github.com/google/uuid);
// tests can inject a deterministic fake.
type TokenGenerator interface {
	NewToken() string
}

// randToken is the default TokenGenerator, drawing from the same injected
// RandSource as the deck shuffle so a fully-seeded Table is reproducible
// end to end without pulling in a UUID library at the engine layer.
type randToken struct{ rng deck.RandSource }

func (g randToken) NewToken() string {
	var b [16]byte
	for i := range b {
		b[i] = byte(g.rng.Intn(256))
	}
	return fmt.Sprintf("%x", b)
}

// Table is the Game aggregate: one table's complete state. It owns its
// Players, deck, and board exclusively.
type Table struct {
	log    zerolog.Logger
	rng    deck.RandSource
	sink   Sink
	tokens TokenGenerator

	players    map[int]*Player
	seatOrder  []int
	nextSeatID int

	startingStack int
	maxPlayers    int
	started       bool
	gameOver      bool

	deck           *deck.Deck
	board          [5]deck.Card
	boardRevealed  int
	street         Street
	toAct          int
	currentBet     int
	minRaise       int
	handNumber     int
}

// Option configures a Table at construction time.
type Option func(*Table)

// WithLogger attaches a component-scoped logger. The default is a no-op
// logger.
func WithLogger(log zerolog.Logger) Option {
	return func(t *Table) { t.log = log.With().Str("component", "engine").Logger() }
}

// WithTokenGenerator overrides the default RNG-backed token generator.
func WithTokenGenerator(tg TokenGenerator) Option {
	return func(t *Table) { t.tokens = tg }
}

// WithStartingStack sets the initial starting stack (default 200).
func WithStartingStack(n int) Option {
	return func(t *Table) { t.startingStack = n }
}

// WithMaxPlayers sets the initial seat limit (default 9).
func WithMaxPlayers(n int) Option {
	return func(t *Table) { t.maxPlayers = n }
}

// NewTable constructs a Table in the Lobby state. rng backs both the deck
// shuffle and the seat-order permutation, matching the spec's requirement
// that both draw from an injectable RNG.
func NewTable(rng deck.RandSource, sink Sink, opts ...Option) *Table {
	t := &Table{
		rng:           rng,
		sink:          sink,
		players:       make(map[int]*Player),
		startingStack: 200,
		maxPlayers:    9,
		toAct:         -1,
		log:           zerolog.Nop(),
	}
	t.tokens = randToken{rng: rng}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Configure dispatches one of the three pre-start configuration commands.
func (t *Table) Configure(option string, value int) error {
	switch option {
	case "starting_stack":
		return t.SetStartingStack(value)
	case "max_players":
		return t.SetPlayerLimit(value)
	case "start":
		return t.Start()
	default:
		return ErrBadConfigOption
	}
}

// SetStartingStack sets the stack every newly added player receives. Only
// legal before Start.
func (t *Table) SetStartingStack(n int) error {
	if t.started {
		return ErrGameAlreadyStarted
	}
	t.startingStack = n
	return nil
}

// SetPlayerLimit sets the maximum seat count. Only legal before Start, and
// never below the number of players already seated.
func (t *Table) SetPlayerLimit(n int) error {
	if t.started {
		return ErrGameAlreadyStarted
	}
	if n < len(t.players) {
		return ErrBadConfigOption
	}
	t.maxPlayers = n
	return nil
}

// AddPlayer seats a new player with a fresh secret token and the table's
// current starting stack, then uniformly re-permutes the seat order so no
// joining order confers a positional advantage.
func (t *Table) AddPlayer(name, address string) (seatID int, secretToken string, err error) {
	if t.started || len(t.players) >= t.maxPlayers {
		return 0, "", ErrGameFull
	}

	id := t.nextSeatID
	t.nextSeatID++
	token := t.tokens.NewToken()
	t.players[id] = &Player{
		ID:          id,
		Name:        name,
		Address:     address,
		SecretToken: token,
		Chips:       t.startingStack,
	}
	t.seatOrder = append(t.seatOrder, id)
	t.shuffleSeatOrder()

	t.log.Info().Int("player_id", id).Str("name", name).Msg("player joined")
	return id, token, nil
}

func (t *Table) shuffleSeatOrder() {
	for i := len(t.seatOrder) - 1; i > 0; i-- {
		j := t.rng.Intn(i + 1)
		t.seatOrder[i], t.seatOrder[j] = t.seatOrder[j], t.seatOrder[i]
	}
}

// Address returns the callback address a seated player registered with, so
// a Table can serve as a callback.AddressBook.
func (t *Table) Address(playerID int) (string, bool) {
	p, ok := t.players[playerID]
	if !ok {
		return "", false
	}
	return p.Address, true
}

// Started reports whether Start has been called.
func (t *Table) Started() bool { return t.started }

// GameOver reports whether the table has reached its terminal state.
func (t *Table) GameOver() bool { return t.gameOver }
