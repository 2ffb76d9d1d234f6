package registry

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/lox/nlhe/internal/engine"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type noopSink struct{}

func (noopSink) Send(playerID int, event any) {}

func newTestTable() *engine.Table {
	return engine.NewTable(rand.New(rand.NewSource(1)), noopSink{})
}

func newTestRegistry() *Registry {
	return New(zerolog.Nop())
}

func TestRegisterRejectsDuplicateID(t *testing.T) {
	r := newTestRegistry()
	require.NoError(t, r.Register("table-1", newTestTable()))

	err := r.Register("table-1", newTestTable())
	require.Error(t, err)
	require.Equal(t, "registry: game already exists: table-1", err.Error())
}

func TestDispatchUnknownGameReturnsSentinel(t *testing.T) {
	r := newTestRegistry()
	err := r.Dispatch("missing", func(*engine.Table) error { return nil })
	require.ErrorIs(t, err, ErrUnknownGame)
}

func TestDispatchRunsFnAgainstRegisteredTable(t *testing.T) {
	r := newTestRegistry()
	tbl := newTestTable()
	require.NoError(t, r.Register("table-1", tbl))

	var seen *engine.Table
	err := r.Dispatch("table-1", func(tb *engine.Table) error {
		seen = tb
		return nil
	})
	require.NoError(t, err)
	require.Same(t, tbl, seen)
}

// TestDispatchSerializesPerGameNotGlobally verifies that two different games
// can be dispatched concurrently without blocking on each other's lock.
func TestDispatchSerializesPerGameNotGlobally(t *testing.T) {
	r := newTestRegistry()
	require.NoError(t, r.Register("a", newTestTable()))
	require.NoError(t, r.Register("b", newTestTable()))

	release := make(chan struct{})
	started := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = r.Dispatch("a", func(*engine.Table) error {
			close(started)
			<-release
			return nil
		})
	}()

	<-started
	// Game "b" must not be blocked by game "a" holding its own lock.
	done := make(chan struct{})
	go func() {
		_ = r.Dispatch("b", func(*engine.Table) error { return nil })
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatch to an unrelated game blocked on another game's lock")
	}

	close(release)
	wg.Wait()
}

func TestShutdownStopsJanitorsAndReturnsBeforeDeadline(t *testing.T) {
	r := newTestRegistry()
	require.NoError(t, r.Register("a", newTestTable()))
	require.NoError(t, r.Register("b", newTestTable()))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, r.Shutdown(ctx))
}

