package callback

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type staticBook map[int]string

func (b staticBook) Address(playerID int) (string, bool) {
	addr, ok := b[playerID]
	return addr, ok
}

type testEvent struct {
	Kind string `json:"kind"`
}

func TestSendDeliversEventToRegisteredAddress(t *testing.T) {
	received := make(chan []byte, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		received <- body
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sink := New(zerolog.Nop())
	sink.SetAddressBook(staticBook{0: srv.URL})

	sink.Send(0, testEvent{Kind: "ping"})

	select {
	case body := <-received:
		var got testEvent
		require.NoError(t, json.Unmarshal(body, &got))
		require.Equal(t, "ping", got.Kind)
	case <-time.After(time.Second):
		t.Fatal("callback was not delivered")
	}
}

func TestSendWithoutAddressBookDoesNotPanic(t *testing.T) {
	sink := New(zerolog.Nop())
	require.NotPanics(t, func() {
		sink.Send(0, testEvent{Kind: "ping"})
	})
}

func TestSendToUnregisteredPlayerIsANoOp(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	sink := New(zerolog.Nop())
	sink.SetAddressBook(staticBook{0: srv.URL})

	sink.Send(1, testEvent{Kind: "ping"})

	time.Sleep(50 * time.Millisecond)
	require.False(t, called)
}
