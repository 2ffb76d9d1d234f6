package transport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type testEvent struct {
	Kind string `json:"kind"`
}

func newTestServer(hub *Hub, playerID int) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.HandleWebSocket(playerID, w, r)
	}))
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestSendDeliversEventToSubscribedClient(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	srv := newTestServer(hub, 0)
	defer srv.Close()

	conn := dial(t, srv)

	// HandleWebSocket registers the client asynchronously from Upgrade;
	// give the registration goroutine a moment to run.
	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.clients[0]) == 1
	}, time.Second, time.Millisecond)

	hub.Send(0, testEvent{Kind: "ping"})

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	_, body, err := conn.ReadMessage()
	require.NoError(t, err)

	var got testEvent
	require.NoError(t, json.Unmarshal(body, &got))
	require.Equal(t, "ping", got.Kind)
}

func TestSendToPlayerWithNoSubscribersIsANoOp(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	require.NotPanics(t, func() {
		hub.Send(42, testEvent{Kind: "ping"})
	})
}

func TestUnregisterRemovesClientOnDisconnect(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	srv := newTestServer(hub, 0)
	defer srv.Close()

	conn := dial(t, srv)
	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.clients[0]) == 1
	}, time.Second, time.Millisecond)

	require.NoError(t, conn.Close())

	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		return len(hub.clients[0]) == 0
	}, time.Second, time.Millisecond)
}
