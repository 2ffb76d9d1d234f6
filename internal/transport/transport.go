// Package transport implements a second engine.Sink that fans event
// envelopes out over websocket connections, additive to the callback push —
// any bot or dashboard that opens a connection sees the same event stream a
// player's HTTP callback receives.
package transport

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	sendBuffer = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub tracks the websocket connections subscribed to each player id's event
// stream and implements engine.Sink by fanning Send out to them.
type Hub struct {
	log zerolog.Logger

	mu      sync.RWMutex
	clients map[int][]*client
}

type client struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
}

// NewHub constructs an empty Hub.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		log:     log.With().Str("component", "transport").Logger(),
		clients: make(map[int][]*client),
	}
}

// Send implements engine.Sink: it marshals event to JSON and pushes it to
// every connection subscribed to playerID, dropping it for any connection
// whose send buffer is full rather than blocking the caller.
func (h *Hub) Send(playerID int, event any) {
	h.mu.RLock()
	subs := h.clients[playerID]
	h.mu.RUnlock()
	if len(subs) == 0 {
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		h.log.Warn().Err(err).Int("player_id", playerID).Msg("failed to marshal event")
		return
	}

	for _, c := range subs {
		select {
		case c.send <- body:
		default:
			h.log.Warn().Int("player_id", playerID).Msg("dropping event, client send buffer full")
		}
	}
}

// HandleWebSocket upgrades the request and subscribes the connection to
// playerID's event stream until it disconnects.
func (h *Hub) HandleWebSocket(playerID int, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}

	h.mu.Lock()
	h.clients[playerID] = append(h.clients[playerID], c)
	h.mu.Unlock()

	go h.readPump(playerID, c)
	go h.writePump(c)
}

func (h *Hub) unregister(playerID int, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs := h.clients[playerID]
	for i, sub := range subs {
		if sub == c {
			h.clients[playerID] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
}

// readPump only exists to observe the connection's lifetime and pongs; the
// transport is a one-way event feed, so any inbound message is discarded.
func (h *Hub) readPump(playerID int, c *client) {
	defer func() {
		h.unregister(playerID, c)
		close(c.done)
		_ = c.conn.Close()
	}()

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case body, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, body); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			return
		}
	}
}
