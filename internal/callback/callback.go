// Package callback implements engine.Sink by POSTing each player's events to
// the HTTP address they registered with.
package callback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const deliveryTimeout = 2 * time.Second

// AddressBook resolves a player id to the address they registered with.
type AddressBook interface {
	Address(playerID int) (string, bool)
}

// Sink POSTs each event to its recipient's address, fire-and-forget. The
// Game never observes or waits on delivery: a failed or slow callback never
// blocks play.
type Sink struct {
	log       zerolog.Logger
	addresses AddressBook
	client    *http.Client
}

// New builds a Sink with no AddressBook attached yet. The table a Sink
// delivers for is itself an AddressBook, but it is constructed with the Sink
// as a dependency, so callers wire the two together with SetAddressBook
// immediately after constructing the table.
func New(log zerolog.Logger) *Sink {
	return &Sink{
		log:    log.With().Str("component", "callback").Logger(),
		client: &http.Client{Timeout: deliveryTimeout},
	}
}

// SetAddressBook attaches the AddressBook events are delivered against. It
// must be called before the Sink is used.
func (s *Sink) SetAddressBook(book AddressBook) {
	s.addresses = book
}

// Send delivers event to playerID's registered address in its own goroutine.
func (s *Sink) Send(playerID int, event any) {
	if s.addresses == nil {
		return
	}
	addr, ok := s.addresses.Address(playerID)
	if !ok || addr == "" {
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		s.log.Warn().Err(err).Int("player_id", playerID).Msg("failed to marshal event")
		return
	}

	go s.deliver(playerID, addr, body)
}

func (s *Sink) deliver(playerID int, addr string, body []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, addr, bytes.NewReader(body))
	if err != nil {
		s.log.Warn().Err(err).Int("player_id", playerID).Msg("failed to build callback request")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Warn().Err(err).Int("player_id", playerID).Str("address", addr).Msg("callback delivery failed")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		s.log.Warn().Int("player_id", playerID).Str("address", addr).
			Err(fmt.Errorf("unexpected status %d", resp.StatusCode)).
			Msg("callback rejected")
	}
}
