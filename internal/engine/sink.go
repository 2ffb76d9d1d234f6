package engine

// Sink is the capability the event emitter pushes through. Production binds
// it to an HTTP callback client; tests substitute an in-memory recorder with
// deterministic ordering. A Sink must not block the caller on delivery
// completion — the engine's mutation is already committed by the time Send
// is called.
type Sink interface {
	Send(playerID int, event any)
}

// MultiSink fans a single Send out to every wrapped Sink, letting the
// callback push and the websocket transport receive the same event stream
// without either depending on the other.
type MultiSink []Sink

func (m MultiSink) Send(playerID int, event any) {
	for _, s := range m {
		s.Send(playerID, event)
	}
}

// broadcast sends event to every non-eliminated player. Eliminated players
// never receive events, per the event emitter's audience rule.
func (t *Table) broadcast(event any) {
	for _, id := range t.seatOrder {
		p := t.players[id]
		if p.Eliminated {
			continue
		}
		t.sink.Send(p.ID, event)
	}
}
