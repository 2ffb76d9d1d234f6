// Package identity mints the opaque secret tokens issued to players when
// they join a table.
package identity

import "github.com/google/uuid"

// Generator issues secret tokens backed by github.com/google/uuid, matching
// the teacher's bot-ID generation in its HTTP registration handler.
type Generator struct{}

// NewToken returns a freshly generated opaque token.
func (Generator) NewToken() string {
	return uuid.New().String()
}
