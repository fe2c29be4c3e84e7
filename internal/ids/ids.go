// Package ids generates session identifiers for emitter instances. Session IDs
// are ULIDs so diagnostic log lines and outgoing message IDs sort by creation
// time.
package ids

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewSessionID returns a time-sortable ULID encoded as a 26-character string.
// It is safe for concurrent use.
func NewSessionID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()

	id := ulid.MustNew(ulid.Timestamp(time.Now()), entropy)
	return id.String()
}
