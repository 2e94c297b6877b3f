package circulation

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

var (
	auditEntropyMu sync.Mutex
	auditEntropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewID returns a new entity id. UUIDv7 ids sort by creation time.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// NewAuditID returns a ULID for an audit transaction recorded at the given time.
// Ids generated in the same millisecond are strictly increasing within the process.
func NewAuditID(at time.Time) string {
	auditEntropyMu.Lock()
	defer auditEntropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(at), auditEntropy).String()
}
