package shell

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// BuildTransaction creates the audit record for a circulation action.
func BuildTransaction(userID, bookID string, action circulation.ActionType, at time.Time) circulation.Transaction {
	at = circulation.ToTimestamp(at)

	return circulation.Transaction{
		ID:         circulation.NewAuditID(at),
		UserID:     userID,
		BookID:     bookID,
		ActionType: action,
		Timestamp:  at,
	}
}
