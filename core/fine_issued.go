package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// FineIssuedEventType is the event type identifier.
const FineIssuedEventType = "FineIssued"

// FineIssued represents a fine charged to a member, either for a late return or by an administrator.
// RestrictedUntil is set when the fine comes with a borrowing restriction.
type FineIssued struct {
	EventType       string          `json:"eventType"`
	FineID          string          `json:"fineId"`
	UserID          UserIDString    `json:"userId"`
	BookID          BookIDString    `json:"bookId,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Reason          string          `json:"reason"`
	DaysOverdue     int             `json:"daysOverdue,omitempty"`
	RestrictedUntil *time.Time      `json:"restrictedUntil,omitempty"`
	OccurredAt      OccurredAt      `json:"occurredAt"`
}

// BuildFineIssued creates a new FineIssued event.
func BuildFineIssued(
	fineID string,
	userID string,
	bookID string,
	amount decimal.Decimal,
	reason string,
	occurredAt time.Time,
) FineIssued {

	return FineIssued{
		EventType:  FineIssuedEventType,
		FineID:     fineID,
		UserID:     userID,
		BookID:     bookID,
		Amount:     amount,
		Reason:     reason,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// BuildLateReturnFineIssued creates a FineIssued event for a late return, which always restricts the member.
func BuildLateReturnFineIssued(
	fineID string,
	userID string,
	bookID string,
	amount decimal.Decimal,
	daysOverdue int,
	restrictedUntil time.Time,
	occurredAt time.Time,
) FineIssued {

	restricted := ToOccurredAt(restrictedUntil)
	event := BuildFineIssued(fineID, userID, bookID, amount, LateReturnFineReason, occurredAt)
	event.DaysOverdue = daysOverdue
	event.RestrictedUntil = &restricted

	return event
}

// LateReturnFineReason is the reason recorded on fines for late returns.
const LateReturnFineReason = "late return"

// IsEventType returns the event type identifier.
func (e FineIssued) IsEventType() string {
	return FineIssuedEventType
}

// HasOccurredAt returns when this event occurred.
func (e FineIssued) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// ConcernsUser returns the fined member.
func (e FineIssued) ConcernsUser() string {
	return e.UserID
}
