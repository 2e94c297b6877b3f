package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinePaidEventType is the event type identifier.
const FinePaidEventType = "FinePaid"

// FinePaid represents a fine settled or waived by an administrator.
type FinePaid struct {
	EventType  string          `json:"eventType"`
	FineID     string          `json:"fineId"`
	UserID     UserIDString    `json:"userId"`
	Amount     decimal.Decimal `json:"amount"`
	OccurredAt OccurredAt      `json:"occurredAt"`
}

// BuildFinePaid creates a new FinePaid event.
func BuildFinePaid(fineID string, userID string, amount decimal.Decimal, occurredAt time.Time) FinePaid {
	return FinePaid{
		EventType:  FinePaidEventType,
		FineID:     fineID,
		UserID:     userID,
		Amount:     amount,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e FinePaid) IsEventType() string {
	return FinePaidEventType
}

// HasOccurredAt returns when this event occurred.
func (e FinePaid) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// ConcernsUser returns the member whose fine was settled.
func (e FinePaid) ConcernsUser() string {
	return e.UserID
}
