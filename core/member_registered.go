package core

import (
	"time"
)

// MemberRegisteredEventType is the event type identifier.
const MemberRegisteredEventType = "MemberRegistered"

// MemberRegistered represents a new library member.
type MemberRegistered struct {
	EventType  string       `json:"eventType"`
	UserID     UserIDString `json:"userId"`
	Name       string       `json:"name"`
	OccurredAt OccurredAt   `json:"occurredAt"`
}

// BuildMemberRegistered creates a new MemberRegistered event.
func BuildMemberRegistered(userID, name string, occurredAt time.Time) MemberRegistered {
	return MemberRegistered{
		EventType:  MemberRegisteredEventType,
		UserID:     userID,
		Name:       name,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e MemberRegistered) IsEventType() string {
	return MemberRegisteredEventType
}

// HasOccurredAt returns when this event occurred.
func (e MemberRegistered) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// ConcernsUser returns the new member.
func (e MemberRegistered) ConcernsUser() string {
	return e.UserID
}
