package core

import (
	"time"
)

// BookIDString represents a book identifier
type BookIDString = string

// UserIDString represents a user identifier
type UserIDString = string

// OccurredAt represents when an event occurred
type OccurredAt = time.Time

// ToOccurredAt converts a time to OccurredAt with UTC normalization and second precision
func ToOccurredAt(t time.Time) OccurredAt {
	return t.UTC().Truncate(time.Second)
}
