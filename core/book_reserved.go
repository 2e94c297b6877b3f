package core

import (
	"time"
)

// BookReservedEventType is the event type identifier.
const BookReservedEventType = "BookReserved"

// BookReserved represents a hold placed on a book; one copy is set aside until ReservedUntil.
type BookReserved struct {
	EventType     string       `json:"eventType"`
	ReservationID string       `json:"reservationId"`
	UserID        UserIDString `json:"userId"`
	BookID        BookIDString `json:"bookId"`
	BookTitle     string       `json:"bookTitle"`
	ReservedUntil time.Time    `json:"reservedUntil"`
	OccurredAt    OccurredAt   `json:"occurredAt"`
}

// BuildBookReserved creates a new BookReserved event.
func BuildBookReserved(
	reservationID string,
	userID string,
	bookID string,
	bookTitle string,
	reservedUntil time.Time,
	occurredAt time.Time,
) BookReserved {

	return BookReserved{
		EventType:     BookReservedEventType,
		ReservationID: reservationID,
		UserID:        userID,
		BookID:        bookID,
		BookTitle:     bookTitle,
		ReservedUntil: ToOccurredAt(reservedUntil),
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e BookReserved) IsEventType() string {
	return BookReservedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookReserved) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// ConcernsUser returns the member who placed the hold.
func (e BookReserved) ConcernsUser() string {
	return e.UserID
}
