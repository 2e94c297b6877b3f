package core

import (
	"time"
)

// ReservationExpiredEventType is the event type identifier.
const ReservationExpiredEventType = "ReservationExpired"

// ReservationExpired represents a hold cancelled because the copy was not picked up in time.
type ReservationExpired struct {
	EventType     string       `json:"eventType"`
	ReservationID string       `json:"reservationId"`
	UserID        UserIDString `json:"userId"`
	BookID        BookIDString `json:"bookId"`
	BookTitle     string       `json:"bookTitle"`
	ReservedUntil time.Time    `json:"reservedUntil"`
	OccurredAt    OccurredAt   `json:"occurredAt"`
}

// BuildReservationExpired creates a new ReservationExpired event.
func BuildReservationExpired(
	reservationID string,
	userID string,
	bookID string,
	bookTitle string,
	reservedUntil time.Time,
	occurredAt time.Time,
) ReservationExpired {

	return ReservationExpired{
		EventType:     ReservationExpiredEventType,
		ReservationID: reservationID,
		UserID:        userID,
		BookID:        bookID,
		BookTitle:     bookTitle,
		ReservedUntil: ToOccurredAt(reservedUntil),
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e ReservationExpired) IsEventType() string {
	return ReservationExpiredEventType
}

// HasOccurredAt returns when this event occurred.
func (e ReservationExpired) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// ConcernsUser returns the member who held the reservation.
func (e ReservationExpired) ConcernsUser() string {
	return e.UserID
}
