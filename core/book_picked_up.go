package core

import (
	"time"
)

// BookPickedUpEventType is the event type identifier.
const BookPickedUpEventType = "BookPickedUp"

// BookPickedUp represents a reserved copy handed over to the member; a loan starts.
type BookPickedUp struct {
	EventType     string       `json:"eventType"`
	LoanID        string       `json:"loanId"`
	ReservationID string       `json:"reservationId"`
	UserID        UserIDString `json:"userId"`
	BookID        BookIDString `json:"bookId"`
	BookTitle     string       `json:"bookTitle"`
	DueDate       time.Time    `json:"dueDate"`
	OccurredAt    OccurredAt   `json:"occurredAt"`
}

// BuildBookPickedUp creates a new BookPickedUp event.
func BuildBookPickedUp(
	loanID string,
	reservationID string,
	userID string,
	bookID string,
	bookTitle string,
	dueDate time.Time,
	occurredAt time.Time,
) BookPickedUp {

	return BookPickedUp{
		EventType:     BookPickedUpEventType,
		LoanID:        loanID,
		ReservationID: reservationID,
		UserID:        userID,
		BookID:        bookID,
		BookTitle:     bookTitle,
		DueDate:       ToOccurredAt(dueDate),
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e BookPickedUp) IsEventType() string {
	return BookPickedUpEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookPickedUp) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// ConcernsUser returns the borrowing member.
func (e BookPickedUp) ConcernsUser() string {
	return e.UserID
}
