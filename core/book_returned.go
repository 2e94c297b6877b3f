package core

import (
	"time"
)

// BookReturnedEventType is the event type identifier.
const BookReturnedEventType = "BookReturned"

// BookReturned represents a loan closed by the member bringing the copy back.
// DaysOverdue is zero for a return on time.
type BookReturned struct {
	EventType     string       `json:"eventType"`
	LoanID        string       `json:"loanId"`
	ReservationID string       `json:"reservationId,omitempty"`
	UserID        UserIDString `json:"userId"`
	BookID        BookIDString `json:"bookId"`
	BookTitle     string       `json:"bookTitle"`
	DueDate       time.Time    `json:"dueDate"`
	DaysOverdue   int          `json:"daysOverdue"`
	OccurredAt    OccurredAt   `json:"occurredAt"`
}

// BuildBookReturned creates a new BookReturned event.
func BuildBookReturned(
	loanID string,
	reservationID string,
	userID string,
	bookID string,
	bookTitle string,
	dueDate time.Time,
	daysOverdue int,
	occurredAt time.Time,
) BookReturned {

	return BookReturned{
		EventType:     BookReturnedEventType,
		LoanID:        loanID,
		ReservationID: reservationID,
		UserID:        userID,
		BookID:        bookID,
		BookTitle:     bookTitle,
		DueDate:       ToOccurredAt(dueDate),
		DaysOverdue:   daysOverdue,
		OccurredAt:    ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e BookReturned) IsEventType() string {
	return BookReturnedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookReturned) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// ConcernsUser returns the returning member.
func (e BookReturned) ConcernsUser() string {
	return e.UserID
}

// WasLate reports whether the copy came back after its due date.
func (e BookReturned) WasLate() bool {
	return e.DaysOverdue > 0
}
