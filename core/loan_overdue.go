package core

import (
	"time"
)

// LoanOverdueEventType is the event type identifier.
const LoanOverdueEventType = "LoanOverdue"

// LoanOverdue represents an open loan found past its due date; the member is restricted.
type LoanOverdue struct {
	EventType       string       `json:"eventType"`
	LoanID          string       `json:"loanId"`
	UserID          UserIDString `json:"userId"`
	BookID          BookIDString `json:"bookId"`
	BookTitle       string       `json:"bookTitle"`
	DueDate         time.Time    `json:"dueDate"`
	RestrictedUntil time.Time    `json:"restrictedUntil"`
	OccurredAt      OccurredAt   `json:"occurredAt"`
}

// BuildLoanOverdue creates a new LoanOverdue event.
func BuildLoanOverdue(
	loanID string,
	userID string,
	bookID string,
	bookTitle string,
	dueDate time.Time,
	restrictedUntil time.Time,
	occurredAt time.Time,
) LoanOverdue {

	return LoanOverdue{
		EventType:       LoanOverdueEventType,
		LoanID:          loanID,
		UserID:          userID,
		BookID:          bookID,
		BookTitle:       bookTitle,
		DueDate:         ToOccurredAt(dueDate),
		RestrictedUntil: ToOccurredAt(restrictedUntil),
		OccurredAt:      ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e LoanOverdue) IsEventType() string {
	return LoanOverdueEventType
}

// HasOccurredAt returns when this event occurred.
func (e LoanOverdue) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// ConcernsUser returns the borrowing member.
func (e LoanOverdue) ConcernsUser() string {
	return e.UserID
}
