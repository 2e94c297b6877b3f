package core

import (
	"time"
)

// BookCopiesAddedEventType is the event type identifier.
const BookCopiesAddedEventType = "BookCopiesAdded"

// BookCopiesAdded represents copies of a title added to the inventory by an administrator.
// NewTitle is true when the title was not in the inventory before.
type BookCopiesAdded struct {
	EventType  string       `json:"eventType"`
	BookID     BookIDString `json:"bookId"`
	ISBN       string       `json:"isbn"`
	Title      string       `json:"title"`
	Copies     int          `json:"copies"`
	NewTitle   bool         `json:"newTitle"`
	OccurredAt OccurredAt   `json:"occurredAt"`
}

// BuildBookCopiesAdded creates a new BookCopiesAdded event.
func BuildBookCopiesAdded(bookID, isbn, title string, copies int, newTitle bool, occurredAt time.Time) BookCopiesAdded {
	return BookCopiesAdded{
		EventType:  BookCopiesAddedEventType,
		BookID:     bookID,
		ISBN:       isbn,
		Title:      title,
		Copies:     copies,
		NewTitle:   newTitle,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e BookCopiesAdded) IsEventType() string {
	return BookCopiesAddedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookCopiesAdded) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// ConcernsUser returns an empty id; inventory changes are not about a member.
func (e BookCopiesAdded) ConcernsUser() string {
	return ""
}
