package addbookcopies

import (
	"strings"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/core"
)

// State tells whether the book is already in the inventory.
type State struct {
	Now       time.Time
	BookFound bool
	Book      circulation.Book
}

// Decide implements the provisioning rules.
//
//	ERROR: BadRequest if copies is not positive
//	ERROR: BadRequest if a new book has no title
func Decide(s State, command Command) core.DecisionResult {
	if command.Copies <= 0 {
		return core.ErrorDecision(circulation.BadRequest("The number of copies must be greater than zero."))
	}

	if s.BookFound {
		return core.SuccessDecision(
			core.BuildBookCopiesAdded(s.Book.ID, s.Book.ISBN, s.Book.Title, command.Copies, false, s.Now))
	}

	title := strings.TrimSpace(command.Title)
	if title == "" {
		return core.ErrorDecision(circulation.BadRequest("A new book needs a title."))
	}

	return core.SuccessDecision(
		core.BuildBookCopiesAdded(command.BookID, strings.TrimSpace(command.ISBN), title, command.Copies, true, s.Now))
}
