package issuefine

import (
	"strings"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/core"
)

// DefaultReason is recorded when the administrator gives none.
const DefaultReason = "administrative fine"

// State holds what is known about the member and the optional book.
type State struct {
	Now    time.Time
	FineID string

	UserFound bool
	BookFound bool
}

// Decide implements the rules for a manual fine.
//
//	ERROR: NotFound if the member does not exist
//	ERROR: NotFound if a book is given and does not exist
//	ERROR: BadRequest if the amount, rounded to cents, is not positive
func Decide(s State, command Command) core.DecisionResult {
	if !s.UserFound {
		return core.ErrorDecision(circulation.NotFound("User not found."))
	}

	if command.BookID != "" && !s.BookFound {
		return core.ErrorDecision(circulation.NotFound("Book not found."))
	}

	amount := command.Amount.Round(2)
	if !amount.IsPositive() {
		return core.ErrorDecision(circulation.BadRequest("The fine amount must be greater than zero."))
	}

	reason := strings.TrimSpace(command.Reason)
	if reason == "" {
		reason = DefaultReason
	}

	return core.SuccessDecision(
		core.BuildFineIssued(s.FineID, command.UserID, command.BookID, amount, reason, s.Now))
}
