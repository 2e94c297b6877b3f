package returnbook

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/core"
)

// State is the open loan to close.
type State struct {
	Now    time.Time
	FineID string

	LoanFound bool
	Loan      circulation.Loan
	BookTitle string
}

// Decide implements the return rules.
//
// Business Rules:
//
//	GIVEN: An open loan of the member for the book
//	WHEN: ReturnBook command is received
//	THEN: BookReturned event is generated
//	AND: for a return after the due date, a FineIssued event of 0.50 per started day late
//	     which restricts the member for one month
//	ERROR: NotFound if there is no open loan
func Decide(s State, command Command) core.DecisionResult {
	if !s.LoanFound {
		return core.ErrorDecision(NoOpenLoan())
	}

	daysOverdue := circulation.DaysOverdue(s.Loan.DueDate, s.Now)

	reservationID := ""
	if s.Loan.ReservationID != nil {
		reservationID = *s.Loan.ReservationID
	}

	returned := core.BuildBookReturned(
		s.Loan.ID,
		reservationID,
		command.UserID,
		command.BookID,
		s.BookTitle,
		s.Loan.DueDate,
		daysOverdue,
		s.Now)

	if !returned.WasLate() {
		return core.SuccessDecision(returned)
	}

	return core.SuccessDecision(
		returned,
		core.BuildLateReturnFineIssued(
			s.FineID,
			command.UserID,
			command.BookID,
			circulation.LateFee(daysOverdue),
			daysOverdue,
			circulation.RestrictedUntil(s.Now),
			s.Now))
}

// NoOpenLoan is the rejection for returning a book that is not borrowed.
func NoOpenLoan() error {
	return circulation.NotFound("No open loan found for this book.")
}
