package detectoverdueloans

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/core"
)

// State is one overdue loan as it is inside the unit of work.
type State struct {
	Now                  time.Time
	Loan                 circulation.Loan
	BookTitle            string
	BorrowedReservations int
	MemberRestricted     bool
}

// Decide tells whether the member has to be notified about the overdue loan.
//
//	GIVEN: An open loan whose due date is before now
//	THEN: LoanOverdue event is generated on first detection
//	IDEMPOTENCY: A loan that was already flagged generates no event
func Decide(s State) core.DecisionResult {
	if s.Loan.IsOpen() && s.Loan.DueDate.Before(s.Now) && (s.BorrowedReservations > 0 || !s.MemberRestricted) {
		return core.SuccessDecision(
			core.BuildLoanOverdue(
				s.Loan.ID,
				s.Loan.UserID,
				s.Loan.BookID,
				s.BookTitle,
				s.Loan.DueDate,
				circulation.RestrictedUntil(s.Now),
				s.Now))
	}

	return core.IdempotentDecision()
}
