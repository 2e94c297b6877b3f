package reservebook

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/shell"
)

// State is everything Decide needs to know about the member and the book.
type State struct {
	Now           time.Time
	ReservationID string

	UserFound   bool
	User        circulation.User
	UnpaidFines circulation.UnpaidFines

	BookFound bool
	Book      circulation.Book

	ActiveReservations int
	RecentLoans        int
}

// Decide implements the eligibility rules for a reservation.
//
// Business Rules:
//
//	GIVEN: A member with UserID and a book with BookID
//	WHEN: ReserveBook command is received
//	THEN: BookReserved event is generated, the hold lasts until now + 7 days
//	ERROR: NotFound if the member does not exist
//	ERROR: Forbidden if the member is restricted, naming the restriction end
//	ERROR: Forbidden if the member has unpaid fines, naming the total
//	ERROR: NotFound if the book does not exist
//	ERROR: BadRequest if the member already holds or borrows this book
//	ERROR: Forbidden if the member borrowed 5 books within the last 7 days
//	ERROR: BadRequest if no copy is available
func Decide(s State, command Command, messages shell.Messages) core.DecisionResult {
	if !s.UserFound {
		return core.ErrorDecision(circulation.NotFound("User not found."))
	}

	if s.User.IsRestrictedAt(s.Now) {
		return core.ErrorDecision(circulation.Forbidden(
			"You are restricted from reserving books until %s.",
			messages.Date(*s.User.RestrictedUntil)))
	}

	if s.UnpaidFines.Count > 0 {
		return core.ErrorDecision(circulation.Forbidden(
			"You have unpaid fines totaling %s. Please pay them before reserving a book.",
			messages.Amount(s.UnpaidFines.Total)))
	}

	if !s.BookFound {
		return core.ErrorDecision(circulation.NotFound("Book not found."))
	}

	if s.ActiveReservations > 0 {
		return core.ErrorDecision(circulation.BadRequest("You have already reserved or borrowed this book."))
	}

	if s.RecentLoans >= circulation.BorrowLimit {
		return core.ErrorDecision(circulation.Forbidden(
			"You have reached the borrow limit of %d books within 7 days.", circulation.BorrowLimit))
	}

	if s.Book.CopiesAvailable <= 0 {
		return core.ErrorDecision(Unavailable(s.Book))
	}

	return core.SuccessDecision(
		core.BuildBookReserved(
			s.ReservationID,
			command.UserID,
			command.BookID,
			s.Book.Title,
			circulation.ReservedUntil(s.Now),
			s.Now))
}

// Unavailable is the rejection for a book without available copies.
func Unavailable(book circulation.Book) error {
	return circulation.BadRequest("%q is currently unavailable.", book.Title)
}
