package pickupbook

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/core"
)

// State is the reservation to pick up and the book it holds.
type State struct {
	Now    time.Time
	LoanID string

	ReservationFound bool
	Reservation      circulation.Reservation
	BookTitle        string
}

// Decide implements the pickup rules.
//
// Business Rules:
//
//	GIVEN: A RESERVED reservation of the member for the book
//	WHEN: PickUpBook command is received
//	THEN: BookPickedUp event is generated, the loan is due at now + 14 days
//	ERROR: NotFound if there is no RESERVED reservation
//	ERROR: BadRequest if the pickup deadline has passed
//	ERROR: BadRequest if the reservation is no longer RESERVED
func Decide(s State, command Command) core.DecisionResult {
	if !s.ReservationFound {
		return core.ErrorDecision(circulation.NotFound("No reservation found for this book."))
	}

	if s.Reservation.ReservedUntil.Before(s.Now) {
		return core.ErrorDecision(Expired())
	}

	if s.Reservation.Status != circulation.ReservationReserved {
		return core.ErrorDecision(NotReserved())
	}

	return core.SuccessDecision(
		core.BuildBookPickedUp(
			s.LoanID,
			s.Reservation.ID,
			command.UserID,
			command.BookID,
			s.BookTitle,
			circulation.DueDate(s.Now),
			s.Now))
}

// Expired is the rejection for a reservation past its pickup deadline.
func Expired() error {
	return circulation.BadRequest("Your reservation has expired. Please reserve the book again.")
}

// NotReserved is the rejection for a reservation that was already picked up or cancelled.
func NotReserved() error {
	return circulation.BadRequest("This reservation can no longer be picked up.")
}

// BookGone is returned when the book row disappeared between reading and updating it.
func BookGone() error {
	return circulation.NotFound("Book not found.")
}
