package expirereservations

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/core"
)

// State is one candidate reservation as it is inside the unit of work.
type State struct {
	Now         time.Time
	Reservation circulation.Reservation
	BookTitle   string
}

// Decide implements the expiry rule for a single reservation.
//
//	GIVEN: A reservation that is RESERVED, notified and whose pickup deadline is before now
//	THEN: ReservationExpired event is generated
//	IDEMPOTENCY: Any other reservation generates no event
func Decide(s State) core.DecisionResult {
	r := s.Reservation

	if r.Status != circulation.ReservationReserved || !r.Notified || !r.ReservedUntil.Before(s.Now) {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(
		core.BuildReservationExpired(r.ID, r.UserID, r.BookID, s.BookTitle, r.ReservedUntil, s.Now))
}
