package memberstatus

import (
	"slices"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// Snapshot is the raw data the projection works on.
type Snapshot struct {
	Now          time.Time
	User         circulation.User
	UnpaidFines  circulation.UnpaidFines
	OpenLoans    []circulation.Loan
	Reservations []circulation.Reservation
}

// ProjectMemberStatus is a pure function that turns a Snapshot into a MemberStatus.
// AccruedFine is what a return at Now would cost. CanReserve reflects restriction and unpaid fines only,
// the book level rules are checked when reserving.
func ProjectMemberStatus(s Snapshot) MemberStatus {
	status := MemberStatus{
		UserID:             s.User.ID,
		Name:               s.User.Name,
		RestrictedUntil:    s.User.RestrictedUntil,
		Restricted:         s.User.IsRestrictedAt(s.Now),
		UnpaidFineCount:    s.UnpaidFines.Count,
		UnpaidFineTotal:    s.UnpaidFines.Total,
		OpenLoans:          make([]LoanInfo, 0, len(s.OpenLoans)),
		ActiveReservations: make([]ReservationInfo, 0, len(s.Reservations)),
	}

	status.CanReserve = !status.Restricted && status.UnpaidFineCount == 0

	for _, loan := range s.OpenLoans {
		days := circulation.DaysOverdue(loan.DueDate, s.Now)
		status.OpenLoans = append(status.OpenLoans, LoanInfo{
			LoanID:      loan.ID,
			BookID:      loan.BookID,
			BorrowedAt:  loan.BorrowDate,
			DueDate:     loan.DueDate,
			Overdue:     days > 0,
			DaysOverdue: days,
			AccruedFine: circulation.LateFee(days),
		})
	}

	for _, reservation := range s.Reservations {
		status.ActiveReservations = append(status.ActiveReservations, ReservationInfo{
			ReservationID: reservation.ID,
			BookID:        reservation.BookID,
			Status:        string(reservation.Status),
			ReservedUntil: reservation.ReservedUntil,
		})
	}

	slices.SortFunc(status.OpenLoans, func(a, b LoanInfo) int {
		return a.DueDate.Compare(b.DueDate)
	})

	return status
}
