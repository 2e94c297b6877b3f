package memberstatus

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanInfo is an open loan as seen by the member.
type LoanInfo struct {
	LoanID      string
	BookID      string
	BorrowedAt  time.Time
	DueDate     time.Time
	Overdue     bool
	DaysOverdue int
	AccruedFine decimal.Decimal
}

// ReservationInfo is an active reservation as seen by the member.
type ReservationInfo struct {
	ReservationID string
	BookID        string
	Status        string
	ReservedUntil time.Time
}

// MemberStatus is the query result.
type MemberStatus struct {
	UserID             string
	Name               string
	RestrictedUntil    *time.Time
	Restricted         bool
	UnpaidFineCount    int
	UnpaidFineTotal    decimal.Decimal
	CanReserve         bool
	OpenLoans          []LoanInfo
	ActiveReservations []ReservationInfo
}
