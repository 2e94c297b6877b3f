package circulation

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// HoldPeriod is how long a reserved copy waits for pickup.
	HoldPeriod = 7 * 24 * time.Hour

	// LoanPeriod is how long a picked up copy may be kept.
	LoanPeriod = 14 * 24 * time.Hour

	// BorrowLimitWindow is the trailing window in which loans count against the borrow limit.
	BorrowLimitWindow = 7 * 24 * time.Hour

	// BorrowLimit is the number of loans allowed within BorrowLimitWindow.
	BorrowLimit = 5

	// RestrictionMonths is the length of a restriction after an overdue loan.
	RestrictionMonths = 1
)

// FinePerDay is the fine charged per started day of lateness.
var FinePerDay = decimal.RequireFromString("0.5")

// ReservedUntil returns the pickup deadline of a hold placed at the given time.
func ReservedUntil(reservedAt time.Time) time.Time {
	return reservedAt.Add(HoldPeriod)
}

// DueDate returns the due date of a loan started at the given time.
func DueDate(borrowedAt time.Time) time.Time {
	return borrowedAt.Add(LoanPeriod)
}

// RestrictedUntil returns the end of a restriction imposed at the given time.
func RestrictedUntil(now time.Time) time.Time {
	return now.AddDate(0, RestrictionMonths, 0)
}

// DaysOverdue is the number of started days between dueDate and returnedAt, zero if not late.
func DaysOverdue(dueDate, returnedAt time.Time) int {
	if !returnedAt.After(dueDate) {
		return 0
	}

	return int(math.Ceil(returnedAt.Sub(dueDate).Hours() / 24))
}

// LateFee computes the fine for a return that is daysOverdue days late.
func LateFee(daysOverdue int) decimal.Decimal {
	return FinePerDay.Mul(decimal.NewFromInt(int64(daysOverdue)))
}
