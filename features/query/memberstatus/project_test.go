package memberstatus_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/features/query/memberstatus"
)

var now = time.Date(2025, 3, 20, 10, 0, 0, 0, time.UTC)

func Test_ProjectMemberStatus_OverdueLoanAndRestriction(t *testing.T) {
	// arrange
	until := now.AddDate(0, 1, 0)
	early := now.Add(-16 * 24 * time.Hour)
	recent := now.Add(-2 * 24 * time.Hour)

	snapshot := memberstatus.Snapshot{
		Now:         now,
		User:        circulation.User{ID: "user-1", Name: "Jane Doe", RestrictedUntil: &until},
		UnpaidFines: circulation.UnpaidFines{Count: 1, Total: decimal.RequireFromString("1.5")},
		OpenLoans: []circulation.Loan{
			{ID: "loan-recent", BookID: "book-2", BorrowDate: recent, DueDate: circulation.DueDate(recent)},
			{ID: "loan-early", BookID: "book-1", BorrowDate: early, DueDate: circulation.DueDate(early)},
		},
		Reservations: []circulation.Reservation{
			{ID: "reservation-1", BookID: "book-3", Status: circulation.ReservationReserved, ReservedUntil: now.Add(time.Hour)},
		},
	}

	// act
	status := memberstatus.ProjectMemberStatus(snapshot)

	// assert
	assert.True(t, status.Restricted)
	assert.False(t, status.CanReserve)
	assert.Equal(t, 1, status.UnpaidFineCount)
	assert.True(t, decimal.RequireFromString("1.5").Equal(status.UnpaidFineTotal))

	require.Len(t, status.OpenLoans, 2)
	assert.Equal(t, "loan-early", status.OpenLoans[0].LoanID, "should sort by due date")
	assert.True(t, status.OpenLoans[0].Overdue)
	assert.Equal(t, 2, status.OpenLoans[0].DaysOverdue)
	assert.True(t, decimal.NewFromInt(1).Equal(status.OpenLoans[0].AccruedFine))
	assert.False(t, status.OpenLoans[1].Overdue)
	assert.True(t, status.OpenLoans[1].AccruedFine.IsZero())

	require.Len(t, status.ActiveReservations, 1)
	assert.Equal(t, "RESERVED", status.ActiveReservations[0].Status)
}

func Test_ProjectMemberStatus_MemberInGoodStanding(t *testing.T) {
	// arrange
	snapshot := memberstatus.Snapshot{
		Now:  now,
		User: circulation.User{ID: "user-1", Name: "Jane Doe"},
	}

	// act
	status := memberstatus.ProjectMemberStatus(snapshot)

	// assert
	assert.False(t, status.Restricted)
	assert.True(t, status.CanReserve)
	assert.Empty(t, status.OpenLoans)
	assert.Empty(t, status.ActiveReservations)
}
