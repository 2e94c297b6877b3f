package pickupbook_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/features/command/pickupbook"
)

var now = time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)

func reservedState() pickupbook.State {
	return pickupbook.State{
		Now:              now,
		LoanID:           "loan-1",
		ReservationFound: true,
		Reservation: circulation.Reservation{
			ID:              "reservation-1",
			UserID:          "user-1",
			BookID:          "book-1",
			Status:          circulation.ReservationReserved,
			ReservationDate: now.Add(-24 * time.Hour),
			ReservedUntil:   now.Add(6 * 24 * time.Hour),
			Notified:        true,
		},
		BookTitle: "Learning Domain-Driven Design",
	}
}

func Test_Decide_Success_WhenReservationIsValid(t *testing.T) {
	// act
	result := pickupbook.Decide(reservedState(), pickupbook.BuildCommand("user-1", "book-1"))

	// assert
	require.NoError(t, result.HasError())
	require.Len(t, result.Events, 1)

	pickedUp, ok := result.Events[0].(core.BookPickedUp)
	require.True(t, ok)
	assert.Equal(t, "loan-1", pickedUp.LoanID)
	assert.Equal(t, "reservation-1", pickedUp.ReservationID)
	assert.Equal(t, now.Add(14*24*time.Hour), pickedUp.DueDate)
}

func Test_Decide_Success_OnTheDeadline(t *testing.T) {
	// arrange
	s := reservedState()
	s.Reservation.ReservedUntil = now

	// act
	result := pickupbook.Decide(s, pickupbook.BuildCommand("user-1", "book-1"))

	// assert
	assert.NoError(t, result.HasError())
}

func Test_Decide_Rejections(t *testing.T) {
	testCases := []struct {
		name        string
		mutate      func(s *pickupbook.State)
		expectedErr error
		contains    string
	}{
		{
			name:        "no reservation",
			mutate:      func(s *pickupbook.State) { s.ReservationFound = false },
			expectedErr: circulation.ErrNotFound,
			contains:    "No reservation",
		},
		{
			name:        "pickup deadline passed",
			mutate:      func(s *pickupbook.State) { s.Reservation.ReservedUntil = now.Add(-time.Second) },
			expectedErr: circulation.ErrBadRequest,
			contains:    "expired",
		},
		{
			name:        "not reserved anymore",
			mutate:      func(s *pickupbook.State) { s.Reservation.Status = circulation.ReservationCancelled },
			expectedErr: circulation.ErrBadRequest,
			contains:    "can no longer be picked up",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			s := reservedState()
			tc.mutate(&s)

			// act
			result := pickupbook.Decide(s, pickupbook.BuildCommand("user-1", "book-1"))

			// assert
			assert.ErrorIs(t, result.HasError(), tc.expectedErr)
			assert.Contains(t, result.HasError().Error(), tc.contains)
		})
	}
}
