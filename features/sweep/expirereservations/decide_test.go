package expirereservations_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/features/sweep/expirereservations"
)

var now = time.Date(2025, 3, 11, 10, 0, 0, 0, time.UTC)

func candidate() circulation.Reservation {
	return circulation.Reservation{
		ID:            "reservation-1",
		UserID:        "user-1",
		BookID:        "book-1",
		Status:        circulation.ReservationReserved,
		ReservedUntil: now.Add(-time.Hour),
		Notified:      true,
	}
}

func Test_Decide_Success_WhenPickupDeadlinePassed(t *testing.T) {
	// act
	result := expirereservations.Decide(expirereservations.State{Now: now, Reservation: candidate(), BookTitle: "Title"})

	// assert
	require.NoError(t, result.HasError())
	require.Len(t, result.Events, 1)
	expired, ok := result.Events[0].(core.ReservationExpired)
	require.True(t, ok)
	assert.Equal(t, "reservation-1", expired.ReservationID)
	assert.Equal(t, "user-1", expired.ConcernsUser())
}

func Test_Decide_Idempotent(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(r *circulation.Reservation)
	}{
		{name: "deadline not reached", mutate: func(r *circulation.Reservation) { r.ReservedUntil = now.Add(time.Hour) }},
		{name: "deadline is now", mutate: func(r *circulation.Reservation) { r.ReservedUntil = now }},
		{name: "already cancelled", mutate: func(r *circulation.Reservation) { r.Status = circulation.ReservationCancelled }},
		{name: "already picked up", mutate: func(r *circulation.Reservation) { r.Status = circulation.ReservationBorrowed }},
		{name: "not notified", mutate: func(r *circulation.Reservation) { r.Notified = false }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			r := candidate()
			tc.mutate(&r)

			// act
			result := expirereservations.Decide(expirereservations.State{Now: now, Reservation: r})

			// assert
			assert.True(t, result.IsIdempotent())
		})
	}
}
