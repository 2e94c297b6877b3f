package maintenance_test

import (
	"testing"
	"time"
	_ "time/tzdata" // zone database for Europe/Berlin

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/maintenance"
)

func Test_ParseTimeOfDay(t *testing.T) {
	testCases := []struct {
		value    string
		expected maintenance.TimeOfDay
		valid    bool
	}{
		{value: "00:00", expected: maintenance.TimeOfDay{Hour: 0, Minute: 0}, valid: true},
		{value: "01:00", expected: maintenance.TimeOfDay{Hour: 1, Minute: 0}, valid: true},
		{value: "23:59", expected: maintenance.TimeOfDay{Hour: 23, Minute: 59}, valid: true},
		{value: "24:00", valid: false},
		{value: "7:5", valid: false},
		{value: "noon", valid: false},
		{value: "", valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.value, func(t *testing.T) {
			// act
			parsed, err := maintenance.ParseTimeOfDay(tc.value)

			// assert
			if !tc.valid {
				assert.ErrorIs(t, err, maintenance.ErrInvalidTimeOfDay)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, parsed)
			assert.Equal(t, tc.value, parsed.String())
		})
	}
}

func Test_TimeOfDay_NextRun(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err, "error in arranging test data")

	testCases := []struct {
		description string
		at          maintenance.TimeOfDay
		now         time.Time
		location    *time.Location
		expected    time.Time
	}{
		{
			description: "later today",
			at:          maintenance.TimeOfDay{Hour: 3},
			now:         time.Date(2025, 3, 3, 1, 30, 0, 0, time.UTC),
			location:    time.UTC,
			expected:    time.Date(2025, 3, 3, 3, 0, 0, 0, time.UTC),
		},
		{
			description: "already passed today",
			at:          maintenance.TimeOfDay{Hour: 1},
			now:         time.Date(2025, 3, 3, 1, 30, 0, 0, time.UTC),
			location:    time.UTC,
			expected:    time.Date(2025, 3, 4, 1, 0, 0, 0, time.UTC),
		},
		{
			description: "exactly now",
			at:          maintenance.TimeOfDay{Hour: 0},
			now:         time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
			location:    time.UTC,
			expected:    time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC),
		},
		{
			description: "end of month",
			at:          maintenance.TimeOfDay{Hour: 0},
			now:         time.Date(2025, 2, 28, 12, 0, 0, 0, time.UTC),
			location:    time.UTC,
			expected:    time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			description: "other location",
			at:          maintenance.TimeOfDay{Hour: 0},
			now:         time.Date(2025, 3, 3, 22, 30, 0, 0, time.UTC), // 23:30 in Berlin
			location:    berlin,
			expected:    time.Date(2025, 3, 3, 23, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// act
			next := tc.at.NextRun(tc.now, tc.location)

			// assert
			assert.True(t, tc.expected.Equal(next), "expected %s, got %s", tc.expected, next)
		})
	}
}
