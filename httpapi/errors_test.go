package httpapi_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/httpapi"
	"github.com/AntonStoeckl/library-circulation-go/maintenance"
)

func Test_StatusFor(t *testing.T) {
	testCases := []struct {
		description string
		err         error
		expected    int
	}{
		{description: "not found", err: circulation.NotFound("User not found."), expected: http.StatusNotFound},
		{description: "forbidden", err: circulation.Forbidden("borrow limit"), expected: http.StatusForbidden},
		{description: "bad request", err: circulation.BadRequest("unavailable"), expected: http.StatusBadRequest},
		{
			description: "wrapped rejection",
			err:         fmt.Errorf("reservation r-1: %w", circulation.BadRequest("unavailable")),
			expected:    http.StatusBadRequest,
		},
		{
			description: "unknown sweep",
			err:         errors.Join(maintenance.ErrUnknownJob, errors.New("nope")),
			expected:    http.StatusNotFound,
		},
		{
			description: "infrastructure",
			err:         errors.Join(circulation.ErrTransactionFailed, errors.New("connection reset")),
			expected:    http.StatusInternalServerError,
		},
		{description: "canceled", err: context.Canceled, expected: http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// act
			status := httpapi.StatusFor(tc.err)

			// assert
			assert.Equal(t, tc.expected, status)
		})
	}
}
