package waivefine_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/features/command/waivefine"
)

var now = time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)

func unpaidFine() circulation.Fine {
	return circulation.Fine{
		ID:     "fine-1",
		UserID: "user-1",
		Amount: decimal.RequireFromString("3"),
		Status: circulation.FineUnpaid,
	}
}

func Test_Decide_Success(t *testing.T) {
	// arrange
	s := waivefine.State{Now: now, FineFound: true, Fine: unpaidFine()}

	// act
	result := waivefine.Decide(s, waivefine.BuildCommand("user-1", "fine-1"))

	// assert
	require.NoError(t, result.HasError())
	paid, ok := result.Events[0].(core.FinePaid)
	require.True(t, ok)
	assert.Equal(t, "fine-1", paid.FineID)
}

func Test_Decide_Idempotent_WhenAlreadyPaid(t *testing.T) {
	// arrange
	fine := unpaidFine()
	fine.Status = circulation.FinePaid
	s := waivefine.State{Now: now, FineFound: true, Fine: fine}

	// act
	result := waivefine.Decide(s, waivefine.BuildCommand("user-1", "fine-1"))

	// assert
	assert.True(t, result.IsIdempotent())
	assert.Empty(t, result.Events)
}

func Test_Decide_Error_FineOfAnotherMember(t *testing.T) {
	// arrange
	s := waivefine.State{Now: now, FineFound: true, Fine: unpaidFine()}

	// act
	result := waivefine.Decide(s, waivefine.BuildCommand("user-2", "fine-1"))

	// assert
	assert.ErrorIs(t, result.HasError(), circulation.ErrNotFound)
}

func Test_Decide_Error_UnknownFine(t *testing.T) {
	// act
	result := waivefine.Decide(waivefine.State{Now: now}, waivefine.BuildCommand("user-1", "fine-1"))

	// assert
	assert.ErrorIs(t, result.HasError(), circulation.ErrNotFound)
}
