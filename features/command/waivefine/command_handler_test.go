package waivefine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/features/command/waivefine"
	"github.com/AntonStoeckl/library-circulation-go/shell"
	. "github.com/AntonStoeckl/library-circulation-go/testutil/helper" //nolint:revive
)

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := NewTestStore(t)
	clock := NewFakeClock(FixedStart())
	member := GivenMember(t, ctx, store)
	fine := GivenUnpaidFine(t, ctx, store, member.ID, "3", clock.Now().Add(-time.Hour))
	handler := waivefine.NewCommandHandler(store, waivefine.WithClock(clock))

	// act
	result, err := handler.Handle(ctx, waivefine.BuildCommand(member.ID, fine.ID))

	// assert
	require.NoError(t, err)
	assert.False(t, result.Idempotent)
	assert.Contains(t, result.Message, "3.00")

	fines := LoadFines(t, ctx, store, member.ID)
	require.Len(t, fines, 1)
	assert.Equal(t, circulation.FinePaid, fines[0].Status)
	require.NotNil(t, fines[0].PaidAt)
	assert.Equal(t, clock.Now(), *fines[0].PaidAt)

	assert.Equal(t,
		[]string{shell.NotificationFinePaid},
		NotificationTypes(LoadNotifications(t, ctx, store, member.ID)))
}

func Test_CommandHandler_Handle_Idempotent_SecondWaive(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := NewTestStore(t)
	clock := NewFakeClock(FixedStart())
	member := GivenMember(t, ctx, store)
	fine := GivenUnpaidFine(t, ctx, store, member.ID, "3", clock.Now())
	handler := waivefine.NewCommandHandler(store, waivefine.WithClock(clock))

	_, err := handler.Handle(ctx, waivefine.BuildCommand(member.ID, fine.ID))
	require.NoError(t, err)

	// act
	result, err := handler.Handle(ctx, waivefine.BuildCommand(member.ID, fine.ID))

	// assert
	require.NoError(t, err)
	assert.True(t, result.Idempotent)
	assert.Len(t, LoadNotifications(t, ctx, store, member.ID), 1, "should notify only once")
}

func Test_CommandHandler_Handle_Error_FineOfAnotherMember(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := NewTestStore(t)
	owner := GivenMember(t, ctx, store)
	other := GivenMember(t, ctx, store)
	fine := GivenUnpaidFine(t, ctx, store, owner.ID, "3", FixedStart())
	handler := waivefine.NewCommandHandler(store)

	// act
	_, err := handler.Handle(ctx, waivefine.BuildCommand(other.ID, fine.ID))

	// assert
	assert.ErrorIs(t, err, circulation.ErrNotFound)
	assert.Equal(t, circulation.FineUnpaid, LoadFines(t, ctx, store, owner.ID)[0].Status)
}
