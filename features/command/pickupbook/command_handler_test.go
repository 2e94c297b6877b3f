package pickupbook_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/features/command/pickupbook"
	"github.com/AntonStoeckl/library-circulation-go/features/command/reservebook"
	"github.com/AntonStoeckl/library-circulation-go/shell"
	. "github.com/AntonStoeckl/library-circulation-go/testutil/helper" //nolint:revive
)

func givenReservedBook(
	t *testing.T,
	ctx context.Context,
	store circulation.TxRunner,
	clock *FakeClock,
) (circulation.User, circulation.Book, circulation.Reservation) {

	t.Helper()

	member := GivenMember(t, ctx, store)
	book := GivenBook(t, ctx, store, 1)

	result, err := reservebook.NewCommandHandler(store, reservebook.WithClock(clock)).
		Handle(ctx, reservebook.BuildCommand(member.ID, book.ID))
	require.NoError(t, err, "error in arranging test data")

	return member, book, result.Reservation
}

func Test_CommandHandler_Handle_Success(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := NewTestStore(t)
	clock := NewFakeClock(FixedStart())
	member, book, reservation := givenReservedBook(t, ctx, store, clock)
	handler := pickupbook.NewCommandHandler(store, pickupbook.WithClock(clock))

	clock.Advance(2 * 24 * time.Hour)

	// act
	result, err := handler.Handle(ctx, pickupbook.BuildCommand(member.ID, book.ID))

	// assert
	require.NoError(t, err)
	assert.Contains(t, result.Message, "2025-03-19")
	assert.Equal(t, clock.Now().Add(14*24*time.Hour), result.Loan.DueDate)
	require.NotNil(t, result.Loan.ReservationID)
	assert.Equal(t, reservation.ID, *result.Loan.ReservationID)

	stored := LoadReservation(t, ctx, store, reservation.ID)
	assert.Equal(t, circulation.ReservationBorrowed, stored.Status)
	require.NotNil(t, stored.LoanID)
	assert.Equal(t, result.Loan.ID, *stored.LoanID)

	inventory := LoadBook(t, ctx, store, book.ID)
	assert.Equal(t, 0, inventory.CopiesAvailable)
	assert.Equal(t, 1, inventory.CopiesBorrowed)
	assert.Equal(t, 1, inventory.BorrowCount)

	transactions := LoadTransactions(t, ctx, store, member.ID)
	require.Len(t, transactions, 2)
	assert.Equal(t, circulation.ActionBorrow, transactions[1].ActionType)

	assert.Equal(t,
		[]string{shell.NotificationReservationConfirmed, shell.NotificationBookPickedUp},
		NotificationTypes(LoadNotifications(t, ctx, store, member.ID)))
}

func Test_CommandHandler_Handle_Error_NoReservation(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := NewTestStore(t)
	member := GivenMember(t, ctx, store)
	book := GivenBook(t, ctx, store, 1)
	handler := pickupbook.NewCommandHandler(store, pickupbook.WithClock(NewFakeClock(FixedStart())))

	// act
	_, err := handler.Handle(ctx, pickupbook.BuildCommand(member.ID, book.ID))

	// assert
	assert.ErrorIs(t, err, circulation.ErrNotFound)
}

func Test_CommandHandler_Handle_Error_PickupAfterDeadlineWithoutSweep(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := NewTestStore(t)
	clock := NewFakeClock(FixedStart())
	member, book, reservation := givenReservedBook(t, ctx, store, clock)
	handler := pickupbook.NewCommandHandler(store, pickupbook.WithClock(clock))

	clock.Advance(8 * 24 * time.Hour)

	// act
	_, err := handler.Handle(ctx, pickupbook.BuildCommand(member.ID, book.ID))

	// assert
	assert.ErrorIs(t, err, circulation.ErrBadRequest)
	assert.Contains(t, err.Error(), "expired")
	assert.Equal(t, circulation.ReservationReserved, LoadReservation(t, ctx, store, reservation.ID).Status)
	assert.Equal(t, 0, LoadBook(t, ctx, store, book.ID).CopiesBorrowed)
}

func Test_CommandHandler_Handle_Error_SecondPickup(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := NewTestStore(t)
	clock := NewFakeClock(FixedStart())
	member, book, _ := givenReservedBook(t, ctx, store, clock)
	handler := pickupbook.NewCommandHandler(store, pickupbook.WithClock(clock))

	_, err := handler.Handle(ctx, pickupbook.BuildCommand(member.ID, book.ID))
	require.NoError(t, err)

	// act
	_, err = handler.Handle(ctx, pickupbook.BuildCommand(member.ID, book.ID))

	// assert
	assert.ErrorIs(t, err, circulation.ErrNotFound)
	assert.Equal(t, 1, LoadBook(t, ctx, store, book.ID).CopiesBorrowed, "should count the pickup once")
}

// bookRemovedAfterRead still serves the book title to the handler although its row is gone.
type bookRemovedAfterRead struct {
	circulation.TxRunner
	book circulation.Book
}

func (r bookRemovedAfterRead) RunInTx(ctx context.Context, fn func(ctx context.Context, tx circulation.Tx) error) error {
	return r.TxRunner.RunInTx(ctx, func(ctx context.Context, tx circulation.Tx) error {
		return fn(ctx, bookRemovedAfterReadTx{Tx: tx, book: r.book})
	})
}

type bookRemovedAfterReadTx struct {
	circulation.Tx
	book circulation.Book
}

func (tx bookRemovedAfterReadTx) FindBook(_ context.Context, _ string) (circulation.Book, error) {
	return tx.book, nil
}

func Test_CommandHandler_Handle_Error_BookRowMissing(t *testing.T) {
	// arrange
	ctx := context.Background()
	store := NewTestStore(t)
	clock := NewFakeClock(FixedStart())
	member := GivenMember(t, ctx, store)
	missing := circulation.Book{ID: GivenUniqueID(t), Title: "Dune"}
	reservation := GivenReservation(t, ctx, store, member.ID, missing.ID, circulation.ReservationReserved, clock.Now())
	handler := pickupbook.NewCommandHandler(bookRemovedAfterRead{TxRunner: store, book: missing}, pickupbook.WithClock(clock))

	// act
	_, err := handler.Handle(ctx, pickupbook.BuildCommand(member.ID, missing.ID))

	// assert
	assert.ErrorIs(t, err, circulation.ErrNotFound)
	assert.Equal(t, circulation.ReservationReserved, LoadReservation(t, ctx, store, reservation.ID).Status,
		"should roll back the pickup")
	assert.Empty(t, LoadTransactions(t, ctx, store, member.ID))

	var openLoans []circulation.Loan
	InTx(t, ctx, store, func(ctx context.Context, tx circulation.Tx) error {
		var err error
		openLoans, err = tx.ListOpenLoans(ctx, member.ID)

		return err
	})

	assert.Empty(t, openLoans)
}
