package helper

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// GivenUniqueID returns a fresh entity id.
func GivenUniqueID(t testing.TB) string {
	t.Helper()

	return circulation.NewID()
}

// InTx runs fn in its own unit of work and fails the test on error.
func InTx(t testing.TB, ctx context.Context, runner circulation.TxRunner, fn func(ctx context.Context, tx circulation.Tx) error) {
	t.Helper()

	require.NoError(t, runner.RunInTx(ctx, fn), "error in arranging test data")
}

// GivenMember registers an unrestricted member.
func GivenMember(t testing.TB, ctx context.Context, runner circulation.TxRunner) circulation.User {
	t.Helper()

	user := circulation.User{ID: GivenUniqueID(t), Name: "Jane Doe"}
	InTx(t, ctx, runner, func(ctx context.Context, tx circulation.Tx) error {
		return tx.InsertUser(ctx, user)
	})

	return user
}

// GivenRestrictedMember registers a member restricted until the given time.
func GivenRestrictedMember(t testing.TB, ctx context.Context, runner circulation.TxRunner, until time.Time) circulation.User {
	t.Helper()

	until = circulation.ToTimestamp(until)
	user := circulation.User{ID: GivenUniqueID(t), Name: "John Doe", RestrictedUntil: &until}
	InTx(t, ctx, runner, func(ctx context.Context, tx circulation.Tx) error {
		return tx.InsertUser(ctx, user)
	})

	return user
}

// GivenBook provisions a title with the given number of available copies.
func GivenBook(t testing.TB, ctx context.Context, runner circulation.TxRunner, copiesAvailable int) circulation.Book {
	t.Helper()

	book := circulation.Book{
		ID:              GivenUniqueID(t),
		ISBN:            "978-1-098-10013-1",
		Title:           "Learning Domain-Driven Design",
		CopiesAvailable: copiesAvailable,
	}
	InTx(t, ctx, runner, func(ctx context.Context, tx circulation.Tx) error {
		return tx.InsertBook(ctx, book)
	})

	return book
}

// GivenUnpaidFine records an UNPAID fine for the user.
func GivenUnpaidFine(
	t testing.TB,
	ctx context.Context,
	runner circulation.TxRunner,
	userID string,
	amount string,
	createdAt time.Time,
) circulation.Fine {

	t.Helper()

	fine := circulation.Fine{
		ID:        GivenUniqueID(t),
		UserID:    userID,
		Amount:    decimal.RequireFromString(amount),
		Status:    circulation.FineUnpaid,
		Reason:    "damaged cover",
		CreatedAt: circulation.ToTimestamp(createdAt),
	}
	InTx(t, ctx, runner, func(ctx context.Context, tx circulation.Tx) error {
		return tx.InsertFine(ctx, fine)
	})

	return fine
}

// GivenLoan records an open loan that started at borrowedAt, without touching the inventory ledger.
func GivenLoan(
	t testing.TB,
	ctx context.Context,
	runner circulation.TxRunner,
	userID, bookID string,
	borrowedAt time.Time,
) circulation.Loan {

	t.Helper()

	borrowedAt = circulation.ToTimestamp(borrowedAt)
	loan := circulation.Loan{
		ID:         GivenUniqueID(t),
		UserID:     userID,
		BookID:     bookID,
		BorrowDate: borrowedAt,
		DueDate:    circulation.DueDate(borrowedAt),
	}
	InTx(t, ctx, runner, func(ctx context.Context, tx circulation.Tx) error {
		return tx.InsertLoan(ctx, loan)
	})

	return loan
}

// GivenReservation records a reservation in the given status, without touching the inventory ledger.
func GivenReservation(
	t testing.TB,
	ctx context.Context,
	runner circulation.TxRunner,
	userID, bookID string,
	status circulation.ReservationStatus,
	reservedAt time.Time,
) circulation.Reservation {

	t.Helper()

	reservedAt = circulation.ToTimestamp(reservedAt)
	reservation := circulation.Reservation{
		ID:              GivenUniqueID(t),
		UserID:          userID,
		BookID:          bookID,
		Status:          status,
		ReservationDate: reservedAt,
		ReservedUntil:   circulation.ReservedUntil(reservedAt),
		Notified:        true,
	}
	InTx(t, ctx, runner, func(ctx context.Context, tx circulation.Tx) error {
		return tx.InsertReservation(ctx, reservation)
	})

	return reservation
}

// LoadBook reads the current inventory row of a book.
func LoadBook(t testing.TB, ctx context.Context, runner circulation.TxRunner, bookID string) circulation.Book {
	t.Helper()

	var book circulation.Book
	InTx(t, ctx, runner, func(ctx context.Context, tx circulation.Tx) error {
		var err error
		book, err = tx.FindBook(ctx, bookID)
		return err
	})

	return book
}

// LoadUser reads the current row of a user.
func LoadUser(t testing.TB, ctx context.Context, runner circulation.TxRunner, userID string) circulation.User {
	t.Helper()

	var user circulation.User
	InTx(t, ctx, runner, func(ctx context.Context, tx circulation.Tx) error {
		var err error
		user, err = tx.FindUser(ctx, userID)
		return err
	})

	return user
}

// LoadReservation reads the current row of a reservation.
func LoadReservation(t testing.TB, ctx context.Context, runner circulation.TxRunner, reservationID string) circulation.Reservation {
	t.Helper()

	var reservation circulation.Reservation
	InTx(t, ctx, runner, func(ctx context.Context, tx circulation.Tx) error {
		var err error
		reservation, err = tx.FindReservation(ctx, reservationID)
		return err
	})

	return reservation
}

// LoadFines reads all fines of a user.
func LoadFines(t testing.TB, ctx context.Context, runner circulation.TxRunner, userID string) []circulation.Fine {
	t.Helper()

	var fines []circulation.Fine
	InTx(t, ctx, runner, func(ctx context.Context, tx circulation.Tx) error {
		var err error
		fines, err = tx.ListFines(ctx, userID)
		return err
	})

	return fines
}

// LoadTransactions reads the audit trail of a user.
func LoadTransactions(t testing.TB, ctx context.Context, runner circulation.TxRunner, userID string) []circulation.Transaction {
	t.Helper()

	var transactions []circulation.Transaction
	InTx(t, ctx, runner, func(ctx context.Context, tx circulation.Tx) error {
		var err error
		transactions, err = tx.ListTransactions(ctx, userID)
		return err
	})

	return transactions
}

// LoadNotifications reads the notification records of a user.
func LoadNotifications(t testing.TB, ctx context.Context, runner circulation.TxRunner, userID string) []circulation.Notification {
	t.Helper()

	var notifications []circulation.Notification
	InTx(t, ctx, runner, func(ctx context.Context, tx circulation.Tx) error {
		var err error
		notifications, err = tx.ListNotifications(ctx, userID)
		return err
	})

	return notifications
}

// NotificationTypes extracts the types of notifications in order.
func NotificationTypes(notifications []circulation.Notification) []string {
	types := make([]string, 0, len(notifications))
	for _, notification := range notifications {
		types = append(types, notification.Type)
	}

	return types
}
