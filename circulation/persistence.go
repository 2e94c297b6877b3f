package circulation

import (
	"context"
	"time"
)

// TxRunner executes a unit of work atomically.
// fn's changes are committed when it returns nil and rolled back when it returns an error or panics.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx is the set of persistence operations available inside one unit of work.
// Lookups that find nothing return an error matching ErrRecordNotFound.
type Tx interface {
	UserRepository
	BookRepository
	ReservationRepository
	LoanRepository
	FineRepository
	AuditRepository
}

// UserRepository covers users and the restriction tracker.
type UserRepository interface {
	// LockUser loads the user and locks its row until the unit of work ends (on dialects with row locks).
	LockUser(ctx context.Context, userID string) (User, error)
	FindUser(ctx context.Context, userID string) (User, error)
	InsertUser(ctx context.Context, user User) error
	RestrictUser(ctx context.Context, userID string, until time.Time) error
}

// BookRepository covers the inventory ledger.
type BookRepository interface {
	FindBook(ctx context.Context, bookID string) (Book, error)
	InsertBook(ctx context.Context, book Book) error

	// AdjustBookCopies applies delta as store-side arithmetic. It reports false, and changes nothing,
	// when the book is missing or a counter would become negative.
	AdjustBookCopies(ctx context.Context, bookID string, delta CopiesDelta) (bool, error)
}

// ReservationRepository covers reservations and their guarded status transitions.
type ReservationRepository interface {
	InsertReservation(ctx context.Context, reservation Reservation) error
	FindReservation(ctx context.Context, reservationID string) (Reservation, error)

	// FindLatestReservation returns the most recent reservation of the user for the book with the given status.
	FindLatestReservation(ctx context.Context, userID, bookID string, status ReservationStatus) (Reservation, error)
	CountReservations(ctx context.Context, userID, bookID string, statuses ...ReservationStatus) (int, error)

	// TransitionReservation moves the reservation from one status to another and reports whether
	// the row was still in the from status.
	TransitionReservation(ctx context.Context, reservationID string, from, to ReservationStatus) (bool, error)
	LinkReservationLoan(ctx context.Context, reservationID, loanID string) error

	// MarkReservationsOverdue moves every BORROWED reservation of the user for the book to OVERDUE.
	MarkReservationsOverdue(ctx context.Context, userID, bookID string) (int64, error)

	// ListExpiredReservations returns notified RESERVED reservations whose pickup deadline is before now.
	ListExpiredReservations(ctx context.Context, now time.Time) ([]Reservation, error)
	ListActiveReservations(ctx context.Context, userID string) ([]Reservation, error)
}

// LoanRepository covers the borrowed_books table.
type LoanRepository interface {
	InsertLoan(ctx context.Context, loan Loan) error
	FindOpenLoan(ctx context.Context, userID, bookID string) (Loan, error)
	CountLoansSince(ctx context.Context, userID string, since time.Time) (int, error)

	// CloseLoan sets the return date and reports whether the loan was still open.
	CloseLoan(ctx context.Context, loanID string, returnedAt time.Time) (bool, error)

	// ListOverdueLoans returns open loans whose due date is before now.
	ListOverdueLoans(ctx context.Context, now time.Time) ([]Loan, error)
	ListOpenLoans(ctx context.Context, userID string) ([]Loan, error)
}

// FineRepository covers the fine ledger.
type FineRepository interface {
	InsertFine(ctx context.Context, fine Fine) error
	FindFine(ctx context.Context, fineID string) (Fine, error)
	SumUnpaidFines(ctx context.Context, userID string) (UnpaidFines, error)
	ListFines(ctx context.Context, userID string) ([]Fine, error)

	// MarkFinePaid reports whether the fine was still UNPAID.
	MarkFinePaid(ctx context.Context, fineID string, paidAt time.Time) (bool, error)
}

// AuditRepository covers the append-only transaction log and the notification records.
type AuditRepository interface {
	AppendTransaction(ctx context.Context, transaction Transaction) error
	ListTransactions(ctx context.Context, userID string) ([]Transaction, error)
	InsertNotification(ctx context.Context, notification Notification) error
	ListNotifications(ctx context.Context, userID string) ([]Notification, error)
}
