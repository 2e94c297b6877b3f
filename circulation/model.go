package circulation

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReservationStatus is the lifecycle state of a Reservation.
type ReservationStatus string

const (
	// ReservationReserved means a hold is placed and the copy waits for pickup.
	ReservationReserved ReservationStatus = "RESERVED"

	// ReservationBorrowed means the copy was picked up and a Loan is open.
	ReservationBorrowed ReservationStatus = "BORROWED"

	// ReservationOverdue marks a loan that is (or was, when returned late) past its due date.
	ReservationOverdue ReservationStatus = "OVERDUE"

	// ReservationReturned is terminal: returned on time.
	ReservationReturned ReservationStatus = "RETURNED"

	// ReservationCancelled is terminal: the pickup deadline passed unclaimed.
	ReservationCancelled ReservationStatus = "CANCELLED"
)

// FineStatus is the payment state of a Fine.
type FineStatus string

const (
	FineUnpaid FineStatus = "UNPAID"
	FinePaid   FineStatus = "PAID"
)

// ActionType is the kind of an audit Transaction.
type ActionType string

const (
	ActionBorrow ActionType = "BORROW"
	ActionReturn ActionType = "RETURN"
)

// Book is the inventory ledger row of one title.
type Book struct {
	ID              string `db:"id"`
	ISBN            string `db:"isbn"`
	Title           string `db:"title"`
	CopiesAvailable int    `db:"copies_available"`
	CopiesBorrowed  int    `db:"copies_borrowed"`
	BorrowCount     int    `db:"borrow_count"`
}

// User is a library member together with the restriction tracker.
type User struct {
	ID              string     `db:"id"`
	Name            string     `db:"name"`
	RestrictedUntil *time.Time `db:"restricted_until"`
}

// IsRestrictedAt reports whether the user may not reserve at the given time.
func (u User) IsRestrictedAt(now time.Time) bool {
	return u.RestrictedUntil != nil && u.RestrictedUntil.After(now)
}

// Reservation is a hold placed by a user on a book.
type Reservation struct {
	ID              string            `db:"id"`
	UserID          string            `db:"user_id"`
	BookID          string            `db:"book_id"`
	Status          ReservationStatus `db:"status"`
	ReservationDate time.Time         `db:"reservation_date"`
	ReservedUntil   time.Time         `db:"reserved_until"`
	Notified        bool              `db:"notified"`
	LoanID          *string           `db:"loan_id"`
}

// Loan is the record of physical possession from pickup to return (the borrowed_books table).
type Loan struct {
	ID            string     `db:"id"`
	UserID        string     `db:"user_id"`
	BookID        string     `db:"book_id"`
	BorrowDate    time.Time  `db:"borrow_date"`
	DueDate       time.Time  `db:"due_date"`
	ReturnDate    *time.Time `db:"return_date"`
	ReservationID *string    `db:"reservation_id"`
}

// IsOpen reports whether the loan has not been returned yet.
func (l Loan) IsOpen() bool {
	return l.ReturnDate == nil
}

// Fine is a monetary penalty tied to a user and optionally a book.
type Fine struct {
	ID        string          `db:"id"`
	UserID    string          `db:"user_id"`
	BookID    *string         `db:"book_id"`
	Amount    decimal.Decimal `db:"amount"`
	Status    FineStatus      `db:"status"`
	Reason    string          `db:"reason"`
	CreatedAt time.Time       `db:"created_at"`
	PaidAt    *time.Time      `db:"paid_at"`
}

// Transaction is an append-only audit record.
type Transaction struct {
	ID         string     `db:"id"`
	UserID     string     `db:"user_id"`
	BookID     string     `db:"book_id"`
	ActionType ActionType `db:"action_type"`
	Timestamp  time.Time  `db:"timestamp"`
}

// Notification is the durable record of a user-facing message. Delivery happens elsewhere.
type Notification struct {
	ID            string    `db:"id"`
	UserID        string    `db:"user_id"`
	Type          string    `db:"type"`
	Title         string    `db:"title"`
	Message       string    `db:"message"`
	BookID        *string   `db:"book_id"`
	ReservationID *string   `db:"reservation_id"`
	Payload       []byte    `db:"payload"`
	CreatedAt     time.Time `db:"created_at"`
}

// CopiesDelta is a relative change of the inventory counters of one book.
// It is applied by the store as arithmetic on the current row values, never as read-modify-write.
type CopiesDelta struct {
	Available   int
	Borrowed    int
	BorrowCount int
}

// UnpaidFines summarizes the open fines of a user.
type UnpaidFines struct {
	Count int
	Total decimal.Decimal
}
