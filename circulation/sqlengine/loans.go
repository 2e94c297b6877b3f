package sqlengine

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

var loanColumns = []any{"id", "user_id", "book_id", "borrow_date", "due_date", "return_date", "reservation_id"}

// InsertLoan records a pickup.
func (h *txHandle) InsertLoan(ctx context.Context, loan circulation.Loan) error {
	ds := h.store.builder.Insert(tableLoans).Prepared(true).Rows(goqu.Record{
		"id":             loan.ID,
		"user_id":        loan.UserID,
		"book_id":        loan.BookID,
		"borrow_date":    ts(loan.BorrowDate),
		"due_date":       ts(loan.DueDate),
		"return_date":    nullableTime(loan.ReturnDate),
		"reservation_id": nullableString(loan.ReservationID),
	})

	_, err := h.exec(ctx, "insert loan", ds)

	return err
}

// FindOpenLoan returns the unreturned loan of the user for the book.
func (h *txHandle) FindOpenLoan(ctx context.Context, userID, bookID string) (circulation.Loan, error) {
	ds := h.store.builder.From(tableLoans).Prepared(true).
		Select(loanColumns...).
		Where(
			goqu.C("user_id").Eq(userID),
			goqu.C("book_id").Eq(bookID),
			goqu.C("return_date").IsNull(),
		).
		Order(goqu.C("borrow_date").Desc(), goqu.C("id").Desc()).
		Limit(1)

	var loan circulation.Loan
	if err := h.get(ctx, "find open loan", &loan, ds); err != nil {
		return circulation.Loan{}, err
	}

	return loan, nil
}

// CountLoansSince counts the user's loans that started at or after since.
func (h *txHandle) CountLoansSince(ctx context.Context, userID string, since time.Time) (int, error) {
	ds := h.store.builder.From(tableLoans).Prepared(true).
		Select(goqu.COUNT(goqu.Star())).
		Where(
			goqu.C("user_id").Eq(userID),
			goqu.C("borrow_date").Gte(ts(since)),
		)

	var count int
	if err := h.get(ctx, "count loans since", &count, ds); err != nil {
		return 0, err
	}

	return count, nil
}

// CloseLoan sets the return date if the loan is still open.
func (h *txHandle) CloseLoan(ctx context.Context, loanID string, returnedAt time.Time) (bool, error) {
	ds := h.store.builder.Update(tableLoans).Prepared(true).
		Set(goqu.Record{"return_date": ts(returnedAt)}).
		Where(
			goqu.C("id").Eq(loanID),
			goqu.C("return_date").IsNull(),
		)

	rowsAffected, err := h.exec(ctx, "close loan", ds)
	if err != nil {
		return false, err
	}

	return rowsAffected == 1, nil
}

// ListOverdueLoans returns open loans past their due date, oldest due date first.
func (h *txHandle) ListOverdueLoans(ctx context.Context, now time.Time) ([]circulation.Loan, error) {
	ds := h.store.builder.From(tableLoans).Prepared(true).
		Select(loanColumns...).
		Where(
			goqu.C("return_date").IsNull(),
			goqu.C("due_date").Lt(ts(now)),
		).
		Order(goqu.C("due_date").Asc(), goqu.C("id").Asc())

	loans := make([]circulation.Loan, 0)
	if err := h.selectAll(ctx, "list overdue loans", &loans, ds); err != nil {
		return nil, err
	}

	return loans, nil
}

// ListOpenLoans returns all unreturned loans of the user.
func (h *txHandle) ListOpenLoans(ctx context.Context, userID string) ([]circulation.Loan, error) {
	ds := h.store.builder.From(tableLoans).Prepared(true).
		Select(loanColumns...).
		Where(
			goqu.C("user_id").Eq(userID),
			goqu.C("return_date").IsNull(),
		).
		Order(goqu.C("due_date").Asc(), goqu.C("id").Asc())

	loans := make([]circulation.Loan, 0)
	if err := h.selectAll(ctx, "list open loans", &loans, ds); err != nil {
		return nil, err
	}

	return loans, nil
}
