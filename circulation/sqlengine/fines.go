package sqlengine

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

var fineColumns = []any{"id", "user_id", "book_id", "amount", "status", "reason", "created_at", "paid_at"}

type unpaidFinesRow struct {
	Total decimal.Decimal `db:"total"`
	Count int             `db:"fine_count"`
}

// InsertFine records a fine.
func (h *txHandle) InsertFine(ctx context.Context, fine circulation.Fine) error {
	ds := h.store.builder.Insert(tableFines).Prepared(true).Rows(goqu.Record{
		"id":         fine.ID,
		"user_id":    fine.UserID,
		"book_id":    nullableString(fine.BookID),
		"amount":     fine.Amount.StringFixed(2),
		"status":     string(fine.Status),
		"reason":     fine.Reason,
		"created_at": ts(fine.CreatedAt),
		"paid_at":    nullableTime(fine.PaidAt),
	})

	_, err := h.exec(ctx, "insert fine", ds)

	return err
}

// FindFine loads a fine by id.
func (h *txHandle) FindFine(ctx context.Context, fineID string) (circulation.Fine, error) {
	ds := h.store.builder.From(tableFines).Prepared(true).
		Select(fineColumns...).
		Where(goqu.C("id").Eq(fineID))

	var fine circulation.Fine
	if err := h.get(ctx, "find fine", &fine, ds); err != nil {
		return circulation.Fine{}, err
	}

	return fine, nil
}

// SumUnpaidFines returns count and total of the user's UNPAID fines.
func (h *txHandle) SumUnpaidFines(ctx context.Context, userID string) (circulation.UnpaidFines, error) {
	ds := h.store.builder.From(tableFines).Prepared(true).
		Select(
			goqu.COALESCE(goqu.SUM("amount"), goqu.L("0")).As("total"),
			goqu.COUNT(goqu.Star()).As("fine_count"),
		).
		Where(
			goqu.C("user_id").Eq(userID),
			goqu.C("status").Eq(string(circulation.FineUnpaid)),
		)

	var row unpaidFinesRow
	if err := h.get(ctx, "sum unpaid fines", &row, ds); err != nil {
		return circulation.UnpaidFines{}, err
	}

	return circulation.UnpaidFines{Count: row.Count, Total: row.Total}, nil
}

// MarkFinePaid moves an UNPAID fine to PAID.
func (h *txHandle) MarkFinePaid(ctx context.Context, fineID string, paidAt time.Time) (bool, error) {
	ds := h.store.builder.Update(tableFines).Prepared(true).
		Set(goqu.Record{
			"status":  string(circulation.FinePaid),
			"paid_at": ts(paidAt),
		}).
		Where(
			goqu.C("id").Eq(fineID),
			goqu.C("status").Eq(string(circulation.FineUnpaid)),
		)

	rowsAffected, err := h.exec(ctx, "mark fine paid", ds)
	if err != nil {
		return false, err
	}

	return rowsAffected == 1, nil
}

// ListFines returns all fines of the user, oldest first.
func (h *txHandle) ListFines(ctx context.Context, userID string) ([]circulation.Fine, error) {
	ds := h.store.builder.From(tableFines).Prepared(true).
		Select(fineColumns...).
		Where(goqu.C("user_id").Eq(userID)).
		Order(goqu.C("created_at").Asc(), goqu.C("id").Asc())

	fines := make([]circulation.Fine, 0)
	if err := h.selectAll(ctx, "list fines", &fines, ds); err != nil {
		return nil, err
	}

	return fines, nil
}
