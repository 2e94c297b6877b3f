package sqlengine

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

var bookColumns = []any{"id", "isbn", "title", "copies_available", "copies_borrowed", "borrow_count"}

// FindBook loads one book of the inventory ledger.
func (h *txHandle) FindBook(ctx context.Context, bookID string) (circulation.Book, error) {
	ds := h.store.builder.From(tableBooks).Prepared(true).
		Select(bookColumns...).
		Where(goqu.C("id").Eq(bookID))

	var book circulation.Book
	if err := h.get(ctx, "find book", &book, ds); err != nil {
		return circulation.Book{}, err
	}

	return book, nil
}

// InsertBook adds a title to the inventory ledger.
func (h *txHandle) InsertBook(ctx context.Context, book circulation.Book) error {
	ds := h.store.builder.Insert(tableBooks).Prepared(true).Rows(goqu.Record{
		"id":               book.ID,
		"isbn":             book.ISBN,
		"title":            book.Title,
		"copies_available": book.CopiesAvailable,
		"copies_borrowed":  book.CopiesBorrowed,
		"borrow_count":     book.BorrowCount,
	})

	_, err := h.exec(ctx, "insert book", ds)

	return err
}

// AdjustBookCopies applies delta relative to the current row values.
// The WHERE clause keeps every counter non-negative, so concurrent decrements of the
// last copy cannot both succeed.
func (h *txHandle) AdjustBookCopies(ctx context.Context, bookID string, delta circulation.CopiesDelta) (bool, error) {
	set := goqu.Record{}
	where := []exp.Expression{goqu.C("id").Eq(bookID)}

	addDelta := func(column string, value int) {
		if value == 0 {
			return
		}

		set[column] = goqu.L("? + ?", goqu.C(column), value)

		if value < 0 {
			where = append(where, goqu.C(column).Gte(-value))
		}
	}

	addDelta("copies_available", delta.Available)
	addDelta("copies_borrowed", delta.Borrowed)
	addDelta("borrow_count", delta.BorrowCount)

	if len(set) == 0 {
		return true, nil
	}

	ds := h.store.builder.Update(tableBooks).Prepared(true).
		Set(set).
		Where(where...)

	rowsAffected, err := h.exec(ctx, "adjust book copies", ds)
	if err != nil {
		return false, err
	}

	return rowsAffected == 1, nil
}
