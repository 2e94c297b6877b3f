package addbookcopies

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/shell"
)

// Result carries the inventory row after the command.
type Result struct {
	shell.HandlerResult
	Book circulation.Book
}

// CommandHandler provisions copies in one unit of work.
type CommandHandler struct {
	store circulation.TxRunner
	clock circulation.Clock
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithClock sets the source of "now".
func WithClock(clock circulation.Clock) Option {
	return func(h *CommandHandler) {
		h.clock = clock
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(store circulation.TxRunner, opts ...Option) CommandHandler {
	handler := CommandHandler{
		store: store,
		clock: circulation.SystemClock{},
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle adds the copies or returns the rejection.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	var result Result

	err := h.store.RunInTx(ctx, func(ctx context.Context, tx circulation.Tx) error {
		s := State{Now: circulation.ToTimestamp(h.clock.Now())}

		book, err := tx.FindBook(ctx, command.BookID)
		switch {
		case errors.Is(err, circulation.ErrRecordNotFound):
		case err != nil:
			return err
		default:
			s.BookFound = true
			s.Book = book
		}

		decision := Decide(s, command)
		if err := decision.HasError(); err != nil {
			return err
		}

		added := decision.Events[0].(core.BookCopiesAdded) //nolint:forcetypeassert // Decide always returns exactly one BookCopiesAdded

		if added.NewTitle {
			err = tx.InsertBook(ctx, circulation.Book{
				ID:              added.BookID,
				ISBN:            added.ISBN,
				Title:           added.Title,
				CopiesAvailable: added.Copies,
			})
		} else {
			_, err = tx.AdjustBookCopies(ctx, added.BookID, circulation.CopiesDelta{Available: added.Copies})
		}

		if err != nil {
			return err
		}

		if book, err = tx.FindBook(ctx, added.BookID); err != nil {
			return err
		}

		result = Result{
			HandlerResult: shell.NewSuccessResult(h.message(added, book)),
			Book:          book,
		}

		return nil
	})

	if err != nil {
		return Result{}, err
	}

	return result, nil
}

func (h CommandHandler) message(added core.BookCopiesAdded, book circulation.Book) string {
	messages := shell.DefaultMessages()

	if added.NewTitle {
		return messages.Sprintf("Added %q with %d copies.", book.Title, added.Copies)
	}

	return messages.Sprintf("Added %d copies of %q, %d available now.", added.Copies, book.Title, book.CopiesAvailable)
}
