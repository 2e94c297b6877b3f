package issuefine

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/shell"
)

// Result is the outcome of a successful fine.
type Result struct {
	shell.HandlerResult
	Fine circulation.Fine
}

// CommandHandler records a manual fine and its notification in one unit of work.
type CommandHandler struct {
	store    circulation.TxRunner
	clock    circulation.Clock
	messages shell.Messages
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithClock sets the source of "now".
func WithClock(clock circulation.Clock) Option {
	return func(h *CommandHandler) {
		h.clock = clock
	}
}

// WithMessages sets the locale used for amounts in messages.
func WithMessages(messages shell.Messages) Option {
	return func(h *CommandHandler) {
		h.messages = messages
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(store circulation.TxRunner, opts ...Option) CommandHandler {
	handler := CommandHandler{
		store:    store,
		clock:    circulation.SystemClock{},
		messages: shell.DefaultMessages(),
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle issues the fine or returns the rejection.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	var result Result

	err := h.store.RunInTx(ctx, func(ctx context.Context, tx circulation.Tx) error {
		s, err := h.load(ctx, tx, command)
		if err != nil {
			return err
		}

		decision := Decide(s, command)
		if err := decision.HasError(); err != nil {
			return err
		}

		issued := decision.Events[0].(core.FineIssued) //nolint:forcetypeassert // Decide always returns exactly one FineIssued

		fine := circulation.Fine{
			ID:        issued.FineID,
			UserID:    issued.UserID,
			Amount:    issued.Amount,
			Status:    circulation.FineUnpaid,
			Reason:    issued.Reason,
			CreatedAt: issued.OccurredAt,
		}
		if issued.BookID != "" {
			bookID := issued.BookID
			fine.BookID = &bookID
		}

		if err := tx.InsertFine(ctx, fine); err != nil {
			return err
		}

		if err := shell.RecordNotifications(ctx, tx, h.messages, issued); err != nil {
			return err
		}

		result = Result{
			HandlerResult: shell.NewSuccessResult(shell.FineIssuedMessage(issued, h.messages)),
			Fine:          fine,
		}

		return nil
	})

	if err != nil {
		return Result{}, err
	}

	return result, nil
}

func (h CommandHandler) load(ctx context.Context, tx circulation.Tx, command Command) (State, error) {
	s := State{
		Now:    circulation.ToTimestamp(h.clock.Now()),
		FineID: circulation.NewID(),
	}

	if _, err := tx.FindUser(ctx, command.UserID); err != nil {
		if errors.Is(err, circulation.ErrRecordNotFound) {
			return s, nil
		}

		return s, err
	}

	s.UserFound = true

	if command.BookID == "" {
		return s, nil
	}

	if _, err := tx.FindBook(ctx, command.BookID); err != nil {
		if errors.Is(err, circulation.ErrRecordNotFound) {
			return s, nil
		}

		return s, err
	}

	s.BookFound = true

	return s, nil
}
