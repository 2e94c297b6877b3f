package waivefine

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/shell"
)

// Result is the outcome of a waive, Fine holds the state after the command.
type Result struct {
	shell.HandlerResult
	Fine circulation.Fine
}

// CommandHandler marks a fine PAID and records the notification in one unit of work.
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

// Handle waives the fine, does nothing for a PAID fine, or returns the rejection.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	var result Result

	err := h.store.RunInTx(ctx, func(ctx context.Context, tx circulation.Tx) error {
		s := State{Now: circulation.ToTimestamp(h.clock.Now())}

		fine, err := tx.FindFine(ctx, command.FineID)
		switch {
		case errors.Is(err, circulation.ErrRecordNotFound):
		case err != nil:
			return err
		default:
			s.FineFound = true
			s.Fine = fine
		}

		decision := Decide(s, command)
		if err := decision.HasError(); err != nil {
			return err
		}

		if decision.IsIdempotent() {
			result = h.alreadyPaid(fine)
			return nil
		}

		paid := decision.Events[0].(core.FinePaid) //nolint:forcetypeassert // Decide always returns exactly one FinePaid

		marked, err := tx.MarkFinePaid(ctx, paid.FineID, s.Now)
		if err != nil {
			return err
		}

		if !marked {
			result = h.alreadyPaid(fine)
			return nil
		}

		if err := shell.RecordNotifications(ctx, tx, h.messages, paid); err != nil {
			return err
		}

		paidAt := s.Now
		fine.Status = circulation.FinePaid
		fine.PaidAt = &paidAt

		result = Result{
			HandlerResult: shell.NewSuccessResult(
				h.messages.Sprintf("The fine of %s has been waived.", h.messages.Amount(fine.Amount))),
			Fine: fine,
		}

		return nil
	})

	if err != nil {
		return Result{}, err
	}

	return result, nil
}

func (h CommandHandler) alreadyPaid(fine circulation.Fine) Result {
	return Result{
		HandlerResult: shell.NewIdempotentResult("This fine has already been paid."),
		Fine:          fine,
	}
}
