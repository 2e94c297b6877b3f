package detectoverdueloans

import (
	"context"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/shell"
)

// Result reports the number of overdue loans found, flagged and skipped because they failed.
type Result struct {
	shell.HandlerResult
	Overdue   int
	Processed int
	Failed    int
}

// CommandHandler runs the overdue sweep.
type CommandHandler struct {
	store            circulation.TxRunner
	clock            circulation.Clock
	messages         shell.Messages
	logger           circulation.Logger
	contextualLogger circulation.ContextualLogger
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithClock sets the source of "now".
func WithClock(clock circulation.Clock) Option {
	return func(h *CommandHandler) {
		h.clock = clock
	}
}

// WithMessages sets the locale used in notifications.
func WithMessages(messages shell.Messages) Option {
	return func(h *CommandHandler) {
		h.messages = messages
	}
}

// WithLogger sets the logger for per-item failures and the sweep summary.
func WithLogger(logger circulation.Logger) Option {
	return func(h *CommandHandler) {
		h.logger = logger
	}
}

// WithContextualLogger sets the contextual logger for per-item failures and the sweep summary.
func WithContextualLogger(logger circulation.ContextualLogger) Option {
	return func(h *CommandHandler) {
		h.contextualLogger = logger
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

// Handle flags every overdue loan. Only failing to read the candidates is returned as an error;
// a failing loan is logged, counted in Failed and skipped.
func (h CommandHandler) Handle(ctx context.Context, _ Command) (Result, error) {
	now := circulation.ToTimestamp(h.clock.Now())

	var loans []circulation.Loan

	err := h.store.RunInTx(ctx, func(ctx context.Context, tx circulation.Tx) error {
		var err error
		loans, err = tx.ListOverdueLoans(ctx, now)

		return err
	})

	if err != nil {
		return Result{}, err
	}

	result := Result{Overdue: len(loans)}

	for _, loan := range loans {
		if err := h.flag(ctx, loan, now); err != nil {
			shell.LogSweepItemFailed(ctx, h.logger, h.contextualLogger, commandType, loan.ID, err)
			result.Failed++

			continue
		}

		result.Processed++
	}

	shell.LogSweepCompleted(ctx, h.logger, h.contextualLogger, commandType, len(loans), result.Processed, result.Failed)

	message := h.messages.Sprintf("Found %d overdue loan(s).", len(loans))
	if result.Failed > 0 {
		message = h.messages.Sprintf("Found %d overdue loan(s), %d skipped.", len(loans), result.Failed)
	}

	if len(loans) == 0 {
		result.HandlerResult = shell.NewIdempotentResult(message)
	} else {
		result.HandlerResult = shell.NewSuccessResult(message)
	}

	return result, nil
}

func (h CommandHandler) flag(ctx context.Context, loan circulation.Loan, now time.Time) error {
	return h.store.RunInTx(ctx, func(ctx context.Context, tx circulation.Tx) error {
		user, err := tx.LockUser(ctx, loan.UserID)
		if err != nil {
			return err
		}

		book, err := tx.FindBook(ctx, loan.BookID)
		if err != nil {
			return err
		}

		borrowed, err := tx.CountReservations(ctx, loan.UserID, loan.BookID, circulation.ReservationBorrowed)
		if err != nil {
			return err
		}

		decision := Decide(State{
			Now:                  now,
			Loan:                 loan,
			BookTitle:            book.Title,
			BorrowedReservations: borrowed,
			MemberRestricted:     user.IsRestrictedAt(now),
		})

		if _, err := tx.MarkReservationsOverdue(ctx, loan.UserID, loan.BookID); err != nil {
			return err
		}

		if err := tx.RestrictUser(ctx, loan.UserID, circulation.RestrictedUntil(now)); err != nil {
			return err
		}

		if decision.IsIdempotent() {
			return nil
		}

		return shell.RecordNotifications(ctx, tx, h.messages, decision.Events...)
	})
}
