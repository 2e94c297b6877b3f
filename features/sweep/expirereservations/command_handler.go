package expirereservations

import (
	"context"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/shell"
)

// Result reports how many reservations were found, cancelled and skipped because they failed.
type Result struct {
	shell.HandlerResult
	Candidates int
	Processed  int
	Failed     int
}

// CommandHandler runs the pickup-deadline sweep.
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

// Handle cancels every expired reservation. Only failing to read the candidates is returned as an error;
// a failing reservation is logged, counted in Failed and skipped.
func (h CommandHandler) Handle(ctx context.Context, _ Command) (Result, error) {
	now := circulation.ToTimestamp(h.clock.Now())

	candidates, err := ListCandidates(ctx, h.store, now)
	if err != nil {
		return Result{}, err
	}

	result := Result{Candidates: len(candidates)}

	for _, candidate := range candidates {
		expired, err := h.expire(ctx, candidate.ID, now)
		if err != nil {
			shell.LogSweepItemFailed(ctx, h.logger, h.contextualLogger, commandType, candidate.ID, err)
			result.Failed++

			continue
		}

		if expired {
			result.Processed++
		}
	}

	shell.LogSweepCompleted(ctx, h.logger, h.contextualLogger, commandType,
		result.Candidates, result.Processed, result.Failed)

	message := h.messages.Sprintf("Cancelled %d expired reservation(s).", result.Processed)
	if result.Failed > 0 {
		message = h.messages.Sprintf("Cancelled %d expired reservation(s), %d skipped.", result.Processed, result.Failed)
	}
	if result.Processed == 0 {
		result.HandlerResult = shell.NewIdempotentResult(message)
	} else {
		result.HandlerResult = shell.NewSuccessResult(message)
	}

	return result, nil
}

func (h CommandHandler) expire(ctx context.Context, reservationID string, now time.Time) (bool, error) {
	var expired bool

	err := h.store.RunInTx(ctx, func(ctx context.Context, tx circulation.Tx) error {
		var err error
		expired, err = CancelExpired(ctx, tx, reservationID, now, h.messages)

		return err
	})

	return expired, err
}

// ListCandidates reads the reservations the sweep would cancel at now.
func ListCandidates(ctx context.Context, store circulation.TxRunner, now time.Time) ([]circulation.Reservation, error) {
	var candidates []circulation.Reservation

	err := store.RunInTx(ctx, func(ctx context.Context, tx circulation.Tx) error {
		var err error
		candidates, err = tx.ListExpiredReservations(ctx, now)

		return err
	})

	return candidates, err
}

// CancelExpired cancels one expired reservation inside tx: guarded RESERVED -> CANCELLED, the copy goes
// back to the available stock and the member is notified. It reports false when there was nothing to do.
func CancelExpired(
	ctx context.Context,
	tx circulation.Tx,
	reservationID string,
	now time.Time,
	messages shell.Messages,
) (bool, error) {

	reservation, err := tx.FindReservation(ctx, reservationID)
	if err != nil {
		return false, err
	}

	book, err := tx.FindBook(ctx, reservation.BookID)
	if err != nil {
		return false, err
	}

	decision := Decide(State{Now: now, Reservation: reservation, BookTitle: book.Title})
	if decision.IsIdempotent() {
		return false, nil
	}

	transitioned, err := tx.TransitionReservation(
		ctx, reservation.ID, circulation.ReservationReserved, circulation.ReservationCancelled)
	if err != nil || !transitioned {
		return false, err
	}

	if _, err := tx.AdjustBookCopies(ctx, reservation.BookID, circulation.CopiesDelta{Available: 1}); err != nil {
		return false, err
	}

	expired := decision.Events[0].(core.ReservationExpired) //nolint:forcetypeassert // Decide always returns exactly one ReservationExpired
	if err := shell.RecordNotifications(ctx, tx, messages, expired); err != nil {
		return false, err
	}

	return true, nil
}
