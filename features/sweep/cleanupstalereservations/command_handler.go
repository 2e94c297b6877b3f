package cleanupstalereservations

import (
	"context"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/features/sweep/expirereservations"
	"github.com/AntonStoeckl/library-circulation-go/shell"
)

// Result reports the counters of one cleanup pass.
type Result struct {
	shell.HandlerResult
	Candidates int
	Processed  int
	Failed     int
}

// CommandHandler runs the stale-reservation cleanup.
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

// WithLogger sets the logger for skipped items and the summary.
func WithLogger(logger circulation.Logger) Option {
	return func(h *CommandHandler) {
		h.logger = logger
	}
}

// WithContextualLogger sets the contextual logger for skipped items and the summary.
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

// Handle cancels stale reservations one by one and never fails because of a single item.
func (h CommandHandler) Handle(ctx context.Context, _ Command) (Result, error) {
	now := circulation.ToTimestamp(h.clock.Now())

	candidates, err := expirereservations.ListCandidates(ctx, h.store, now)
	if err != nil {
		return Result{}, err
	}

	result := Result{Candidates: len(candidates)}

	for _, candidate := range candidates {
		var cancelled bool

		err := h.store.RunInTx(ctx, func(ctx context.Context, tx circulation.Tx) error {
			var err error
			cancelled, err = expirereservations.CancelExpired(ctx, tx, candidate.ID, now, h.messages)

			return err
		})

		switch {
		case err != nil:
			shell.LogSweepItemFailed(ctx, h.logger, h.contextualLogger, commandType, candidate.ID, err)
			result.Failed++
		case cancelled:
			result.Processed++
		}
	}

	shell.LogSweepCompleted(ctx, h.logger, h.contextualLogger, commandType,
		result.Candidates, result.Processed, result.Failed)

	message := h.messages.Sprintf("Cleaned up %d stale reservation(s), %d skipped.", result.Processed, result.Failed)
	if result.Processed == 0 {
		result.HandlerResult = shell.NewIdempotentResult(message)
	} else {
		result.HandlerResult = shell.NewSuccessResult(message)
	}

	return result, nil
}
