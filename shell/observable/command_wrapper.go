package observable

import (
	"context"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/shell"
)

// CommandWrapper decorates a core command handler with logging and metrics.
type CommandWrapper[C shell.Command, R shell.Result] struct {
	coreHandler      shell.CoreCommandHandler[C, R]
	commandType      string
	metricsCollector shell.MetricsCollector
	contextualLogger shell.ContextualLogger
	logger           shell.Logger
}

// CommandOption defines a functional option for configuring CommandWrapper.
type CommandOption[C shell.Command, R shell.Result] func(*CommandWrapper[C, R]) error

// NewCommandWrapper creates a new observable wrapper around the core command handler.
func NewCommandWrapper[C shell.Command, R shell.Result](
	coreHandler shell.CoreCommandHandler[C, R],
	opts ...CommandOption[C, R],
) (*CommandWrapper[C, R], error) {
	var zeroCommand C

	wrapper := &CommandWrapper[C, R]{
		coreHandler: coreHandler,
		commandType: zeroCommand.CommandType(),
	}

	for _, opt := range opts {
		if err := opt(wrapper); err != nil {
			return nil, err
		}
	}

	return wrapper, nil
}

// WithCommandMetrics sets the metrics collector for the CommandWrapper.
func WithCommandMetrics[C shell.Command, R shell.Result](collector shell.MetricsCollector) CommandOption[C, R] {
	return func(w *CommandWrapper[C, R]) error {
		w.metricsCollector = collector
		return nil
	}
}

// WithCommandContextualLogging sets the contextual logger for the CommandWrapper.
func WithCommandContextualLogging[C shell.Command, R shell.Result](logger shell.ContextualLogger) CommandOption[C, R] {
	return func(w *CommandWrapper[C, R]) error {
		w.contextualLogger = logger
		return nil
	}
}

// WithCommandLogging sets the basic logger for the CommandWrapper.
func WithCommandLogging[C shell.Command, R shell.Result](logger shell.Logger) CommandOption[C, R] {
	return func(w *CommandWrapper[C, R]) error {
		w.logger = logger
		return nil
	}
}

// CommandType returns the type of the wrapped command.
func (w *CommandWrapper[C, R]) CommandType() string {
	return w.commandType
}

// Handle delegates to the wrapped handler and records the outcome.
// The result and error of the core handler are returned unchanged.
func (w *CommandWrapper[C, R]) Handle(ctx context.Context, command C) (R, error) {
	commandStart := time.Now()
	shell.LogCommandStart(ctx, w.logger, w.contextualLogger, w.commandType)

	result, err := w.coreHandler.Handle(ctx, command)

	duration := time.Since(commandStart)
	if err != nil {
		w.recordCommandError(ctx, err, duration)
		return result, err
	}

	w.recordCommandSuccess(ctx, result.Outcome(), duration)

	return result, nil
}

/*** Observability helper methods ***/

func (w *CommandWrapper[C, R]) recordCommandSuccess(ctx context.Context, outcome shell.HandlerResult, duration time.Duration) {
	status := shell.StatusSuccess
	if outcome.Idempotent {
		status = shell.StatusIdempotent
	}

	shell.RecordCommandMetrics(w.metricsCollector, w.commandType, status, duration, nil)
	shell.LogCommandSuccess(ctx, w.logger, w.contextualLogger, w.commandType, status, duration)
}

func (w *CommandWrapper[C, R]) recordCommandError(ctx context.Context, err error, duration time.Duration) {
	status := shell.ClassifyError(err)
	shell.RecordCommandMetrics(w.metricsCollector, w.commandType, status, duration, err)

	if status == shell.StatusRejected {
		shell.LogCommandRejected(ctx, w.logger, w.contextualLogger, w.commandType, err, duration)
		return
	}

	shell.LogCommandError(ctx, w.logger, w.contextualLogger, w.commandType, status, err)
}
