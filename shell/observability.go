package shell

import (
	"context"
	"errors"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

const (
	// CommandHandlerDurationMetric tracks command handler execution duration.
	CommandHandlerDurationMetric = "commandhandler_handle_duration_seconds"
	// CommandHandlerCallsMetric tracks total command handler calls.
	CommandHandlerCallsMetric = "commandhandler_handle_calls_total"
	// CommandHandlerIdempotentMetric tracks idempotent operations.
	CommandHandlerIdempotentMetric = "commandhandler_idempotent_operations_total"
	// CommandHandlerRejectionsMetric tracks policy and state-transition rejections by kind.
	CommandHandlerRejectionsMetric = "commandhandler_rejections_total"
	// QueryHandlerDurationMetric tracks query handler execution duration.
	QueryHandlerDurationMetric = "queryhandler_handle_duration_seconds"
	// QueryHandlerCallsMetric tracks total query handler calls.
	QueryHandlerCallsMetric = "queryhandler_handle_calls_total"

	// StatusSuccess indicates successful completion.
	StatusSuccess = "success"
	// StatusIdempotent indicates no state change was needed.
	StatusIdempotent = "idempotent"
	// StatusRejected indicates a NotFound, Forbidden or BadRequest outcome.
	StatusRejected = "rejected"
	// StatusError indicates an infrastructure failure.
	StatusError = "error"
	// StatusCanceled indicates the context was canceled.
	StatusCanceled = "canceled"
	// StatusTimeout indicates the context deadline was exceeded.
	StatusTimeout = "timeout"

	// LogMsgCommandStarted is logged when command processing begins.
	LogMsgCommandStarted = "command handler started"
	// LogMsgCommandCompleted is logged when command processing succeeds.
	LogMsgCommandCompleted = "command handler completed"
	// LogMsgCommandRejected is logged when the command was rejected by a business rule.
	LogMsgCommandRejected = "command handler rejected"
	// LogMsgCommandFailed is logged when command processing fails.
	LogMsgCommandFailed = "command handler failed"
	// LogMsgQueryCompleted is logged when a query succeeds.
	LogMsgQueryCompleted = "query handler completed"
	// LogMsgQueryFailed is logged when a query fails.
	LogMsgQueryFailed = "query handler failed"
	// LogMsgSweepItemFailed is logged when a single item of a sweep could not be processed.
	LogMsgSweepItemFailed = "sweep item failed"
	// LogMsgSweepCompleted is logged when a sweep has worked through its candidates.
	LogMsgSweepCompleted = "sweep completed"

	// LogAttrCommandType identifies the command type in logs.
	LogAttrCommandType = "command_type"
	// LogAttrQueryType identifies the query type in logs.
	LogAttrQueryType = "query_type"
	// LogAttrStatus indicates the processing status.
	LogAttrStatus = "status"
	// LogAttrDurationMS indicates the processing duration in milliseconds.
	LogAttrDurationMS = "duration_ms"
	// LogAttrBusinessOutcome classifies the business result.
	LogAttrBusinessOutcome = "business_outcome"
	// LogAttrRejectionKind is the kind of a rejection.
	LogAttrRejectionKind = "rejection_kind"
	// LogAttrError contains error details.
	LogAttrError = "error"
	// LogAttrSweep names the sweep.
	LogAttrSweep = "sweep"
	// LogAttrItemID is the id of the reservation or loan a sweep works on.
	LogAttrItemID = "item_id"
	// LogAttrCandidates is the number of items a sweep found.
	LogAttrCandidates = "candidates"
	// LogAttrProcessed is the number of items a sweep changed.
	LogAttrProcessed = "processed"
	// LogAttrFailed is the number of items a sweep could not process.
	LogAttrFailed = "failed"
)

// Interface aliases for convenience when using handler observability.

// MetricsCollector interface for collecting handler performance metrics.
type MetricsCollector = circulation.MetricsCollector

// ContextualLogger interface for context-aware logging in handlers.
type ContextualLogger = circulation.ContextualLogger

// Logger interface for basic logging in handlers.
type Logger = circulation.Logger

// ClassifyError maps an error to the status used in logs and metrics.
func ClassifyError(err error) string {
	switch {
	case err == nil:
		return StatusSuccess
	case circulation.IsRejection(err):
		return StatusRejected
	case errors.Is(err, context.Canceled):
		return StatusCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return StatusTimeout
	default:
		return StatusError
	}
}

// BuildCommandLabels creates standard metric labels for command handler operations.
func BuildCommandLabels(commandType, status string) map[string]string {
	return map[string]string{
		LogAttrCommandType: commandType,
		LogAttrStatus:      status,
	}
}

// ToMilliseconds converts a time.Duration to float64 milliseconds with precision.
func ToMilliseconds(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}

// RecordCommandMetrics records duration and call count of a command, plus idempotency and rejection counters.
func RecordCommandMetrics(
	collector MetricsCollector,
	commandType string,
	status string,
	duration time.Duration,
	err error,
) {
	if collector == nil {
		return
	}

	labels := BuildCommandLabels(commandType, status)
	collector.RecordDuration(CommandHandlerDurationMetric, duration, labels)
	collector.IncrementCounter(CommandHandlerCallsMetric, labels)

	switch status {
	case StatusIdempotent:
		collector.IncrementCounter(CommandHandlerIdempotentMetric, BuildCommandLabels(commandType, StatusIdempotent))
	case StatusRejected:
		rejectionLabels := BuildCommandLabels(commandType, StatusRejected)
		rejectionLabels[LogAttrRejectionKind] = string(circulation.KindOf(err))
		collector.IncrementCounter(CommandHandlerRejectionsMetric, rejectionLabels)
	}
}

// RecordQueryMetrics records duration and call count of a query.
func RecordQueryMetrics(collector MetricsCollector, queryType, status string, duration time.Duration) {
	if collector == nil {
		return
	}

	labels := map[string]string{
		LogAttrQueryType: queryType,
		LogAttrStatus:    status,
	}
	collector.RecordDuration(QueryHandlerDurationMetric, duration, labels)
	collector.IncrementCounter(QueryHandlerCallsMetric, labels)
}

// LogCommandStart logs the beginning of command processing.
func LogCommandStart(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	commandType string,
) {
	if contextualLogger != nil {
		contextualLogger.InfoContext(ctx, LogMsgCommandStarted, LogAttrCommandType, commandType)
	} else if logger != nil {
		logger.Info(LogMsgCommandStarted, LogAttrCommandType, commandType)
	}
}

// LogCommandSuccess logs successful command completion.
func LogCommandSuccess(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	commandType string,
	businessOutcome string,
	duration time.Duration,
) {
	args := []any{
		LogAttrCommandType, commandType,
		LogAttrBusinessOutcome, businessOutcome,
		LogAttrDurationMS, ToMilliseconds(duration),
	}

	if contextualLogger != nil {
		contextualLogger.InfoContext(ctx, LogMsgCommandCompleted, args...)
	} else if logger != nil {
		logger.Info(LogMsgCommandCompleted, args...)
	}
}

// LogCommandRejected logs a rejection. Rejections are expected outcomes, so they are logged at info level.
func LogCommandRejected(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	commandType string,
	err error,
	duration time.Duration,
) {
	args := []any{
		LogAttrCommandType, commandType,
		LogAttrRejectionKind, string(circulation.KindOf(err)),
		LogAttrError, err.Error(),
		LogAttrDurationMS, ToMilliseconds(duration),
	}

	if contextualLogger != nil {
		contextualLogger.InfoContext(ctx, LogMsgCommandRejected, args...)
	} else if logger != nil {
		logger.Info(LogMsgCommandRejected, args...)
	}
}

// LogCommandError logs command processing errors.
func LogCommandError(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	commandType string,
	status string,
	err error,
) {
	args := []any{
		LogAttrCommandType, commandType,
		LogAttrStatus, status,
		LogAttrError, err.Error(),
	}

	if contextualLogger != nil {
		contextualLogger.ErrorContext(ctx, LogMsgCommandFailed, args...)
	} else if logger != nil {
		logger.Error(LogMsgCommandFailed, args...)
	}
}

// LogQueryResult logs the outcome of a query at info or error level.
func LogQueryResult(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	queryType string,
	err error,
	duration time.Duration,
) {
	if err != nil && !circulation.IsRejection(err) {
		args := []any{LogAttrQueryType, queryType, LogAttrError, err.Error()}
		if contextualLogger != nil {
			contextualLogger.ErrorContext(ctx, LogMsgQueryFailed, args...)
		} else if logger != nil {
			logger.Error(LogMsgQueryFailed, args...)
		}

		return
	}

	args := []any{
		LogAttrQueryType, queryType,
		LogAttrStatus, ClassifyError(err),
		LogAttrDurationMS, ToMilliseconds(duration),
	}
	if contextualLogger != nil {
		contextualLogger.InfoContext(ctx, LogMsgQueryCompleted, args...)
	} else if logger != nil {
		logger.Info(LogMsgQueryCompleted, args...)
	}
}

// LogSweepItemFailed logs a per-item failure of a sweep. The sweep continues with the next item.
func LogSweepItemFailed(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	sweep string,
	itemID string,
	err error,
) {
	args := []any{
		LogAttrSweep, sweep,
		LogAttrItemID, itemID,
		LogAttrError, err.Error(),
	}

	if contextualLogger != nil {
		contextualLogger.ErrorContext(ctx, LogMsgSweepItemFailed, args...)
	} else if logger != nil {
		logger.Error(LogMsgSweepItemFailed, args...)
	}
}

// LogSweepCompleted logs the counters of a finished sweep.
func LogSweepCompleted(
	ctx context.Context,
	logger Logger,
	contextualLogger ContextualLogger,
	sweep string,
	candidates, processed, failed int,
) {
	args := []any{
		LogAttrSweep, sweep,
		LogAttrCandidates, candidates,
		LogAttrProcessed, processed,
		LogAttrFailed, failed,
	}

	if contextualLogger != nil {
		contextualLogger.InfoContext(ctx, LogMsgSweepCompleted, args...)
	} else if logger != nil {
		logger.Info(LogMsgSweepCompleted, args...)
	}
}
