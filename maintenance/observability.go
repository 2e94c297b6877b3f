package maintenance

import "context"

const (
	logMsgJobScheduled = "maintenance job scheduled"
	logMsgJobCompleted = "maintenance job completed"
	logMsgJobFailed    = "maintenance job failed"
	logAttrJob         = "job"
	logAttrNextRun     = "next_run"
	logAttrDurationMS  = "duration_ms"
	logAttrIdempotent  = "idempotent"
	logAttrMessage     = "message"
	logAttrError       = "error"
)

func (s *Scheduler) logDebug(ctx context.Context, message string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.DebugContext(ctx, message, args...)
		return
	}

	if s.logger != nil {
		s.logger.Debug(message, args...)
	}
}

func (s *Scheduler) logInfo(ctx context.Context, message string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.InfoContext(ctx, message, args...)
		return
	}

	if s.logger != nil {
		s.logger.Info(message, args...)
	}
}

func (s *Scheduler) logError(ctx context.Context, message string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if s.contextualLogger != nil {
		s.contextualLogger.ErrorContext(ctx, message, allArgs...)
		return
	}

	if s.logger != nil {
		s.logger.Error(message, allArgs...)
	}
}
