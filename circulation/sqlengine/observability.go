package sqlengine

import (
	"context"
	"math"
	"time"
)

const (
	logMsgBeginTxFailed     = "failed to begin transaction"
	logMsgCommitFailed      = "failed to commit transaction"
	logMsgRollbackFailed    = "failed to roll back transaction"
	logMsgBuildQueryFailed  = "failed to build sql statement"
	logMsgDBQueryFailed     = "database query execution failed"
	logMsgDBExecFailed      = "database execution failed"
	logMsgRowsAffectedFailed = "failed to get rows affected count"
	logMsgSQLExecuted       = "executed sql for: "
	logMsgMigrated          = "schema migrated"
	logAttrError            = "error"
	logAttrQuery            = "query"
	logAttrDurationMS       = "duration_ms"
	logAttrRowsAffected     = "rows_affected"
	logAttrDialect          = "dialect"
	logAttrStatements       = "statements"
	logActionBegin          = "begin"
	logActionCommit         = "commit"
	logActionMigrate        = "migrate"

	metricStatementDuration = "sqlengine_statement_duration_seconds"
	metricDatabaseErrors    = "sqlengine_database_errors_total"
	metricLabelOperation    = "operation"
	metricLabelStatus       = "status"
	statusSuccess           = "success"
	statusError             = "error"
)

// logQueryWithDuration logs SQL statements with execution time at debug level if a logger is configured.
func (s *Store) logQueryWithDuration(ctx context.Context, sqlQuery string, action string, duration time.Duration) {
	args := []any{logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery}

	if s.contextualLogger != nil {
		s.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+action, args...)
		return
	}

	if s.logger != nil {
		s.logger.Debug(logMsgSQLExecuted+action, args...)
	}
}

// logInfo logs operational information at info level if a logger is configured.
func (s *Store) logInfo(ctx context.Context, message string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.InfoContext(ctx, message, args...)
		return
	}

	if s.logger != nil {
		s.logger.Info(message, args...)
	}
}

// logWarn logs non-critical issues at warn level if a logger is configured.
func (s *Store) logWarn(ctx context.Context, message string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.WarnContext(ctx, message, args...)
		return
	}

	if s.logger != nil {
		s.logger.Warn(message, args...)
	}
}

// logError logs error information at error level if a logger is configured.
func (s *Store) logError(ctx context.Context, message string, err error, args ...any) {
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

// recordDurationMetrics records the statement duration if a metrics collector is configured.
func (s *Store) recordDurationMetrics(operation, status string, duration time.Duration) {
	if s.metricsCollector != nil {
		labels := map[string]string{
			metricLabelOperation: operation,
			metricLabelStatus:    status,
		}
		s.metricsCollector.RecordDuration(metricStatementDuration, duration, labels)
	}
}

// recordErrorMetrics counts a database error if a metrics collector is configured.
func (s *Store) recordErrorMetrics(operation string) {
	if s.metricsCollector != nil {
		labels := map[string]string{
			metricLabelOperation: operation,
			metricLabelStatus:    statusError,
		}
		s.metricsCollector.IncrementCounter(metricDatabaseErrors, labels)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
