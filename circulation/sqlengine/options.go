package sqlengine

import (
	"errors"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/circulation/sqlengine/internal/adapters"
)

// ErrUnsupportedDialect is returned by WithDialect for dialects the store cannot render.
var ErrUnsupportedDialect = errors.New("unsupported sql dialect")

// Option defines a functional option for configuring a Store.
type Option func(*Store) error

// WithLogger sets the logger for the Store.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL statements with execution timing (development use)
// Warn level: Non-critical issues like rollback failures
// Error level: Failures that make the current operation fail.
func WithLogger(logger circulation.Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// WithContextualLogger sets a context-aware logger. It takes precedence over WithLogger.
func WithContextualLogger(logger circulation.ContextualLogger) Option {
	return func(s *Store) error {
		s.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Store.
// It receives statement durations and database error counts.
func WithMetrics(collector circulation.MetricsCollector) Option {
	return func(s *Store) error {
		s.metricsCollector = collector
		return nil
	}
}

// WithDialect overrides the SQL dialect detected from the driver.
func WithDialect(dialect string) Option {
	return func(s *Store) error {
		switch dialect {
		case adapters.DialectPostgres, adapters.DialectMySQL, adapters.DialectSQLite3:
			s.setDialect(dialect)
			return nil
		default:
			return errors.Join(ErrUnsupportedDialect, errors.New(dialect))
		}
	}
}
