package sqlengine

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/mysql"    // dialect import
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"  // dialect import
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/circulation/sqlengine/internal/adapters"
)

const (
	tableBooks         = "books"
	tableUsers         = "users"
	tableReservations  = "reservations"
	tableLoans         = "borrowed_books"
	tableFines         = "fines"
	tableTransactions  = "transactions"
	tableNotifications = "notifications"
)

// Store is the SQL backed circulation.TxRunner.
type Store struct {
	db               *sqlx.DB
	dialectName      string
	builder          goqu.DialectWrapper
	lockRows         bool
	logger           circulation.Logger
	contextualLogger circulation.ContextualLogger
	metricsCollector circulation.MetricsCollector
}

// NewStoreFromPGXPool creates a new Store using a pgx Pool with optional configuration.
func NewStoreFromPGXPool(pool *pgxpool.Pool, options ...Option) (*Store, error) {
	if pool == nil {
		return nil, circulation.ErrNilDatabaseConnection
	}

	return newStore(adapters.FromPGXPool(pool), options...)
}

// NewStoreFromSQLDB creates a new Store using a sql.DB with optional configuration.
// The dialect is detected from the registered driver (lib/pq, pgx stdlib, mysql, sqlite3).
func NewStoreFromSQLDB(db *sql.DB, options ...Option) (*Store, error) {
	if db == nil {
		return nil, circulation.ErrNilDatabaseConnection
	}

	sqlxDB, err := adapters.FromSQLDB(db)
	if err != nil {
		return nil, err
	}

	return newStore(sqlxDB, options...)
}

// NewStoreFromSQLX creates a new Store using a sqlx.DB with optional configuration.
func NewStoreFromSQLX(db *sqlx.DB, options ...Option) (*Store, error) {
	if db == nil {
		return nil, circulation.ErrNilDatabaseConnection
	}

	return newStore(db, options...)
}

func newStore(db *sqlx.DB, options ...Option) (*Store, error) {
	dialect, err := adapters.DialectFor(db.DriverName())
	if err != nil {
		return nil, err
	}

	s := &Store{db: db}
	s.setDialect(dialect)

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *Store) setDialect(dialect string) {
	s.dialectName = dialect
	s.builder = goqu.Dialect(dialect)
	s.lockRows = adapters.SupportsRowLocks(dialect)
}

// Dialect returns the name of the SQL dialect the store renders.
func (s *Store) Dialect() string {
	return s.dialectName
}

// Ping verifies the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// RunInTx runs fn inside a single database transaction.
// The transaction is committed when fn returns nil and rolled back when fn returns an error or panics.
// Errors returned by fn are passed through unchanged.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, tx circulation.Tx) error) error {
	sqlTx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		s.logError(ctx, logMsgBeginTxFailed, err)
		s.recordErrorMetrics(logActionBegin)
		return errors.Join(circulation.ErrTransactionFailed, err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}

		if rollbackErr := sqlTx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			s.logWarn(ctx, logMsgRollbackFailed, logAttrError, rollbackErr.Error())
		}
	}()

	if err := fn(ctx, &txHandle{store: s, tx: sqlTx}); err != nil {
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		s.logError(ctx, logMsgCommitFailed, err)
		s.recordErrorMetrics(logActionCommit)
		return errors.Join(circulation.ErrTransactionFailed, err)
	}

	committed = true

	return nil
}
