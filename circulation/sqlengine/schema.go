package sqlengine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/circulation/sqlengine/internal/adapters"
)

// columnTypes holds the dialect specific column types of the schema.
type columnTypes struct {
	id        string
	text      string
	timestamp string
	money     string
	boolean   string
	json      string
}

func columnTypesFor(dialect string) columnTypes {
	switch dialect {
	case adapters.DialectPostgres:
		return columnTypes{
			id:        "TEXT",
			text:      "TEXT",
			timestamp: "TIMESTAMPTZ",
			money:     "NUMERIC(10,2)",
			boolean:   "BOOLEAN",
			json:      "JSONB",
		}
	case adapters.DialectMySQL:
		return columnTypes{
			id:        "VARCHAR(36)",
			text:      "VARCHAR(1024)",
			timestamp: "DATETIME",
			money:     "DECIMAL(10,2)",
			boolean:   "BOOLEAN",
			json:      "JSON",
		}
	default:
		// SQLite: TIMESTAMP as declared type lets the driver hand back time.Time values.
		return columnTypes{
			id:        "TEXT",
			text:      "TEXT",
			timestamp: "TIMESTAMP",
			money:     "REAL",
			boolean:   "BOOLEAN",
			json:      "TEXT",
		}
	}
}

type index struct {
	name    string
	table   string
	columns string
}

var indexes = []index{
	{name: "idx_reservations_user_book_status", table: tableReservations, columns: "user_id, book_id, status"},
	{name: "idx_reservations_status_until", table: tableReservations, columns: "status, reserved_until"},
	{name: "idx_borrowed_books_user_book", table: tableLoans, columns: "user_id, book_id"},
	{name: "idx_borrowed_books_due_date", table: tableLoans, columns: "due_date"},
	{name: "idx_fines_user_status", table: tableFines, columns: "user_id, status"},
	{name: "idx_transactions_user", table: tableTransactions, columns: "user_id"},
	{name: "idx_notifications_user", table: tableNotifications, columns: "user_id"},
}

// SchemaStatements returns the DDL statements creating all circulation tables for the dialect.
// All statements are idempotent.
func SchemaStatements(dialect string) []string {
	t := columnTypesFor(dialect)

	tables := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id %s PRIMARY KEY,
	isbn %s NOT NULL,
	title %s NOT NULL,
	copies_available INTEGER NOT NULL DEFAULT 0 CHECK (copies_available >= 0),
	copies_borrowed INTEGER NOT NULL DEFAULT 0 CHECK (copies_borrowed >= 0),
	borrow_count INTEGER NOT NULL DEFAULT 0 CHECK (borrow_count >= 0)%s
)`, tableBooks, t.id, t.text, t.text, inlineIndexes(dialect, tableBooks)),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id %s PRIMARY KEY,
	name %s NOT NULL,
	restricted_until %s NULL%s
)`, tableUsers, t.id, t.text, t.timestamp, inlineIndexes(dialect, tableUsers)),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id %s PRIMARY KEY,
	user_id %s NOT NULL,
	book_id %s NOT NULL,
	status VARCHAR(16) NOT NULL,
	reservation_date %s NOT NULL,
	reserved_until %s NOT NULL,
	notified %s NOT NULL DEFAULT FALSE,
	loan_id %s NULL%s
)`, tableReservations, t.id, t.id, t.id, t.timestamp, t.timestamp, t.boolean, t.id,
			inlineIndexes(dialect, tableReservations)),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id %s PRIMARY KEY,
	user_id %s NOT NULL,
	book_id %s NOT NULL,
	borrow_date %s NOT NULL,
	due_date %s NOT NULL,
	return_date %s NULL,
	reservation_id %s NULL%s
)`, tableLoans, t.id, t.id, t.id, t.timestamp, t.timestamp, t.timestamp, t.id,
			inlineIndexes(dialect, tableLoans)),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id %s PRIMARY KEY,
	user_id %s NOT NULL,
	book_id %s NULL,
	amount %s NOT NULL CHECK (amount >= 0),
	status VARCHAR(16) NOT NULL,
	reason %s NOT NULL,
	created_at %s NOT NULL,
	paid_at %s NULL%s
)`, tableFines, t.id, t.id, t.id, t.money, t.text, t.timestamp, t.timestamp,
			inlineIndexes(dialect, tableFines)),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id %s PRIMARY KEY,
	user_id %s NOT NULL,
	book_id %s NOT NULL,
	action_type VARCHAR(16) NOT NULL,
	timestamp %s NOT NULL%s
)`, tableTransactions, t.id, t.id, t.id, t.timestamp, inlineIndexes(dialect, tableTransactions)),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id %s PRIMARY KEY,
	user_id %s NOT NULL,
	type VARCHAR(32) NOT NULL,
	title %s NOT NULL,
	message %s NOT NULL,
	book_id %s NULL,
	reservation_id %s NULL,
	payload %s NOT NULL,
	created_at %s NOT NULL%s
)`, tableNotifications, t.id, t.id, t.text, t.text, t.id, t.id, t.json, t.timestamp,
			inlineIndexes(dialect, tableNotifications)),
	}

	if dialect == adapters.DialectMySQL {
		return tables
	}

	statements := tables
	for _, idx := range indexes {
		statements = append(statements,
			fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)", idx.name, idx.table, idx.columns))
	}

	return statements
}

// inlineIndexes renders index definitions inside CREATE TABLE for MySQL,
// which has no CREATE INDEX IF NOT EXISTS.
func inlineIndexes(dialect, table string) string {
	if dialect != adapters.DialectMySQL {
		return ""
	}

	var b strings.Builder
	for _, idx := range indexes {
		if idx.table == table {
			b.WriteString(fmt.Sprintf(",\n\tINDEX %s (%s)", idx.name, idx.columns))
		}
	}

	return b.String()
}

// Migrate creates the circulation tables if they do not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	statements := SchemaStatements(s.dialectName)

	for _, statement := range statements {
		start := time.Now()
		_, err := s.db.ExecContext(ctx, statement)
		s.logQueryWithDuration(ctx, statement, logActionMigrate, time.Since(start))

		if err != nil {
			s.logError(ctx, logMsgDBExecFailed, err, logAttrQuery, statement)
			s.recordErrorMetrics(logActionMigrate)
			return errors.Join(circulation.ErrWriteFailed, err)
		}
	}

	s.logInfo(ctx, logMsgMigrated, logAttrDialect, s.dialectName, logAttrStatements, len(statements))

	return nil
}
