package adapters

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

const (
	// DialectPostgres is the goqu dialect for PostgreSQL, regardless of driver.
	DialectPostgres = "postgres"

	// DialectMySQL is the goqu dialect for MySQL.
	DialectMySQL = "mysql"

	// DialectSQLite3 is the goqu dialect for SQLite.
	DialectSQLite3 = "sqlite3"

	driverNamePGX      = "pgx"
	driverNamePostgres = "postgres"
	driverNameMySQL    = "mysql"
	driverNameSQLite3  = "sqlite3"
)

// ErrUnknownDriver is returned when the dialect of a *sql.DB cannot be detected.
var ErrUnknownDriver = errors.New("unknown database driver")

// Querier is the part of *sqlx.DB and *sqlx.Tx the store needs to run statements.
type Querier interface {
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// FromPGXPool wraps a pgx pool in a *sqlx.DB through the pgx stdlib driver.
func FromPGXPool(pool *pgxpool.Pool) *sqlx.DB {
	return sqlx.NewDb(stdlib.OpenDBFromPool(pool), driverNamePGX)
}

// FromSQLDB wraps a *sql.DB in a *sqlx.DB, detecting the driver name from the registered driver.
func FromSQLDB(db *sql.DB) (*sqlx.DB, error) {
	driverName, err := DriverName(db)
	if err != nil {
		return nil, err
	}

	return sqlx.NewDb(db, driverName), nil
}

// DriverName returns the sql.Register name of the driver behind db.
func DriverName(db *sql.DB) (string, error) {
	switch db.Driver().(type) {
	case *stdlib.Driver:
		return driverNamePGX, nil
	case *pq.Driver:
		return driverNamePostgres, nil
	case *mysql.MySQLDriver:
		return driverNameMySQL, nil
	case *sqlite3.SQLiteDriver:
		return driverNameSQLite3, nil
	default:
		return "", ErrUnknownDriver
	}
}

// DialectFor maps a driver name to the goqu dialect that renders SQL for it.
func DialectFor(driverName string) (string, error) {
	switch driverName {
	case driverNamePGX, driverNamePostgres:
		return DialectPostgres, nil
	case driverNameMySQL:
		return DialectMySQL, nil
	case driverNameSQLite3:
		return DialectSQLite3, nil
	default:
		return "", ErrUnknownDriver
	}
}

// SupportsRowLocks reports whether SELECT ... FOR UPDATE is available in the dialect.
// SQLite serializes writers on the database file instead.
func SupportsRowLocks(dialect string) bool {
	return dialect != DialectSQLite3
}
