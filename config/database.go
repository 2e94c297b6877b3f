package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"           // postgres driver
	_ "github.com/mattn/go-sqlite3" // sqlite3 driver

	"github.com/AntonStoeckl/library-circulation-go/circulation/sqlengine"
)

const (
	defaultMaxOpenConnections = 50
	defaultMaxIdleConnections = 2
	defaultMaxConnLifetime    = time.Hour
	defaultMaxConnIdleTime    = time.Minute * 5
	defaultHealthCheckPeriod  = time.Minute
	defaultConnectTimeout     = time.Second * 5
)

// ErrOpeningDatabaseFailed is returned when a connection cannot be opened or does not answer a ping.
var ErrOpeningDatabaseFailed = errors.New("opening database failed")

// PGXPool creates a pgxpool.Pool for the "pgx" driver and pings it.
func PGXPool(ctx context.Context, cfg DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, errors.Join(ErrOpeningDatabaseFailed, err)
	}

	poolConfig.MaxConns = int32(orDefault(cfg.MaxOpenConns, defaultMaxOpenConnections)) //nolint:gosec // small config value
	poolConfig.MinConns = int32(orDefault(cfg.MaxIdleConns, defaultMaxIdleConnections)) //nolint:gosec // small config value
	poolConfig.MaxConnLifetime = orDefault(cfg.ConnMaxLifetime, defaultMaxConnLifetime)
	poolConfig.MaxConnIdleTime = orDefault(cfg.ConnMaxIdleTime, defaultMaxConnIdleTime)
	poolConfig.HealthCheckPeriod = defaultHealthCheckPeriod
	poolConfig.ConnConfig.ConnectTimeout = defaultConnectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, errors.Join(ErrOpeningDatabaseFailed, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Join(ErrOpeningDatabaseFailed, err)
	}

	return pool, nil
}

// SQLDB opens a configured *sql.DB for any supported driver and pings it.
// MySQL DSNs are forced to parse timestamps as UTC time.Time values.
// SQLite gets a single connection, it serializes writers anyway.
func SQLDB(ctx context.Context, cfg DatabaseConfig) (*sql.DB, error) {
	dsn, err := driverDSN(cfg)
	if err != nil {
		return nil, errors.Join(ErrOpeningDatabaseFailed, err)
	}

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, errors.Join(ErrOpeningDatabaseFailed, err)
	}

	configurePool(db, cfg)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close() // ignore error
		return nil, errors.Join(ErrOpeningDatabaseFailed, err)
	}

	return db, nil
}

// SQLX opens a configured *sqlx.DB for any supported driver and pings it.
func SQLX(ctx context.Context, cfg DatabaseConfig) (*sqlx.DB, error) {
	db, err := SQLDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return sqlx.NewDb(db, cfg.Driver), nil
}

// OpenStore connects with the adapter that fits the driver and returns the store with a function that
// releases the connection.
func OpenStore(ctx context.Context, cfg DatabaseConfig, options ...sqlengine.Option) (*sqlengine.Store, func(), error) {
	if cfg.Driver == DriverPGX {
		pool, err := PGXPool(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}

		store, err := sqlengine.NewStoreFromPGXPool(pool, options...)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}

		return store, pool.Close, nil
	}

	db, err := SQLX(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	store, err := sqlengine.NewStoreFromSQLX(db, options...)
	if err != nil {
		_ = db.Close() // ignore error
		return nil, nil, err
	}

	return store, func() { _ = db.Close() }, nil
}

func driverDSN(cfg DatabaseConfig) (string, error) {
	switch cfg.Driver {
	case DriverMySQL:
		mysqlConfig, err := mysql.ParseDSN(cfg.DSN)
		if err != nil {
			return "", err
		}

		mysqlConfig.ParseTime = true
		mysqlConfig.Loc = time.UTC

		return mysqlConfig.FormatDSN(), nil
	case DriverPGX, DriverPostgres, DriverSQLite3:
		return cfg.DSN, nil
	default:
		return "", fmt.Errorf("database driver %q is not supported", cfg.Driver)
	}
}

func configurePool(db *sql.DB, cfg DatabaseConfig) {
	if cfg.Driver == DriverSQLite3 {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		return
	}

	db.SetMaxOpenConns(orDefault(cfg.MaxOpenConns, defaultMaxOpenConnections))
	db.SetMaxIdleConns(orDefault(cfg.MaxIdleConns, defaultMaxIdleConnections))
	db.SetConnMaxLifetime(orDefault(cfg.ConnMaxLifetime, defaultMaxConnLifetime))
	db.SetConnMaxIdleTime(orDefault(cfg.ConnMaxIdleTime, defaultMaxConnIdleTime))
}

func orDefault[T int | time.Duration](value, fallback T) T {
	if value <= 0 {
		return fallback
	}

	return value
}
