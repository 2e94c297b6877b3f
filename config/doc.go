// Package config loads the daemon configuration and opens database connections from it.
//
// Configuration is read from a YAML file on top of Default, then the environment variables
// CIRCULATION_DB_DRIVER, CIRCULATION_DB_DSN, CIRCULATION_HTTP_ADDR and CIRCULATION_LOG_LEVEL
// override the file.
//
// The connection factories support the drivers the store understands: "pgx" (pgxpool),
// "postgres" (lib/pq), "mysql" (go-sql-driver/mysql) and "sqlite3" (mattn/go-sqlite3).
package config
