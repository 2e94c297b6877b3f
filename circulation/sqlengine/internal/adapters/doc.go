// Package adapters turns the supported connection types into a single *sqlx.DB
// and detects which SQL dialect the underlying driver speaks.
//
// pgx pools are bridged through pgx's database/sql driver, plain *sql.DB handles are
// inspected for their registered driver (lib/pq, pgx stdlib, go-sql-driver/mysql, mattn/go-sqlite3).
package adapters
