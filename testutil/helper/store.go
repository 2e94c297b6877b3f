package helper

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/circulation/sqlengine"
)

// Adapter type constants, selected with the ADAPTER_TYPE environment variable.
const (
	typeSQLDB  = "sql.db"
	typeSQLXDB = "sqlx.db"
)

// NewTestStore creates a Store on a fresh, migrated in-memory SQLite database.
// The database lives as long as the test and uses a single connection, so concurrent
// units of work are serialized the way row locks serialize them on a server database.
func NewTestStore(t testing.TB, options ...sqlengine.Option) *sqlengine.Store {
	t.Helper()

	store, _ := NewTestStoreWithDB(t, options...)

	return store
}

// NewTestStoreWithDB is NewTestStore that also returns the underlying connection for raw assertions.
func NewTestStoreWithDB(t testing.TB, options ...sqlengine.Option) (*sqlengine.Store, *sqlx.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", uuid.NewString())

	db, err := sql.Open("sqlite3", dsn)
	require.NoError(t, err, "error in opening the test database")

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	t.Cleanup(func() {
		_ = db.Close() // ignore error
	})

	var store *sqlengine.Store

	switch adapterType() {
	case typeSQLDB:
		store, err = sqlengine.NewStoreFromSQLDB(db, options...)
	case typeSQLXDB:
		store, err = sqlengine.NewStoreFromSQLX(sqlx.NewDb(db, "sqlite3"), options...)
	default:
		panic("unsupported adapter type: " + adapterType())
	}
	require.NoError(t, err, "error in creating the test store")

	require.NoError(t, store.Migrate(context.Background()), "error in migrating the test database")

	return store, sqlx.NewDb(db, "sqlite3")
}

func adapterType() string {
	if value := os.Getenv("ADAPTER_TYPE"); value != "" {
		return value
	}

	return typeSQLXDB
}
