// Package sqlengine provides the SQL implementation of the circulation persistence contract.
//
// A Store runs every unit of work inside one database transaction and hands the
// operation a circulation.Tx bound to it. Statements are rendered with goqu for the
// detected dialect and executed through sqlx.
//
// Key features:
//   - PostgreSQL (pgx pool, pgx stdlib or lib/pq), MySQL and SQLite backends
//   - Counter updates as store-side arithmetic with non-negative guards
//   - Guarded status transitions that report whether they applied
//   - Row locks on user rows where the dialect supports them
//   - Optional logging and metrics
//
// Usage examples:
//
//	pool, _ := pgxpool.New(ctx, dsn)
//	store, _ := sqlengine.NewStoreFromPGXPool(pool, sqlengine.WithLogger(slog.Default()))
//	_ = store.Migrate(ctx)
//
//	err := store.RunInTx(ctx, func(ctx context.Context, tx circulation.Tx) error {
//		book, err := tx.FindBook(ctx, bookID)
//		...
//	})
package sqlengine
