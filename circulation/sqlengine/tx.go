package sqlengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/circulation/sqlengine/internal/adapters"
)

// statement is implemented by every goqu dataset.
type statement interface {
	ToSQL() (string, []any, error)
}

// txHandle is the circulation.Tx bound to one open database transaction.
// Every statement of a unit of work goes through it.
type txHandle struct {
	store *Store
	tx    *sqlx.Tx
}

var _ circulation.Tx = (*txHandle)(nil)

func (h *txHandle) querier() adapters.Querier {
	return h.tx
}

func (h *txHandle) build(ctx context.Context, action string, st statement) (string, []any, error) {
	sqlQuery, args, err := st.ToSQL()
	if err != nil {
		h.store.logError(ctx, logMsgBuildQueryFailed, err, logAttrQuery, action)
		return "", nil, errors.Join(circulation.ErrBuildingQueryFailed, err)
	}

	return sqlQuery, args, nil
}

// get scans exactly one row into dest. A missing row yields circulation.ErrRecordNotFound.
func (h *txHandle) get(ctx context.Context, action string, dest any, st statement) error {
	sqlQuery, args, err := h.build(ctx, action, st)
	if err != nil {
		return err
	}

	start := time.Now()
	err = h.querier().GetContext(ctx, dest, sqlQuery, args...)
	duration := time.Since(start)
	h.store.logQueryWithDuration(ctx, sqlQuery, action, duration)

	if errors.Is(err, sql.ErrNoRows) {
		h.store.recordDurationMetrics(action, statusSuccess, duration)
		return circulation.ErrRecordNotFound
	}

	if err != nil {
		h.store.logError(ctx, logMsgDBQueryFailed, err, logAttrQuery, sqlQuery)
		h.store.recordErrorMetrics(action)
		return errors.Join(circulation.ErrQueryFailed, err)
	}

	h.store.recordDurationMetrics(action, statusSuccess, duration)

	return nil
}

// selectAll scans all rows into the slice pointed to by dest.
func (h *txHandle) selectAll(ctx context.Context, action string, dest any, st statement) error {
	sqlQuery, args, err := h.build(ctx, action, st)
	if err != nil {
		return err
	}

	start := time.Now()
	err = h.querier().SelectContext(ctx, dest, sqlQuery, args...)
	duration := time.Since(start)
	h.store.logQueryWithDuration(ctx, sqlQuery, action, duration)

	if err != nil {
		h.store.logError(ctx, logMsgDBQueryFailed, err, logAttrQuery, sqlQuery)
		h.store.recordErrorMetrics(action)
		return errors.Join(circulation.ErrQueryFailed, err)
	}

	h.store.recordDurationMetrics(action, statusSuccess, duration)

	return nil
}

// exec runs an insert or update and returns the number of affected rows.
func (h *txHandle) exec(ctx context.Context, action string, st statement) (int64, error) {
	sqlQuery, args, err := h.build(ctx, action, st)
	if err != nil {
		return 0, err
	}

	start := time.Now()
	result, err := h.querier().ExecContext(ctx, sqlQuery, args...)
	duration := time.Since(start)
	h.store.logQueryWithDuration(ctx, sqlQuery, action, duration)

	if err != nil {
		h.store.logError(ctx, logMsgDBExecFailed, err, logAttrQuery, sqlQuery)
		h.store.recordErrorMetrics(action)
		return 0, errors.Join(circulation.ErrWriteFailed, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		h.store.logError(ctx, logMsgRowsAffectedFailed, err, logAttrQuery, sqlQuery)
		return 0, errors.Join(circulation.ErrWriteFailed, err)
	}

	h.store.recordDurationMetrics(action, statusSuccess, duration)

	return rowsAffected, nil
}

// ts normalizes a time value before it is bound as a statement argument.
func ts(t time.Time) time.Time {
	return circulation.ToTimestamp(t)
}

// nullableTime binds nil as SQL NULL and otherwise the normalized value.
func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}

	return ts(*t)
}

// nullableString binds nil as SQL NULL and otherwise the value.
func nullableString(s *string) any {
	if s == nil {
		return nil
	}

	return *s
}
