package sqlengine

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

var userColumns = []any{"id", "name", "restricted_until"}

// LockUser loads the user row and locks it for the rest of the transaction where supported.
func (h *txHandle) LockUser(ctx context.Context, userID string) (circulation.User, error) {
	ds := h.store.builder.From(tableUsers).Prepared(true).
		Select(userColumns...).
		Where(goqu.C("id").Eq(userID))

	if h.store.lockRows {
		ds = ds.ForUpdate(exp.Wait)
	}

	var user circulation.User
	if err := h.get(ctx, "lock user", &user, ds); err != nil {
		return circulation.User{}, err
	}

	return user, nil
}

// FindUser loads the user without locking.
func (h *txHandle) FindUser(ctx context.Context, userID string) (circulation.User, error) {
	ds := h.store.builder.From(tableUsers).Prepared(true).
		Select(userColumns...).
		Where(goqu.C("id").Eq(userID))

	var user circulation.User
	if err := h.get(ctx, "find user", &user, ds); err != nil {
		return circulation.User{}, err
	}

	return user, nil
}

// InsertUser creates a user.
func (h *txHandle) InsertUser(ctx context.Context, user circulation.User) error {
	ds := h.store.builder.Insert(tableUsers).Prepared(true).Rows(goqu.Record{
		"id":               user.ID,
		"name":             user.Name,
		"restricted_until": nullableTime(user.RestrictedUntil),
	})

	_, err := h.exec(ctx, "insert user", ds)

	return err
}

// RestrictUser sets restricted_until, overwriting any earlier restriction.
func (h *txHandle) RestrictUser(ctx context.Context, userID string, until time.Time) error {
	ds := h.store.builder.Update(tableUsers).Prepared(true).
		Set(goqu.Record{"restricted_until": ts(until)}).
		Where(goqu.C("id").Eq(userID))

	_, err := h.exec(ctx, "restrict user", ds)

	return err
}
