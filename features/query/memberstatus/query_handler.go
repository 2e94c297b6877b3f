package memberstatus

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// QueryHandler loads a Snapshot in one unit of work and projects it.
type QueryHandler struct {
	store circulation.TxRunner
	clock circulation.Clock
}

// Option configures a QueryHandler.
type Option func(*QueryHandler)

// WithClock sets the source of "now".
func WithClock(clock circulation.Clock) Option {
	return func(h *QueryHandler) {
		h.clock = clock
	}
}

// NewQueryHandler creates a new QueryHandler with optional configuration.
func NewQueryHandler(store circulation.TxRunner, opts ...Option) QueryHandler {
	h := QueryHandler{
		store: store,
		clock: circulation.SystemClock{},
	}

	for _, opt := range opts {
		opt(&h)
	}

	return h
}

// Handle returns the status of the member, or NotFound for an unknown member.
func (h QueryHandler) Handle(ctx context.Context, query Query) (MemberStatus, error) {
	snapshot := Snapshot{Now: circulation.ToTimestamp(h.clock.Now())}

	err := h.store.RunInTx(ctx, func(ctx context.Context, tx circulation.Tx) error {
		var err error

		if snapshot.User, err = tx.FindUser(ctx, query.UserID); err != nil {
			if errors.Is(err, circulation.ErrRecordNotFound) {
				return circulation.NotFound("User not found.")
			}

			return err
		}

		if snapshot.UnpaidFines, err = tx.SumUnpaidFines(ctx, query.UserID); err != nil {
			return err
		}

		if snapshot.OpenLoans, err = tx.ListOpenLoans(ctx, query.UserID); err != nil {
			return err
		}

		snapshot.Reservations, err = tx.ListActiveReservations(ctx, query.UserID)

		return err
	})

	if err != nil {
		return MemberStatus{}, err
	}

	return ProjectMemberStatus(snapshot), nil
}
