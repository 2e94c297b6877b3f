package sqlengine

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

var reservationColumns = []any{
	"id", "user_id", "book_id", "status", "reservation_date", "reserved_until", "notified", "loan_id",
}

// InsertReservation creates a reservation.
func (h *txHandle) InsertReservation(ctx context.Context, reservation circulation.Reservation) error {
	ds := h.store.builder.Insert(tableReservations).Prepared(true).Rows(goqu.Record{
		"id":               reservation.ID,
		"user_id":          reservation.UserID,
		"book_id":          reservation.BookID,
		"status":           string(reservation.Status),
		"reservation_date": ts(reservation.ReservationDate),
		"reserved_until":   ts(reservation.ReservedUntil),
		"notified":         reservation.Notified,
		"loan_id":          nullableString(reservation.LoanID),
	})

	_, err := h.exec(ctx, "insert reservation", ds)

	return err
}

// FindReservation loads a reservation by id.
func (h *txHandle) FindReservation(ctx context.Context, reservationID string) (circulation.Reservation, error) {
	ds := h.store.builder.From(tableReservations).Prepared(true).
		Select(reservationColumns...).
		Where(goqu.C("id").Eq(reservationID))

	var reservation circulation.Reservation
	if err := h.get(ctx, "find reservation", &reservation, ds); err != nil {
		return circulation.Reservation{}, err
	}

	return reservation, nil
}

// FindLatestReservation returns the newest reservation of the user for the book in the given status.
func (h *txHandle) FindLatestReservation(
	ctx context.Context,
	userID, bookID string,
	status circulation.ReservationStatus,
) (circulation.Reservation, error) {

	ds := h.store.builder.From(tableReservations).Prepared(true).
		Select(reservationColumns...).
		Where(
			goqu.C("user_id").Eq(userID),
			goqu.C("book_id").Eq(bookID),
			goqu.C("status").Eq(string(status)),
		).
		Order(goqu.C("reservation_date").Desc(), goqu.C("id").Desc()).
		Limit(1)

	var reservation circulation.Reservation
	if err := h.get(ctx, "find latest reservation", &reservation, ds); err != nil {
		return circulation.Reservation{}, err
	}

	return reservation, nil
}

// CountReservations counts the reservations of the user for the book in any of the statuses.
func (h *txHandle) CountReservations(
	ctx context.Context,
	userID, bookID string,
	statuses ...circulation.ReservationStatus,
) (int, error) {

	ds := h.store.builder.From(tableReservations).Prepared(true).
		Select(goqu.COUNT(goqu.Star())).
		Where(
			goqu.C("user_id").Eq(userID),
			goqu.C("book_id").Eq(bookID),
			goqu.C("status").In(statusValues(statuses)...),
		)

	var count int
	if err := h.get(ctx, "count reservations", &count, ds); err != nil {
		return 0, err
	}

	return count, nil
}

// TransitionReservation is a compare-and-set on the status column.
func (h *txHandle) TransitionReservation(
	ctx context.Context,
	reservationID string,
	from, to circulation.ReservationStatus,
) (bool, error) {

	ds := h.store.builder.Update(tableReservations).Prepared(true).
		Set(goqu.Record{"status": string(to)}).
		Where(
			goqu.C("id").Eq(reservationID),
			goqu.C("status").Eq(string(from)),
		)

	rowsAffected, err := h.exec(ctx, "transition reservation", ds)
	if err != nil {
		return false, err
	}

	return rowsAffected == 1, nil
}

// LinkReservationLoan stores the back-reference from a reservation to the loan it spawned.
func (h *txHandle) LinkReservationLoan(ctx context.Context, reservationID, loanID string) error {
	ds := h.store.builder.Update(tableReservations).Prepared(true).
		Set(goqu.Record{"loan_id": loanID}).
		Where(goqu.C("id").Eq(reservationID))

	_, err := h.exec(ctx, "link reservation loan", ds)

	return err
}

// MarkReservationsOverdue moves BORROWED reservations of the user for the book to OVERDUE.
func (h *txHandle) MarkReservationsOverdue(ctx context.Context, userID, bookID string) (int64, error) {
	ds := h.store.builder.Update(tableReservations).Prepared(true).
		Set(goqu.Record{"status": string(circulation.ReservationOverdue)}).
		Where(
			goqu.C("user_id").Eq(userID),
			goqu.C("book_id").Eq(bookID),
			goqu.C("status").Eq(string(circulation.ReservationBorrowed)),
		)

	return h.exec(ctx, "mark reservations overdue", ds)
}

// ListExpiredReservations returns notified RESERVED reservations past their pickup deadline, oldest first.
func (h *txHandle) ListExpiredReservations(ctx context.Context, now time.Time) ([]circulation.Reservation, error) {
	ds := h.store.builder.From(tableReservations).Prepared(true).
		Select(reservationColumns...).
		Where(
			goqu.C("status").Eq(string(circulation.ReservationReserved)),
			goqu.C("notified").Eq(true),
			goqu.C("reserved_until").Lt(ts(now)),
		).
		Order(goqu.C("reserved_until").Asc(), goqu.C("id").Asc())

	reservations := make([]circulation.Reservation, 0)
	if err := h.selectAll(ctx, "list expired reservations", &reservations, ds); err != nil {
		return nil, err
	}

	return reservations, nil
}

// ListActiveReservations returns the user's RESERVED and BORROWED reservations.
func (h *txHandle) ListActiveReservations(ctx context.Context, userID string) ([]circulation.Reservation, error) {
	ds := h.store.builder.From(tableReservations).Prepared(true).
		Select(reservationColumns...).
		Where(
			goqu.C("user_id").Eq(userID),
			goqu.C("status").In(
				string(circulation.ReservationReserved),
				string(circulation.ReservationBorrowed),
			),
		).
		Order(goqu.C("reservation_date").Asc(), goqu.C("id").Asc())

	reservations := make([]circulation.Reservation, 0)
	if err := h.selectAll(ctx, "list active reservations", &reservations, ds); err != nil {
		return nil, err
	}

	return reservations, nil
}

func statusValues(statuses []circulation.ReservationStatus) []any {
	values := make([]any, 0, len(statuses))
	for _, status := range statuses {
		values = append(values, string(status))
	}

	return values
}
