package sqlengine

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

var (
	transactionColumns  = []any{"id", "user_id", "book_id", "action_type", "timestamp"}
	notificationColumns = []any{
		"id", "user_id", "type", "title", "message", "book_id", "reservation_id", "payload", "created_at",
	}
)

// AppendTransaction appends an audit record. Audit records are never updated.
func (h *txHandle) AppendTransaction(ctx context.Context, transaction circulation.Transaction) error {
	ds := h.store.builder.Insert(tableTransactions).Prepared(true).Rows(goqu.Record{
		"id":          transaction.ID,
		"user_id":     transaction.UserID,
		"book_id":     transaction.BookID,
		"action_type": string(transaction.ActionType),
		"timestamp":   ts(transaction.Timestamp),
	})

	_, err := h.exec(ctx, "append transaction", ds)

	return err
}

// ListTransactions returns the user's audit trail in insertion order.
// Ids are ULIDs, so ordering by id is chronological.
func (h *txHandle) ListTransactions(ctx context.Context, userID string) ([]circulation.Transaction, error) {
	ds := h.store.builder.From(tableTransactions).Prepared(true).
		Select(transactionColumns...).
		Where(goqu.C("user_id").Eq(userID)).
		Order(goqu.C("id").Asc())

	transactions := make([]circulation.Transaction, 0)
	if err := h.selectAll(ctx, "list transactions", &transactions, ds); err != nil {
		return nil, err
	}

	return transactions, nil
}

// InsertNotification records a notification for later delivery.
func (h *txHandle) InsertNotification(ctx context.Context, notification circulation.Notification) error {
	ds := h.store.builder.Insert(tableNotifications).Prepared(true).Rows(goqu.Record{
		"id":             notification.ID,
		"user_id":        notification.UserID,
		"type":           notification.Type,
		"title":          notification.Title,
		"message":        notification.Message,
		"book_id":        nullableString(notification.BookID),
		"reservation_id": nullableString(notification.ReservationID),
		"payload":        string(notification.Payload),
		"created_at":     ts(notification.CreatedAt),
	})

	_, err := h.exec(ctx, "insert notification", ds)

	return err
}

// ListNotifications returns the user's notifications, oldest first. Ids are UUIDv7, so they break ties in creation order.
func (h *txHandle) ListNotifications(ctx context.Context, userID string) ([]circulation.Notification, error) {
	ds := h.store.builder.From(tableNotifications).Prepared(true).
		Select(notificationColumns...).
		Where(goqu.C("user_id").Eq(userID)).
		Order(goqu.C("created_at").Asc(), goqu.C("id").Asc())

	notifications := make([]circulation.Notification, 0)
	if err := h.selectAll(ctx, "list notifications", &notifications, ds); err != nil {
		return nil, err
	}

	return notifications, nil
}
