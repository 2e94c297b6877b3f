package shell

import (
	"context"
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/core"
)

// Notification types recorded for members.
const (
	NotificationReservationConfirmed = "RESERVATION_CONFIRMED"
	NotificationBookPickedUp         = "BOOK_PICKED_UP"
	NotificationBookReturned         = "BOOK_RETURNED"
	NotificationFineIssued           = "FINE_ISSUED"
	NotificationFinePaid             = "FINE_PAID"
	NotificationReservationExpired   = "RESERVATION_EXPIRED"
	NotificationLoanOverdue          = "LOAN_OVERDUE"
)

var (
	// ErrMappingNotificationFailed is returned when an event cannot be turned into a notification.
	ErrMappingNotificationFailed = errors.New("mapping event to notification failed")

	json = jsoniter.ConfigCompatibleWithStandardLibrary
)

// NotificationFor builds the notification a member receives for the event.
// It reports false for events that do not notify anyone.
func NotificationFor(event core.DomainEvent, messages Messages) (circulation.Notification, bool, error) {
	notification := circulation.Notification{
		ID:        circulation.NewID(),
		UserID:    event.ConcernsUser(),
		CreatedAt: circulation.ToTimestamp(event.HasOccurredAt()),
	}

	switch e := event.(type) {
	case core.BookReserved:
		notification.Type = NotificationReservationConfirmed
		notification.Title = "Reservation confirmed"
		notification.Message = ReservationConfirmedMessage(e, messages)
		notification.BookID = optional(e.BookID)
		notification.ReservationID = optional(e.ReservationID)

	case core.BookPickedUp:
		notification.Type = NotificationBookPickedUp
		notification.Title = "Book picked up"
		notification.Message = PickedUpMessage(e, messages)
		notification.BookID = optional(e.BookID)
		notification.ReservationID = optional(e.ReservationID)

	case core.BookReturned:
		notification.Type = NotificationBookReturned
		notification.Title = "Book returned"
		notification.Message = messages.Sprintf("You returned %q. Thank you!", e.BookTitle)
		notification.BookID = optional(e.BookID)
		notification.ReservationID = optional(e.ReservationID)

	case core.FineIssued:
		notification.Type = NotificationFineIssued
		notification.Title = "Fine issued"
		notification.Message = FineIssuedMessage(e, messages)
		notification.BookID = optional(e.BookID)

	case core.FinePaid:
		notification.Type = NotificationFinePaid
		notification.Title = "Fine paid"
		notification.Message = messages.Sprintf("Your fine of %s has been marked as paid.", messages.Amount(e.Amount))

	case core.ReservationExpired:
		notification.Type = NotificationReservationExpired
		notification.Title = "Reservation expired"
		notification.Message = messages.Sprintf(
			"Your reservation of %q expired on %s because the book was not picked up.",
			e.BookTitle, messages.Date(e.ReservedUntil))
		notification.BookID = optional(e.BookID)
		notification.ReservationID = optional(e.ReservationID)

	case core.LoanOverdue:
		notification.Type = NotificationLoanOverdue
		notification.Title = "Book overdue"
		notification.Message = messages.Sprintf(
			"%q was due on %s. You cannot reserve books until %s.",
			e.BookTitle, messages.Date(e.DueDate), messages.Date(e.RestrictedUntil))
		notification.BookID = optional(e.BookID)

	default:
		return circulation.Notification{}, false, nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return circulation.Notification{}, false, errors.Join(ErrMappingNotificationFailed, err)
	}

	notification.Payload = payload

	return notification, true, nil
}

// RecordNotifications stores the notifications for events inside the unit of work of tx.
func RecordNotifications(ctx context.Context, tx circulation.AuditRepository, messages Messages, events ...core.DomainEvent) error {
	for _, event := range events {
		notification, ok, err := NotificationFor(event, messages)
		if err != nil {
			return err
		}

		if !ok {
			continue
		}

		if err := tx.InsertNotification(ctx, notification); err != nil {
			return err
		}
	}

	return nil
}

// ReservationConfirmedMessage names the book and the pickup deadline.
func ReservationConfirmedMessage(e core.BookReserved, messages Messages) string {
	return messages.Sprintf("You reserved %q. Please pick it up by %s.", e.BookTitle, messages.Date(e.ReservedUntil))
}

// PickedUpMessage names the book and the due date.
func PickedUpMessage(e core.BookPickedUp, messages Messages) string {
	return messages.Sprintf("You picked up %q. Please return it by %s.", e.BookTitle, messages.Date(e.DueDate))
}

// FineIssuedMessage reports amount and, for late returns, days overdue and the restriction end.
func FineIssuedMessage(e core.FineIssued, messages Messages) string {
	if e.RestrictedUntil == nil {
		return messages.Sprintf("A fine of %s was issued: %s.", messages.Amount(e.Amount), e.Reason)
	}

	return messages.Sprintf(
		"A fine of %s was issued for returning a book %d day(s) late. You cannot reserve books until %s.",
		messages.Amount(e.Amount), e.DaysOverdue, messages.Date(*e.RestrictedUntil))
}

func optional(value string) *string {
	if value == "" {
		return nil
	}

	return &value
}
