package reservebook

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/shell"
)

// Result is the outcome of a successful reservation.
type Result struct {
	shell.HandlerResult
	Reservation circulation.Reservation
}

// CommandHandler orchestrates the reservation workflow: Load -> Decide -> Apply, in one unit of work.
// External wrappers handle all observability concerns.
type CommandHandler struct {
	store    circulation.TxRunner
	clock    circulation.Clock
	messages shell.Messages
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithClock sets the source of "now".
func WithClock(clock circulation.Clock) Option {
	return func(h *CommandHandler) {
		h.clock = clock
	}
}

// WithMessages sets the locale used for amounts in messages.
func WithMessages(messages shell.Messages) Option {
	return func(h *CommandHandler) {
		h.messages = messages
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(store circulation.TxRunner, opts ...Option) CommandHandler {
	handler := CommandHandler{
		store:    store,
		clock:    circulation.SystemClock{},
		messages: shell.DefaultMessages(),
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle reserves the book for the member or returns the rejection.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	var result Result

	err := h.store.RunInTx(ctx, func(ctx context.Context, tx circulation.Tx) error {
		s, err := h.load(ctx, tx, command)
		if err != nil {
			return err
		}

		decision := Decide(s, command, h.messages)
		if err := decision.HasError(); err != nil {
			return err
		}

		reserved := decision.Events[0].(core.BookReserved) //nolint:forcetypeassert // Decide always returns exactly one BookReserved

		result, err = h.apply(ctx, tx, s, reserved)

		return err
	})

	if err != nil {
		return Result{}, err
	}

	return result, nil
}

func (h CommandHandler) load(ctx context.Context, tx circulation.Tx, command Command) (State, error) {
	s := State{
		Now:           circulation.ToTimestamp(h.clock.Now()),
		ReservationID: circulation.NewID(),
	}

	user, err := tx.LockUser(ctx, command.UserID)
	switch {
	case errors.Is(err, circulation.ErrRecordNotFound):
		return s, nil
	case err != nil:
		return s, err
	}

	s.UserFound = true
	s.User = user

	if s.UnpaidFines, err = tx.SumUnpaidFines(ctx, command.UserID); err != nil {
		return s, err
	}

	book, err := tx.FindBook(ctx, command.BookID)
	switch {
	case errors.Is(err, circulation.ErrRecordNotFound):
		return s, nil
	case err != nil:
		return s, err
	}

	s.BookFound = true
	s.Book = book

	s.ActiveReservations, err = tx.CountReservations(
		ctx, command.UserID, command.BookID, circulation.ReservationReserved, circulation.ReservationBorrowed)
	if err != nil {
		return s, err
	}

	s.RecentLoans, err = tx.CountLoansSince(ctx, command.UserID, s.Now.Add(-circulation.BorrowLimitWindow))
	if err != nil {
		return s, err
	}

	return s, nil
}

func (h CommandHandler) apply(ctx context.Context, tx circulation.Tx, s State, reserved core.BookReserved) (Result, error) {
	reservation := circulation.Reservation{
		ID:              reserved.ReservationID,
		UserID:          reserved.UserID,
		BookID:          reserved.BookID,
		Status:          circulation.ReservationReserved,
		ReservationDate: s.Now,
		ReservedUntil:   reserved.ReservedUntil,
		Notified:        true,
	}

	if err := tx.InsertReservation(ctx, reservation); err != nil {
		return Result{}, err
	}

	adjusted, err := tx.AdjustBookCopies(ctx, reserved.BookID, circulation.CopiesDelta{Available: -1})
	if err != nil {
		return Result{}, err
	}

	if !adjusted {
		return Result{}, Unavailable(s.Book)
	}

	if err := tx.AppendTransaction(ctx, shell.BuildTransaction(
		reserved.UserID, reserved.BookID, circulation.ActionBorrow, s.Now)); err != nil {
		return Result{}, err
	}

	if err := shell.RecordNotifications(ctx, tx, h.messages, reserved); err != nil {
		return Result{}, err
	}

	return Result{
		HandlerResult: shell.NewSuccessResult(shell.ReservationConfirmedMessage(reserved, h.messages)),
		Reservation:   reservation,
	}, nil
}
