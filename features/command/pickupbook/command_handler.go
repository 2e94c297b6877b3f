package pickupbook

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/shell"
)

// Result is the outcome of a successful pickup.
type Result struct {
	shell.HandlerResult
	Loan circulation.Loan
}

// CommandHandler orchestrates the pickup workflow: Load -> Decide -> Apply, in one unit of work.
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

// WithMessages sets the locale used in messages.
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

// Handle turns the member's reservation into a loan or returns the rejection.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	var result Result

	err := h.store.RunInTx(ctx, func(ctx context.Context, tx circulation.Tx) error {
		s, err := h.load(ctx, tx, command)
		if err != nil {
			return err
		}

		decision := Decide(s, command)
		if err := decision.HasError(); err != nil {
			return err
		}

		pickedUp := decision.Events[0].(core.BookPickedUp) //nolint:forcetypeassert // Decide always returns exactly one BookPickedUp

		result, err = h.apply(ctx, tx, s, pickedUp)

		return err
	})

	if err != nil {
		return Result{}, err
	}

	return result, nil
}

func (h CommandHandler) load(ctx context.Context, tx circulation.Tx, command Command) (State, error) {
	s := State{
		Now:    circulation.ToTimestamp(h.clock.Now()),
		LoanID: circulation.NewID(),
	}

	reservation, err := tx.FindLatestReservation(ctx, command.UserID, command.BookID, circulation.ReservationReserved)
	switch {
	case errors.Is(err, circulation.ErrRecordNotFound):
		return s, nil
	case err != nil:
		return s, err
	}

	book, err := tx.FindBook(ctx, command.BookID)
	if err != nil {
		return s, err
	}

	s.ReservationFound = true
	s.Reservation = reservation
	s.BookTitle = book.Title

	return s, nil
}

func (h CommandHandler) apply(ctx context.Context, tx circulation.Tx, s State, pickedUp core.BookPickedUp) (Result, error) {
	transitioned, err := tx.TransitionReservation(
		ctx, pickedUp.ReservationID, circulation.ReservationReserved, circulation.ReservationBorrowed)
	if err != nil {
		return Result{}, err
	}

	if !transitioned {
		return Result{}, NotReserved()
	}

	reservationID := pickedUp.ReservationID
	loan := circulation.Loan{
		ID:            pickedUp.LoanID,
		UserID:        pickedUp.UserID,
		BookID:        pickedUp.BookID,
		BorrowDate:    s.Now,
		DueDate:       pickedUp.DueDate,
		ReservationID: &reservationID,
	}

	if err := tx.InsertLoan(ctx, loan); err != nil {
		return Result{}, err
	}

	if err := tx.LinkReservationLoan(ctx, reservationID, loan.ID); err != nil {
		return Result{}, err
	}

	adjusted, err := tx.AdjustBookCopies(ctx, pickedUp.BookID, circulation.CopiesDelta{Borrowed: 1, BorrowCount: 1})
	if err != nil {
		return Result{}, err
	}

	if !adjusted {
		return Result{}, BookGone()
	}

	if err := tx.AppendTransaction(ctx, shell.BuildTransaction(
		pickedUp.UserID, pickedUp.BookID, circulation.ActionBorrow, s.Now)); err != nil {
		return Result{}, err
	}

	if err := shell.RecordNotifications(ctx, tx, h.messages, pickedUp); err != nil {
		return Result{}, err
	}

	return Result{
		HandlerResult: shell.NewSuccessResult(shell.PickedUpMessage(pickedUp, h.messages)),
		Loan:          loan,
	}, nil
}
