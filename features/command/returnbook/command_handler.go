package returnbook

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/shell"
)

// Result is the outcome of a successful return. Fine is set for late returns.
type Result struct {
	shell.HandlerResult
	Loan circulation.Loan
	Fine *circulation.Fine
}

// CommandHandler orchestrates the return workflow: Load -> Decide -> Apply, in one unit of work.
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

// Handle closes the member's loan or returns the rejection.
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

		result, err = h.apply(ctx, tx, s, decision.Events)

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
		FineID: circulation.NewID(),
	}

	loan, err := tx.FindOpenLoan(ctx, command.UserID, command.BookID)
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

	s.LoanFound = true
	s.Loan = loan
	s.BookTitle = book.Title

	return s, nil
}

func (h CommandHandler) apply(ctx context.Context, tx circulation.Tx, s State, events core.DomainEvents) (Result, error) {
	returned := events[0].(core.BookReturned) //nolint:forcetypeassert // Decide always starts with BookReturned

	closed, err := tx.CloseLoan(ctx, returned.LoanID, s.Now)
	if err != nil {
		return Result{}, err
	}

	if !closed {
		return Result{}, NoOpenLoan()
	}

	loan := s.Loan
	returnedAt := s.Now
	loan.ReturnDate = &returnedAt

	adjusted, err := tx.AdjustBookCopies(ctx, returned.BookID, circulation.CopiesDelta{Available: 1, Borrowed: -1})
	if err != nil {
		return Result{}, err
	}

	if !adjusted {
		return Result{}, circulation.BadRequest("%q has no borrowed copies to return.", returned.BookTitle)
	}

	if err := tx.AppendTransaction(ctx, shell.BuildTransaction(
		returned.UserID, returned.BookID, circulation.ActionReturn, s.Now)); err != nil {
		return Result{}, err
	}

	if err := h.settleReservation(ctx, tx, returned); err != nil {
		return Result{}, err
	}

	result := Result{Loan: loan}
	message := h.messages.Sprintf("You returned %q on time.", returned.BookTitle)

	if returned.WasLate() {
		issued := events[1].(core.FineIssued) //nolint:forcetypeassert // late returns always carry a FineIssued

		fine, err := h.penalize(ctx, tx, issued)
		if err != nil {
			return Result{}, err
		}

		result.Fine = &fine
		message = h.messages.Sprintf(
			"You returned %q %d day(s) late. A fine of %s was issued and you cannot reserve books until %s.",
			returned.BookTitle,
			returned.DaysOverdue,
			h.messages.Amount(fine.Amount),
			h.messages.Date(*issued.RestrictedUntil))
	}

	if err := shell.RecordNotifications(ctx, tx, h.messages, events...); err != nil {
		return Result{}, err
	}

	result.HandlerResult = shell.NewSuccessResult(message)

	return result, nil
}

// settleReservation moves the linked reservation to its final status. A reservation already flagged
// OVERDUE by the overdue sweep stays OVERDUE.
func (h CommandHandler) settleReservation(ctx context.Context, tx circulation.Tx, returned core.BookReturned) error {
	if returned.ReservationID == "" {
		return nil
	}

	target := circulation.ReservationReturned
	if returned.WasLate() {
		target = circulation.ReservationOverdue
	}

	_, err := tx.TransitionReservation(ctx, returned.ReservationID, circulation.ReservationBorrowed, target)

	return err
}

func (h CommandHandler) penalize(ctx context.Context, tx circulation.Tx, issued core.FineIssued) (circulation.Fine, error) {
	if err := tx.RestrictUser(ctx, issued.UserID, *issued.RestrictedUntil); err != nil {
		return circulation.Fine{}, err
	}

	bookID := issued.BookID
	fine := circulation.Fine{
		ID:        issued.FineID,
		UserID:    issued.UserID,
		BookID:    &bookID,
		Amount:    issued.Amount,
		Status:    circulation.FineUnpaid,
		Reason:    issued.Reason,
		CreatedAt: issued.OccurredAt,
	}

	if err := tx.InsertFine(ctx, fine); err != nil {
		return circulation.Fine{}, err
	}

	return fine, nil
}
