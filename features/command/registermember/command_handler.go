package registermember

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/core"
	"github.com/AntonStoeckl/library-circulation-go/shell"
)

// Result carries the registered member.
type Result struct {
	shell.HandlerResult
	User circulation.User
}

// CommandHandler registers members.
type CommandHandler struct {
	store circulation.TxRunner
	clock circulation.Clock
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithClock sets the source of "now".
func WithClock(clock circulation.Clock) Option {
	return func(h *CommandHandler) {
		h.clock = clock
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(store circulation.TxRunner, opts ...Option) CommandHandler {
	handler := CommandHandler{
		store: store,
		clock: circulation.SystemClock{},
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle registers the member or returns the rejection.
func (h CommandHandler) Handle(ctx context.Context, command Command) (Result, error) {
	var result Result

	err := h.store.RunInTx(ctx, func(ctx context.Context, tx circulation.Tx) error {
		s := State{Now: circulation.ToTimestamp(h.clock.Now())}

		_, err := tx.FindUser(ctx, command.UserID)
		switch {
		case errors.Is(err, circulation.ErrRecordNotFound):
		case err != nil:
			return err
		default:
			s.UserFound = true
		}

		decision := Decide(s, command)
		if err := decision.HasError(); err != nil {
			return err
		}

		registered := decision.Events[0].(core.MemberRegistered) //nolint:forcetypeassert // Decide always returns exactly one MemberRegistered

		user := circulation.User{ID: registered.UserID, Name: registered.Name}
		if err := tx.InsertUser(ctx, user); err != nil {
			return err
		}

		result = Result{
			HandlerResult: shell.NewSuccessResult(shell.DefaultMessages().Sprintf("Welcome, %s!", user.Name)),
			User:          user,
		}

		return nil
	})

	if err != nil {
		return Result{}, err
	}

	return result, nil
}
