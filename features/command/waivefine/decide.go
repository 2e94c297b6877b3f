package waivefine

import (
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/core"
)

// State is the fine to waive.
type State struct {
	Now       time.Time
	FineFound bool
	Fine      circulation.Fine
}

// Decide implements the waive rules.
//
//	ERROR: NotFound if the fine does not exist or belongs to another member
//	IDEMPOTENCY: If the fine is already PAID, no event is generated
func Decide(s State, command Command) core.DecisionResult {
	if !s.FineFound || s.Fine.UserID != command.UserID {
		return core.ErrorDecision(circulation.NotFound("Fine not found."))
	}

	if s.Fine.Status == circulation.FinePaid {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(core.BuildFinePaid(s.Fine.ID, s.Fine.UserID, s.Fine.Amount, s.Now))
}
