package registermember

import (
	"strings"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/core"
)

// State tells whether the id is taken.
type State struct {
	Now       time.Time
	UserFound bool
}

// Decide implements the registration rules.
//
//	ERROR: BadRequest if the id is empty or already registered
//	ERROR: BadRequest if the name is empty
func Decide(s State, command Command) core.DecisionResult {
	if command.UserID == "" {
		return core.ErrorDecision(circulation.BadRequest("A member needs an id."))
	}

	if s.UserFound {
		return core.ErrorDecision(circulation.BadRequest("A member with this id already exists."))
	}

	name := strings.TrimSpace(command.Name)
	if name == "" {
		return core.ErrorDecision(circulation.BadRequest("A member needs a name."))
	}

	return core.SuccessDecision(core.BuildMemberRegistered(command.UserID, name, s.Now))
}
