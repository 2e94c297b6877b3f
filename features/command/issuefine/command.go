package issuefine

import (
	"github.com/shopspring/decimal"
)

const commandType = "IssueFine"

// Command represents the intent of an administrator to fine a member.
// BookID is optional.
type Command struct {
	UserID string
	BookID string
	Amount decimal.Decimal
	Reason string
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(userID, bookID string, amount decimal.Decimal, reason string) Command {
	return Command{
		UserID: userID,
		BookID: bookID,
		Amount: amount,
		Reason: reason,
	}
}

// CommandType returns the command type identifier.
func (c Command) CommandType() string {
	return commandType
}
