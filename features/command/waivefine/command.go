package waivefine

const commandType = "WaiveFine"

// Command represents the intent of an administrator to settle a fine.
type Command struct {
	UserID string
	FineID string
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(userID, fineID string) Command {
	return Command{
		UserID: userID,
		FineID: fineID,
	}
}

// CommandType returns the command type identifier.
func (c Command) CommandType() string {
	return commandType
}
