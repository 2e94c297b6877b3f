package registermember

const commandType = "RegisterMember"

// Command represents the intent to register a new member.
type Command struct {
	UserID string
	Name   string
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(userID, name string) Command {
	return Command{
		UserID: userID,
		Name:   name,
	}
}

// CommandType returns the command type identifier.
func (c Command) CommandType() string {
	return commandType
}
