package reservebook

const commandType = "ReserveBook"

// Command represents the intent of a member to reserve a book.
type Command struct {
	UserID string
	BookID string
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(userID, bookID string) Command {
	return Command{
		UserID: userID,
		BookID: bookID,
	}
}

// CommandType returns the command type identifier.
func (c Command) CommandType() string {
	return commandType
}
