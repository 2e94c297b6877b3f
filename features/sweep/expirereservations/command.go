package expirereservations

const commandType = "ExpireReservations"

// Command triggers one pass of the pickup-deadline sweep.
type Command struct{}

// BuildCommand creates a new Command.
func BuildCommand() Command {
	return Command{}
}

// CommandType returns the command type identifier.
func (c Command) CommandType() string {
	return commandType
}
