package cleanupstalereservations

const commandType = "CleanupStaleReservations"

// Command triggers one pass of the stale-reservation cleanup.
type Command struct{}

// BuildCommand creates a new Command.
func BuildCommand() Command {
	return Command{}
}

// CommandType returns the command type identifier.
func (c Command) CommandType() string {
	return commandType
}
