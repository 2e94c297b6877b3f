package detectoverdueloans

const commandType = "DetectOverdueLoans"

// Command triggers one pass of the overdue sweep.
type Command struct{}

// BuildCommand creates a new Command.
func BuildCommand() Command {
	return Command{}
}

// CommandType returns the command type identifier.
func (c Command) CommandType() string {
	return commandType
}
