package markoverdueloans

import "time"

const commandType = "MarkOverdueLoans"

// Command represents the intent to relabel Active loans past their due date
// as Overdue, as of a point in time.
type Command struct {
	AsOf time.Time
}

// CommandType returns the type identifier for this command, used for
// observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(asOf time.Time) Command {
	return Command{AsOf: asOf}
}
