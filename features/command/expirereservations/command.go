package expirereservations

import "time"

const commandType = "ExpireReservations"

// Command represents the intent to close reservations past their expiry
// date and pickup holds past their window, as of a point in time.
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
