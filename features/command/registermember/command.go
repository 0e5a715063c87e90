package registermember

import "time"

const commandType = "RegisterMember"

// Command represents the intent to register a new library member.
type Command struct {
	MembershipNumber string
	Email            string
	Name             string

	// MaxBooks overrides the default loan slot count when positive.
	MaxBooks int

	// ExpiresAt overrides the default one-year membership term when set.
	ExpiresAt *time.Time

	OccurredAt time.Time
}

// CommandType returns the type identifier for this command, used for
// observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(membershipNumber, email, name string, occurredAt time.Time) Command {
	return Command{
		MembershipNumber: membershipNumber,
		Email:            email,
		Name:             name,
		OccurredAt:       occurredAt,
	}
}
