package returnbook

import (
	"time"

	"github.com/google/uuid"
)

const commandType = "ReturnBook"

// Command represents the intent to return a member's borrowed copy.
type Command struct {
	MemberID uuid.UUID
	BookID   uuid.UUID

	// StaffID optionally records which staff member handled the return.
	StaffID *uuid.UUID

	OccurredAt time.Time
}

// CommandType returns the type identifier for this command, used for
// observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(memberID, bookID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		MemberID:   memberID,
		BookID:     bookID,
		OccurredAt: occurredAt,
	}
}
