package reservebook

import (
	"time"

	"github.com/google/uuid"
)

const commandType = "ReserveBook"

// Command represents the intent to put a member on a book's waitlist.
type Command struct {
	MemberID uuid.UUID
	BookID   uuid.UUID

	// Priority is the queue priority, 1 (highest) through 5 (lowest).
	Priority int

	// ExpiryDays overrides the policy's reservation lifetime when positive.
	ExpiryDays int

	OccurredAt time.Time
}

// CommandType returns the type identifier for this command, used for
// observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(memberID, bookID uuid.UUID, priority int, occurredAt time.Time) Command {
	return Command{
		MemberID:   memberID,
		BookID:     bookID,
		Priority:   priority,
		OccurredAt: occurredAt,
	}
}
