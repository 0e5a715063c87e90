package borrowbook

import (
	"time"

	"github.com/google/uuid"
)

const commandType = "BorrowBook"

// Command represents the intent to lend a copy of a book to a member.
type Command struct {
	MemberID uuid.UUID
	BookID   uuid.UUID

	// StaffID optionally records which staff member handled the borrow.
	StaffID *uuid.UUID

	// LoanPeriodDays overrides the policy default when positive.
	LoanPeriodDays int

	OccurredAt time.Time
}

// CommandType returns the type identifier for this command, used for
// observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters; the
// staff reference and loan period can be set on the result when needed.
func BuildCommand(memberID, bookID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		MemberID:   memberID,
		BookID:     bookID,
		OccurredAt: occurredAt,
	}
}
