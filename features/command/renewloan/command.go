package renewloan

import (
	"time"

	"github.com/google/uuid"
)

const commandType = "RenewLoan"

// Command represents the intent to extend a member's open loan.
type Command struct {
	MemberID uuid.UUID
	BookID   uuid.UUID

	// StaffID optionally records which staff member handled the renewal.
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

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(memberID, bookID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		MemberID:   memberID,
		BookID:     bookID,
		OccurredAt: occurredAt,
	}
}
