package payfine

import (
	"time"

	"github.com/google/uuid"

	"github.com/bibliotek-systems/circulation-go/core"
)

const commandType = "PayFine"

// Command represents the intent to pay down a member's fine balance.
type Command struct {
	MemberID uuid.UUID
	Amount   core.Cents
	Method   core.PaymentMethod

	// ReceiptNumber is the globally unique receipt identifier; when empty
	// one is derived from the payment ID.
	ReceiptNumber string

	// TransactionID optionally links the payment to the loan whose late
	// fee it settles.
	TransactionID *uuid.UUID

	OccurredAt time.Time
}

// CommandType returns the type identifier for this command, used for
// observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(memberID uuid.UUID, amount core.Cents, method core.PaymentMethod, occurredAt time.Time) Command {
	return Command{
		MemberID:   memberID,
		Amount:     amount,
		Method:     method,
		OccurredAt: occurredAt,
	}
}
