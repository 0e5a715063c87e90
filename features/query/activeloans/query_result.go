package activeloans

import (
	"time"

	"github.com/google/uuid"

	"github.com/bibliotek-systems/circulation-go/core"
)

// LoanInfo is one open loan with its lateness as of the query time.
type LoanInfo struct {
	TransactionID uuid.UUID
	MemberID      uuid.UUID
	BookID        uuid.UUID
	BookTitle     string
	Status        core.LoanStatus
	BorrowedAt    time.Time
	DueAt         time.Time
	DaysOverdue   int
	RenewalCount  int
}

// ActiveLoans is the query result: every Active and Overdue loan, ordered
// by due date.
type ActiveLoans struct {
	Loans []LoanInfo
	Count int
}
