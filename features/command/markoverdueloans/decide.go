package markoverdueloans

import (
	"time"

	"github.com/bibliotek-systems/circulation-go/core"
)

// Decide implements the business logic for flagging one overdue loan.
// This is a pure function with no side effects - it takes the loan and the
// sweep time and returns the change set to commit.
//
// Business Rules:
//
//	GIVEN: An Active loan past its due date
//	WHEN: The overdue sweep reaches it
//	THEN: The loan is relabeled Overdue; nothing is accrued, fines are
//	      assessed only at return time
//	IDEMPOTENCY: A loan that is not Active or not yet due generates no
//	             change (no-op)
func Decide(loan core.Transaction, asOf time.Time) core.DecisionResult {
	if loan.Status != core.LoanActive || !loan.DueAt.Before(asOf) {
		return core.IdempotentDecision()
	}

	loan.Status = core.LoanOverdue

	return core.SuccessDecision(core.Update(loan))
}
