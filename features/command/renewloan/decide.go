package renewloan

import (
	"fmt"

	"github.com/bibliotek-systems/circulation-go/core"
)

// State is everything the renewal decision needs, loaded in one read phase.
type State struct {
	// OpenLoan is the member's open loan of this book, if any.
	OpenLoan *core.Transaction

	// Waitlist holds the book's Active reservations, in any order.
	Waitlist []core.Reservation
}

// Decide implements the business logic for renewing an open loan.
// This is a pure function with no side effects - it takes the loaded state
// and a command and returns the change set to commit.
//
// Business Rules:
//
//	GIVEN: A member with an open loan of a book
//	WHEN: RenewLoan command is received
//	THEN: The due date is extended by the loan period from the later of the
//	      current due date and the renewal time; an Overdue loan becomes
//	      Active again without assessing anything (fines are assessed only
//	      at return time)
//	ERROR: NotActive if the member has no open loan of this book
//	ERROR: RenewalBlocked if another member is waiting on the book
func Decide(s State, command Command, policy core.Policy) core.DecisionResult {
	if s.OpenLoan == nil {
		return core.ErrorDecision(fmt.Errorf("%w: member %s has no open loan of book %s",
			core.ErrNotActive, command.MemberID, command.BookID))
	}

	// The renewing member's own reservation never blocks them.
	for _, r := range s.Waitlist {
		if r.MemberID != command.MemberID {
			return core.ErrorDecision(fmt.Errorf("%w: book %s has waiting reservations",
				core.ErrRenewalBlocked, command.BookID))
		}
	}

	days := command.LoanPeriodDays
	if days <= 0 {
		days = policy.LoanPeriodDays
	}

	base := s.OpenLoan.DueAt
	if command.OccurredAt.After(base) {
		base = command.OccurredAt
	}

	loan := *s.OpenLoan
	loan.Type = core.TransactionRenew
	loan.Status = core.LoanActive
	loan.DueAt = base.AddDate(0, 0, days)
	loan.RenewalCount++
	if command.StaffID != nil {
		loan.StaffID = command.StaffID
	}

	return core.SuccessDecision(core.Update(loan))
}
