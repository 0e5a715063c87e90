package returnbook

import (
	"fmt"

	"github.com/bibliotek-systems/circulation-go/core"
)

// State is everything the return decision needs, loaded in one read phase.
type State struct {
	Member core.Member
	Book   core.Book

	// OpenLoan is the member's open loan of this book, if any.
	OpenLoan *core.Transaction

	// Waitlist holds the book's Active reservations, in any order.
	Waitlist []core.Reservation
}

// Decide implements the business logic for returning a borrowed copy.
// This is a pure function with no side effects - it takes the loaded state
// and a command and returns the change set to commit.
//
// Business Rules:
//
//	GIVEN: A member with an open loan of a book
//	WHEN: ReturnBook command is received
//	THEN: The loan is Completed; a late return assesses the fine
//	      (whole overdue days times the daily rate, clamped) onto the
//	      member's balance; the freed copy goes to the waitlist winner as a
//	      pickup hold, or back on the shelf when nobody is waiting
//	ERROR: NotActive if the member has no open loan of this book
//	ERROR: ConsistencyFault if putting the copy back would exceed the
//	       book's total
func Decide(s State, command Command, policy core.Policy) core.DecisionResult {
	if s.OpenLoan == nil {
		return core.ErrorDecision(fmt.Errorf("%w: member %s has no open loan of book %s",
			core.ErrNotActive, command.MemberID, command.BookID))
	}

	returnedAt := command.OccurredAt

	loan := *s.OpenLoan
	loan.Type = core.TransactionReturn
	loan.Status = core.LoanCompleted
	loan.ReturnedAt = &returnedAt
	loan.FineAmount = core.LateFee(loan.DueAt, returnedAt, policy)
	if command.StaffID != nil {
		loan.StaffID = command.StaffID
	}

	changes := []core.Change{core.Update(loan)}

	if loan.FineAmount > 0 {
		member := s.Member
		member.FineBalance += loan.FineAmount
		changes = append(changes, core.Update(member))
	}

	// The freed copy goes to the waitlist winner before it reaches the
	// shelf; the pickup hold keeps it off AvailableCopies.
	if winner, ok := core.NextFulfillable(s.Waitlist, returnedAt); ok {
		holdUntil := returnedAt.Add(policy.HoldWindow)
		winner.Status = core.ReservationFulfilled
		winner.HoldUntil = &holdUntil

		return core.SuccessDecision(append(changes, core.Update(winner))...)
	}

	book, err := core.ReleaseCopy(s.Book)
	if err != nil {
		return core.ErrorDecision(err)
	}

	return core.SuccessDecision(append(changes, core.Update(book))...)
}
