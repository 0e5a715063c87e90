package borrowbook

import (
	"github.com/google/uuid"

	"github.com/bibliotek-systems/circulation-go/core"
)

// State is everything the borrow decision needs, loaded in one read phase.
type State struct {
	Member        core.Member
	Book          core.Book
	OpenLoanCount int

	// OpenLoan is the member's existing open loan of this book, if any.
	OpenLoan *core.Transaction

	// Hold is the member's live pickup hold on this book, if any.
	Hold *core.Reservation
}

// Decide implements the business logic for lending a copy to a member.
// This is a pure function with no side effects - it takes the loaded state
// and a command and returns the change set to commit.
//
// Business Rules:
//
//	GIVEN: A member and a book
//	WHEN: BorrowBook command is received
//	THEN: An Active loan is created; without a pickup hold one available
//	      copy is reserved, with a live hold the earmarked copy is handed
//	      over and the hold is consumed
//	ERROR: MemberIneligible if the membership is not Active, is expired,
//	       the fine balance is at the cap, or no loan slots are left
//	ERROR: OutOfStock if no copy is available and no hold exists
//	IDEMPOTENCY: If the member already has an open loan of this book, no
//	             change is generated (no-op)
func Decide(s State, command Command, policy core.Policy) core.DecisionResult {
	if s.OpenLoan != nil {
		return core.IdempotentDecision() // the member already holds a copy of this book
	}

	if err := core.CheckBorrowEligibility(s.Member, s.OpenLoanCount, command.OccurredAt, policy); err != nil {
		return core.ErrorDecision(err)
	}

	days := command.LoanPeriodDays
	if days <= 0 {
		days = policy.LoanPeriodDays
	}

	loan := core.Transaction{
		ID:         uuid.New(),
		MemberID:   command.MemberID,
		BookID:     command.BookID,
		StaffID:    command.StaffID,
		Type:       core.TransactionBorrow,
		Status:     core.LoanActive,
		BorrowedAt: command.OccurredAt,
		DueAt:      command.OccurredAt.AddDate(0, 0, days),
	}

	if s.Hold != nil {
		// The copy is already earmarked by the pickup hold: consuming the
		// hold hands it over without touching availability.
		hold := *s.Hold
		hold.HoldUntil = nil

		return core.SuccessDecision(core.Insert(loan), core.Update(hold))
	}

	book, err := core.ReserveCopy(s.Book)
	if err != nil {
		return core.ErrorDecision(err)
	}

	return core.SuccessDecision(core.Insert(loan), core.Update(book))
}
