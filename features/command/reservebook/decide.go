package reservebook

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/bibliotek-systems/circulation-go/core"
)

// State is everything the reservation decision needs, loaded in one read phase.
type State struct {
	Member core.Member

	// Existing is the member's Active reservation of this book, if any.
	Existing *core.Reservation

	// OpenLoan is the member's open loan of this book, if any.
	OpenLoan *core.Transaction
}

// Decide implements the business logic for placing a reservation.
// This is a pure function with no side effects - it takes the loaded state
// and a command and returns the change set to commit.
//
// Business Rules:
//
//	GIVEN: A member and a book
//	WHEN: ReserveBook command is received
//	THEN: An Active reservation joins the book's waitlist, ordered by
//	      priority ascending then reservation time ascending
//	ERROR: InvalidAmount if the priority is outside 1 through 5
//	ERROR: MemberIneligible if the membership is not Active or is expired
//	ERROR: DuplicateReservation if the member already has an Active
//	       reservation of this book, or currently has it on loan
func Decide(s State, command Command, policy core.Policy) core.DecisionResult {
	if command.Priority < core.HighestPriority || command.Priority > core.LowestPriority {
		return core.ErrorDecision(fmt.Errorf("%w: priority %d is outside %d through %d",
			core.ErrInvalidAmount, command.Priority, core.HighestPriority, core.LowestPriority))
	}

	if s.Member.Status != core.MemberActive {
		return core.ErrorDecision(fmt.Errorf("%w: membership status is %s",
			core.ErrMemberIneligible, s.Member.Status))
	}

	if s.Member.ExpiresAt.Before(command.OccurredAt) {
		return core.ErrorDecision(fmt.Errorf("%w: membership expired on %s",
			core.ErrMemberIneligible, s.Member.ExpiresAt.Format("2006-01-02")))
	}

	if s.Existing != nil {
		return core.ErrorDecision(fmt.Errorf("%w: member %s already waits on book %s",
			core.ErrDuplicateReservation, command.MemberID, command.BookID))
	}

	if s.OpenLoan != nil {
		return core.ErrorDecision(fmt.Errorf("%w: member %s already has book %s on loan",
			core.ErrDuplicateReservation, command.MemberID, command.BookID))
	}

	days := command.ExpiryDays
	if days <= 0 {
		days = policy.ReservationExpiryDays
	}

	reservation := core.Reservation{
		ID:         uuid.New(),
		MemberID:   command.MemberID,
		BookID:     command.BookID,
		Status:     core.ReservationActive,
		Priority:   command.Priority,
		ReservedAt: command.OccurredAt,
		ExpiresAt:  command.OccurredAt.AddDate(0, 0, days),
	}

	return core.SuccessDecision(core.Insert(reservation))
}
