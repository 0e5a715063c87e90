package addbookcopies

import (
	"github.com/bibliotek-systems/circulation-go/core"
)

// State is everything the adjustment decision needs, loaded in one read phase.
type State struct {
	Book core.Book
}

// Decide implements the business logic for adjusting a book's copy count.
// This is a pure function with no side effects - it takes the loaded state
// and a command and returns the change set to commit.
//
// Business Rules:
//
//	GIVEN: A catalog book
//	WHEN: AddBookCopies command is received
//	THEN: TotalCopies and AvailableCopies move by the delta in lockstep
//	ERROR: InvalidAmount if the delta is zero or would retire copies that
//	       are out on loan or held for pickup
func Decide(s State, command Command) core.DecisionResult {
	book, err := core.AdjustTotalCopies(s.Book, command.Delta)
	if err != nil {
		return core.ErrorDecision(err)
	}

	return core.SuccessDecision(core.Update(book))
}
