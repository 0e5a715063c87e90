package expirereservations

import (
	"time"

	"github.com/bibliotek-systems/circulation-go/core"
)

// State is everything the expiry decision needs for one reservation,
// loaded in one read phase.
type State struct {
	Reservation core.Reservation
	Book        core.Book

	// Waitlist holds the book's Active reservations, in any order.
	Waitlist []core.Reservation
}

// Decide implements the business logic for expiring one reservation.
// This is a pure function with no side effects - it takes the loaded state
// and the sweep time and returns the change set to commit.
//
// Business Rules:
//
//	GIVEN: A reservation past its expiry date, or a pickup hold past its
//	       window
//	WHEN: The expiry sweep reaches it
//	THEN: The reservation becomes Expired; a lapsed hold additionally
//	      frees the earmarked copy, which goes to the next waitlist winner
//	      or back on the shelf
//	ERROR: ConsistencyFault if putting the held copy back would exceed the
//	       book's total
//	IDEMPOTENCY: A reservation that is closed or not yet due generates no
//	             change (no-op)
func Decide(s State, asOf time.Time, policy core.Policy) core.DecisionResult {
	reservation := s.Reservation

	switch {
	case reservation.Status == core.ReservationActive && reservation.ExpiresAt.Before(asOf):
		reservation.Status = core.ReservationExpired

		return core.SuccessDecision(core.Update(reservation))

	case reservation.Status == core.ReservationFulfilled &&
		reservation.HoldUntil != nil && reservation.HoldUntil.Before(asOf):
		reservation.Status = core.ReservationExpired
		reservation.HoldUntil = nil

		// The unclaimed copy moves on exactly like a returned one.
		if winner, ok := core.NextFulfillable(s.Waitlist, asOf); ok {
			holdUntil := asOf.Add(policy.HoldWindow)
			winner.Status = core.ReservationFulfilled
			winner.HoldUntil = &holdUntil

			return core.SuccessDecision(core.Update(reservation), core.Update(winner))
		}

		book, err := core.ReleaseCopy(s.Book)
		if err != nil {
			return core.ErrorDecision(err)
		}

		return core.SuccessDecision(core.Update(reservation), core.Update(book))

	default:
		return core.IdempotentDecision()
	}
}
