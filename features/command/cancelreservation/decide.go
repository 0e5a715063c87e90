package cancelreservation

import (
	"fmt"

	"github.com/bibliotek-systems/circulation-go/core"
)

// State is everything the cancellation decision needs, loaded in one read phase.
type State struct {
	Reservation core.Reservation
	Book        core.Book

	// Waitlist holds the book's Active reservations, in any order.
	Waitlist []core.Reservation
}

// Decide implements the business logic for cancelling a reservation.
// This is a pure function with no side effects - it takes the loaded state
// and a command and returns the change set to commit.
//
// Business Rules:
//
//	GIVEN: A reservation
//	WHEN: CancelReservation command is received
//	THEN: An Active reservation is Cancelled with no inventory effect;
//	      cancelling a live pickup hold additionally frees the earmarked
//	      copy, which goes to the next waitlist winner or back on the shelf
//	ERROR: NotActive if the reservation is Expired, or Fulfilled with a
//	       lapsed hold
//	ERROR: ConsistencyFault if putting the held copy back would exceed the
//	       book's total
//	IDEMPOTENCY: If the reservation is already Cancelled, no change is
//	             generated (no-op)
func Decide(s State, command Command, policy core.Policy) core.DecisionResult {
	reservation := s.Reservation

	switch reservation.Status {
	case core.ReservationCancelled:
		return core.IdempotentDecision()

	case core.ReservationExpired:
		return core.ErrorDecision(fmt.Errorf("%w: reservation %s is already %s",
			core.ErrNotActive, reservation.ID, reservation.Status))

	case core.ReservationActive:
		reservation.Status = core.ReservationCancelled

		return core.SuccessDecision(core.Update(reservation))

	case core.ReservationFulfilled:
		if !reservation.HasLiveHold(command.OccurredAt) {
			return core.ErrorDecision(fmt.Errorf("%w: the pickup hold of reservation %s has lapsed",
				core.ErrNotActive, reservation.ID))
		}

		reservation.Status = core.ReservationCancelled
		reservation.HoldUntil = nil

		// The earmarked copy is freed; it moves on exactly like a returned one.
		if winner, ok := core.NextFulfillable(s.Waitlist, command.OccurredAt); ok {
			holdUntil := command.OccurredAt.Add(policy.HoldWindow)
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
		return core.ErrorDecision(fmt.Errorf("%w: reservation %s has unknown status %q",
			core.ErrConsistencyFault, reservation.ID, reservation.Status))
	}
}
