package core

import "errors"

var (
	// ErrMemberIneligible is returned when a member fails one of the borrowing
	// preconditions. The wrapped message names the violated condition.
	ErrMemberIneligible = errors.New("member is not eligible")

	// ErrOutOfStock is returned when a book has no available copies left.
	ErrOutOfStock = errors.New("no available copies")

	// ErrDuplicateReservation is returned when a member already holds an
	// active reservation for the book, or already has the book on loan.
	ErrDuplicateReservation = errors.New("duplicate reservation")

	// ErrNotActive is returned when a state transition is requested on a loan
	// or reservation that is not in a state permitting it.
	ErrNotActive = errors.New("not in an active state")

	// ErrRenewalBlocked is returned when a loan cannot be renewed because
	// another member is waiting on the book.
	ErrRenewalBlocked = errors.New("renewal blocked by a waiting reservation")

	// ErrInvalidAmount is returned for payment or adjustment amounts that
	// violate the numeric rules (non-positive, overpayment, copies below
	// the number currently out).
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrBusy is returned after conflict retries are exhausted. It is
	// transient and safe to retry from the caller's side.
	ErrBusy = errors.New("busy, retries exhausted")

	// ErrConsistencyFault indicates a violated storage invariant, e.g. an
	// available-copies count that would exceed the total. It is fatal for the
	// enclosing operation and must never be silently corrected.
	ErrConsistencyFault = errors.New("consistency fault")
)
