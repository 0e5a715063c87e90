package core

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// ReservationStatus is the waitlist lifecycle state.
type ReservationStatus string

const (
	ReservationActive    ReservationStatus = "Active"
	ReservationFulfilled ReservationStatus = "Fulfilled"
	ReservationCancelled ReservationStatus = "Cancelled"
	ReservationExpired   ReservationStatus = "Expired"
)

// Priority bounds for reservations; 1 is the highest priority.
const (
	HighestPriority = 1
	LowestPriority  = 5
)

// Reservation is a member's place on a book's waitlist. At most one Active
// reservation may exist per (member, book) pair; Cancelled, Expired and
// Fulfilled records may accumulate freely.
//
// When a copy is released and the reservation wins the queue, it becomes
// Fulfilled and HoldUntil is set: the copy is earmarked for pickup and
// keeps consuming availability until the hold is used by a borrow, is
// cancelled, or expires.
type Reservation struct {
	ID         uuid.UUID
	MemberID   uuid.UUID
	BookID     uuid.UUID
	Status     ReservationStatus
	Priority   int
	ReservedAt time.Time
	ExpiresAt  time.Time
	HoldUntil  *time.Time
	Version    uint
}

func (r Reservation) EntityID() uuid.UUID    { return r.ID }
func (r Reservation) EntityKind() EntityKind { return KindReservation }
func (r Reservation) EntityVersion() uint    { return r.Version }

// HasLiveHold reports whether the reservation currently earmarks a copy.
func (r Reservation) HasLiveHold(now time.Time) bool {
	return r.Status == ReservationFulfilled && r.HoldUntil != nil && !r.HoldUntil.Before(now)
}

// SortWaitlist orders reservations by (priority ascending, reserved-at
// ascending); the reservation ID breaks exact timestamp ties so the order
// is deterministic.
func SortWaitlist(reservations []Reservation) {
	sort.Slice(reservations, func(i, j int) bool {
		a, b := reservations[i], reservations[j]
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		if !a.ReservedAt.Equal(b.ReservedAt) {
			return a.ReservedAt.Before(b.ReservedAt)
		}

		return a.ID.String() < b.ID.String()
	})
}

// NextFulfillable returns the waitlist winner among the given reservations:
// the highest-priority, earliest-filed Active reservation that has not
// passed its expiry date. It reports false when nobody is waiting.
func NextFulfillable(reservations []Reservation, now time.Time) (Reservation, bool) {
	waiting := make([]Reservation, 0, len(reservations))
	for _, r := range reservations {
		if r.Status == ReservationActive && !r.ExpiresAt.Before(now) {
			waiting = append(waiting, r)
		}
	}

	if len(waiting) == 0 {
		return Reservation{}, false
	}

	SortWaitlist(waiting)

	return waiting[0], true
}
