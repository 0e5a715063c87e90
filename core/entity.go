package core

import "github.com/google/uuid"

// EntityKind identifies the persisted entity families of the data model.
type EntityKind string

const (
	KindBook        EntityKind = "Book"
	KindAuthor      EntityKind = "Author"
	KindPublisher   EntityKind = "Publisher"
	KindCategory    EntityKind = "Category"
	KindMember      EntityKind = "Member"
	KindStaff       EntityKind = "Staff"
	KindTransaction EntityKind = "Transaction"
	KindReservation EntityKind = "Reservation"
	KindFinePayment EntityKind = "FinePayment"
)

// Entity is implemented by every persisted domain type. EntityVersion is
// the optimistic-lock token owned by the store: 0 means not yet persisted,
// and every committed update increments it by one.
type Entity interface {
	EntityID() uuid.UUID
	EntityKind() EntityKind
	EntityVersion() uint
}
