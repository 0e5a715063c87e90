package core

import "github.com/google/uuid"

// Book is a catalog title with its copy counts. AvailableCopies is owned
// exclusively by the inventory ledger rules (ReserveCopy / ReleaseCopy);
// nothing else may mutate it.
//
// Ledger invariant, checked by the stores on every commit:
//
//	0 <= AvailableCopies <= TotalCopies
//
// and, across the whole model,
//
//	AvailableCopies == TotalCopies - activeOrOverdueLoans - activePickupHolds
type Book struct {
	ID              uuid.UUID
	ISBN            string
	Title           string
	PublicationYear int
	TotalCopies     int
	AvailableCopies int
	CategoryID      uuid.UUID
	PublisherID     *uuid.UUID
	AuthorIDs       []uuid.UUID
	Version         uint
}

func (b Book) EntityID() uuid.UUID    { return b.ID }
func (b Book) EntityKind() EntityKind { return KindBook }
func (b Book) EntityVersion() uint    { return b.Version }
