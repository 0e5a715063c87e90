package availablebooks

import "github.com/google/uuid"

// BookAvailability is one catalog title with its current copy counts.
type BookAvailability struct {
	BookID          uuid.UUID
	ISBN            string
	Title           string
	TotalCopies     int
	AvailableCopies int
}

// AvailableBooks is the query result: titles with at least one available
// copy, ordered by title.
type AvailableBooks struct {
	Books []BookAvailability
	Count int
}
