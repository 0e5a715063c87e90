package availablebooks

import (
	"slices"
	"strings"

	"github.com/bibliotek-systems/circulation-go/core"
)

// ProjectAvailableBooks implements the query logic to list borrowable
// titles. This is a pure function with no side effects - it takes the
// loaded catalog and returns the projected availability view.
//
// Query Logic:
//
//	GIVEN: The catalog
//	WHEN: AvailableBooks query is executed
//	THEN: AvailableBooks struct is returned, ordered by title
//	INCLUDES: Titles with at least one copy on the shelf
//	EXCLUDES: Titles whose copies are all out on loan or held for pickup
func ProjectAvailableBooks(books []core.Book, _ Query) AvailableBooks {
	available := make([]BookAvailability, 0, len(books))
	for _, book := range books {
		if book.AvailableCopies <= 0 {
			continue
		}

		available = append(available, BookAvailability{
			BookID:          book.ID,
			ISBN:            book.ISBN,
			Title:           book.Title,
			TotalCopies:     book.TotalCopies,
			AvailableCopies: book.AvailableCopies,
		})
	}

	slices.SortFunc(available, func(a, b BookAvailability) int {
		if c := strings.Compare(a.Title, b.Title); c != 0 {
			return c
		}

		return strings.Compare(a.BookID.String(), b.BookID.String())
	})

	return AvailableBooks{
		Books: available,
		Count: len(available),
	}
}
