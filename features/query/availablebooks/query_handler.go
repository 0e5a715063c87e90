package availablebooks

import (
	"context"

	"github.com/bibliotek-systems/circulation-go/core"
)

// Store defines the interface needed by the QueryHandler for persistence.
type Store interface {
	Books(ctx context.Context) ([]core.Book, error)
}

// QueryHandler handles the AvailableBooks query following the Read-Project
// pattern: load the catalog, then project the availability view with the
// pure function.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(s Store) QueryHandler {
	return QueryHandler{store: s}
}

// Handle executes the query and returns the availability view.
func (h QueryHandler) Handle(ctx context.Context, query Query) (AvailableBooks, error) {
	books, err := h.store.Books(ctx)
	if err != nil {
		return AvailableBooks{}, err
	}

	return ProjectAvailableBooks(books, query), nil
}
