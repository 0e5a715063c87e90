package activeloans

import (
	"context"

	"github.com/bibliotek-systems/circulation-go/core"
)

// Store defines the interface needed by the QueryHandler for persistence.
type Store interface {
	TransactionsByStatus(ctx context.Context, statuses ...core.LoanStatus) ([]core.Transaction, error)
	Books(ctx context.Context) ([]core.Book, error)
}

// QueryHandler handles the ActiveLoans query following the Read-Project
// pattern: load the open loans and the catalog, then project the lending
// view with the pure function.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(s Store) QueryHandler {
	return QueryHandler{store: s}
}

// Handle executes the query and returns the lending view.
func (h QueryHandler) Handle(ctx context.Context, query Query) (ActiveLoans, error) {
	loans, err := h.store.TransactionsByStatus(ctx, core.LoanActive, core.LoanOverdue)
	if err != nil {
		return ActiveLoans{}, err
	}

	books, err := h.store.Books(ctx)
	if err != nil {
		return ActiveLoans{}, err
	}

	return ProjectActiveLoans(loans, books, query), nil
}
