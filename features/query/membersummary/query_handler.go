package membersummary

import (
	"context"

	"github.com/google/uuid"

	"github.com/bibliotek-systems/circulation-go/core"
)

// Store defines the interface needed by the QueryHandler for persistence.
type Store interface {
	MemberByID(ctx context.Context, id uuid.UUID) (core.Member, error)
	TransactionsByMember(ctx context.Context, memberID uuid.UUID) ([]core.Transaction, error)
	ReservationsByMember(ctx context.Context, memberID uuid.UUID) ([]core.Reservation, error)
	PaymentsByMember(ctx context.Context, memberID uuid.UUID) ([]core.FinePayment, error)
}

// QueryHandler handles the MemberSummary query following the Read-Project
// pattern: load the member's records, then project the summary with the
// pure function.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(s Store) QueryHandler {
	return QueryHandler{store: s}
}

// Handle executes the query and returns the member's summary.
func (h QueryHandler) Handle(ctx context.Context, query Query) (MemberSummary, error) {
	member, err := h.store.MemberByID(ctx, query.MemberID)
	if err != nil {
		return MemberSummary{}, err
	}

	loans, err := h.store.TransactionsByMember(ctx, query.MemberID)
	if err != nil {
		return MemberSummary{}, err
	}

	reservations, err := h.store.ReservationsByMember(ctx, query.MemberID)
	if err != nil {
		return MemberSummary{}, err
	}

	payments, err := h.store.PaymentsByMember(ctx, query.MemberID)
	if err != nil {
		return MemberSummary{}, err
	}

	return ProjectMemberSummary(member, loans, reservations, payments, query), nil
}
