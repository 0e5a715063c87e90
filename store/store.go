package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bibliotek-systems/circulation-go/core"
)

// Reader is the read side of the persistence contract. Single-entity
// lookups return ErrNotFound when no row matches; list methods return an
// empty slice.
type Reader interface {
	BookByID(ctx context.Context, id uuid.UUID) (core.Book, error)
	BookByISBN(ctx context.Context, isbn string) (core.Book, error)
	Books(ctx context.Context) ([]core.Book, error)

	MemberByID(ctx context.Context, id uuid.UUID) (core.Member, error)
	MemberByNumber(ctx context.Context, membershipNumber string) (core.Member, error)
	StaffByID(ctx context.Context, id uuid.UUID) (core.Staff, error)

	CategoryByID(ctx context.Context, id uuid.UUID) (core.Category, error)
	PublisherByID(ctx context.Context, id uuid.UUID) (core.Publisher, error)
	Categories(ctx context.Context) ([]core.Category, error)
	Publishers(ctx context.Context) ([]core.Publisher, error)

	TransactionByID(ctx context.Context, id uuid.UUID) (core.Transaction, error)
	TransactionsByMember(ctx context.Context, memberID uuid.UUID) ([]core.Transaction, error)
	TransactionsByStatus(ctx context.Context, statuses ...core.LoanStatus) ([]core.Transaction, error)

	// OpenLoanCount counts a member's Active and Overdue loans.
	OpenLoanCount(ctx context.Context, memberID uuid.UUID) (int, error)

	// OpenLoanFor returns the member's open (Active or Overdue) loan of the
	// given book, or ErrNotFound.
	OpenLoanFor(ctx context.Context, memberID, bookID uuid.UUID) (core.Transaction, error)

	// LoansDueBefore returns Active loans whose due date is before asOf.
	LoansDueBefore(ctx context.Context, asOf time.Time) ([]core.Transaction, error)

	ReservationByID(ctx context.Context, id uuid.UUID) (core.Reservation, error)
	ReservationsByMember(ctx context.Context, memberID uuid.UUID) ([]core.Reservation, error)

	// ActiveReservationsByBook returns the book's Active reservations in no
	// particular order; core.SortWaitlist establishes queue order.
	ActiveReservationsByBook(ctx context.Context, bookID uuid.UUID) ([]core.Reservation, error)

	// ActiveReservationFor returns the member's Active reservation of the
	// given book, or ErrNotFound.
	ActiveReservationFor(ctx context.Context, memberID, bookID uuid.UUID) (core.Reservation, error)

	// LiveHoldFor returns the member's Fulfilled reservation of the given
	// book whose pickup hold is still live at now, or ErrNotFound.
	LiveHoldFor(ctx context.Context, memberID, bookID uuid.UUID, now time.Time) (core.Reservation, error)

	// ReservationsDueExpiry returns Active reservations past their expiry
	// date and Fulfilled reservations past their pickup hold, as of asOf.
	ReservationsDueExpiry(ctx context.Context, asOf time.Time) ([]core.Reservation, error)

	PaymentsByMember(ctx context.Context, memberID uuid.UUID) ([]core.FinePayment, error)
}

// Store is the full persistence contract: reads plus the atomic Commit.
//
// Commit applies all changes or none. Before writing anything it verifies
// every expected version, every uniqueness rule (book ISBN, member number
// and email, staff number and email, receipt number, one Active
// reservation per member and book), the referential rules of the data
// model, and the ledger invariant of every touched book.
type Store interface {
	Reader

	Commit(ctx context.Context, changes ...core.Change) error
}
