// Package testutil provides fixture builders and seeding helpers shared by
// the test suites.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/bibliotek-systems/circulation-go/core"
)

// Committer is the part of the store contract the seeding helper needs.
type Committer interface {
	Commit(ctx context.Context, changes ...core.Change) error
}

// At parses a "2006-01-02 15:04" timestamp; fixtures use it to keep test
// times readable.
func At(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := time.Parse("2006-01-02 15:04", value)
	require.NoError(t, err)

	return parsed
}

// GivenCategory creates a category fixture.
func GivenCategory(name string) core.Category {
	return core.Category{
		ID:   uuid.New(),
		Name: name,
	}
}

// GivenBook creates a book fixture with the given copy counts.
func GivenBook(categoryID uuid.UUID, title string, total, available int) core.Book {
	return core.Book{
		ID:              uuid.New(),
		ISBN:            "978-" + uuid.NewString()[:12],
		Title:           title,
		PublicationYear: 2020,
		TotalCopies:     total,
		AvailableCopies: available,
		CategoryID:      categoryID,
	}
}

// GivenMember creates an Active member fixture with five loan slots and a
// membership expiring well after any test time.
func GivenMember(name string) core.Member {
	id := uuid.New()

	return core.Member{
		ID:               id,
		MembershipNumber: "M-" + id.String()[:8],
		Email:            id.String()[:8] + "@example.test",
		Name:             name,
		Status:           core.MemberActive,
		MaxBooks:         5,
		ExpiresAt:        time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

// GivenOpenLoan creates an Active loan fixture due at the given time.
func GivenOpenLoan(memberID, bookID uuid.UUID, borrowedAt, dueAt time.Time) core.Transaction {
	return core.Transaction{
		ID:         uuid.New(),
		MemberID:   memberID,
		BookID:     bookID,
		Type:       core.TransactionBorrow,
		Status:     core.LoanActive,
		BorrowedAt: borrowedAt,
		DueAt:      dueAt,
	}
}

// GivenReservation creates an Active reservation fixture.
func GivenReservation(memberID, bookID uuid.UUID, priority int, reservedAt time.Time) core.Reservation {
	return core.Reservation{
		ID:         uuid.New(),
		MemberID:   memberID,
		BookID:     bookID,
		Status:     core.ReservationActive,
		Priority:   priority,
		ReservedAt: reservedAt,
		ExpiresAt:  reservedAt.AddDate(0, 0, 7),
	}
}

// Seed inserts the given entities into the store in one commit.
func Seed(t *testing.T, s Committer, entities ...core.Entity) {
	t.Helper()

	changes := make([]core.Change, 0, len(entities))
	for _, entity := range entities {
		changes = append(changes, core.Insert(entity))
	}

	require.NoError(t, s.Commit(context.Background(), changes...))
}
