package borrowbook_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibliotek-systems/circulation-go/core"
	"github.com/bibliotek-systems/circulation-go/features/command/borrowbook"
	"github.com/bibliotek-systems/circulation-go/testutil"
)

func givenState(t *testing.T) (borrowbook.State, time.Time) {
	t.Helper()

	category := testutil.GivenCategory("Fiction")
	book := testutil.GivenBook(category.ID, "The Go Programming Language", 3, 2)
	member := testutil.GivenMember("Kim Reader")

	return borrowbook.State{Member: member, Book: book}, testutil.At(t, "2024-03-01 09:00")
}

func changedEntities(t *testing.T, result core.DecisionResult) (loans []core.Transaction, books []core.Book, reservations []core.Reservation) {
	t.Helper()

	for _, change := range result.Changes {
		switch e := change.Entity.(type) {
		case core.Transaction:
			loans = append(loans, e)
		case core.Book:
			books = append(books, e)
		case core.Reservation:
			reservations = append(reservations, e)
		}
	}

	return loans, books, reservations
}

func Test_Decide_Success_ReservesACopyAndOpensLoan(t *testing.T) {
	// arrange
	state, now := givenState(t)
	command := borrowbook.BuildCommand(state.Member.ID, state.Book.ID, now)

	// act
	result := borrowbook.Decide(state, command, core.DefaultPolicy())

	// assert
	require.NoError(t, result.HasError())
	require.True(t, result.HasChangesToCommit())

	loans, books, _ := changedEntities(t, result)
	require.Len(t, loans, 1)
	require.Len(t, books, 1)

	assert.Equal(t, core.LoanActive, loans[0].Status)
	assert.Equal(t, core.TransactionBorrow, loans[0].Type)
	assert.Equal(t, now, loans[0].BorrowedAt)
	assert.Equal(t, now.AddDate(0, 0, 14), loans[0].DueAt)
	assert.Equal(t, 1, books[0].AvailableCopies)
}

func Test_Decide_UsesCommandLoanPeriod_WhenProvided(t *testing.T) {
	// arrange
	state, now := givenState(t)
	command := borrowbook.BuildCommand(state.Member.ID, state.Book.ID, now)
	command.LoanPeriodDays = 7

	// act
	result := borrowbook.Decide(state, command, core.DefaultPolicy())

	// assert
	require.NoError(t, result.HasError())
	loans, _, _ := changedEntities(t, result)
	require.Len(t, loans, 1)
	assert.Equal(t, now.AddDate(0, 0, 7), loans[0].DueAt)
}

func Test_Decide_Idempotent_WhenMemberAlreadyHoldsTheBook(t *testing.T) {
	// arrange
	state, now := givenState(t)
	existing := testutil.GivenOpenLoan(state.Member.ID, state.Book.ID, now.AddDate(0, 0, -3), now.AddDate(0, 0, 11))
	state.OpenLoan = &existing
	command := borrowbook.BuildCommand(state.Member.ID, state.Book.ID, now)

	// act
	result := borrowbook.Decide(state, command, core.DefaultPolicy())

	// assert
	assert.True(t, result.IsIdempotent())
	assert.False(t, result.HasChangesToCommit())
}

func Test_Decide_Error_WhenNoCopyAvailable(t *testing.T) {
	// arrange
	state, now := givenState(t)
	state.Book.AvailableCopies = 0
	command := borrowbook.BuildCommand(state.Member.ID, state.Book.ID, now)

	// act
	result := borrowbook.Decide(state, command, core.DefaultPolicy())

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrOutOfStock)
}

func Test_Decide_Error_WhenMemberIneligible(t *testing.T) {
	now := testutil.At(t, "2024-03-01 09:00")

	tests := []struct {
		name   string
		mutate func(s *borrowbook.State)
	}{
		{"suspended membership", func(s *borrowbook.State) { s.Member.Status = core.MemberSuspended }},
		{"lapsed membership term", func(s *borrowbook.State) { s.Member.ExpiresAt = now.AddDate(0, 0, -1) }},
		{"fine balance at cap", func(s *borrowbook.State) { s.Member.FineBalance = core.DefaultPolicy().BorrowingFineCap }},
		{"all loan slots used", func(s *borrowbook.State) { s.OpenLoanCount = s.Member.MaxBooks }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			state, _ := givenState(t)
			tc.mutate(&state)
			command := borrowbook.BuildCommand(state.Member.ID, state.Book.ID, now)

			// act
			result := borrowbook.Decide(state, command, core.DefaultPolicy())

			// assert
			assert.ErrorIs(t, result.HasError(), core.ErrMemberIneligible)
		})
	}
}

func Test_Decide_ConsumesPickupHold_WithoutTouchingAvailability(t *testing.T) {
	// arrange - every copy is out or held, but this member has a live hold
	state, now := givenState(t)
	state.Book.AvailableCopies = 0

	hold := testutil.GivenReservation(state.Member.ID, state.Book.ID, 2, now.AddDate(0, 0, -2))
	hold.Status = core.ReservationFulfilled
	holdUntil := now.Add(12 * time.Hour)
	hold.HoldUntil = &holdUntil
	state.Hold = &hold

	command := borrowbook.BuildCommand(state.Member.ID, state.Book.ID, now)

	// act
	result := borrowbook.Decide(state, command, core.DefaultPolicy())

	// assert - loan opens, hold closes, no book change at all
	require.NoError(t, result.HasError())

	loans, books, reservations := changedEntities(t, result)
	require.Len(t, loans, 1)
	require.Len(t, reservations, 1)
	assert.Empty(t, books)

	assert.Equal(t, core.ReservationFulfilled, reservations[0].Status)
	assert.Nil(t, reservations[0].HoldUntil)
}

func Test_Decide_RecordsHandlingStaff_WhenProvided(t *testing.T) {
	// arrange
	state, now := givenState(t)
	staffID := state.Member.ID // any UUID will do for the pure decision
	command := borrowbook.BuildCommand(state.Member.ID, state.Book.ID, now)
	command.StaffID = &staffID

	// act
	result := borrowbook.Decide(state, command, core.DefaultPolicy())

	// assert
	require.NoError(t, result.HasError())
	loans, _, _ := changedEntities(t, result)
	require.Len(t, loans, 1)
	require.NotNil(t, loans[0].StaffID)
	assert.Equal(t, staffID, *loans[0].StaffID)
}
