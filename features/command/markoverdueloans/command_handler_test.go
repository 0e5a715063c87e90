package markoverdueloans_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibliotek-systems/circulation-go/core"
	"github.com/bibliotek-systems/circulation-go/features/command/markoverdueloans"
	"github.com/bibliotek-systems/circulation-go/store/memoryengine"
	"github.com/bibliotek-systems/circulation-go/testutil"
)

func Test_Decide_MarksActiveLoanPastDueDate(t *testing.T) {
	// arrange
	borrowedAt := testutil.At(t, "2024-03-01 09:00")
	loan := testutil.GivenOpenLoan(uuid.New(), uuid.New(), borrowedAt, borrowedAt.AddDate(0, 0, 14))

	// act
	result := markoverdueloans.Decide(loan, borrowedAt.AddDate(0, 0, 15))

	// assert
	require.True(t, result.HasChangesToCommit())
	marked := result.Changes[0].Entity.(core.Transaction)
	assert.Equal(t, core.LoanOverdue, marked.Status)
	assert.Equal(t, core.Cents(0), marked.FineAmount, "the sweep never assesses fines")
}

func Test_Decide_Idempotent_WhenNotYetDue(t *testing.T) {
	// arrange
	borrowedAt := testutil.At(t, "2024-03-01 09:00")
	loan := testutil.GivenOpenLoan(uuid.New(), uuid.New(), borrowedAt, borrowedAt.AddDate(0, 0, 14))

	// act
	result := markoverdueloans.Decide(loan, borrowedAt.AddDate(0, 0, 14))

	// assert - due at the sweep instant is not yet late
	assert.True(t, result.IsIdempotent())
}

func Test_Decide_Idempotent_WhenLoanNotActive(t *testing.T) {
	borrowedAt := testutil.At(t, "2024-03-01 09:00")
	asOf := borrowedAt.AddDate(0, 0, 20)

	for _, status := range []core.LoanStatus{core.LoanOverdue, core.LoanCompleted} {
		loan := testutil.GivenOpenLoan(uuid.New(), uuid.New(), borrowedAt, borrowedAt.AddDate(0, 0, 14))
		loan.Status = status

		result := markoverdueloans.Decide(loan, asOf)

		assert.True(t, result.IsIdempotent(), "status %s", status)
	}
}

func Test_Handle_SweepsOnlyLateLoans(t *testing.T) {
	// arrange - one late loan, one on time, one already completed
	ctx := context.Background()
	s := memoryengine.NewMemoryStore()
	category := testutil.GivenCategory("Fiction")
	bookA := testutil.GivenBook(category.ID, "Late Title", 2, 1)
	bookB := testutil.GivenBook(category.ID, "Punctual Title", 2, 1)
	member := testutil.GivenMember("Kim Reader")

	borrowedAt := testutil.At(t, "2024-03-01 09:00")
	late := testutil.GivenOpenLoan(member.ID, bookA.ID, borrowedAt, borrowedAt.AddDate(0, 0, 7))
	onTime := testutil.GivenOpenLoan(member.ID, bookB.ID, borrowedAt, borrowedAt.AddDate(0, 0, 21))
	testutil.Seed(t, s, category, bookA, bookB, member, late, onTime)

	handler := markoverdueloans.NewCommandHandler(s)
	asOf := borrowedAt.AddDate(0, 0, 10)

	// act
	result, err := handler.Handle(ctx, markoverdueloans.BuildCommand(asOf))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 1, result.Candidates)
	assert.Equal(t, 1, result.Marked)
	assert.Equal(t, 0, result.Failed)

	stored, err := s.TransactionByID(ctx, late.ID)
	require.NoError(t, err)
	assert.Equal(t, core.LoanOverdue, stored.Status)

	untouched, err := s.TransactionByID(ctx, onTime.ID)
	require.NoError(t, err)
	assert.Equal(t, core.LoanActive, untouched.Status)
}

func Test_Handle_SecondSweepFindsNothing(t *testing.T) {
	// arrange
	ctx := context.Background()
	s := memoryengine.NewMemoryStore()
	category := testutil.GivenCategory("Fiction")
	book := testutil.GivenBook(category.ID, "Late Title", 2, 1)
	member := testutil.GivenMember("Kim Reader")

	borrowedAt := testutil.At(t, "2024-03-01 09:00")
	late := testutil.GivenOpenLoan(member.ID, book.ID, borrowedAt, borrowedAt.AddDate(0, 0, 7))
	testutil.Seed(t, s, category, book, member, late)

	handler := markoverdueloans.NewCommandHandler(s)
	asOf := borrowedAt.AddDate(0, 0, 10)

	_, err := handler.Handle(ctx, markoverdueloans.BuildCommand(asOf))
	require.NoError(t, err)

	// act
	result, err := handler.Handle(ctx, markoverdueloans.BuildCommand(asOf))

	// assert - the Overdue loan is no longer a candidate
	require.NoError(t, err)
	assert.Equal(t, 0, result.Candidates)
	assert.Equal(t, 0, result.Marked)
}
