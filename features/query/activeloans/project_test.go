package activeloans_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibliotek-systems/circulation-go/core"
	"github.com/bibliotek-systems/circulation-go/features/query/activeloans"
	"github.com/bibliotek-systems/circulation-go/testutil"
)

func Test_ProjectActiveLoans_ListsOpenLoansWithLateness(t *testing.T) {
	// arrange - one loan five days late, one still on time
	category := testutil.GivenCategory("Fiction")
	book := testutil.GivenBook(category.ID, "The Go Programming Language", 3, 1)
	member := testutil.GivenMember("Kim Reader")

	borrowedAt := testutil.At(t, "2024-03-01 09:00")
	late := testutil.GivenOpenLoan(member.ID, book.ID, borrowedAt, borrowedAt.AddDate(0, 0, 7))
	onTime := testutil.GivenOpenLoan(member.ID, book.ID, borrowedAt, borrowedAt.AddDate(0, 0, 21))

	asOf := borrowedAt.AddDate(0, 0, 12)

	// act
	result := activeloans.ProjectActiveLoans(
		[]core.Transaction{onTime, late}, []core.Book{book}, activeloans.BuildQuery(asOf))

	// assert - most overdue first, lateness computed from the due date
	require.Equal(t, 2, result.Count)
	assert.Equal(t, late.ID, result.Loans[0].TransactionID)
	assert.Equal(t, 5, result.Loans[0].DaysOverdue)
	assert.Equal(t, "The Go Programming Language", result.Loans[0].BookTitle)
	assert.Equal(t, onTime.ID, result.Loans[1].TransactionID)
	assert.Equal(t, 0, result.Loans[1].DaysOverdue)
}

func Test_ProjectActiveLoans_LatenessDoesNotWaitForTheSweep(t *testing.T) {
	// arrange - still labeled Active, already past due
	category := testutil.GivenCategory("Fiction")
	book := testutil.GivenBook(category.ID, "Not Yet Swept", 1, 0)
	member := testutil.GivenMember("Kim Reader")

	borrowedAt := testutil.At(t, "2024-03-01 09:00")
	loan := testutil.GivenOpenLoan(member.ID, book.ID, borrowedAt, borrowedAt.AddDate(0, 0, 14))

	// act
	result := activeloans.ProjectActiveLoans(
		[]core.Transaction{loan}, []core.Book{book}, activeloans.BuildQuery(borrowedAt.AddDate(0, 0, 16)))

	// assert
	require.Equal(t, 1, result.Count)
	assert.Equal(t, core.LoanActive, result.Loans[0].Status)
	assert.Equal(t, 2, result.Loans[0].DaysOverdue)
}

func Test_ProjectActiveLoans_ExcludesCompletedLoans(t *testing.T) {
	// arrange
	category := testutil.GivenCategory("Fiction")
	book := testutil.GivenBook(category.ID, "Returned Already", 1, 1)
	member := testutil.GivenMember("Kim Reader")

	borrowedAt := testutil.At(t, "2024-03-01 09:00")
	completed := testutil.GivenOpenLoan(member.ID, book.ID, borrowedAt, borrowedAt.AddDate(0, 0, 14))
	completed.Status = core.LoanCompleted

	// act
	result := activeloans.ProjectActiveLoans(
		[]core.Transaction{completed}, []core.Book{book}, activeloans.BuildQuery(borrowedAt.AddDate(0, 0, 20)))

	// assert
	assert.Equal(t, 0, result.Count)
	assert.Empty(t, result.Loans)
}
