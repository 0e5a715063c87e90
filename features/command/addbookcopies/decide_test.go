package addbookcopies_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibliotek-systems/circulation-go/core"
	"github.com/bibliotek-systems/circulation-go/features/command/addbookcopies"
	"github.com/bibliotek-systems/circulation-go/testutil"
)

func Test_Decide_Success_AddsCopies(t *testing.T) {
	// arrange
	category := testutil.GivenCategory("Fiction")
	book := testutil.GivenBook(category.ID, "Restocked Title", 3, 1)
	now := testutil.At(t, "2024-03-01 09:00")
	command := addbookcopies.BuildCommand(book.ID, 2, now)

	// act
	result := addbookcopies.Decide(addbookcopies.State{Book: book}, command)

	// assert
	require.NoError(t, result.HasError())
	require.Len(t, result.Changes, 1)

	adjusted, ok := result.Changes[0].Entity.(core.Book)
	require.True(t, ok)
	assert.Equal(t, 5, adjusted.TotalCopies)
	assert.Equal(t, 3, adjusted.AvailableCopies)
}

func Test_Decide_Success_RetiresShelvedCopies(t *testing.T) {
	// arrange
	category := testutil.GivenCategory("Fiction")
	book := testutil.GivenBook(category.ID, "Culled Title", 5, 4)
	now := testutil.At(t, "2024-03-01 09:00")
	command := addbookcopies.BuildCommand(book.ID, -3, now)

	// act
	result := addbookcopies.Decide(addbookcopies.State{Book: book}, command)

	// assert
	require.NoError(t, result.HasError())
	adjusted := result.Changes[0].Entity.(core.Book)
	assert.Equal(t, 2, adjusted.TotalCopies)
	assert.Equal(t, 1, adjusted.AvailableCopies)
}

func Test_Decide_Error_WhenRetiringCopiesThatAreOut(t *testing.T) {
	// arrange - two copies are out, only one is on the shelf
	category := testutil.GivenCategory("Fiction")
	book := testutil.GivenBook(category.ID, "Well Loved Title", 3, 1)
	now := testutil.At(t, "2024-03-01 09:00")
	command := addbookcopies.BuildCommand(book.ID, -2, now)

	// act
	result := addbookcopies.Decide(addbookcopies.State{Book: book}, command)

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrInvalidAmount)
}

func Test_Decide_Error_WhenDeltaIsZero(t *testing.T) {
	// arrange
	category := testutil.GivenCategory("Fiction")
	book := testutil.GivenBook(category.ID, "Unchanged Title", 3, 3)
	now := testutil.At(t, "2024-03-01 09:00")
	command := addbookcopies.BuildCommand(book.ID, 0, now)

	// act
	result := addbookcopies.Decide(addbookcopies.State{Book: book}, command)

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrInvalidAmount)
}
