package core_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/bibliotek-systems/circulation-go/core"
)

func Test_ReserveCopy_DecrementsAvailability(t *testing.T) {
	// arrange
	book := core.Book{ID: uuid.New(), TotalCopies: 3, AvailableCopies: 2}

	// act
	adjusted, err := core.ReserveCopy(book)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 1, adjusted.AvailableCopies)
	assert.Equal(t, 3, adjusted.TotalCopies)
}

func Test_ReserveCopy_Error_WhenNoCopyAvailable(t *testing.T) {
	// arrange
	book := core.Book{ID: uuid.New(), TotalCopies: 3, AvailableCopies: 0}

	// act
	_, err := core.ReserveCopy(book)

	// assert
	assert.ErrorIs(t, err, core.ErrOutOfStock)
}

func Test_ReleaseCopy_IncrementsAvailability(t *testing.T) {
	// arrange
	book := core.Book{ID: uuid.New(), TotalCopies: 3, AvailableCopies: 0}

	// act
	adjusted, err := core.ReleaseCopy(book)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 1, adjusted.AvailableCopies)
}

func Test_ReleaseCopy_Error_WhenAllCopiesAlreadyOnShelf(t *testing.T) {
	// arrange - releasing here would mean a decrement was lost somewhere
	book := core.Book{ID: uuid.New(), TotalCopies: 3, AvailableCopies: 3}

	// act
	_, err := core.ReleaseCopy(book)

	// assert
	assert.ErrorIs(t, err, core.ErrConsistencyFault)
}

func Test_AdjustTotalCopies_GrowsBothCounts(t *testing.T) {
	// arrange
	book := core.Book{ID: uuid.New(), TotalCopies: 3, AvailableCopies: 1}

	// act
	adjusted, err := core.AdjustTotalCopies(book, 2)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 5, adjusted.TotalCopies)
	assert.Equal(t, 3, adjusted.AvailableCopies)
}

func Test_AdjustTotalCopies_RetiresShelvedCopies(t *testing.T) {
	// arrange
	book := core.Book{ID: uuid.New(), TotalCopies: 5, AvailableCopies: 3}

	// act
	adjusted, err := core.AdjustTotalCopies(book, -3)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 2, adjusted.TotalCopies)
	assert.Equal(t, 0, adjusted.AvailableCopies)
}

func Test_AdjustTotalCopies_Error_WhenDeltaIsZero(t *testing.T) {
	// arrange
	book := core.Book{ID: uuid.New(), TotalCopies: 3, AvailableCopies: 3}

	// act
	_, err := core.AdjustTotalCopies(book, 0)

	// assert
	assert.ErrorIs(t, err, core.ErrInvalidAmount)
}

func Test_AdjustTotalCopies_Error_WhenRetiringCopiesThatAreOut(t *testing.T) {
	// arrange - 2 of 3 copies are out, only 1 can be retired
	book := core.Book{ID: uuid.New(), TotalCopies: 3, AvailableCopies: 1}

	// act
	_, err := core.AdjustTotalCopies(book, -2)

	// assert
	assert.ErrorIs(t, err, core.ErrInvalidAmount)
}

func Test_CheckLedgerInvariant(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		available int
		wantFault bool
	}{
		{"all on shelf", 3, 3, false},
		{"all out", 3, 0, false},
		{"negative available", 3, -1, true},
		{"available exceeds total", 3, 4, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			book := core.Book{ID: uuid.New(), TotalCopies: tc.total, AvailableCopies: tc.available}

			err := core.CheckLedgerInvariant(book)

			if tc.wantFault {
				assert.ErrorIs(t, err, core.ErrConsistencyFault)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
