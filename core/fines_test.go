package core_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bibliotek-systems/circulation-go/core"
)

func Test_OverdueDays(t *testing.T) {
	dueAt := time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		returnedAt time.Time
		want       int
	}{
		{"returned early", dueAt.Add(-48 * time.Hour), 0},
		{"returned at the due instant", dueAt, 0},
		{"returned the same day", dueAt.Add(6 * time.Hour), 0},
		{"returned one day late", dueAt.Add(25 * time.Hour), 1},
		{"returned five days late", dueAt.AddDate(0, 0, 5), 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, core.OverdueDays(dueAt, tc.returnedAt))
		})
	}
}

func Test_LateFee_FiveDaysLate(t *testing.T) {
	// arrange - due 2024-01-10, returned 2024-01-15, at $0.50 per day
	policy := core.DefaultPolicy()
	dueAt := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	returnedAt := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

	// act
	fee := core.LateFee(dueAt, returnedAt, policy)

	// assert - $2.50
	assert.Equal(t, core.Cents(250), fee)
}

func Test_LateFee_ClampedAtPerLoanMaximum(t *testing.T) {
	// arrange - 100 days late would be $50.00 unclamped
	policy := core.DefaultPolicy()
	dueAt := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	returnedAt := dueAt.AddDate(0, 0, 100)

	// act
	fee := core.LateFee(dueAt, returnedAt, policy)

	// assert
	assert.Equal(t, policy.MaxFinePerLoan, fee)
}

func Test_LateFee_Zero_WhenReturnedOnTime(t *testing.T) {
	// arrange
	policy := core.DefaultPolicy()
	dueAt := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)

	// act
	fee := core.LateFee(dueAt, dueAt, policy)

	// assert
	assert.Equal(t, core.Cents(0), fee)
}

func Test_ValidatePayment_AcceptsFullBalance(t *testing.T) {
	// arrange
	member := core.Member{FineBalance: 500}

	// act + assert
	assert.NoError(t, core.ValidatePayment(member, 500))
	assert.NoError(t, core.ValidatePayment(member, 100))
}

func Test_ValidatePayment_Error_WhenOverpaying(t *testing.T) {
	// arrange - the engine keeps no credit
	member := core.Member{FineBalance: 500}

	// act
	err := core.ValidatePayment(member, 501)

	// assert
	assert.ErrorIs(t, err, core.ErrInvalidAmount)
}

func Test_ValidatePayment_Error_WhenAmountNotPositive(t *testing.T) {
	member := core.Member{FineBalance: 500}

	assert.ErrorIs(t, core.ValidatePayment(member, 0), core.ErrInvalidAmount)
	assert.ErrorIs(t, core.ValidatePayment(member, -100), core.ErrInvalidAmount)
}

func Test_Cents_String(t *testing.T) {
	assert.Equal(t, "2.50", core.Cents(250).String())
	assert.Equal(t, "0.05", core.Cents(5).String())
	assert.Equal(t, "-1.25", core.Cents(-125).String())
}
