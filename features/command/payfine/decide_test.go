package payfine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibliotek-systems/circulation-go/core"
	"github.com/bibliotek-systems/circulation-go/features/command/payfine"
	"github.com/bibliotek-systems/circulation-go/testutil"
)

func Test_Decide_Success_ReducesBalanceAndRecordsPayment(t *testing.T) {
	// arrange
	member := testutil.GivenMember("Kim Reader")
	member.FineBalance = 500
	now := testutil.At(t, "2024-03-01 09:00")
	command := payfine.BuildCommand(member.ID, 300, core.PaymentCash, now)

	// act
	result := payfine.Decide(payfine.State{Member: member}, command)

	// assert
	require.NoError(t, result.HasError())
	require.Len(t, result.Changes, 2)

	updated, ok := result.Changes[0].Entity.(core.Member)
	require.True(t, ok)
	assert.Equal(t, core.Cents(200), updated.FineBalance)

	payment, ok := result.Changes[1].Entity.(core.FinePayment)
	require.True(t, ok)
	assert.Equal(t, core.Cents(300), payment.Amount)
	assert.Equal(t, core.PaymentCash, payment.Method)
	assert.Equal(t, now, payment.PaidAt)
	assert.NotEmpty(t, payment.ReceiptNumber)
}

func Test_Decide_Success_PaysExactBalanceToZero(t *testing.T) {
	// arrange
	member := testutil.GivenMember("Kim Reader")
	member.FineBalance = 250
	now := testutil.At(t, "2024-03-01 09:00")
	command := payfine.BuildCommand(member.ID, 250, core.PaymentCard, now)

	// act
	result := payfine.Decide(payfine.State{Member: member}, command)

	// assert
	require.NoError(t, result.HasError())
	updated := result.Changes[0].Entity.(core.Member)
	assert.Equal(t, core.Cents(0), updated.FineBalance)
}

func Test_Decide_Error_WhenOverpaying(t *testing.T) {
	// arrange - no credit is kept on the account
	member := testutil.GivenMember("Kim Reader")
	member.FineBalance = 250
	now := testutil.At(t, "2024-03-01 09:00")
	command := payfine.BuildCommand(member.ID, 251, core.PaymentCash, now)

	// act
	result := payfine.Decide(payfine.State{Member: member}, command)

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrInvalidAmount)
}

func Test_Decide_Error_WhenAmountNotPositive(t *testing.T) {
	member := testutil.GivenMember("Kim Reader")
	member.FineBalance = 250
	now := testutil.At(t, "2024-03-01 09:00")

	for _, amount := range []core.Cents{0, -100} {
		command := payfine.BuildCommand(member.ID, amount, core.PaymentCash, now)

		result := payfine.Decide(payfine.State{Member: member}, command)

		assert.ErrorIs(t, result.HasError(), core.ErrInvalidAmount, "amount %d", amount)
	}
}

func Test_Decide_Error_WhenPaymentMethodUnknown(t *testing.T) {
	// arrange
	member := testutil.GivenMember("Kim Reader")
	member.FineBalance = 250
	now := testutil.At(t, "2024-03-01 09:00")
	command := payfine.BuildCommand(member.ID, 100, core.PaymentMethod("Barter"), now)

	// act
	result := payfine.Decide(payfine.State{Member: member}, command)

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrInvalidAmount)
}

func Test_Decide_KeepsProvidedReceiptNumber(t *testing.T) {
	// arrange
	member := testutil.GivenMember("Kim Reader")
	member.FineBalance = 250
	now := testutil.At(t, "2024-03-01 09:00")
	command := payfine.BuildCommand(member.ID, 100, core.PaymentOnline, now)
	command.ReceiptNumber = "RCPT-2024-000123"

	// act
	result := payfine.Decide(payfine.State{Member: member}, command)

	// assert
	require.NoError(t, result.HasError())
	payment := result.Changes[1].Entity.(core.FinePayment)
	assert.Equal(t, "RCPT-2024-000123", payment.ReceiptNumber)
}
