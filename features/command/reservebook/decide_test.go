package reservebook_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibliotek-systems/circulation-go/core"
	"github.com/bibliotek-systems/circulation-go/features/command/reservebook"
	"github.com/bibliotek-systems/circulation-go/testutil"
)

func Test_Decide_Success_PlacesActiveReservation(t *testing.T) {
	// arrange
	member := testutil.GivenMember("Kim Reader")
	bookID := uuid.New()
	now := testutil.At(t, "2024-03-01 09:00")
	command := reservebook.BuildCommand(member.ID, bookID, 2, now)

	// act
	result := reservebook.Decide(reservebook.State{Member: member}, command, core.DefaultPolicy())

	// assert
	require.NoError(t, result.HasError())
	require.Len(t, result.Changes, 1)
	assert.Equal(t, core.OpInsert, result.Changes[0].Op)

	reservation, ok := result.Changes[0].Entity.(core.Reservation)
	require.True(t, ok)
	assert.Equal(t, core.ReservationActive, reservation.Status)
	assert.Equal(t, 2, reservation.Priority)
	assert.Equal(t, now, reservation.ReservedAt)
	assert.Equal(t, now.AddDate(0, 0, 7), reservation.ExpiresAt)
}

func Test_Decide_Error_WhenPriorityOutOfRange(t *testing.T) {
	member := testutil.GivenMember("Kim Reader")
	now := testutil.At(t, "2024-03-01 09:00")

	for _, priority := range []int{0, 6, -1} {
		command := reservebook.BuildCommand(member.ID, uuid.New(), priority, now)

		result := reservebook.Decide(reservebook.State{Member: member}, command, core.DefaultPolicy())

		assert.ErrorIs(t, result.HasError(), core.ErrInvalidAmount, "priority %d", priority)
	}
}

func Test_Decide_Error_WhenMembershipNotActive(t *testing.T) {
	// arrange
	member := testutil.GivenMember("Kim Reader")
	member.Status = core.MemberSuspended
	now := testutil.At(t, "2024-03-01 09:00")
	command := reservebook.BuildCommand(member.ID, uuid.New(), 3, now)

	// act
	result := reservebook.Decide(reservebook.State{Member: member}, command, core.DefaultPolicy())

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrMemberIneligible)
}

func Test_Decide_Error_WhenMembershipExpired(t *testing.T) {
	// arrange
	member := testutil.GivenMember("Kim Reader")
	now := testutil.At(t, "2024-03-01 09:00")
	member.ExpiresAt = now.AddDate(0, 0, -1)
	command := reservebook.BuildCommand(member.ID, uuid.New(), 3, now)

	// act
	result := reservebook.Decide(reservebook.State{Member: member}, command, core.DefaultPolicy())

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrMemberIneligible)
}

func Test_Decide_Error_WhenAlreadyWaitingOnTheBook(t *testing.T) {
	// arrange
	member := testutil.GivenMember("Kim Reader")
	bookID := uuid.New()
	now := testutil.At(t, "2024-03-01 09:00")
	existing := testutil.GivenReservation(member.ID, bookID, 4, now.AddDate(0, 0, -1))

	command := reservebook.BuildCommand(member.ID, bookID, 1, now)

	// act
	result := reservebook.Decide(reservebook.State{Member: member, Existing: &existing}, command, core.DefaultPolicy())

	// assert - a better priority does not replace the standing reservation
	assert.ErrorIs(t, result.HasError(), core.ErrDuplicateReservation)
}

func Test_Decide_Error_WhenBookAlreadyOnLoanToMember(t *testing.T) {
	// arrange - no point queueing for a copy the member is holding
	member := testutil.GivenMember("Kim Reader")
	bookID := uuid.New()
	now := testutil.At(t, "2024-03-01 09:00")
	loan := testutil.GivenOpenLoan(member.ID, bookID, now.AddDate(0, 0, -3), now.AddDate(0, 0, 11))

	command := reservebook.BuildCommand(member.ID, bookID, 3, now)

	// act
	result := reservebook.Decide(reservebook.State{Member: member, OpenLoan: &loan}, command, core.DefaultPolicy())

	// assert
	assert.ErrorIs(t, result.HasError(), core.ErrDuplicateReservation)
}

func Test_Decide_UsesCommandExpiryDays_WhenProvided(t *testing.T) {
	// arrange
	member := testutil.GivenMember("Kim Reader")
	now := testutil.At(t, "2024-03-01 09:00")
	command := reservebook.BuildCommand(member.ID, uuid.New(), 3, now)
	command.ExpiryDays = 14

	// act
	result := reservebook.Decide(reservebook.State{Member: member}, command, core.DefaultPolicy())

	// assert
	require.NoError(t, result.HasError())
	reservation := result.Changes[0].Entity.(core.Reservation)
	assert.Equal(t, now.AddDate(0, 0, 14), reservation.ExpiresAt)
}
