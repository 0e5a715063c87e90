package core_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibliotek-systems/circulation-go/core"
)

func givenWaiting(priority int, reservedAt time.Time) core.Reservation {
	return core.Reservation{
		ID:         uuid.New(),
		MemberID:   uuid.New(),
		BookID:     uuid.New(),
		Status:     core.ReservationActive,
		Priority:   priority,
		ReservedAt: reservedAt,
		ExpiresAt:  reservedAt.AddDate(0, 0, 7),
	}
}

func Test_SortWaitlist_PriorityBeatsTime(t *testing.T) {
	// arrange - the priority-2 reservation is older, the priority-1 wins anyway
	base := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	older := givenWaiting(2, base)
	newer := givenWaiting(1, base.Add(2*time.Hour))

	waitlist := []core.Reservation{older, newer}

	// act
	core.SortWaitlist(waitlist)

	// assert
	assert.Equal(t, newer.ID, waitlist[0].ID)
	assert.Equal(t, older.ID, waitlist[1].ID)
}

func Test_SortWaitlist_EarlierTimeWins_AtSamePriority(t *testing.T) {
	// arrange - both at priority 3, filed at 09:00 and 10:00
	base := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	atNine := givenWaiting(3, base)
	atTen := givenWaiting(3, base.Add(time.Hour))

	waitlist := []core.Reservation{atTen, atNine}

	// act
	core.SortWaitlist(waitlist)

	// assert
	assert.Equal(t, atNine.ID, waitlist[0].ID)
	assert.Equal(t, atTen.ID, waitlist[1].ID)
}

func Test_NextFulfillable_ReturnsQueueWinner(t *testing.T) {
	// arrange
	base := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	winner := givenWaiting(1, base.Add(time.Hour))
	loser := givenWaiting(2, base)

	// act
	next, ok := core.NextFulfillable([]core.Reservation{loser, winner}, base.Add(2*time.Hour))

	// assert
	require.True(t, ok)
	assert.Equal(t, winner.ID, next.ID)
}

func Test_NextFulfillable_SkipsExpiredAndClosedReservations(t *testing.T) {
	// arrange
	base := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

	expired := givenWaiting(1, base.AddDate(0, 0, -10))
	cancelled := givenWaiting(1, base)
	cancelled.Status = core.ReservationCancelled
	eligible := givenWaiting(4, base)

	// act
	next, ok := core.NextFulfillable([]core.Reservation{expired, cancelled, eligible}, base.Add(time.Hour))

	// assert
	require.True(t, ok)
	assert.Equal(t, eligible.ID, next.ID)
}

func Test_NextFulfillable_False_WhenNobodyWaiting(t *testing.T) {
	// act
	_, ok := core.NextFulfillable(nil, time.Now())

	// assert
	assert.False(t, ok)
}

func Test_HasLiveHold(t *testing.T) {
	now := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	holdUntil := now.Add(24 * time.Hour)

	live := core.Reservation{Status: core.ReservationFulfilled, HoldUntil: &holdUntil}
	assert.True(t, live.HasLiveHold(now))
	assert.False(t, live.HasLiveHold(holdUntil.Add(time.Second)))

	noHold := core.Reservation{Status: core.ReservationFulfilled}
	assert.False(t, noHold.HasLiveHold(now))

	active := core.Reservation{Status: core.ReservationActive, HoldUntil: &holdUntil}
	assert.False(t, active.HasLiveHold(now))
}
