package core_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bibliotek-systems/circulation-go/core"
)

func givenEligibleMember() core.Member {
	return core.Member{
		Status:    core.MemberActive,
		MaxBooks:  5,
		ExpiresAt: time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

func Test_CheckBorrowEligibility_Passes_ForActiveMemberWithSlots(t *testing.T) {
	now := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

	err := core.CheckBorrowEligibility(givenEligibleMember(), 0, now, core.DefaultPolicy())

	assert.NoError(t, err)
}

func Test_CheckBorrowEligibility_Error_WhenMembershipNotActive(t *testing.T) {
	now := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

	for _, status := range []core.MemberStatus{core.MemberSuspended, core.MemberExpired, core.MemberCancelled} {
		member := givenEligibleMember()
		member.Status = status

		err := core.CheckBorrowEligibility(member, 0, now, core.DefaultPolicy())

		assert.ErrorIs(t, err, core.ErrMemberIneligible, "status %s", status)
	}
}

func Test_CheckBorrowEligibility_Error_WhenMembershipLapsed(t *testing.T) {
	// arrange - status still says Active but the term has run out
	now := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	member := givenEligibleMember()
	member.ExpiresAt = now.AddDate(0, 0, -1)

	// act
	err := core.CheckBorrowEligibility(member, 0, now, core.DefaultPolicy())

	// assert
	assert.ErrorIs(t, err, core.ErrMemberIneligible)
}

func Test_CheckBorrowEligibility_Error_WhenFineBalanceAtCap(t *testing.T) {
	now := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	policy := core.DefaultPolicy()

	member := givenEligibleMember()
	member.FineBalance = policy.BorrowingFineCap

	err := core.CheckBorrowEligibility(member, 0, now, policy)

	assert.ErrorIs(t, err, core.ErrMemberIneligible)
}

func Test_CheckBorrowEligibility_Passes_JustBelowFineCap(t *testing.T) {
	now := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	policy := core.DefaultPolicy()

	member := givenEligibleMember()
	member.FineBalance = policy.BorrowingFineCap - 1

	err := core.CheckBorrowEligibility(member, 0, now, policy)

	assert.NoError(t, err)
}

func Test_CheckBorrowEligibility_Error_WhenAllLoanSlotsUsed(t *testing.T) {
	now := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	member := givenEligibleMember()

	err := core.CheckBorrowEligibility(member, member.MaxBooks, now, core.DefaultPolicy())

	assert.ErrorIs(t, err, core.ErrMemberIneligible)
}
