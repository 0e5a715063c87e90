package core

import (
	"fmt"
	"time"
)

// CheckBorrowEligibility verifies the member-side borrowing preconditions:
// the membership is Active and unexpired, the fine balance is below the
// configured cap, and the member has loan slots left. The returned error
// wraps ErrMemberIneligible and names the violated condition.
func CheckBorrowEligibility(member Member, openLoanCount int, now time.Time, policy Policy) error {
	if member.Status != MemberActive {
		return fmt.Errorf("%w: membership status is %s", ErrMemberIneligible, member.Status)
	}

	if member.ExpiresAt.Before(now) {
		return fmt.Errorf("%w: membership expired on %s",
			ErrMemberIneligible, member.ExpiresAt.Format("2006-01-02"))
	}

	if member.FineBalance >= policy.BorrowingFineCap {
		return fmt.Errorf("%w: fine balance %s is at or above the %s cap",
			ErrMemberIneligible, member.FineBalance, policy.BorrowingFineCap)
	}

	if openLoanCount >= member.MaxBooks {
		return fmt.Errorf("%w: %d of %d allowed books already on loan",
			ErrMemberIneligible, openLoanCount, member.MaxBooks)
	}

	return nil
}
