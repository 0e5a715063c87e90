package core

import (
	"fmt"
	"time"
)

const hoursPerDay = 24

// OverdueDays is the number of whole days between the due date and the
// return date, never negative. A loan returned any time on its due date
// accrues nothing.
func OverdueDays(dueAt, returnedAt time.Time) int {
	if !returnedAt.After(dueAt) {
		return 0
	}

	return int(returnedAt.Sub(dueAt).Hours() / hoursPerDay)
}

// LateFee computes the fine for a late return: whole overdue days times the
// daily rate, clamped to the per-loan maximum. Fines are assessed once, at
// return time; the overdue sweep never accrues anything.
func LateFee(dueAt, returnedAt time.Time, policy Policy) Cents {
	fee := Cents(OverdueDays(dueAt, returnedAt)) * policy.DailyFineRate
	if fee > policy.MaxFinePerLoan {
		fee = policy.MaxFinePerLoan
	}

	return fee
}

// ValidatePayment checks a fine payment amount against the member's
// balance. Overpayment is refused: the engine keeps no credit.
func ValidatePayment(member Member, amount Cents) error {
	if amount <= 0 {
		return fmt.Errorf("%w: payment of %s must be positive", ErrInvalidAmount, amount)
	}

	if amount > member.FineBalance {
		return fmt.Errorf("%w: payment of %s exceeds fine balance of %s",
			ErrInvalidAmount, amount, member.FineBalance)
	}

	return nil
}
