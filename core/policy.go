package core

import "time"

// Policy bundles the configurable circulation rules. The zero value is not
// usable; start from DefaultPolicy and override with the With* options.
type Policy struct {
	// LoanPeriodDays is the default loan period for borrows that do not
	// specify one.
	LoanPeriodDays int

	// DailyFineRate is the late fee per whole overdue day.
	DailyFineRate Cents

	// MaxFinePerLoan clamps the late fee assessed for a single loan.
	MaxFinePerLoan Cents

	// BorrowingFineCap blocks borrowing for members whose fine balance is
	// at or above this amount.
	BorrowingFineCap Cents

	// ReservationExpiryDays is the default lifetime of an unfulfilled
	// reservation.
	ReservationExpiryDays int

	// HoldWindow is how long a fulfilled reservation earmarks the released
	// copy before the hold lapses.
	HoldWindow time.Duration
}

// DefaultPolicy returns the standard circulation rules: 14-day loans,
// $0.50/day late fee clamped at $20.00 per loan, borrowing blocked at a
// $10.00 balance, 7-day reservations with a 48-hour pickup hold.
func DefaultPolicy() Policy {
	return Policy{
		LoanPeriodDays:        14,
		DailyFineRate:         50,
		MaxFinePerLoan:        2000,
		BorrowingFineCap:      1000,
		ReservationExpiryDays: 7,
		HoldWindow:            48 * time.Hour,
	}
}

// PolicyOption overrides a single rule of a Policy.
type PolicyOption func(*Policy)

// WithLoanPeriodDays sets the default loan period.
func WithLoanPeriodDays(days int) PolicyOption {
	return func(p *Policy) { p.LoanPeriodDays = days }
}

// WithDailyFineRate sets the late fee per overdue day.
func WithDailyFineRate(rate Cents) PolicyOption {
	return func(p *Policy) { p.DailyFineRate = rate }
}

// WithMaxFinePerLoan sets the per-loan late fee clamp.
func WithMaxFinePerLoan(maximum Cents) PolicyOption {
	return func(p *Policy) { p.MaxFinePerLoan = maximum }
}

// WithBorrowingFineCap sets the balance at which borrowing is blocked.
func WithBorrowingFineCap(limit Cents) PolicyOption {
	return func(p *Policy) { p.BorrowingFineCap = limit }
}

// WithReservationExpiryDays sets the default reservation lifetime.
func WithReservationExpiryDays(days int) PolicyOption {
	return func(p *Policy) { p.ReservationExpiryDays = days }
}

// WithHoldWindow sets the pickup hold duration.
func WithHoldWindow(window time.Duration) PolicyOption {
	return func(p *Policy) { p.HoldWindow = window }
}

// BuildPolicy applies options on top of DefaultPolicy.
func BuildPolicy(options ...PolicyOption) Policy {
	policy := DefaultPolicy()
	for _, option := range options {
		option(&policy)
	}

	return policy
}
