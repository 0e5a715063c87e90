package membersummary

import (
	"github.com/bibliotek-systems/circulation-go/core"
)

// ProjectMemberSummary implements the query logic to summarize one member's
// circulation standing. This is a pure function with no side effects - it
// takes the member's loaded records and returns the projected summary.
//
// Query Logic:
//
//	GIVEN: A member with their loans, reservations, and payments
//	WHEN: MemberSummary query is executed
//	THEN: MemberSummary struct is returned
//	INCLUDES: Loan counts by state, waitlist standing, live pickup holds,
//	          and the fine ledger (balance, total assessed, total paid)
func ProjectMemberSummary(
	member core.Member,
	loans []core.Transaction,
	reservations []core.Reservation,
	payments []core.FinePayment,
	query Query,
) MemberSummary {
	summary := MemberSummary{
		MemberID:         member.ID,
		MembershipNumber: member.MembershipNumber,
		Name:             member.Name,
		Status:           member.Status,
		ExpiresAt:        member.ExpiresAt,
		FineBalance:      member.FineBalance,
	}

	for _, loan := range loans {
		switch loan.Status {
		case core.LoanActive:
			summary.OpenLoanCount++
		case core.LoanOverdue:
			summary.OpenLoanCount++
			summary.OverdueLoanCount++
		case core.LoanCompleted:
			summary.CompletedLoanCount++
		}

		summary.TotalFinesAssessed += loan.FineAmount
	}

	for _, reservation := range reservations {
		if reservation.Status == core.ReservationActive {
			summary.ActiveReservationCount++
		}

		if reservation.HasLiveHold(query.AsOf) {
			summary.LiveHoldCount++
		}
	}

	for _, payment := range payments {
		summary.TotalPaid += payment.Amount
	}

	return summary
}
