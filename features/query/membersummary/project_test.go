package membersummary_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/bibliotek-systems/circulation-go/core"
	"github.com/bibliotek-systems/circulation-go/features/query/membersummary"
	"github.com/bibliotek-systems/circulation-go/testutil"
)

func Test_ProjectMemberSummary_CountsLoansByState(t *testing.T) {
	// arrange
	member := testutil.GivenMember("Kim Reader")
	bookID := uuid.New()
	borrowedAt := testutil.At(t, "2024-03-01 09:00")

	open := testutil.GivenOpenLoan(member.ID, bookID, borrowedAt, borrowedAt.AddDate(0, 0, 14))

	overdue := testutil.GivenOpenLoan(member.ID, bookID, borrowedAt, borrowedAt.AddDate(0, 0, 7))
	overdue.Status = core.LoanOverdue

	completed := testutil.GivenOpenLoan(member.ID, bookID, borrowedAt, borrowedAt.AddDate(0, 0, 14))
	completed.Status = core.LoanCompleted
	completed.FineAmount = 250

	query := membersummary.BuildQuery(member.ID, borrowedAt.AddDate(0, 0, 20))

	// act
	summary := membersummary.ProjectMemberSummary(member,
		[]core.Transaction{open, overdue, completed}, nil, nil, query)

	// assert - overdue loans are still open loans
	assert.Equal(t, 2, summary.OpenLoanCount)
	assert.Equal(t, 1, summary.OverdueLoanCount)
	assert.Equal(t, 1, summary.CompletedLoanCount)
	assert.Equal(t, core.Cents(250), summary.TotalFinesAssessed)
}

func Test_ProjectMemberSummary_FineLedger(t *testing.T) {
	// arrange
	member := testutil.GivenMember("Kim Reader")
	member.FineBalance = 150

	payments := []core.FinePayment{
		{ID: uuid.New(), MemberID: member.ID, Amount: 100, Method: core.PaymentCash},
		{ID: uuid.New(), MemberID: member.ID, Amount: 200, Method: core.PaymentCard},
	}

	query := membersummary.BuildQuery(member.ID, testutil.At(t, "2024-03-20 09:00"))

	// act
	summary := membersummary.ProjectMemberSummary(member, nil, nil, payments, query)

	// assert
	assert.Equal(t, core.Cents(150), summary.FineBalance)
	assert.Equal(t, core.Cents(300), summary.TotalPaid)
}

func Test_ProjectMemberSummary_WaitlistStandingAndLiveHolds(t *testing.T) {
	// arrange
	member := testutil.GivenMember("Kim Reader")
	asOf := testutil.At(t, "2024-03-20 09:00")

	waiting := testutil.GivenReservation(member.ID, uuid.New(), 3, asOf.AddDate(0, 0, -2))

	held := testutil.GivenReservation(member.ID, uuid.New(), 2, asOf.AddDate(0, 0, -3))
	held.Status = core.ReservationFulfilled
	holdUntil := asOf.Add(12 * time.Hour)
	held.HoldUntil = &holdUntil

	lapsed := testutil.GivenReservation(member.ID, uuid.New(), 2, asOf.AddDate(0, 0, -5))
	lapsed.Status = core.ReservationFulfilled
	lapsedUntil := asOf.Add(-time.Hour)
	lapsed.HoldUntil = &lapsedUntil

	cancelled := testutil.GivenReservation(member.ID, uuid.New(), 4, asOf.AddDate(0, 0, -1))
	cancelled.Status = core.ReservationCancelled

	query := membersummary.BuildQuery(member.ID, asOf)

	// act
	summary := membersummary.ProjectMemberSummary(member, nil,
		[]core.Reservation{waiting, held, lapsed, cancelled}, nil, query)

	// assert - only the live hold counts as a hold
	assert.Equal(t, 1, summary.ActiveReservationCount)
	assert.Equal(t, 1, summary.LiveHoldCount)
}

func Test_ProjectMemberSummary_CarriesMembershipDetails(t *testing.T) {
	// arrange
	member := testutil.GivenMember("Kim Reader")
	query := membersummary.BuildQuery(member.ID, testutil.At(t, "2024-03-20 09:00"))

	// act
	summary := membersummary.ProjectMemberSummary(member, nil, nil, nil, query)

	// assert
	assert.Equal(t, member.ID, summary.MemberID)
	assert.Equal(t, member.MembershipNumber, summary.MembershipNumber)
	assert.Equal(t, "Kim Reader", summary.Name)
	assert.Equal(t, core.MemberActive, summary.Status)
}
