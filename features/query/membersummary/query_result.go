package membersummary

import (
	"time"

	"github.com/google/uuid"

	"github.com/bibliotek-systems/circulation-go/core"
)

// MemberSummary is the query result: one member's circulation standing.
type MemberSummary struct {
	MemberID         uuid.UUID
	MembershipNumber string
	Name             string
	Status           core.MemberStatus
	ExpiresAt        time.Time

	FineBalance        core.Cents
	TotalFinesAssessed core.Cents
	TotalPaid          core.Cents

	OpenLoanCount      int
	OverdueLoanCount   int
	CompletedLoanCount int

	ActiveReservationCount int
	LiveHoldCount          int
}
