package registermember

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/bibliotek-systems/circulation-go/core"
)

const (
	defaultMaxBooks       = 5
	defaultMembershipDays = 365
)

// State is everything the registration decision needs, loaded in one read phase.
type State struct {
	// Existing is the member already registered under the commanded
	// membership number, if any.
	Existing *core.Member
}

// Decide implements the business logic for registering a member.
// This is a pure function with no side effects - it takes the loaded state
// and a command and returns the change set to commit.
//
// Business Rules:
//
//	GIVEN: Membership details
//	WHEN: RegisterMember command is received
//	THEN: An Active member is created with a one-year term and the default
//	      loan slot count unless overridden
//	ERROR: InvalidAmount if the membership number, email, or name is empty
//	IDEMPOTENCY: If the membership number is already registered, no change
//	             is generated (no-op)
func Decide(s State, command Command) core.DecisionResult {
	if command.MembershipNumber == "" || command.Email == "" || command.Name == "" {
		return core.ErrorDecision(fmt.Errorf("%w: membership number, email, and name are required",
			core.ErrInvalidAmount))
	}

	if s.Existing != nil {
		return core.IdempotentDecision()
	}

	maxBooks := command.MaxBooks
	if maxBooks <= 0 {
		maxBooks = defaultMaxBooks
	}

	expiresAt := command.OccurredAt.AddDate(0, 0, defaultMembershipDays)
	if command.ExpiresAt != nil {
		expiresAt = *command.ExpiresAt
	}

	member := core.Member{
		ID:               uuid.New(),
		MembershipNumber: command.MembershipNumber,
		Email:            command.Email,
		Name:             command.Name,
		Status:           core.MemberActive,
		MaxBooks:         maxBooks,
		ExpiresAt:        expiresAt,
	}

	return core.SuccessDecision(core.Insert(member))
}
