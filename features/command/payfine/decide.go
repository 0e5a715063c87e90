package payfine

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/bibliotek-systems/circulation-go/core"
)

// State is everything the payment decision needs, loaded in one read phase.
type State struct {
	Member core.Member
}

// Decide implements the business logic for paying a fine.
// This is a pure function with no side effects - it takes the loaded state
// and a command and returns the change set to commit.
//
// Business Rules:
//
//	GIVEN: A member with a fine balance
//	WHEN: PayFine command is received
//	THEN: The balance is reduced by the amount and a payment record with a
//	      unique receipt number is written
//	ERROR: InvalidAmount if the amount is not positive, exceeds the
//	       balance (no credit is kept), or the payment method is unknown
func Decide(s State, command Command) core.DecisionResult {
	if err := core.ValidatePayment(s.Member, command.Amount); err != nil {
		return core.ErrorDecision(err)
	}

	switch command.Method {
	case core.PaymentCash, core.PaymentCard, core.PaymentOnline:
	default:
		return core.ErrorDecision(fmt.Errorf("%w: unknown payment method %q",
			core.ErrInvalidAmount, command.Method))
	}

	member := s.Member
	member.FineBalance -= command.Amount

	payment := core.FinePayment{
		ID:            uuid.New(),
		MemberID:      command.MemberID,
		TransactionID: command.TransactionID,
		Amount:        command.Amount,
		Method:        command.Method,
		ReceiptNumber: command.ReceiptNumber,
		PaidAt:        command.OccurredAt,
	}

	if payment.ReceiptNumber == "" {
		payment.ReceiptNumber = "RCPT-" + payment.ID.String()
	}

	return core.SuccessDecision(core.Update(member), core.Insert(payment))
}
