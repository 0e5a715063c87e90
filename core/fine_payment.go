package core

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethod is how a fine payment was made.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "Cash"
	PaymentCard   PaymentMethod = "Card"
	PaymentOnline PaymentMethod = "Online"
)

// FinePayment records one payment against a member's fine balance.
// ReceiptNumber is globally unique; the optional TransactionID links the
// payment to the loan whose late fee it settles.
type FinePayment struct {
	ID            uuid.UUID
	MemberID      uuid.UUID
	TransactionID *uuid.UUID
	Amount        Cents
	Method        PaymentMethod
	ReceiptNumber string
	PaidAt        time.Time
	Version       uint
}

func (p FinePayment) EntityID() uuid.UUID    { return p.ID }
func (p FinePayment) EntityKind() EntityKind { return KindFinePayment }
func (p FinePayment) EntityVersion() uint    { return p.Version }
