package core

import (
	"time"

	"github.com/google/uuid"
)

// TransactionType records the most recent circulation action on a loan.
type TransactionType string

const (
	TransactionBorrow TransactionType = "Borrow"
	TransactionReturn TransactionType = "Return"
	TransactionRenew  TransactionType = "Renew"
)

// LoanStatus is the state of a loan transaction.
//
// Transitions: Active -> {Completed, Overdue}; Overdue -> {Completed, Active}.
// Overdue -> Active happens only through a successful renewal; Completed is
// terminal. The overdue sweep is a pure relabeling: fines are assessed at
// return time from the gap between due date and return date.
type LoanStatus string

const (
	LoanActive    LoanStatus = "Active"
	LoanOverdue   LoanStatus = "Overdue"
	LoanCompleted LoanStatus = "Completed"
)

// Transaction is one logical loan of one book copy to one member. Renewals
// extend DueAt on the same row instead of decrementing inventory again.
// Status transitions are owned exclusively by the circulation command slices.
type Transaction struct {
	ID           uuid.UUID
	MemberID     uuid.UUID
	BookID       uuid.UUID
	StaffID      *uuid.UUID
	Type         TransactionType
	Status       LoanStatus
	BorrowedAt   time.Time
	DueAt        time.Time
	ReturnedAt   *time.Time
	FineAmount   Cents
	RenewalCount int
	Version      uint
}

func (t Transaction) EntityID() uuid.UUID    { return t.ID }
func (t Transaction) EntityKind() EntityKind { return KindTransaction }
func (t Transaction) EntityVersion() uint    { return t.Version }

// IsOpen reports whether the loan still holds a copy (Active or Overdue).
func (t Transaction) IsOpen() bool {
	return t.Status == LoanActive || t.Status == LoanOverdue
}
