package core

import (
	"time"

	"github.com/google/uuid"
)

// MemberStatus is the membership lifecycle state.
type MemberStatus string

const (
	MemberActive    MemberStatus = "Active"
	MemberSuspended MemberStatus = "Suspended"
	MemberExpired   MemberStatus = "Expired"
	MemberCancelled MemberStatus = "Cancelled"
)

// Member is a library member. FineBalance is owned exclusively by the fine
// engine rules (late-fee assessment and payments).
type Member struct {
	ID               uuid.UUID
	MembershipNumber string
	Email            string
	Name             string
	Status           MemberStatus
	MaxBooks         int
	FineBalance      Cents
	ExpiresAt        time.Time
	Version          uint
}

func (m Member) EntityID() uuid.UUID    { return m.ID }
func (m Member) EntityKind() EntityKind { return KindMember }
func (m Member) EntityVersion() uint    { return m.Version }

// Staff is a library employee; transactions may record which staff member
// handled them. Deleting a staff row nullifies those references.
type Staff struct {
	ID             uuid.UUID
	EmployeeNumber string
	Email          string
	Name           string
	Role           string
	Version        uint
}

func (s Staff) EntityID() uuid.UUID    { return s.ID }
func (s Staff) EntityKind() EntityKind { return KindStaff }
func (s Staff) EntityVersion() uint    { return s.Version }
