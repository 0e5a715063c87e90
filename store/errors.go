package store

import "errors"

var (
	// ErrNotFound is returned by reads when no row matches.
	ErrNotFound = errors.New("not found")

	// ErrConcurrencyConflict is returned by Commit when an expected entity
	// version no longer matches, or an inserted entity already exists.
	// It is transient: re-read and retry.
	ErrConcurrencyConflict = errors.New("concurrency conflict, stale entity version")

	// ErrUniqueViolation is returned by Commit when a uniqueness rule would
	// be violated; the wrapped message names the constraint.
	ErrUniqueViolation = errors.New("unique constraint violation")

	// ErrRestricted is returned by Commit when a delete is forbidden by a
	// referential restrict rule (category with books, book with transactions).
	ErrRestricted = errors.New("delete restricted by referencing rows")

	// ErrUnknownEntityKind is returned by Commit for an entity kind the
	// store does not manage.
	ErrUnknownEntityKind = errors.New("unknown entity kind")
)

// Uniqueness constraint names used in ErrUniqueViolation messages. The
// postgres engine maps index names onto these; the memory engine uses them
// directly.
const (
	UniqueBookISBN          = "books_isbn_key"
	UniqueMemberNumber      = "members_membership_number_key"
	UniqueMemberEmail       = "members_email_key"
	UniqueStaffNumber       = "staff_employee_number_key"
	UniqueStaffEmail        = "staff_email_key"
	UniqueReceiptNumber     = "fine_payments_receipt_number_key"
	UniqueActiveReservation = "reservations_one_active_per_member_book"
)
