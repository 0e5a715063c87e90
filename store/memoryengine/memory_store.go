// Package memoryengine provides an embedded, mutex-guarded implementation
// of the store contract. All state changes happen inside one critical
// section, so a commit is atomic and serialized; optimistic versions are
// still enforced so that handlers behave identically against the postgres
// engine. Snapshots can be persisted to disk as JSON.
package memoryengine

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/bibliotek-systems/circulation-go/core"
	"github.com/bibliotek-systems/circulation-go/store"
)

// MemoryStore implements store.Store in memory.
type MemoryStore struct {
	mu sync.RWMutex

	books        map[uuid.UUID]core.Book
	authors      map[uuid.UUID]core.Author
	publishers   map[uuid.UUID]core.Publisher
	categories   map[uuid.UUID]core.Category
	members      map[uuid.UUID]core.Member
	staff        map[uuid.UUID]core.Staff
	transactions map[uuid.UUID]core.Transaction
	reservations map[uuid.UUID]core.Reservation
	payments     map[uuid.UUID]core.FinePayment
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		books:        make(map[uuid.UUID]core.Book),
		authors:      make(map[uuid.UUID]core.Author),
		publishers:   make(map[uuid.UUID]core.Publisher),
		categories:   make(map[uuid.UUID]core.Category),
		members:      make(map[uuid.UUID]core.Member),
		staff:        make(map[uuid.UUID]core.Staff),
		transactions: make(map[uuid.UUID]core.Transaction),
		reservations: make(map[uuid.UUID]core.Reservation),
		payments:     make(map[uuid.UUID]core.FinePayment),
	}
}

// Commit applies all changes or none, under one lock. See store.Store for
// the rules enforced here.
func (s *MemoryStore) Commit(ctx context.Context, changes ...core.Change) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkVersions(changes); err != nil {
		return err
	}

	if err := s.checkUniqueness(changes); err != nil {
		return err
	}

	if err := s.checkReferences(changes); err != nil {
		return err
	}

	if err := s.checkLedger(changes); err != nil {
		return err
	}

	s.apply(changes)

	return nil
}

// checkVersions verifies existence and expected versions for every change.
func (s *MemoryStore) checkVersions(changes []core.Change) error {
	for _, change := range changes {
		current, exists := s.lookup(change.Entity.EntityKind(), change.Entity.EntityID())

		switch change.Op {
		case core.OpInsert:
			if exists {
				return fmt.Errorf("%w: %s %s already exists",
					store.ErrConcurrencyConflict, change.Entity.EntityKind(), change.Entity.EntityID())
			}
			if change.Entity.EntityVersion() != 0 {
				return fmt.Errorf("%w: insert of %s %s with version %d",
					store.ErrConcurrencyConflict, change.Entity.EntityKind(),
					change.Entity.EntityID(), change.Entity.EntityVersion())
			}

		case core.OpUpdate, core.OpDelete:
			if !exists {
				return fmt.Errorf("%w: %s %s does not exist",
					store.ErrConcurrencyConflict, change.Entity.EntityKind(), change.Entity.EntityID())
			}
			if current.EntityVersion() != change.Entity.EntityVersion() {
				return fmt.Errorf("%w: %s %s at version %d, expected %d",
					store.ErrConcurrencyConflict, change.Entity.EntityKind(),
					change.Entity.EntityID(), current.EntityVersion(), change.Entity.EntityVersion())
			}
		}
	}

	return nil
}

// checkUniqueness verifies the uniqueness rules against the state as it
// would look after the change set: rows updated or deleted by the set are
// excluded, staged rows are included.
func (s *MemoryStore) checkUniqueness(changes []core.Change) error {
	replaced := make(map[uuid.UUID]bool, len(changes))
	for _, change := range changes {
		if change.Op != core.OpInsert {
			replaced[change.Entity.EntityID()] = true
		}
	}

	type key struct {
		constraint string
		value      string
	}
	seen := make(map[key]bool)

	claim := func(constraint, value string) error {
		if value == "" {
			return nil
		}
		k := key{constraint, value}
		if seen[k] {
			return fmt.Errorf("%w: %s (%s)", store.ErrUniqueViolation, constraint, value)
		}
		seen[k] = true

		return nil
	}

	claimEntity := func(entity core.Entity) error {
		switch e := entity.(type) {
		case core.Book:
			return claim(store.UniqueBookISBN, e.ISBN)
		case core.Member:
			if err := claim(store.UniqueMemberNumber, e.MembershipNumber); err != nil {
				return err
			}
			return claim(store.UniqueMemberEmail, e.Email)
		case core.Staff:
			if err := claim(store.UniqueStaffNumber, e.EmployeeNumber); err != nil {
				return err
			}
			return claim(store.UniqueStaffEmail, e.Email)
		case core.FinePayment:
			return claim(store.UniqueReceiptNumber, e.ReceiptNumber)
		case core.Reservation:
			if e.Status == core.ReservationActive {
				return claim(store.UniqueActiveReservation, e.MemberID.String()+"/"+e.BookID.String())
			}
		}

		return nil
	}

	// Staged rows claim their keys first so conflicts within the set are
	// caught as well.
	for _, change := range changes {
		if change.Op == core.OpDelete {
			continue
		}
		if err := claimEntity(change.Entity); err != nil {
			return err
		}
	}

	for _, entity := range s.allEntities() {
		if replaced[entity.EntityID()] {
			continue
		}
		if err := claimEntity(entity); err != nil {
			return err
		}
	}

	return nil
}

// checkReferences verifies foreign references of staged rows and the
// restrict rules of staged deletes.
func (s *MemoryStore) checkReferences(changes []core.Change) error {
	stagedInsert := func(kind core.EntityKind, id uuid.UUID) bool {
		for _, change := range changes {
			if change.Op == core.OpInsert &&
				change.Entity.EntityKind() == kind &&
				change.Entity.EntityID() == id {
				return true
			}
		}

		return false
	}

	refExists := func(kind core.EntityKind, id uuid.UUID) bool {
		if _, ok := s.lookup(kind, id); ok {
			return true
		}

		return stagedInsert(kind, id)
	}

	requireRef := func(kind core.EntityKind, id uuid.UUID, owner core.Entity) error {
		if !refExists(kind, id) {
			return fmt.Errorf("%w: %s %s references missing %s %s",
				store.ErrNotFound, owner.EntityKind(), owner.EntityID(), kind, id)
		}

		return nil
	}

	for _, change := range changes {
		if change.Op == core.OpDelete {
			if err := s.checkRestrict(change.Entity); err != nil {
				return err
			}
			continue
		}

		switch e := change.Entity.(type) {
		case core.Book:
			if err := requireRef(core.KindCategory, e.CategoryID, e); err != nil {
				return err
			}
			if e.PublisherID != nil {
				if err := requireRef(core.KindPublisher, *e.PublisherID, e); err != nil {
					return err
				}
			}
			for _, authorID := range e.AuthorIDs {
				if err := requireRef(core.KindAuthor, authorID, e); err != nil {
					return err
				}
			}
		case core.Transaction:
			if err := requireRef(core.KindMember, e.MemberID, e); err != nil {
				return err
			}
			if err := requireRef(core.KindBook, e.BookID, e); err != nil {
				return err
			}
			if e.StaffID != nil {
				if err := requireRef(core.KindStaff, *e.StaffID, e); err != nil {
					return err
				}
			}
		case core.Reservation:
			if err := requireRef(core.KindMember, e.MemberID, e); err != nil {
				return err
			}
			if err := requireRef(core.KindBook, e.BookID, e); err != nil {
				return err
			}
		case core.FinePayment:
			if err := requireRef(core.KindMember, e.MemberID, e); err != nil {
				return err
			}
			if e.TransactionID != nil {
				if err := requireRef(core.KindTransaction, *e.TransactionID, e); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// checkRestrict enforces the restrict rules: a category with books and a
// book with transactions cannot be deleted.
func (s *MemoryStore) checkRestrict(entity core.Entity) error {
	switch entity.EntityKind() {
	case core.KindCategory:
		for _, book := range s.books {
			if book.CategoryID == entity.EntityID() {
				return fmt.Errorf("%w: category %s still has books", store.ErrRestricted, entity.EntityID())
			}
		}
	case core.KindBook:
		for _, transaction := range s.transactions {
			if transaction.BookID == entity.EntityID() {
				return fmt.Errorf("%w: book %s has transactions", store.ErrRestricted, entity.EntityID())
			}
		}
	}

	return nil
}

// checkLedger runs the copy-count backstop on every staged book.
func (s *MemoryStore) checkLedger(changes []core.Change) error {
	for _, change := range changes {
		if change.Op == core.OpDelete {
			continue
		}
		if book, ok := change.Entity.(core.Book); ok {
			if err := core.CheckLedgerInvariant(book); err != nil {
				return err
			}
		}
	}

	return nil
}

// apply writes the validated change set; versions are bumped here.
func (s *MemoryStore) apply(changes []core.Change) {
	for _, change := range changes {
		if change.Op == core.OpDelete {
			s.applyDelete(change.Entity)
			continue
		}

		s.put(change.Entity, change.Entity.EntityVersion()+1)
	}
}

// applyDelete removes the row and runs the referential actions: cascades
// for a member's and book's dependents, nullification for publisher and
// staff references, link removal for authors.
func (s *MemoryStore) applyDelete(entity core.Entity) {
	id := entity.EntityID()

	switch entity.EntityKind() {
	case core.KindMember:
		delete(s.members, id)
		for txID, tx := range s.transactions {
			if tx.MemberID == id {
				delete(s.transactions, txID)
			}
		}
		for resID, res := range s.reservations {
			if res.MemberID == id {
				delete(s.reservations, resID)
			}
		}
		for payID, pay := range s.payments {
			if pay.MemberID == id {
				delete(s.payments, payID)
			}
		}

	case core.KindBook:
		delete(s.books, id)
		for resID, res := range s.reservations {
			if res.BookID == id {
				delete(s.reservations, resID)
			}
		}

	case core.KindPublisher:
		delete(s.publishers, id)
		for bookID, book := range s.books {
			if book.PublisherID != nil && *book.PublisherID == id {
				book.PublisherID = nil
				book.Version++
				s.books[bookID] = book
			}
		}

	case core.KindStaff:
		delete(s.staff, id)
		for txID, tx := range s.transactions {
			if tx.StaffID != nil && *tx.StaffID == id {
				tx.StaffID = nil
				tx.Version++
				s.transactions[txID] = tx
			}
		}

	case core.KindAuthor:
		delete(s.authors, id)
		for bookID, book := range s.books {
			kept := book.AuthorIDs[:0]
			removed := false
			for _, authorID := range book.AuthorIDs {
				if authorID == id {
					removed = true
					continue
				}
				kept = append(kept, authorID)
			}
			if removed {
				book.AuthorIDs = kept
				book.Version++
				s.books[bookID] = book
			}
		}

	case core.KindTransaction:
		delete(s.transactions, id)
		for payID, pay := range s.payments {
			if pay.TransactionID != nil && *pay.TransactionID == id {
				pay.TransactionID = nil
				pay.Version++
				s.payments[payID] = pay
			}
		}

	case core.KindCategory:
		delete(s.categories, id)
	case core.KindReservation:
		delete(s.reservations, id)
	case core.KindFinePayment:
		delete(s.payments, id)
	}
}

// lookup returns the current row for a kind and ID.
func (s *MemoryStore) lookup(kind core.EntityKind, id uuid.UUID) (core.Entity, bool) {
	switch kind {
	case core.KindBook:
		e, ok := s.books[id]
		return e, ok
	case core.KindAuthor:
		e, ok := s.authors[id]
		return e, ok
	case core.KindPublisher:
		e, ok := s.publishers[id]
		return e, ok
	case core.KindCategory:
		e, ok := s.categories[id]
		return e, ok
	case core.KindMember:
		e, ok := s.members[id]
		return e, ok
	case core.KindStaff:
		e, ok := s.staff[id]
		return e, ok
	case core.KindTransaction:
		e, ok := s.transactions[id]
		return e, ok
	case core.KindReservation:
		e, ok := s.reservations[id]
		return e, ok
	case core.KindFinePayment:
		e, ok := s.payments[id]
		return e, ok
	default:
		return nil, false
	}
}

// put stores a deep copy of the entity at the given version.
func (s *MemoryStore) put(entity core.Entity, version uint) {
	switch e := entity.(type) {
	case core.Book:
		e.Version = version
		s.books[e.ID] = cloneBook(e)
	case core.Author:
		e.Version = version
		s.authors[e.ID] = e
	case core.Publisher:
		e.Version = version
		s.publishers[e.ID] = e
	case core.Category:
		e.Version = version
		s.categories[e.ID] = e
	case core.Member:
		e.Version = version
		s.members[e.ID] = e
	case core.Staff:
		e.Version = version
		s.staff[e.ID] = e
	case core.Transaction:
		e.Version = version
		s.transactions[e.ID] = cloneTransaction(e)
	case core.Reservation:
		e.Version = version
		s.reservations[e.ID] = cloneReservation(e)
	case core.FinePayment:
		e.Version = version
		s.payments[e.ID] = clonePayment(e)
	}
}

// allEntities flattens the store for uniqueness scans.
func (s *MemoryStore) allEntities() []core.Entity {
	all := make([]core.Entity, 0,
		len(s.books)+len(s.members)+len(s.staff)+len(s.reservations)+len(s.payments))

	for _, e := range s.books {
		all = append(all, e)
	}
	for _, e := range s.members {
		all = append(all, e)
	}
	for _, e := range s.staff {
		all = append(all, e)
	}
	for _, e := range s.reservations {
		all = append(all, e)
	}
	for _, e := range s.payments {
		all = append(all, e)
	}

	return all
}

func cloneBook(b core.Book) core.Book {
	if b.PublisherID != nil {
		publisherID := *b.PublisherID
		b.PublisherID = &publisherID
	}
	b.AuthorIDs = append([]uuid.UUID(nil), b.AuthorIDs...)

	return b
}

func cloneTransaction(t core.Transaction) core.Transaction {
	if t.StaffID != nil {
		staffID := *t.StaffID
		t.StaffID = &staffID
	}
	if t.ReturnedAt != nil {
		returnedAt := *t.ReturnedAt
		t.ReturnedAt = &returnedAt
	}

	return t
}

func cloneReservation(r core.Reservation) core.Reservation {
	if r.HoldUntil != nil {
		holdUntil := *r.HoldUntil
		r.HoldUntil = &holdUntil
	}

	return r
}

func clonePayment(p core.FinePayment) core.FinePayment {
	if p.TransactionID != nil {
		transactionID := *p.TransactionID
		p.TransactionID = &transactionID
	}

	return p
}
