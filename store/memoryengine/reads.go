package memoryengine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bibliotek-systems/circulation-go/core"
	"github.com/bibliotek-systems/circulation-go/store"
)

func notFound(kind core.EntityKind, detail string) error {
	return fmt.Errorf("%w: %s %s", store.ErrNotFound, kind, detail)
}

func (s *MemoryStore) BookByID(_ context.Context, id uuid.UUID) (core.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	book, ok := s.books[id]
	if !ok {
		return core.Book{}, notFound(core.KindBook, id.String())
	}

	return cloneBook(book), nil
}

func (s *MemoryStore) BookByISBN(_ context.Context, isbn string) (core.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, book := range s.books {
		if book.ISBN == isbn {
			return cloneBook(book), nil
		}
	}

	return core.Book{}, notFound(core.KindBook, "isbn "+isbn)
}

func (s *MemoryStore) Books(_ context.Context) ([]core.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	books := make([]core.Book, 0, len(s.books))
	for _, book := range s.books {
		books = append(books, cloneBook(book))
	}

	return books, nil
}

func (s *MemoryStore) MemberByID(_ context.Context, id uuid.UUID) (core.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	member, ok := s.members[id]
	if !ok {
		return core.Member{}, notFound(core.KindMember, id.String())
	}

	return member, nil
}

func (s *MemoryStore) MemberByNumber(_ context.Context, membershipNumber string) (core.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, member := range s.members {
		if member.MembershipNumber == membershipNumber {
			return member, nil
		}
	}

	return core.Member{}, notFound(core.KindMember, "number "+membershipNumber)
}

func (s *MemoryStore) StaffByID(_ context.Context, id uuid.UUID) (core.Staff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	staff, ok := s.staff[id]
	if !ok {
		return core.Staff{}, notFound(core.KindStaff, id.String())
	}

	return staff, nil
}

func (s *MemoryStore) CategoryByID(_ context.Context, id uuid.UUID) (core.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	category, ok := s.categories[id]
	if !ok {
		return core.Category{}, notFound(core.KindCategory, id.String())
	}

	return category, nil
}

func (s *MemoryStore) PublisherByID(_ context.Context, id uuid.UUID) (core.Publisher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	publisher, ok := s.publishers[id]
	if !ok {
		return core.Publisher{}, notFound(core.KindPublisher, id.String())
	}

	return publisher, nil
}

func (s *MemoryStore) Categories(_ context.Context) ([]core.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := make([]core.Category, 0, len(s.categories))
	for _, category := range s.categories {
		categories = append(categories, category)
	}

	return categories, nil
}

func (s *MemoryStore) Publishers(_ context.Context) ([]core.Publisher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	publishers := make([]core.Publisher, 0, len(s.publishers))
	for _, publisher := range s.publishers {
		publishers = append(publishers, publisher)
	}

	return publishers, nil
}

func (s *MemoryStore) TransactionByID(_ context.Context, id uuid.UUID) (core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	transaction, ok := s.transactions[id]
	if !ok {
		return core.Transaction{}, notFound(core.KindTransaction, id.String())
	}

	return cloneTransaction(transaction), nil
}

func (s *MemoryStore) TransactionsByMember(_ context.Context, memberID uuid.UUID) ([]core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var transactions []core.Transaction
	for _, transaction := range s.transactions {
		if transaction.MemberID == memberID {
			transactions = append(transactions, cloneTransaction(transaction))
		}
	}

	return transactions, nil
}

func (s *MemoryStore) TransactionsByStatus(_ context.Context, statuses ...core.LoanStatus) ([]core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[core.LoanStatus]bool, len(statuses))
	for _, status := range statuses {
		wanted[status] = true
	}

	var transactions []core.Transaction
	for _, transaction := range s.transactions {
		if wanted[transaction.Status] {
			transactions = append(transactions, cloneTransaction(transaction))
		}
	}

	return transactions, nil
}

func (s *MemoryStore) OpenLoanCount(_ context.Context, memberID uuid.UUID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, transaction := range s.transactions {
		if transaction.MemberID == memberID && transaction.IsOpen() {
			count++
		}
	}

	return count, nil
}

func (s *MemoryStore) OpenLoanFor(_ context.Context, memberID, bookID uuid.UUID) (core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, transaction := range s.transactions {
		if transaction.MemberID == memberID && transaction.BookID == bookID && transaction.IsOpen() {
			return cloneTransaction(transaction), nil
		}
	}

	return core.Transaction{}, notFound(core.KindTransaction,
		fmt.Sprintf("open loan of book %s by member %s", bookID, memberID))
}

func (s *MemoryStore) LoansDueBefore(_ context.Context, asOf time.Time) ([]core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var transactions []core.Transaction
	for _, transaction := range s.transactions {
		if transaction.Status == core.LoanActive && transaction.DueAt.Before(asOf) {
			transactions = append(transactions, cloneTransaction(transaction))
		}
	}

	return transactions, nil
}

func (s *MemoryStore) ReservationByID(_ context.Context, id uuid.UUID) (core.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reservation, ok := s.reservations[id]
	if !ok {
		return core.Reservation{}, notFound(core.KindReservation, id.String())
	}

	return cloneReservation(reservation), nil
}

func (s *MemoryStore) ReservationsByMember(_ context.Context, memberID uuid.UUID) ([]core.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var reservations []core.Reservation
	for _, reservation := range s.reservations {
		if reservation.MemberID == memberID {
			reservations = append(reservations, cloneReservation(reservation))
		}
	}

	return reservations, nil
}

func (s *MemoryStore) ActiveReservationsByBook(_ context.Context, bookID uuid.UUID) ([]core.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var reservations []core.Reservation
	for _, reservation := range s.reservations {
		if reservation.BookID == bookID && reservation.Status == core.ReservationActive {
			reservations = append(reservations, cloneReservation(reservation))
		}
	}

	return reservations, nil
}

func (s *MemoryStore) ActiveReservationFor(_ context.Context, memberID, bookID uuid.UUID) (core.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, reservation := range s.reservations {
		if reservation.MemberID == memberID && reservation.BookID == bookID &&
			reservation.Status == core.ReservationActive {
			return cloneReservation(reservation), nil
		}
	}

	return core.Reservation{}, notFound(core.KindReservation,
		fmt.Sprintf("active reservation of book %s by member %s", bookID, memberID))
}

func (s *MemoryStore) LiveHoldFor(_ context.Context, memberID, bookID uuid.UUID, now time.Time) (core.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, reservation := range s.reservations {
		if reservation.MemberID == memberID && reservation.BookID == bookID &&
			reservation.HasLiveHold(now) {
			return cloneReservation(reservation), nil
		}
	}

	return core.Reservation{}, notFound(core.KindReservation,
		fmt.Sprintf("live hold of book %s by member %s", bookID, memberID))
}

func (s *MemoryStore) ReservationsDueExpiry(_ context.Context, asOf time.Time) ([]core.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var reservations []core.Reservation
	for _, reservation := range s.reservations {
		expiredActive := reservation.Status == core.ReservationActive &&
			reservation.ExpiresAt.Before(asOf)
		lapsedHold := reservation.Status == core.ReservationFulfilled &&
			reservation.HoldUntil != nil && reservation.HoldUntil.Before(asOf)

		if expiredActive || lapsedHold {
			reservations = append(reservations, cloneReservation(reservation))
		}
	}

	return reservations, nil
}

func (s *MemoryStore) PaymentsByMember(_ context.Context, memberID uuid.UUID) ([]core.FinePayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var payments []core.FinePayment
	for _, payment := range s.payments {
		if payment.MemberID == memberID {
			payments = append(payments, clonePayment(payment))
		}
	}

	return payments, nil
}
