package postgresengine

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/bibliotek-systems/circulation-go/core"
	"github.com/bibliotek-systems/circulation-go/store"
	"github.com/bibliotek-systems/circulation-go/store/postgresengine/internal/adapters"
)

func notFound(kind core.EntityKind, detail string) error {
	return fmt.Errorf("%w: %s %s", store.ErrNotFound, kind, detail)
}

func (s *Store) queryRows(ctx context.Context, stmt *goqu.SelectDataset) (adapters.DBRows, error) {
	sqlQuery, _, err := stmt.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select query: %w", err)
	}

	s.logger.Debug("executing sql", "query", sqlQuery)

	return s.db.Query(ctx, sqlQuery)
}

func querySlice[T any](
	ctx context.Context,
	s *Store,
	stmt *goqu.SelectDataset,
	scan func(adapters.DBRows) (T, error),
) ([]T, error) {
	rows, err := s.queryRows(ctx, stmt)
	if err != nil {
		return nil, err
	}

	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logger.Warn("failed to close database rows", "error", closeErr)
		}
	}()

	var items []T
	for rows.Next() {
		item, scanErr := scan(rows)
		if scanErr != nil {
			return nil, scanErr
		}

		items = append(items, item)
	}

	return items, nil
}

func queryOne[T any](
	ctx context.Context,
	s *Store,
	stmt *goqu.SelectDataset,
	scan func(adapters.DBRows) (T, error),
	kind core.EntityKind,
	detail string,
) (T, error) {
	var zero T

	items, err := querySlice(ctx, s, stmt.Limit(1), scan)
	if err != nil {
		return zero, err
	}

	if len(items) == 0 {
		return zero, notFound(kind, detail)
	}

	return items[0], nil
}

func (s *Store) BookByID(ctx context.Context, id uuid.UUID) (core.Book, error) {
	stmt := builder().From(tableBooks).Select(bookColumns...).
		Where(goqu.C("id").Eq(id.String()))

	return queryOne(ctx, s, stmt, scanBook, core.KindBook, id.String())
}

func (s *Store) BookByISBN(ctx context.Context, isbn string) (core.Book, error) {
	stmt := builder().From(tableBooks).Select(bookColumns...).
		Where(goqu.C("isbn").Eq(isbn))

	return queryOne(ctx, s, stmt, scanBook, core.KindBook, "isbn "+isbn)
}

func (s *Store) Books(ctx context.Context) ([]core.Book, error) {
	stmt := builder().From(tableBooks).Select(bookColumns...).
		Order(goqu.C("title").Asc())

	return querySlice(ctx, s, stmt, scanBook)
}

func (s *Store) MemberByID(ctx context.Context, id uuid.UUID) (core.Member, error) {
	stmt := builder().From(tableMembers).Select(memberColumns...).
		Where(goqu.C("id").Eq(id.String()))

	return queryOne(ctx, s, stmt, scanMember, core.KindMember, id.String())
}

func (s *Store) MemberByNumber(ctx context.Context, membershipNumber string) (core.Member, error) {
	stmt := builder().From(tableMembers).Select(memberColumns...).
		Where(goqu.C("membership_number").Eq(membershipNumber))

	return queryOne(ctx, s, stmt, scanMember, core.KindMember, "number "+membershipNumber)
}

func (s *Store) StaffByID(ctx context.Context, id uuid.UUID) (core.Staff, error) {
	stmt := builder().From(tableStaff).Select(staffColumns...).
		Where(goqu.C("id").Eq(id.String()))

	return queryOne(ctx, s, stmt, scanStaff, core.KindStaff, id.String())
}

func (s *Store) CategoryByID(ctx context.Context, id uuid.UUID) (core.Category, error) {
	stmt := builder().From(tableCategories).Select(namedColumns...).
		Where(goqu.C("id").Eq(id.String()))

	return queryOne(ctx, s, stmt, scanCategory, core.KindCategory, id.String())
}

func (s *Store) PublisherByID(ctx context.Context, id uuid.UUID) (core.Publisher, error) {
	stmt := builder().From(tablePublishers).Select(namedColumns...).
		Where(goqu.C("id").Eq(id.String()))

	return queryOne(ctx, s, stmt, scanPublisher, core.KindPublisher, id.String())
}

func (s *Store) Categories(ctx context.Context) ([]core.Category, error) {
	stmt := builder().From(tableCategories).Select(namedColumns...).
		Order(goqu.C("name").Asc())

	return querySlice(ctx, s, stmt, scanCategory)
}

func (s *Store) Publishers(ctx context.Context) ([]core.Publisher, error) {
	stmt := builder().From(tablePublishers).Select(namedColumns...).
		Order(goqu.C("name").Asc())

	return querySlice(ctx, s, stmt, scanPublisher)
}

func (s *Store) TransactionByID(ctx context.Context, id uuid.UUID) (core.Transaction, error) {
	stmt := builder().From(tableTransactions).Select(transactionColumns...).
		Where(goqu.C("id").Eq(id.String()))

	return queryOne(ctx, s, stmt, scanTransaction, core.KindTransaction, id.String())
}

func (s *Store) TransactionsByMember(ctx context.Context, memberID uuid.UUID) ([]core.Transaction, error) {
	stmt := builder().From(tableTransactions).Select(transactionColumns...).
		Where(goqu.C("member_id").Eq(memberID.String())).
		Order(goqu.C("borrowed_at").Asc())

	return querySlice(ctx, s, stmt, scanTransaction)
}

func (s *Store) TransactionsByStatus(ctx context.Context, statuses ...core.LoanStatus) ([]core.Transaction, error) {
	wanted := make([]string, 0, len(statuses))
	for _, status := range statuses {
		wanted = append(wanted, string(status))
	}

	stmt := builder().From(tableTransactions).Select(transactionColumns...).
		Where(goqu.C("status").In(wanted)).
		Order(goqu.C("due_at").Asc())

	return querySlice(ctx, s, stmt, scanTransaction)
}

func (s *Store) OpenLoanCount(ctx context.Context, memberID uuid.UUID) (int, error) {
	stmt := builder().From(tableTransactions).Select(goqu.COUNT("*")).
		Where(
			goqu.C("member_id").Eq(memberID.String()),
			goqu.C("status").In([]string{string(core.LoanActive), string(core.LoanOverdue)}),
		)

	counts, err := querySlice(ctx, s, stmt, scanCount)
	if err != nil {
		return 0, err
	}

	if len(counts) == 0 {
		return 0, nil
	}

	return counts[0], nil
}

func (s *Store) OpenLoanFor(ctx context.Context, memberID, bookID uuid.UUID) (core.Transaction, error) {
	stmt := builder().From(tableTransactions).Select(transactionColumns...).
		Where(
			goqu.C("member_id").Eq(memberID.String()),
			goqu.C("book_id").Eq(bookID.String()),
			goqu.C("status").In([]string{string(core.LoanActive), string(core.LoanOverdue)}),
		)

	return queryOne(ctx, s, stmt, scanTransaction, core.KindTransaction,
		fmt.Sprintf("open loan of book %s by member %s", bookID, memberID))
}

func (s *Store) LoansDueBefore(ctx context.Context, asOf time.Time) ([]core.Transaction, error) {
	stmt := builder().From(tableTransactions).Select(transactionColumns...).
		Where(
			goqu.C("status").Eq(string(core.LoanActive)),
			goqu.C("due_at").Lt(asOf),
		).
		Order(goqu.C("due_at").Asc())

	return querySlice(ctx, s, stmt, scanTransaction)
}

func (s *Store) ReservationByID(ctx context.Context, id uuid.UUID) (core.Reservation, error) {
	stmt := builder().From(tableReservations).Select(reservationColumns...).
		Where(goqu.C("id").Eq(id.String()))

	return queryOne(ctx, s, stmt, scanReservation, core.KindReservation, id.String())
}

func (s *Store) ReservationsByMember(ctx context.Context, memberID uuid.UUID) ([]core.Reservation, error) {
	stmt := builder().From(tableReservations).Select(reservationColumns...).
		Where(goqu.C("member_id").Eq(memberID.String())).
		Order(goqu.C("reserved_at").Asc())

	return querySlice(ctx, s, stmt, scanReservation)
}

func (s *Store) ActiveReservationsByBook(ctx context.Context, bookID uuid.UUID) ([]core.Reservation, error) {
	stmt := builder().From(tableReservations).Select(reservationColumns...).
		Where(
			goqu.C("book_id").Eq(bookID.String()),
			goqu.C("status").Eq(string(core.ReservationActive)),
		)

	return querySlice(ctx, s, stmt, scanReservation)
}

func (s *Store) ActiveReservationFor(ctx context.Context, memberID, bookID uuid.UUID) (core.Reservation, error) {
	stmt := builder().From(tableReservations).Select(reservationColumns...).
		Where(
			goqu.C("member_id").Eq(memberID.String()),
			goqu.C("book_id").Eq(bookID.String()),
			goqu.C("status").Eq(string(core.ReservationActive)),
		)

	return queryOne(ctx, s, stmt, scanReservation, core.KindReservation,
		fmt.Sprintf("active reservation of book %s by member %s", bookID, memberID))
}

func (s *Store) LiveHoldFor(ctx context.Context, memberID, bookID uuid.UUID, now time.Time) (core.Reservation, error) {
	stmt := builder().From(tableReservations).Select(reservationColumns...).
		Where(
			goqu.C("member_id").Eq(memberID.String()),
			goqu.C("book_id").Eq(bookID.String()),
			goqu.C("status").Eq(string(core.ReservationFulfilled)),
			goqu.C("hold_until").Gte(now),
		)

	return queryOne(ctx, s, stmt, scanReservation, core.KindReservation,
		fmt.Sprintf("live hold of book %s by member %s", bookID, memberID))
}

func (s *Store) ReservationsDueExpiry(ctx context.Context, asOf time.Time) ([]core.Reservation, error) {
	expiredActive := goqu.And(
		goqu.C("status").Eq(string(core.ReservationActive)),
		goqu.C("expires_at").Lt(asOf),
	)
	lapsedHold := goqu.And(
		goqu.C("status").Eq(string(core.ReservationFulfilled)),
		goqu.C("hold_until").IsNotNull(),
		goqu.C("hold_until").Lt(asOf),
	)

	stmt := builder().From(tableReservations).Select(reservationColumns...).
		Where(goqu.Or(expiredActive, lapsedHold)).
		Order(goqu.C("reserved_at").Asc())

	return querySlice(ctx, s, stmt, scanReservation)
}

func (s *Store) PaymentsByMember(ctx context.Context, memberID uuid.UUID) ([]core.FinePayment, error) {
	stmt := builder().From(tableFinePayments).Select(finePaymentColumns...).
		Where(goqu.C("member_id").Eq(memberID.String())).
		Order(goqu.C("paid_at").Asc())

	return querySlice(ctx, s, stmt, scanFinePayment)
}

func scanCount(rows adapters.DBRows) (int, error) {
	var count int
	if err := rows.Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func scanCategory(rows adapters.DBRows) (core.Category, error) {
	var (
		category core.Category
		version  int64
	)

	if err := rows.Scan(&category.ID, &category.Name, &version); err != nil {
		return core.Category{}, err
	}

	category.Version = uint(version)

	return category, nil
}

func scanPublisher(rows adapters.DBRows) (core.Publisher, error) {
	var (
		publisher core.Publisher
		version   int64
	)

	if err := rows.Scan(&publisher.ID, &publisher.Name, &version); err != nil {
		return core.Publisher{}, err
	}

	publisher.Version = uint(version)

	return publisher, nil
}
