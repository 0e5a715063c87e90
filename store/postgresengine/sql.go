package postgresengine

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/bibliotek-systems/circulation-go/core"
	"github.com/bibliotek-systems/circulation-go/store"
	"github.com/bibliotek-systems/circulation-go/store/postgresengine/internal/adapters"
)

const (
	tableAuthors      = "authors"
	tablePublishers   = "publishers"
	tableCategories   = "categories"
	tableMembers      = "members"
	tableStaff        = "staff"
	tableBooks        = "books"
	tableTransactions = "transactions"
	tableReservations = "reservations"
	tableFinePayments = "fine_payments"
)

// Column lists in scan order; every select uses these so the scan helpers
// stay in lockstep with the statements.
var (
	bookColumns = []any{
		"id", "isbn", "title", "publication_year", "total_copies",
		"available_copies", "category_id", "publisher_id", "author_ids", "version",
	}
	memberColumns = []any{
		"id", "membership_number", "email", "name", "status",
		"max_books", "fine_balance", "expires_at", "version",
	}
	staffColumns = []any{
		"id", "employee_number", "email", "name", "role", "version",
	}
	namedColumns = []any{"id", "name", "version"}

	transactionColumns = []any{
		"id", "member_id", "book_id", "staff_id", "type", "status",
		"borrowed_at", "due_at", "returned_at", "fine_amount", "renewal_count", "version",
	}
	reservationColumns = []any{
		"id", "member_id", "book_id", "status", "priority",
		"reserved_at", "expires_at", "hold_until", "version",
	}
	finePaymentColumns = []any{
		"id", "member_id", "transaction_id", "amount", "method",
		"receipt_number", "paid_at", "version",
	}
)

func uuidOrNil(id *uuid.UUID) any {
	if id == nil {
		return nil
	}

	return id.String()
}

func timeOrNil(t *time.Time) any {
	if t == nil {
		return nil
	}

	return *t
}

// tableAndRecord maps an entity to its table and column record, with the
// version column set to the given value.
func tableAndRecord(entity core.Entity, version uint) (string, goqu.Record, error) {
	switch e := entity.(type) {
	case core.Author:
		return tableAuthors, goqu.Record{
			"id": e.ID.String(), "name": e.Name, "version": version,
		}, nil

	case core.Publisher:
		return tablePublishers, goqu.Record{
			"id": e.ID.String(), "name": e.Name, "version": version,
		}, nil

	case core.Category:
		return tableCategories, goqu.Record{
			"id": e.ID.String(), "name": e.Name, "version": version,
		}, nil

	case core.Member:
		return tableMembers, goqu.Record{
			"id":                e.ID.String(),
			"membership_number": e.MembershipNumber,
			"email":             e.Email,
			"name":              e.Name,
			"status":            string(e.Status),
			"max_books":         e.MaxBooks,
			"fine_balance":      int64(e.FineBalance),
			"expires_at":        e.ExpiresAt,
			"version":           version,
		}, nil

	case core.Staff:
		return tableStaff, goqu.Record{
			"id":              e.ID.String(),
			"employee_number": e.EmployeeNumber,
			"email":           e.Email,
			"name":            e.Name,
			"role":            e.Role,
			"version":         version,
		}, nil

	case core.Book:
		authorIDs := e.AuthorIDs
		if authorIDs == nil {
			authorIDs = []uuid.UUID{}
		}

		payload, err := jsoniter.ConfigFastest.Marshal(authorIDs)
		if err != nil {
			return "", nil, fmt.Errorf("marshal author ids: %w", err)
		}

		return tableBooks, goqu.Record{
			"id":               e.ID.String(),
			"isbn":             e.ISBN,
			"title":            e.Title,
			"publication_year": e.PublicationYear,
			"total_copies":     e.TotalCopies,
			"available_copies": e.AvailableCopies,
			"category_id":      e.CategoryID.String(),
			"publisher_id":     uuidOrNil(e.PublisherID),
			"author_ids":       goqu.L("?::jsonb", string(payload)),
			"version":          version,
		}, nil

	case core.Transaction:
		return tableTransactions, goqu.Record{
			"id":            e.ID.String(),
			"member_id":     e.MemberID.String(),
			"book_id":       e.BookID.String(),
			"staff_id":      uuidOrNil(e.StaffID),
			"type":          string(e.Type),
			"status":        string(e.Status),
			"borrowed_at":   e.BorrowedAt,
			"due_at":        e.DueAt,
			"returned_at":   timeOrNil(e.ReturnedAt),
			"fine_amount":   int64(e.FineAmount),
			"renewal_count": e.RenewalCount,
			"version":       version,
		}, nil

	case core.Reservation:
		return tableReservations, goqu.Record{
			"id":          e.ID.String(),
			"member_id":   e.MemberID.String(),
			"book_id":     e.BookID.String(),
			"status":      string(e.Status),
			"priority":    e.Priority,
			"reserved_at": e.ReservedAt,
			"expires_at":  e.ExpiresAt,
			"hold_until":  timeOrNil(e.HoldUntil),
			"version":     version,
		}, nil

	case core.FinePayment:
		return tableFinePayments, goqu.Record{
			"id":             e.ID.String(),
			"member_id":      e.MemberID.String(),
			"transaction_id": uuidOrNil(e.TransactionID),
			"amount":         int64(e.Amount),
			"method":         string(e.Method),
			"receipt_number": e.ReceiptNumber,
			"paid_at":        e.PaidAt,
			"version":        version,
		}, nil

	default:
		return "", nil, fmt.Errorf("%w: %s", store.ErrUnknownEntityKind, entity.EntityKind())
	}
}

func scanBook(rows adapters.DBRows) (core.Book, error) {
	var (
		book        core.Book
		publisherID uuid.NullUUID
		authorIDs   []byte
		version     int64
	)

	if err := rows.Scan(
		&book.ID, &book.ISBN, &book.Title, &book.PublicationYear,
		&book.TotalCopies, &book.AvailableCopies, &book.CategoryID,
		&publisherID, &authorIDs, &version,
	); err != nil {
		return core.Book{}, err
	}

	if publisherID.Valid {
		id := publisherID.UUID
		book.PublisherID = &id
	}

	if len(authorIDs) > 0 {
		if err := jsoniter.ConfigFastest.Unmarshal(authorIDs, &book.AuthorIDs); err != nil {
			return core.Book{}, fmt.Errorf("unmarshal author ids: %w", err)
		}
	}

	book.Version = uint(version)

	return book, nil
}

func scanMember(rows adapters.DBRows) (core.Member, error) {
	var (
		member      core.Member
		status      string
		fineBalance int64
		version     int64
	)

	if err := rows.Scan(
		&member.ID, &member.MembershipNumber, &member.Email, &member.Name,
		&status, &member.MaxBooks, &fineBalance, &member.ExpiresAt, &version,
	); err != nil {
		return core.Member{}, err
	}

	member.Status = core.MemberStatus(status)
	member.FineBalance = core.Cents(fineBalance)
	member.Version = uint(version)

	return member, nil
}

func scanStaff(rows adapters.DBRows) (core.Staff, error) {
	var (
		staff   core.Staff
		version int64
	)

	if err := rows.Scan(
		&staff.ID, &staff.EmployeeNumber, &staff.Email, &staff.Name,
		&staff.Role, &version,
	); err != nil {
		return core.Staff{}, err
	}

	staff.Version = uint(version)

	return staff, nil
}

func scanTransaction(rows adapters.DBRows) (core.Transaction, error) {
	var (
		transaction     core.Transaction
		staffID         uuid.NullUUID
		transactionType string
		status          string
		returnedAt      sql.NullTime
		fineAmount      int64
		version         int64
	)

	if err := rows.Scan(
		&transaction.ID, &transaction.MemberID, &transaction.BookID, &staffID,
		&transactionType, &status, &transaction.BorrowedAt, &transaction.DueAt,
		&returnedAt, &fineAmount, &transaction.RenewalCount, &version,
	); err != nil {
		return core.Transaction{}, err
	}

	if staffID.Valid {
		id := staffID.UUID
		transaction.StaffID = &id
	}

	if returnedAt.Valid {
		t := returnedAt.Time
		transaction.ReturnedAt = &t
	}

	transaction.Type = core.TransactionType(transactionType)
	transaction.Status = core.LoanStatus(status)
	transaction.FineAmount = core.Cents(fineAmount)
	transaction.Version = uint(version)

	return transaction, nil
}

func scanReservation(rows adapters.DBRows) (core.Reservation, error) {
	var (
		reservation core.Reservation
		status      string
		holdUntil   sql.NullTime
		version     int64
	)

	if err := rows.Scan(
		&reservation.ID, &reservation.MemberID, &reservation.BookID, &status,
		&reservation.Priority, &reservation.ReservedAt, &reservation.ExpiresAt,
		&holdUntil, &version,
	); err != nil {
		return core.Reservation{}, err
	}

	if holdUntil.Valid {
		t := holdUntil.Time
		reservation.HoldUntil = &t
	}

	reservation.Status = core.ReservationStatus(status)
	reservation.Version = uint(version)

	return reservation, nil
}

func scanFinePayment(rows adapters.DBRows) (core.FinePayment, error) {
	var (
		payment       core.FinePayment
		transactionID uuid.NullUUID
		amount        int64
		method        string
		version       int64
	)

	if err := rows.Scan(
		&payment.ID, &payment.MemberID, &transactionID, &amount, &method,
		&payment.ReceiptNumber, &payment.PaidAt, &version,
	); err != nil {
		return core.FinePayment{}, err
	}

	if transactionID.Valid {
		id := transactionID.UUID
		payment.TransactionID = &id
	}

	payment.Amount = core.Cents(amount)
	payment.Method = core.PaymentMethod(method)
	payment.Version = uint(version)

	return payment, nil
}
