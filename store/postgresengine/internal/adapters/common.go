package adapters

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const (
	pgCodeUniqueViolation     = "23505"
	pgCodeForeignKeyViolation = "23503"
	pgCodeCheckViolation      = "23514"
)

// UniqueViolation reports whether err is a Postgres unique violation and
// returns the violated constraint name. Both the pgx and the lib/pq driver
// error shapes are recognized.
func UniqueViolation(err error) (string, bool) {
	return violation(err, pgCodeUniqueViolation)
}

// ForeignKeyViolation reports whether err is a Postgres foreign key
// violation and returns the violated constraint name.
func ForeignKeyViolation(err error) (string, bool) {
	return violation(err, pgCodeForeignKeyViolation)
}

// CheckViolation reports whether err is a Postgres check constraint
// violation and returns the violated constraint name.
func CheckViolation(err error) (string, bool) {
	return violation(err, pgCodeCheckViolation)
}

func violation(err error, code string) (string, bool) {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) && pgxErr.Code == code {
		return pgxErr.ConstraintName, true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == code {
		return pqErr.Constraint, true
	}

	return "", false
}

// stdRows wraps standard library sql.Rows to implement DBRows interface.
type stdRows struct {
	rows *sql.Rows
}

// Next advances to the next row.
func (s *stdRows) Next() bool {
	return s.rows.Next()
}

// Scan copies row values into provided destinations.
func (s *stdRows) Scan(dest ...any) error {
	return s.rows.Scan(dest...)
}

// Close closes the rows iterator.
func (s *stdRows) Close() error {
	return s.rows.Close()
}

// stdResult wraps standard library sql.Result to implement DBResult interface.
type stdResult struct {
	result sql.Result
}

// RowsAffected returns the number of rows affected by the command.
func (s *stdResult) RowsAffected() (int64, error) {
	return s.result.RowsAffected()
}

// stdTx wraps standard library sql.Tx to implement the DBTx interface;
// both the database/sql and the sqlx adapter use it.
type stdTx struct {
	tx *sql.Tx
}

func (s *stdTx) Query(ctx context.Context, query string) (DBRows, error) {
	rows, err := s.tx.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return &stdRows{rows: rows}, nil
}

func (s *stdTx) Exec(ctx context.Context, query string) (DBResult, error) {
	result, err := s.tx.ExecContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return &stdResult{result: result}, nil
}

func (s *stdTx) Commit(context.Context) error {
	return s.tx.Commit()
}

func (s *stdTx) Rollback(context.Context) error {
	return s.tx.Rollback()
}
