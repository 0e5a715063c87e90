package postgresengine

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/bibliotek-systems/circulation-go/core"
	"github.com/bibliotek-systems/circulation-go/shell"
	"github.com/bibliotek-systems/circulation-go/store"
	"github.com/bibliotek-systems/circulation-go/store/postgresengine/internal/adapters"
)

const (
	dialectPostgres = "postgres"
	pkeySuffix      = "_pkey"
)

// Store is the Postgres-backed circulation store. It implements the full
// persistence contract: versioned reads, and an atomic Commit that applies
// a whole change set in one database transaction with optimistic locking.
//
// It leverages a database adapter and supports pgx pools, sqlx, and plain
// database/sql connections.
type Store struct {
	db     adapters.DBAdapter
	logger shell.Logger
}

// Option defines a functional option for configuring the Store.
type Option func(*Store)

// WithLogger sets the logger for the Store.
//
// Debug level: SQL statements (development use)
// Warn level: non-critical issues like cleanup failures
// Error level: consistency faults detected by the database.
func WithLogger(logger shell.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStoreFromPGXPool creates a Store using a pgx connection pool.
func NewStoreFromPGXPool(pool *pgxpool.Pool, options ...Option) *Store {
	return newStore(adapters.NewPGXAdapter(pool), options...)
}

// NewStoreFromPGXPoolWithReplica creates a Store that reads from the
// replica pool and writes to the primary pool.
func NewStoreFromPGXPoolWithReplica(pool, replica *pgxpool.Pool, options ...Option) *Store {
	return newStore(adapters.NewPGXAdapterWithReplica(pool, replica), options...)
}

// NewStoreFromSQLDB creates a Store using a database/sql connection pool.
func NewStoreFromSQLDB(db *sql.DB, options ...Option) *Store {
	return newStore(adapters.NewSQLAdapter(db), options...)
}

// NewStoreFromSQLX creates a Store using an sqlx connection pool.
func NewStoreFromSQLX(db *sqlx.DB, options ...Option) *Store {
	return newStore(adapters.NewSQLXAdapter(db), options...)
}

func newStore(db adapters.DBAdapter, options ...Option) *Store {
	s := &Store{
		db:     db,
		logger: shell.NopLogger{},
	}

	for _, option := range options {
		option(s)
	}

	return s
}

func builder() goqu.DialectWrapper {
	return goqu.Dialect(dialectPostgres)
}

// mapInsertError classifies a driver error from an insert statement into
// the store's error taxonomy.
func mapInsertError(err error) error {
	if err == nil {
		return nil
	}

	if constraint, ok := adapters.UniqueViolation(err); ok {
		// A primary key collision means another writer inserted the same
		// entity first; that is a conflict, not a business uniqueness issue.
		if strings.HasSuffix(constraint, pkeySuffix) {
			return fmt.Errorf("%w: %s", store.ErrConcurrencyConflict, constraint)
		}

		return fmt.Errorf("%w: %s", store.ErrUniqueViolation, constraint)
	}

	if constraint, ok := adapters.ForeignKeyViolation(err); ok {
		return fmt.Errorf("%w: referenced row missing for %s", store.ErrNotFound, constraint)
	}

	if constraint, ok := adapters.CheckViolation(err); ok {
		return fmt.Errorf("%w: %s", core.ErrConsistencyFault, constraint)
	}

	return err
}

// mapUpdateError classifies a driver error from an update statement.
func mapUpdateError(err error) error {
	if err == nil {
		return nil
	}

	if constraint, ok := adapters.UniqueViolation(err); ok {
		return fmt.Errorf("%w: %s", store.ErrUniqueViolation, constraint)
	}

	if constraint, ok := adapters.ForeignKeyViolation(err); ok {
		return fmt.Errorf("%w: referenced row missing for %s", store.ErrNotFound, constraint)
	}

	if constraint, ok := adapters.CheckViolation(err); ok {
		return fmt.Errorf("%w: %s", core.ErrConsistencyFault, constraint)
	}

	return err
}

// mapDeleteError classifies a driver error from a delete statement; a
// foreign key violation here means a referential restrict rule fired.
func mapDeleteError(err error) error {
	if err == nil {
		return nil
	}

	if constraint, ok := adapters.ForeignKeyViolation(err); ok {
		return fmt.Errorf("%w: %s", store.ErrRestricted, constraint)
	}

	return err
}
