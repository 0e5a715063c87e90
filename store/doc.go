// Package store defines the persistence contract of the circulation
// engine: per-entity reads plus an atomic, optimistically versioned Commit
// of a change set.
//
// Command handlers follow a read-decide-commit cycle: they read versioned
// entities, let a pure Decide function produce a change set, and commit it
// as a unit. A commit fails as a whole when any expected version no longer
// matches (ErrConcurrencyConflict, retried by the handlers with backoff),
// when a uniqueness rule would be violated (ErrUniqueViolation), or when a
// referential restrict rule forbids a delete (ErrRestricted).
//
// Two engines implement the contract: store/memoryengine (embedded,
// mutex-guarded) and store/postgresengine (goqu-built SQL over pgx, sqlx,
// or database/sql).
package store
