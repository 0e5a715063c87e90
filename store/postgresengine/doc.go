// Package postgresengine provides the Postgres implementation of the
// circulation store contract.
//
// Reads build their SQL with goqu; the atomic Commit applies a whole
// change set inside one database transaction, using versioned updates for
// optimistic locking. The store works with pgx pools, sqlx, or plain
// database/sql connections through the internal adapters package, and the
// schema's constraints (unique indexes, referential actions, ledger check)
// back up everything the code enforces.
package postgresengine
