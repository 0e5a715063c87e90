// Package adapters provides database driver adapters for the circulation
// store. It supports pgx pools, sqlx, and database/sql through one common
// interface with transaction support, plus driver-independent
// classification of Postgres constraint violations.
package adapters
