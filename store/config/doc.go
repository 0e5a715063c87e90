// Package config provides database connection configuration for the
// circulation store: the DSN (from the environment, with a local default)
// and tuned pool constructors for pgx, sqlx, and database/sql.
package config
