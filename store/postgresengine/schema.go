package postgresengine

import (
	"context"
	"fmt"
)

// Schema is the circulation data model DDL. Unique indexes carry the names
// the store error taxonomy reports; the referential actions and the ledger
// check constraint back up the invariants the Commit path enforces in code.
const Schema = `
CREATE TABLE IF NOT EXISTS authors (
    id      uuid PRIMARY KEY,
    name    text NOT NULL,
    version bigint NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS publishers (
    id      uuid PRIMARY KEY,
    name    text NOT NULL,
    version bigint NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS categories (
    id      uuid PRIMARY KEY,
    name    text NOT NULL,
    version bigint NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS members (
    id                uuid PRIMARY KEY,
    membership_number text NOT NULL UNIQUE,
    email             text NOT NULL UNIQUE,
    name              text NOT NULL,
    status            text NOT NULL,
    max_books         integer NOT NULL,
    fine_balance      bigint NOT NULL DEFAULT 0,
    expires_at        timestamptz NOT NULL,
    version           bigint NOT NULL DEFAULT 1,
    CONSTRAINT members_fine_balance_check CHECK (fine_balance >= 0)
);

CREATE TABLE IF NOT EXISTS staff (
    id              uuid PRIMARY KEY,
    employee_number text NOT NULL UNIQUE,
    email           text NOT NULL UNIQUE,
    name            text NOT NULL,
    role            text NOT NULL,
    version         bigint NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS books (
    id               uuid PRIMARY KEY,
    isbn             text NOT NULL UNIQUE,
    title            text NOT NULL,
    publication_year integer NOT NULL,
    total_copies     integer NOT NULL,
    available_copies integer NOT NULL,
    category_id      uuid NOT NULL REFERENCES categories (id) ON DELETE RESTRICT,
    publisher_id     uuid REFERENCES publishers (id) ON DELETE SET NULL,
    author_ids       jsonb NOT NULL DEFAULT '[]',
    version          bigint NOT NULL DEFAULT 1,
    CONSTRAINT books_ledger_check CHECK (available_copies >= 0 AND available_copies <= total_copies)
);

CREATE TABLE IF NOT EXISTS transactions (
    id            uuid PRIMARY KEY,
    member_id     uuid NOT NULL REFERENCES members (id) ON DELETE CASCADE,
    book_id       uuid NOT NULL REFERENCES books (id) ON DELETE RESTRICT,
    staff_id      uuid REFERENCES staff (id) ON DELETE SET NULL,
    type          text NOT NULL,
    status        text NOT NULL,
    borrowed_at   timestamptz NOT NULL,
    due_at        timestamptz NOT NULL,
    returned_at   timestamptz,
    fine_amount   bigint NOT NULL DEFAULT 0,
    renewal_count integer NOT NULL DEFAULT 0,
    version       bigint NOT NULL DEFAULT 1,
    CONSTRAINT transactions_status_check CHECK (status IN ('Active', 'Overdue', 'Completed'))
);

CREATE INDEX IF NOT EXISTS transactions_member_status_idx
    ON transactions (member_id, status);
CREATE INDEX IF NOT EXISTS transactions_due_at_idx
    ON transactions (due_at) WHERE status = 'Active';

CREATE TABLE IF NOT EXISTS reservations (
    id          uuid PRIMARY KEY,
    member_id   uuid NOT NULL REFERENCES members (id) ON DELETE CASCADE,
    book_id     uuid NOT NULL REFERENCES books (id) ON DELETE CASCADE,
    status      text NOT NULL,
    priority    integer NOT NULL,
    reserved_at timestamptz NOT NULL,
    expires_at  timestamptz NOT NULL,
    hold_until  timestamptz,
    version     bigint NOT NULL DEFAULT 1,
    CONSTRAINT reservations_priority_check CHECK (priority BETWEEN 1 AND 5),
    CONSTRAINT reservations_status_check CHECK (status IN ('Active', 'Fulfilled', 'Cancelled', 'Expired'))
);

CREATE UNIQUE INDEX IF NOT EXISTS reservations_one_active_per_member_book
    ON reservations (member_id, book_id) WHERE status = 'Active';
CREATE INDEX IF NOT EXISTS reservations_book_status_idx
    ON reservations (book_id, status);

CREATE TABLE IF NOT EXISTS fine_payments (
    id             uuid PRIMARY KEY,
    member_id      uuid NOT NULL REFERENCES members (id) ON DELETE CASCADE,
    transaction_id uuid REFERENCES transactions (id) ON DELETE SET NULL,
    amount         bigint NOT NULL,
    method         text NOT NULL,
    receipt_number text NOT NULL UNIQUE,
    paid_at        timestamptz NOT NULL,
    version        bigint NOT NULL DEFAULT 1,
    CONSTRAINT fine_payments_amount_check CHECK (amount > 0)
);
`

// EnsureSchema creates the circulation tables and indexes when they do not
// exist yet. It is safe to call on every startup.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	return nil
}
