package postgresengine

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/bibliotek-systems/circulation-go/core"
	"github.com/bibliotek-systems/circulation-go/store"
	"github.com/bibliotek-systems/circulation-go/store/postgresengine/internal/adapters"
)

// Commit applies the whole change set in one database transaction, or none
// of it. Every update and delete carries the version the entity was read
// at; a stale version rolls the transaction back with
// store.ErrConcurrencyConflict so the caller can re-read and retry.
//
// The database schema is the second line of defense: unique indexes,
// referential actions, and the ledger check constraint hold even against
// writers that bypass this method.
func (s *Store) Commit(ctx context.Context, changes ...core.Change) error {
	if len(changes) == 0 {
		return nil
	}

	for _, change := range changes {
		if book, ok := change.Entity.(core.Book); ok && change.Op != core.OpDelete {
			if err := core.CheckLedgerInvariant(book); err != nil {
				s.logger.Error("inventory ledger fault rejected at commit",
					"book_id", book.ID, "error", err)

				return err
			}
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	for _, change := range changes {
		if applyErr := s.applyChange(ctx, tx, change); applyErr != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				s.logger.Warn("transaction rollback failed", "error", rollbackErr)
			}

			return applyErr
		}
	}

	if commitErr := tx.Commit(ctx); commitErr != nil {
		return fmt.Errorf("commit transaction: %w", commitErr)
	}

	return nil
}

func (s *Store) applyChange(ctx context.Context, tx adapters.DBTx, change core.Change) error {
	switch change.Op {
	case core.OpInsert:
		return s.applyInsert(ctx, tx, change.Entity)
	case core.OpUpdate:
		return s.applyUpdate(ctx, tx, change.Entity)
	case core.OpDelete:
		return s.applyDelete(ctx, tx, change.Entity)
	default:
		return fmt.Errorf("unknown change operation %q", change.Op)
	}
}

func (s *Store) applyInsert(ctx context.Context, tx adapters.DBTx, entity core.Entity) error {
	if entity.EntityVersion() != 0 {
		return fmt.Errorf("%w: insert of %s %s expects version 0, got %d",
			store.ErrConcurrencyConflict, entity.EntityKind(), entity.EntityID(), entity.EntityVersion())
	}

	table, record, err := tableAndRecord(entity, 1)
	if err != nil {
		return err
	}

	sqlQuery, _, err := builder().Insert(table).Rows(record).ToSQL()
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}

	s.logger.Debug("executing sql", "query", sqlQuery)

	if _, execErr := tx.Exec(ctx, sqlQuery); execErr != nil {
		return mapInsertError(execErr)
	}

	return nil
}

func (s *Store) applyUpdate(ctx context.Context, tx adapters.DBTx, entity core.Entity) error {
	expected := entity.EntityVersion()

	table, record, err := tableAndRecord(entity, expected+1)
	if err != nil {
		return err
	}

	sqlQuery, _, err := builder().Update(table).Set(record).
		Where(
			goqu.C("id").Eq(entity.EntityID().String()),
			goqu.C("version").Eq(expected),
		).ToSQL()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	s.logger.Debug("executing sql", "query", sqlQuery)

	result, execErr := tx.Exec(ctx, sqlQuery)
	if execErr != nil {
		return mapUpdateError(execErr)
	}

	return s.requireOneRow(result, entity, expected)
}

func (s *Store) applyDelete(ctx context.Context, tx adapters.DBTx, entity core.Entity) error {
	// Author references live in the books' author id list rather than a
	// join table; detach before the row goes away.
	if author, ok := entity.(core.Author); ok {
		if err := s.detachAuthor(ctx, tx, author); err != nil {
			return err
		}
	}

	expected := entity.EntityVersion()

	table, _, err := tableAndRecord(entity, expected)
	if err != nil {
		return err
	}

	sqlQuery, _, err := builder().Delete(table).
		Where(
			goqu.C("id").Eq(entity.EntityID().String()),
			goqu.C("version").Eq(expected),
		).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	s.logger.Debug("executing sql", "query", sqlQuery)

	result, execErr := tx.Exec(ctx, sqlQuery)
	if execErr != nil {
		return mapDeleteError(execErr)
	}

	return s.requireOneRow(result, entity, expected)
}

func (s *Store) detachAuthor(ctx context.Context, tx adapters.DBTx, author core.Author) error {
	id := author.ID.String()

	sqlQuery := fmt.Sprintf(
		"UPDATE %s SET author_ids = author_ids - '%s', version = version + 1 WHERE jsonb_exists(author_ids, '%s')",
		tableBooks, id, id)

	s.logger.Debug("executing sql", "query", sqlQuery)

	if _, execErr := tx.Exec(ctx, sqlQuery); execErr != nil {
		return mapUpdateError(execErr)
	}

	return nil
}

func (s *Store) requireOneRow(result adapters.DBResult, entity core.Entity, expected uint) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		s.logger.Debug("concurrency conflict detected",
			"entity_kind", entity.EntityKind(),
			"entity_id", entity.EntityID(),
			"expected_version", expected)

		return fmt.Errorf("%w: %s %s at version %d",
			store.ErrConcurrencyConflict, entity.EntityKind(), entity.EntityID(), expected)
	}

	return nil
}
