package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skarbnik/troop_ledger_app/internal/apperrors"
	"github.com/skarbnik/troop_ledger_app/internal/core/domain"
	portsrepo "github.com/skarbnik/troop_ledger_app/internal/core/ports/repositories"
	"github.com/skarbnik/troop_ledger_app/internal/utils/mapping"
)

type PgxEntryRepository struct {
	BaseRepository
}

// newPgxEntryRepository creates a new repository for entry data.
func newPgxEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepositoryFacade {
	return &PgxEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.EntryRepositoryFacade = (*PgxEntryRepository)(nil)

// FindEntryByID retrieves an entry with items, item grants and categories attached.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID int64) (*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE entry_id = $1;`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to query entry %d", entryID), err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to scan entry %d", entryID), err)
	}
	rows.Close()
	if len(entries) == 0 {
		return nil, apperrors.ErrNotFound
	}
	if err := attachItems(ctx, r.Pool, entries); err != nil {
		return nil, err
	}
	return &entries[0], nil
}

// FindSubentries retrieves an entry's sub-entries ordered by position letter.
func (r *PgxEntryRepository) FindSubentries(ctx context.Context, parentEntryID int64) ([]domain.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE parent_entry_id = $1
		ORDER BY subentry_position;
	`
	rows, err := r.Pool.Query(ctx, query, parentEntryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to query sub-entries of entry %d", parentEntryID), err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to scan sub-entries of entry %d", parentEntryID), err)
	}
	rows.Close()
	if err := attachItems(ctx, r.Pool, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// SaveEntry inserts or updates the entry and its items, wires the optional
// linked entry, and runs the forward cascade for every touched journal, all
// in one transaction. Generated ids are written back to the arguments.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry *domain.Entry, linked *domain.Entry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.upsertEntryTx(ctx, tx, entry); err != nil {
		return err
	}
	if linked != nil {
		if err := r.upsertEntryTx(ctx, tx, linked); err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `UPDATE entries SET linked_entry_id = $1 WHERE entry_id = $2;`, linked.EntryID, entry.EntryID)
		if err != nil {
			return apperrors.NewAppError(500, "failed to wire linked entry", err)
		}
		_, err = tx.Exec(ctx, `UPDATE entries SET linked_entry_id = $1 WHERE entry_id = $2;`, entry.EntryID, linked.EntryID)
		if err != nil {
			return apperrors.NewAppError(500, "failed to wire linked entry", err)
		}
		entry.LinkedEntryID = &linked.EntryID
		linked.LinkedEntryID = &entry.EntryID
	}

	if err := r.cascadeJournalTx(ctx, tx, entry.JournalID); err != nil {
		return err
	}
	if linked != nil && linked.JournalID != entry.JournalID {
		if err := r.cascadeJournalTx(ctx, tx, linked.JournalID); err != nil {
			return err
		}
	}
	return r.Commit(ctx, tx)
}

// DeleteEntry removes the entry, its items and sub-entries, detaches any
// linked entry, and runs the forward cascade, all in one transaction.
func (r *PgxEntryRepository) DeleteEntry(ctx context.Context, entry domain.Entry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// The surviving side of a linked pair keeps its entry, just unlinked.
	_, err = tx.Exec(ctx, `UPDATE entries SET linked_entry_id = NULL WHERE linked_entry_id = $1;`, entry.EntryID)
	if err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to detach linked entry of entry %d", entry.EntryID), err)
	}
	_, err = tx.Exec(ctx, `DELETE FROM entries WHERE parent_entry_id = $1;`, entry.EntryID)
	if err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to delete sub-entries of entry %d", entry.EntryID), err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM entries WHERE entry_id = $1;`, entry.EntryID)
	if err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to delete entry %d", entry.EntryID), err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := r.cascadeJournalTx(ctx, tx, entry.JournalID); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// ReplaceSubentries appends the given new sub-entries, removes the given
// existing ones and updates the parent's subentries count, then cascades.
func (r *PgxEntryRepository) ReplaceSubentries(ctx context.Context, parent *domain.Entry, toCreate []domain.Entry, toDeleteIDs []int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if len(toDeleteIDs) > 0 {
		_, err = tx.Exec(ctx, `DELETE FROM entries WHERE entry_id = ANY($1) AND parent_entry_id = $2;`, toDeleteIDs, parent.EntryID)
		if err != nil {
			return apperrors.NewAppError(500, fmt.Sprintf("failed to delete sub-entries of entry %d", parent.EntryID), err)
		}
	}
	for i := range toCreate {
		if err := r.upsertEntryTx(ctx, tx, &toCreate[i]); err != nil {
			return err
		}
	}
	_, err = tx.Exec(ctx, `UPDATE entries SET subentries_count = $1, last_updated_at = now() WHERE entry_id = $2;`, parent.SubentriesCount, parent.EntryID)
	if err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to update subentries count of entry %d", parent.EntryID), err)
	}

	if err := r.cascadeJournalTx(ctx, tx, parent.JournalID); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// upsertEntryTx inserts or updates one entry with its items inside an open
// transaction. Updates replace the item set wholesale; item grants go with
// their items via FK cascade.
func (r *PgxEntryRepository) upsertEntryTx(ctx context.Context, tx pgx.Tx, entry *domain.Entry) error {
	m := mapping.ToModelEntry(*entry)

	if entry.EntryID == 0 {
		insertQuery := `
			INSERT INTO entries (journal_id, date, name, is_expense, document_number, statement_number, linked_entry_id, parent_entry_id, is_subentry, subentry_position, subentries_count, created_at, last_updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())
			RETURNING entry_id, created_at, last_updated_at;
		`
		err := tx.QueryRow(ctx, insertQuery,
			m.JournalID,
			m.Date,
			m.Name,
			m.IsExpense,
			m.DocumentNumber,
			m.StatementNumber,
			m.LinkedEntryID,
			m.ParentEntryID,
			m.IsSubentry,
			m.SubentryPosition,
			m.SubentriesCount,
		).Scan(&entry.EntryID, &entry.CreatedAt, &entry.LastUpdatedAt)
		if err != nil {
			return apperrors.NewAppError(500, "failed to insert entry", err)
		}
	} else {
		updateQuery := `
			UPDATE entries
			SET date = $1, name = $2, is_expense = $3, document_number = $4, statement_number = $5, subentries_count = $6, last_updated_at = now()
			WHERE entry_id = $7;
		`
		tag, err := tx.Exec(ctx, updateQuery,
			m.Date,
			m.Name,
			m.IsExpense,
			m.DocumentNumber,
			m.StatementNumber,
			m.SubentriesCount,
			m.EntryID,
		)
		if err != nil {
			return apperrors.NewAppError(500, fmt.Sprintf("failed to update entry %d", m.EntryID), err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}
		_, err = tx.Exec(ctx, `DELETE FROM items WHERE entry_id = $1;`, m.EntryID)
		if err != nil {
			return apperrors.NewAppError(500, fmt.Sprintf("failed to clear items of entry %d", m.EntryID), err)
		}
	}

	for i := range entry.Items {
		item := &entry.Items[i]
		item.EntryID = entry.EntryID
		mi := mapping.ToModelItem(*item)
		err := tx.QueryRow(ctx, `
			INSERT INTO items (entry_id, category_id, amount, amount_one_percent)
			VALUES ($1, $2, $3, $4)
			RETURNING item_id;
		`, mi.EntryID, mi.CategoryID, mi.Amount, mi.AmountOnePercent).Scan(&item.ItemID)
		if err != nil {
			return apperrors.NewAppError(500, fmt.Sprintf("failed to insert item for entry %d", entry.EntryID), err)
		}
		for j := range item.Grants {
			ig := &item.Grants[j]
			ig.ItemID = item.ItemID
			err := tx.QueryRow(ctx, `
				INSERT INTO item_grants (item_id, grant_id, amount)
				VALUES ($1, $2, $3)
				RETURNING item_grant_id;
			`, ig.ItemID, ig.GrantID, ig.Amount).Scan(&ig.ItemGrantID)
			if err != nil {
				return apperrors.NewAppError(500, fmt.Sprintf("failed to insert item grant for entry %d", entry.EntryID), err)
			}
		}
	}
	return nil
}

// cascadeJournalTx re-runs the forward initial-balance cascade for the
// journal's chain inside the open transaction.
func (r *PgxEntryRepository) cascadeJournalTx(ctx context.Context, tx pgx.Tx, journalID int64) error {
	journal, err := scanJournal(tx.QueryRow(ctx, `SELECT `+journalColumns+` FROM journals WHERE journal_id = $1;`, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, fmt.Sprintf("failed to load journal %d for cascade", journalID), err)
	}
	return recalculateChainTx(ctx, tx, *journal)
}
