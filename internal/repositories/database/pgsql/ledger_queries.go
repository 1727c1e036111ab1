package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/skarbnik/troop_ledger_app/internal/apperrors"
	"github.com/skarbnik/troop_ledger_app/internal/core/domain"
	"github.com/skarbnik/troop_ledger_app/internal/models"
	"github.com/skarbnik/troop_ledger_app/internal/utils/accounting"
	"github.com/skarbnik/troop_ledger_app/internal/utils/mapping"
)

// querier abstracts over *pgxpool.Pool and pgx.Tx so the shared loading
// helpers work both on the pool and inside a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const journalColumns = `journal_id, unit_id, journal_type_id, year, is_open, blocked_to, initial_balance, initial_balance_one_percent, created_at, last_updated_at`

func scanJournal(row pgx.Row) (*domain.Journal, error) {
	var m models.Journal
	err := row.Scan(
		&m.JournalID,
		&m.UnitID,
		&m.JournalTypeID,
		&m.Year,
		&m.IsOpen,
		&m.BlockedTo,
		&m.InitialBalance,
		&m.InitialBalanceOnePercent,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainJournal(m)
	return &d, nil
}

const entryColumns = `entry_id, journal_id, date, name, is_expense, document_number, statement_number, linked_entry_id, parent_entry_id, is_subentry, subentry_position, subentries_count, created_at, last_updated_at`

func scanEntries(rows pgx.Rows) ([]domain.Entry, error) {
	entries := []domain.Entry{}
	for rows.Next() {
		var m models.Entry
		err := rows.Scan(
			&m.EntryID,
			&m.JournalID,
			&m.Date,
			&m.Name,
			&m.IsExpense,
			&m.DocumentNumber,
			&m.StatementNumber,
			&m.LinkedEntryID,
			&m.ParentEntryID,
			&m.IsSubentry,
			&m.SubentryPosition,
			&m.SubentriesCount,
			&m.CreatedAt,
			&m.LastUpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, mapping.ToDomainEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// attachItems loads items (with their registry category) and item grants for
// the given entries and attaches them in place.
func attachItems(ctx context.Context, q querier, entries []domain.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	entryIDs := make([]int64, len(entries))
	entryIndex := make(map[int64]int, len(entries))
	for i, e := range entries {
		entryIDs[i] = e.EntryID
		entryIndex[e.EntryID] = i
	}

	itemQuery := `
		SELECT i.item_id, i.entry_id, i.category_id, i.amount, i.amount_one_percent,
		       c.category_id, c.year, c.name, c.is_expense, c.is_one_percent, c.position
		FROM items i
		JOIN categories c ON c.category_id = i.category_id
		WHERE i.entry_id = ANY($1)
		ORDER BY i.entry_id, i.item_id;
	`
	rows, err := q.Query(ctx, itemQuery, entryIDs)
	if err != nil {
		return apperrors.NewAppError(500, "failed to query items", err)
	}
	defer rows.Close()

	itemIDs := []int64{}
	itemLocation := map[int64][2]int{} // item_id -> (entry index, item index)
	for rows.Next() {
		var mi models.Item
		var mc models.Category
		err := rows.Scan(
			&mi.ItemID,
			&mi.EntryID,
			&mi.CategoryID,
			&mi.Amount,
			&mi.AmountOnePercent,
			&mc.CategoryID,
			&mc.Year,
			&mc.Name,
			&mc.IsExpense,
			&mc.IsOnePercent,
			&mc.Position,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to scan item row", err)
		}
		item := mapping.ToDomainItem(mi)
		category := mapping.ToDomainCategory(mc)
		item.Category = &category

		idx := entryIndex[item.EntryID]
		entries[idx].Items = append(entries[idx].Items, item)
		itemLocation[item.ItemID] = [2]int{idx, len(entries[idx].Items) - 1}
		itemIDs = append(itemIDs, item.ItemID)
	}
	if err := rows.Err(); err != nil {
		return apperrors.NewAppError(500, "error iterating item rows", err)
	}
	rows.Close()

	if len(itemIDs) == 0 {
		return nil
	}

	grantQuery := `
		SELECT item_grant_id, item_id, grant_id, amount
		FROM item_grants
		WHERE item_id = ANY($1)
		ORDER BY item_id, item_grant_id;
	`
	grantRows, err := q.Query(ctx, grantQuery, itemIDs)
	if err != nil {
		return apperrors.NewAppError(500, "failed to query item grants", err)
	}
	defer grantRows.Close()

	for grantRows.Next() {
		var mg models.ItemGrant
		if err := grantRows.Scan(&mg.ItemGrantID, &mg.ItemID, &mg.GrantID, &mg.Amount); err != nil {
			return apperrors.NewAppError(500, "failed to scan item grant row", err)
		}
		loc := itemLocation[mg.ItemID]
		item := &entries[loc[0]].Items[loc[1]]
		item.Grants = append(item.Grants, mapping.ToDomainItemGrant(mg))
	}
	if err := grantRows.Err(); err != nil {
		return apperrors.NewAppError(500, "error iterating item grant rows", err)
	}
	return nil
}

// loadEntriesForRange loads a journal's entries with items attached, ordered
// by (date, entry_id). Nil range bounds mean unbounded.
func loadEntriesForRange(ctx context.Context, q querier, journalID int64, fromDate, toDate *time.Time) ([]domain.Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE journal_id = $1
		  AND ($2::date IS NULL OR date >= $2)
		  AND ($3::date IS NULL OR date <= $3)
		ORDER BY date, entry_id;
	`
	rows, err := q.Query(ctx, query, journalID, fromDate, toDate)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query entries", err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan entry rows", err)
	}
	rows.Close()

	if err := attachItems(ctx, q, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// loadJournalGrants loads a journal's per-grant initial balances.
func loadJournalGrants(ctx context.Context, q querier, journalID int64) ([]domain.JournalGrant, error) {
	query := `
		SELECT journal_id, grant_id, initial_grant_balance
		FROM journal_grants
		WHERE journal_id = $1
		ORDER BY grant_id;
	`
	rows, err := q.Query(ctx, query, journalID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal grants", err)
	}
	defer rows.Close()

	grants := []domain.JournalGrant{}
	for rows.Next() {
		var m models.JournalGrant
		if err := rows.Scan(&m.JournalID, &m.GrantID, &m.InitialGrantBalance); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal grant row", err)
		}
		grants = append(grants, mapping.ToDomainJournalGrant(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal grant rows", err)
	}
	return grants, nil
}

// recalculateChainTx walks the (unit, type) chain forward from the given
// journal inside an open transaction, re-deriving each later journal's
// initial balances from its predecessor's full-year closing balances. The
// chain rows are locked up front in year order, so concurrent cascades over
// the same chain serialize instead of deadlocking.
func recalculateChainTx(ctx context.Context, tx pgx.Tx, journal domain.Journal) error {
	chainQuery := `
		SELECT ` + journalColumns + `
		FROM journals
		WHERE unit_id = $1 AND journal_type_id = $2 AND year >= $3
		ORDER BY year
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, chainQuery, journal.UnitID, journal.JournalTypeID, journal.Year)
	if err != nil {
		return apperrors.NewAppError(500, "failed to lock journal chain", err)
	}
	defer rows.Close()

	chain := []domain.Journal{}
	for rows.Next() {
		j, err := scanJournal(rows)
		if err != nil {
			return apperrors.NewAppError(500, "failed to scan journal chain row", err)
		}
		chain = append(chain, *j)
	}
	if err := rows.Err(); err != nil {
		return apperrors.NewAppError(500, "error iterating journal chain rows", err)
	}
	rows.Close()

	for i := 0; i+1 < len(chain); i++ {
		current := chain[i]
		next := chain[i+1]

		entries, err := loadEntriesForRange(ctx, tx, current.JournalID, nil, nil)
		if err != nil {
			return err
		}
		currentGrants, err := loadJournalGrants(ctx, tx, current.JournalID)
		if err != nil {
			return err
		}
		// The successor's own grant rows widen the scope so a grant whose
		// balance drops to zero is rewritten, not skipped.
		nextGrants, err := loadJournalGrants(ctx, tx, next.JournalID)
		if err != nil {
			return err
		}

		var grantRows []domain.JournalGrant
		next, grantRows = accounting.NextInitialBalances(current, currentGrants, entries, next, nextGrants)

		_, err = tx.Exec(ctx, `
			UPDATE journals
			SET initial_balance = $1, initial_balance_one_percent = $2, last_updated_at = now()
			WHERE journal_id = $3;
		`, next.InitialBalance, next.InitialBalanceOnePercent, next.JournalID)
		if err != nil {
			return apperrors.NewAppError(500, "failed to update journal initial balances", err)
		}

		for _, jg := range grantRows {
			_, err = tx.Exec(ctx, `
				INSERT INTO journal_grants (journal_id, grant_id, initial_grant_balance)
				VALUES ($1, $2, $3)
				ON CONFLICT (journal_id, grant_id)
				DO UPDATE SET initial_grant_balance = EXCLUDED.initial_grant_balance;
			`, jg.JournalID, jg.GrantID, jg.InitialGrantBalance)
			if err != nil {
				return apperrors.NewAppError(500, "failed to upsert journal grant balance", err)
			}
		}

		chain[i+1] = next
	}
	return nil
}
