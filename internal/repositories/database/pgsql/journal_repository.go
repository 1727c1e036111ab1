package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skarbnik/troop_ledger_app/internal/apperrors"
	"github.com/skarbnik/troop_ledger_app/internal/core/domain"
	portsrepo "github.com/skarbnik/troop_ledger_app/internal/core/ports/repositories"
	"github.com/skarbnik/troop_ledger_app/internal/utils/mapping"
)

const uniqueViolationCode = "23505"

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// FindJournalByID retrieves a journal by its ID.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID int64) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE journal_id = $1;`
	journal, err := scanJournal(r.Pool.QueryRow(ctx, query, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to find journal by ID %d", journalID), err)
	}
	return journal, nil
}

// FindJournalByUnitTypeYear retrieves the unique journal for a (unit, type, year) triple.
func (r *PgxJournalRepository) FindJournalByUnitTypeYear(ctx context.Context, unitID, journalTypeID int64, year int) (*domain.Journal, error) {
	query := `
		SELECT ` + journalColumns + `
		FROM journals
		WHERE unit_id = $1 AND journal_type_id = $2 AND year = $3;
	`
	journal, err := scanJournal(r.Pool.QueryRow(ctx, query, unitID, journalTypeID, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to find journal for unit %d type %d year %d", unitID, journalTypeID, year), err)
	}
	return journal, nil
}

// FindPreviousJournal retrieves the most recent journal of the same (unit, type)
// with year <= maxYear. Chains may skip years.
func (r *PgxJournalRepository) FindPreviousJournal(ctx context.Context, unitID, journalTypeID int64, maxYear int) (*domain.Journal, error) {
	query := `
		SELECT ` + journalColumns + `
		FROM journals
		WHERE unit_id = $1 AND journal_type_id = $2 AND year <= $3
		ORDER BY year DESC
		LIMIT 1;
	`
	journal, err := scanJournal(r.Pool.QueryRow(ctx, query, unitID, journalTypeID, maxYear))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to find previous journal for unit %d type %d", unitID, journalTypeID), err)
	}
	return journal, nil
}

// FindNextJournal retrieves the earliest journal of the same (unit, type)
// with year >= minYear.
func (r *PgxJournalRepository) FindNextJournal(ctx context.Context, unitID, journalTypeID int64, minYear int) (*domain.Journal, error) {
	query := `
		SELECT ` + journalColumns + `
		FROM journals
		WHERE unit_id = $1 AND journal_type_id = $2 AND year >= $3
		ORDER BY year
		LIMIT 1;
	`
	journal, err := scanJournal(r.Pool.QueryRow(ctx, query, unitID, journalTypeID, minYear))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to find next journal for unit %d type %d", unitID, journalTypeID), err)
	}
	return journal, nil
}

// FindEntriesForRange retrieves the journal's entries with items, item grants
// and categories attached, ordered by (date, entry_id).
func (r *PgxJournalRepository) FindEntriesForRange(ctx context.Context, journalID int64, fromDate, toDate *time.Time) ([]domain.Entry, error) {
	return loadEntriesForRange(ctx, r.Pool, journalID, fromDate, toDate)
}

// FindJournalGrants retrieves the journal's lazily created per-grant initial balances.
func (r *PgxJournalRepository) FindJournalGrants(ctx context.Context, journalID int64) ([]domain.JournalGrant, error) {
	return loadJournalGrants(ctx, r.Pool, journalID)
}

// FindOpenJournalsOlderThan retrieves journals of years before olderThanYear
// that are still mutable at their end of year.
func (r *PgxJournalRepository) FindOpenJournalsOlderThan(ctx context.Context, olderThanYear int) ([]domain.Journal, error) {
	query := `
		SELECT ` + journalColumns + `
		FROM journals
		WHERE year < $1
		  AND ((blocked_to IS NULL AND is_open)
		    OR (blocked_to IS NOT NULL AND blocked_to < make_date(year, 12, 31)))
		ORDER BY unit_id, journal_type_id, year;
	`
	rows, err := r.Pool.Query(ctx, query, olderThanYear)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query open journals", err)
	}
	defer rows.Close()

	return collectJournals(rows)
}

// ListChainHeads retrieves the earliest journal of every (unit, type) chain.
func (r *PgxJournalRepository) ListChainHeads(ctx context.Context) ([]domain.Journal, error) {
	query := `
		SELECT DISTINCT ON (unit_id, journal_type_id) ` + journalColumns + `
		FROM journals
		ORDER BY unit_id, journal_type_id, year;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal chain heads", err)
	}
	defer rows.Close()

	return collectJournals(rows)
}

func collectJournals(rows pgx.Rows) ([]domain.Journal, error) {
	journals := []domain.Journal{}
	for rows.Next() {
		j, err := scanJournal(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal row", err)
		}
		journals = append(journals, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal rows", err)
	}
	return journals, nil
}

// CreateJournal persists a new journal and its seed journal grants in one
// transaction. A duplicate (unit, type, year) maps to apperrors.ErrDuplicate.
func (r *PgxJournalRepository) CreateJournal(ctx context.Context, journal domain.Journal, journalGrants []domain.JournalGrant) (*domain.Journal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelJournal(journal)
	insertQuery := `
		INSERT INTO journals (unit_id, journal_type_id, year, is_open, blocked_to, initial_balance, initial_balance_one_percent, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		RETURNING journal_id, created_at, last_updated_at;
	`
	err = tx.QueryRow(ctx, insertQuery,
		m.UnitID,
		m.JournalTypeID,
		m.Year,
		m.IsOpen,
		m.BlockedTo,
		m.InitialBalance,
		m.InitialBalanceOnePercent,
	).Scan(&m.JournalID, &m.CreatedAt, &m.LastUpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, apperrors.ErrDuplicate
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to insert journal for unit %d type %d year %d", m.UnitID, m.JournalTypeID, m.Year), err)
	}

	for _, jg := range journalGrants {
		_, err = tx.Exec(ctx, `
			INSERT INTO journal_grants (journal_id, grant_id, initial_grant_balance)
			VALUES ($1, $2, $3);
		`, m.JournalID, jg.GrantID, jg.InitialGrantBalance)
		if err != nil {
			return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to insert journal grant for journal %d", m.JournalID), err)
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	created := mapping.ToDomainJournal(m)
	return &created, nil
}

// UpdateJournalBlockedState persists open/close state and re-runs the forward
// cascade within the same transaction, so later years always see balances
// consistent with the new state.
func (r *PgxJournalRepository) UpdateJournalBlockedState(ctx context.Context, journalID int64, isOpen bool, blockedTo *time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	journal, err := scanJournal(tx.QueryRow(ctx, `SELECT `+journalColumns+` FROM journals WHERE journal_id = $1 FOR UPDATE;`, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, fmt.Sprintf("failed to lock journal %d", journalID), err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE journals
		SET is_open = $1, blocked_to = $2, last_updated_at = now()
		WHERE journal_id = $3;
	`, isOpen, blockedTo, journalID)
	if err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to update blocked state of journal %d", journalID), err)
	}

	if err := recalculateChainTx(ctx, tx, *journal); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// RecalculateNextInitialBalances walks the (unit, type) chain forward from the
// given journal in one transaction with the chain rows locked.
func (r *PgxJournalRepository) RecalculateNextInitialBalances(ctx context.Context, journal domain.Journal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := recalculateChainTx(ctx, tx, journal); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}
