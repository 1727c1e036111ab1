package repositories

import (
	"context"
	"time"

	"github.com/skarbnik/troop_ledger_app/internal/core/domain"
)

// JournalReader defines read operations for journal data.
type JournalReader interface {
	// FindJournalByID retrieves a specific journal by its unique identifier.
	FindJournalByID(ctx context.Context, journalID int64) (*domain.Journal, error)

	// FindJournalByUnitTypeYear retrieves the unique journal for a (unit, type, year) triple.
	FindJournalByUnitTypeYear(ctx context.Context, unitID, journalTypeID int64, year int) (*domain.Journal, error)

	// FindPreviousJournal retrieves the most recent journal of the same (unit, type)
	// with year <= maxYear, or ErrNotFound.
	FindPreviousJournal(ctx context.Context, unitID, journalTypeID int64, maxYear int) (*domain.Journal, error)

	// FindNextJournal retrieves the earliest journal of the same (unit, type)
	// with year >= minYear, or ErrNotFound. Chains may skip years.
	FindNextJournal(ctx context.Context, unitID, journalTypeID int64, minYear int) (*domain.Journal, error)

	// FindEntriesForRange retrieves the journal's entries with items, item grants
	// and categories attached. Nil range bounds mean unbounded.
	FindEntriesForRange(ctx context.Context, journalID int64, fromDate, toDate *time.Time) ([]domain.Entry, error)

	// FindJournalGrants retrieves the journal's lazily created per-grant initial balances.
	FindJournalGrants(ctx context.Context, journalID int64) ([]domain.JournalGrant, error)

	// FindOpenJournalsOlderThan retrieves journals of years before olderThanYear
	// that are still mutable at their end of year.
	FindOpenJournalsOlderThan(ctx context.Context, olderThanYear int) ([]domain.Journal, error)

	// ListChainHeads retrieves the earliest journal of every (unit, type) chain.
	ListChainHeads(ctx context.Context) ([]domain.Journal, error)
}

// JournalWriter defines write operations for journal data.
type JournalWriter interface {
	// CreateJournal persists a new journal and its seed journal grants in one
	// transaction. A duplicate (unit, type, year) maps to apperrors.ErrDuplicate;
	// the caller retries by re-fetching.
	CreateJournal(ctx context.Context, journal domain.Journal, journalGrants []domain.JournalGrant) (*domain.Journal, error)

	// UpdateJournalBlockedState persists open/close state and re-runs the
	// forward cascade within the same transaction.
	UpdateJournalBlockedState(ctx context.Context, journalID int64, isOpen bool, blockedTo *time.Time) error

	// RecalculateNextInitialBalances walks the (unit, type) chain forward from
	// the given journal, re-deriving every later journal's initial balances
	// from its predecessor's full-year closing balances. The whole walk runs
	// in one transaction with the chain rows locked.
	RecalculateNextInitialBalances(ctx context.Context, journal domain.Journal) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
