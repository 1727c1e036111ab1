package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/skarbnik/troop_ledger_app/internal/core/domain"
	"github.com/skarbnik/troop_ledger_app/internal/dto"
)

// JournalSvcFacade exposes the journal balance and lifecycle engine.
type JournalSvcFacade interface {
	// GetJournalByID retrieves a journal, ErrNotFound if absent.
	GetJournalByID(ctx context.Context, journalID int64) (*domain.Journal, error)

	// GetOrCreateJournal resolves the (unit, type, year) journal, creating it
	// on demand: open for the current year, closed with blocked_to set to the
	// end of year for a past year. Creation races resolve via the unique
	// constraint and a re-fetch.
	GetOrCreateJournal(ctx context.Context, unitID, journalTypeID int64, year int) (*domain.Journal, error)

	// GetCurrentForType resolves or creates the unit's current-year journal.
	GetCurrentForType(ctx context.Context, unitID, journalTypeID int64) (*domain.Journal, error)

	// GetPreviousForType resolves or creates the unit's previous-year journal.
	GetPreviousForType(ctx context.Context, unitID, journalTypeID int64) (*domain.Journal, error)

	// JournalBalances derives the journal's balances up to toDate from its
	// persisted entries: total, one-percent, income/expense sums and
	// per-grant balances.
	JournalBalances(ctx context.Context, journalID int64, toDate time.Time) (*dto.JournalBalancesResponse, error)

	// CategorySum derives one category's sum up to toDate.
	CategorySum(ctx context.Context, journalID, categoryID int64, toDate time.Time) (decimal.Decimal, error)

	// BalanceForGrant derives one grant's balance up to toDate.
	BalanceForGrant(ctx context.Context, journalID, grantID int64, toDate time.Time) (decimal.Decimal, error)

	// VerifyJournal runs the full closing verification as of blockedTo without
	// persisting anything. Returns a *apperrors.VerificationError carrying
	// every violation, or nil.
	VerifyJournal(ctx context.Context, journalID int64, blockedTo time.Time) error

	// CloseJournal verifies and, on success, blocks the journal up to
	// blockedTo. Closing to the end of year closes the journal entirely; an
	// earlier boundary leaves it open for later dates. On verification
	// failure nothing changes.
	CloseJournal(ctx context.Context, journalID int64, blockedTo time.Time) error

	// ReopenJournal clears the block boundary and reopens the journal.
	ReopenJournal(ctx context.Context, journalID int64) error

	// RecalculateNextInitialBalances re-derives the initial balances of every
	// later journal in the (unit, type) chain.
	RecalculateNextInitialBalances(ctx context.Context, journalID int64) error

	// CloseOldOpenJournals closes every still-open journal of years before
	// olderThanYear, collecting per-journal verification failures instead of
	// stopping at the first one.
	CloseOldOpenJournals(ctx context.Context, olderThanYear int) (*dto.CloseOldJournalsResponse, error)
}
