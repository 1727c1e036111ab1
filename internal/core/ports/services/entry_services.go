package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/skarbnik/troop_ledger_app/internal/core/domain"
	"github.com/skarbnik/troop_ledger_app/internal/dto"
)

// EntrySvcFacade exposes entry creation, mutation and derived values.
// Every mutation enforces the full validation contract and triggers the
// forward initial-balance cascade on success.
type EntrySvcFacade interface {
	GetEntryByID(ctx context.Context, entryID int64) (*domain.Entry, error)

	// CreateEntry validates and persists a new entry (and its optional linked
	// opposite-type entry) in one transaction.
	CreateEntry(ctx context.Context, req dto.CreateEntryRequest) (*domain.Entry, error)

	// UpdateEntry replaces the entry's fields and items atomically. A type
	// change ships the re-categorized items in the same request and is
	// validated against that final state.
	UpdateEntry(ctx context.Context, entryID int64, req dto.UpdateEntryRequest) (*domain.Entry, error)

	// DeleteEntry removes the entry, guarded by the journal's block state as
	// of the entry's persisted date.
	DeleteEntry(ctx context.Context, entryID int64) error

	// EntryBalance derives the running balance after the entry in the strict
	// (date, id) order.
	EntryBalance(ctx context.Context, entryID int64) (decimal.Decimal, error)

	// UpdateSubentries grows or shrinks a bank-journal entry's lettered
	// sub-entries to the requested count and returns the resulting set.
	UpdateSubentries(ctx context.Context, parentEntryID int64, subentryCount int) ([]domain.Entry, error)
}
