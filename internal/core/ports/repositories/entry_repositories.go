package repositories

import (
	"context"

	"github.com/skarbnik/troop_ledger_app/internal/core/domain"
)

// EntryReader defines read operations for entry data.
type EntryReader interface {
	// FindEntryByID retrieves an entry with items, item grants and categories attached.
	FindEntryByID(ctx context.Context, entryID int64) (*domain.Entry, error)

	// FindSubentries retrieves an entry's sub-entries ordered by position letter.
	FindSubentries(ctx context.Context, parentEntryID int64) ([]domain.Entry, error)
}

// EntryWriter defines write operations for entry data. Every write runs the
// forward initial-balance cascade inside the same database transaction, so an
// entry change and its cross-year consequences commit or roll back together.
type EntryWriter interface {
	// SaveEntry inserts or updates the entry and its items. When linked is
	// non-nil it is persisted in the same transaction and the two entries are
	// wired to each other by id. Generated ids are written back.
	SaveEntry(ctx context.Context, entry *domain.Entry, linked *domain.Entry) error

	// DeleteEntry removes the entry and its items (and its sub-entries).
	DeleteEntry(ctx context.Context, entry domain.Entry) error

	// ReplaceSubentries appends the given new sub-entries and removes the
	// given existing ones, updating the parent's subentries count, all in one
	// transaction.
	ReplaceSubentries(ctx context.Context, parent *domain.Entry, toCreate []domain.Entry, toDeleteIDs []int64) error
}

// EntryRepositoryFacade combines all entry-related repository interfaces.
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
}
