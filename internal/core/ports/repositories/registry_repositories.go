package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/skarbnik/troop_ledger_app/internal/core/domain"
)

// CategoryRepositoryFacade reads the per-year category registry.
// Categories are external data, read-only to the ledger.
type CategoryRepositoryFacade interface {
	FindCategoriesByYear(ctx context.Context, year int) ([]domain.Category, error)
	FindCategoryByYearAndName(ctx context.Context, year int, name string) (*domain.Category, error)
}

// GrantRepositoryFacade reads the grant registry.
type GrantRepositoryFacade interface {
	ListGrants(ctx context.Context) ([]domain.Grant, error)
}

// UnitRepositoryFacade reads organizational units.
type UnitRepositoryFacade interface {
	FindUnitByID(ctx context.Context, unitID int64) (*domain.Unit, error)
	FindUnitByCode(ctx context.Context, code string) (*domain.Unit, error)
	ListUnits(ctx context.Context) ([]domain.Unit, error)
}

// JournalTypeRepositoryFacade reads the journal type registry.
type JournalTypeRepositoryFacade interface {
	FindJournalTypeByID(ctx context.Context, journalTypeID int64) (*domain.JournalType, error)
	FindJournalTypeByKind(ctx context.Context, kind domain.JournalTypeKind) (*domain.JournalType, error)
	ListJournalTypes(ctx context.Context) ([]domain.JournalType, error)
}

// InventoryRepositoryFacade reads the inventory book for reconciliation.
// The ledger never writes inventory records.
type InventoryRepositoryFacade interface {
	// InventoryIncomeTotals sums income inventory record values for the unit
	// and year, grouped by inventory source id.
	InventoryIncomeTotals(ctx context.Context, unitID int64, year int) (map[int64]decimal.Decimal, error)

	FindInventorySourceByID(ctx context.Context, inventorySourceID int64) (*domain.InventorySource, error)
}

// ImportLogRepositoryFacade persists the append-only bank import audit trail.
type ImportLogRepositoryFacade interface {
	SaveImportLog(ctx context.Context, log domain.BankImportLog) error
	ListImportLogsByUnit(ctx context.Context, unitID int64, limit int) ([]domain.BankImportLog, error)
}
