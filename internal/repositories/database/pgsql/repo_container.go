package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/skarbnik/troop_ledger_app/internal/core/ports/repositories"
)

// NewRepositoryProvider builds the full repository set over one pgx pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		JournalRepo:     newPgxJournalRepository(pool),
		EntryRepo:       newPgxEntryRepository(pool),
		CategoryRepo:    newPgxCategoryRepository(pool),
		GrantRepo:       newPgxGrantRepository(pool),
		UnitRepo:        newPgxUnitRepository(pool),
		JournalTypeRepo: newPgxJournalTypeRepository(pool),
		InventoryRepo:   newPgxInventoryRepository(pool),
		ImportLogRepo:   newPgxImportLogRepository(pool),
	}
}
