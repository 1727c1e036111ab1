package services

import (
	portsrepo "github.com/skarbnik/troop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/skarbnik/troop_ledger_app/internal/core/ports/services"
)

// NewServiceProvider wires the service graph on top of the repository set.
// The inventory verifier feeds journal verification, the journal service
// feeds entry booking, and the import service sits on top of both.
func NewServiceProvider(repos portsrepo.RepositoryProvider) portssvc.ServiceProvider {
	inventorySvc := NewInventoryEntryVerifier(repos.JournalRepo, repos.CategoryRepo, repos.JournalTypeRepo, repos.InventoryRepo)
	journalSvc := NewJournalService(repos.JournalRepo, repos.GrantRepo, repos.UnitRepo, inventorySvc)
	entrySvc := NewEntryService(repos.EntryRepo, repos.JournalRepo, repos.CategoryRepo, repos.JournalTypeRepo)
	importSvc := NewImportService(repos.UnitRepo, repos.JournalTypeRepo, repos.ImportLogRepo, journalSvc, entrySvc)

	return portssvc.ServiceProvider{
		JournalSvc:   journalSvc,
		EntrySvc:     entrySvc,
		ImportSvc:    importSvc,
		InventorySvc: inventorySvc,
	}
}
