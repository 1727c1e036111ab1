package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	JournalRepo     JournalRepositoryFacade
	EntryRepo       EntryRepositoryFacade
	CategoryRepo    CategoryRepositoryFacade
	GrantRepo       GrantRepositoryFacade
	UnitRepo        UnitRepositoryFacade
	JournalTypeRepo JournalTypeRepositoryFacade
	InventoryRepo   InventoryRepositoryFacade
	ImportLogRepo   ImportLogRepositoryFacade
}
