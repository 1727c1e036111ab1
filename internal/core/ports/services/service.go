package services

// ServiceProvider bundles the service facades for consumers (batch tools,
// future transport layers).
type ServiceProvider struct {
	JournalSvc   JournalSvcFacade
	EntrySvc     EntrySvcFacade
	ImportSvc    ImportSvcFacade
	InventorySvc InventoryVerifierFacade
}
