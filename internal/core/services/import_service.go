package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/skarbnik/troop_ledger_app/internal/core/domain"
	portsrepo "github.com/skarbnik/troop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/skarbnik/troop_ledger_app/internal/core/ports/services"
	"github.com/skarbnik/troop_ledger_app/internal/dto"
	"github.com/skarbnik/troop_ledger_app/internal/platform/logging"
)

// importService books structured bank-statement records into the unit's bank
// journals. Each record goes through the same validation as a hand-entered
// entry; a rejected record is logged and skipped, never retried or
// deduplicated, so re-importing a file books duplicates.
type importService struct {
	unitRepo        portsrepo.UnitRepositoryFacade
	journalTypeRepo portsrepo.JournalTypeRepositoryFacade
	importLogRepo   portsrepo.ImportLogRepositoryFacade
	journalSvc      portssvc.JournalSvcFacade
	entrySvc        portssvc.EntrySvcFacade
	validate        *validator.Validate
	now             func() time.Time
}

// NewImportService creates a new bank-statement import service.
func NewImportService(unitRepo portsrepo.UnitRepositoryFacade, journalTypeRepo portsrepo.JournalTypeRepositoryFacade, importLogRepo portsrepo.ImportLogRepositoryFacade, journalSvc portssvc.JournalSvcFacade, entrySvc portssvc.EntrySvcFacade) portssvc.ImportSvcFacade {
	return &importService{
		unitRepo:        unitRepo,
		journalTypeRepo: journalTypeRepo,
		importLogRepo:   importLogRepo,
		journalSvc:      journalSvc,
		entrySvc:        entrySvc,
		validate:        validator.New(),
		now:             time.Now,
	}
}

var _ portssvc.ImportSvcFacade = (*importService)(nil)

// ImportStatements books the batch record by record and persists an audit log
// summarizing the outcome. The returned log reflects partial success; the
// error return is reserved for failures outside the per-record loop.
func (s *importService) ImportStatements(ctx context.Context, req dto.ImportBatchRequest) (*domain.BankImportLog, error) {
	logger := logging.FromCtx(ctx)

	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid import batch: %w", err)
	}

	unit, err := s.unitRepo.FindUnitByID(ctx, req.UnitID)
	if err != nil {
		return nil, fmt.Errorf("failed to find unit %d: %w", req.UnitID, err)
	}
	if !unit.AutoBankImport {
		return nil, fmt.Errorf("unit %s does not accept automatic bank imports", unit.Code)
	}

	bankType, err := s.journalTypeRepo.FindJournalTypeByKind(ctx, domain.KindBank)
	if err != nil {
		return nil, fmt.Errorf("failed to find bank journal type: %w", err)
	}

	importLog := domain.BankImportLog{
		ImportLogID:   uuid.NewString(),
		UnitID:        unit.UnitID,
		FileName:      req.FileName,
		AccountNumber: req.AccountNumber,
		ImportDate:    s.now(),
	}

	for i, record := range req.Records {
		if importLog.Year == 0 {
			importLog.Year = record.Date.Year()
		}
		if err := s.importRecord(ctx, unit, bankType, record); err != nil {
			importLog.ErrorCount++
			importLog.ErrorMessages = append(importLog.ErrorMessages,
				fmt.Sprintf("record %d (%s): %v", i+1, record.ExternalReference, err))
			continue
		}
		importLog.SuccessCount++
	}

	if err := s.importLogRepo.SaveImportLog(ctx, importLog); err != nil {
		return nil, fmt.Errorf("failed to save import log: %w", err)
	}
	logger.Info("Bank statement batch imported",
		slog.String("import_log_id", importLog.ImportLogID),
		slog.String("unit", unit.Code),
		slog.String("file", importLog.FileName),
		slog.Int("success_count", importLog.SuccessCount),
		slog.Int("error_count", importLog.ErrorCount))

	return &importLog, nil
}

// importRecord books one feed record as a bank entry. The record's sign
// decides the entry type; the booked amount is always absolute.
func (s *importService) importRecord(ctx context.Context, unit *domain.Unit, bankType *domain.JournalType, record dto.StatementRecord) error {
	journal, err := s.journalSvc.GetOrCreateJournal(ctx, unit.UnitID, bankType.JournalTypeID, record.Date.Year())
	if err != nil {
		return fmt.Errorf("failed to resolve bank journal: %w", err)
	}

	name := record.Description
	if record.Counterparty != "" {
		name = strings.TrimSpace(record.Counterparty + " " + record.Description)
	}

	_, err = s.entrySvc.CreateEntry(ctx, dto.CreateEntryRequest{
		JournalID:       journal.JournalID,
		Date:            record.Date,
		Name:            name,
		IsExpense:       record.Amount.IsNegative(),
		StatementNumber: record.ExternalReference,
		Items: []dto.ItemInput{
			{CategoryID: record.CategoryID, Amount: record.Amount.Abs()},
		},
	})
	return err
}
