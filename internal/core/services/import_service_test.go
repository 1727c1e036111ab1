package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/skarbnik/troop_ledger_app/internal/apperrors"
	"github.com/skarbnik/troop_ledger_app/internal/core/domain"
	portssvc "github.com/skarbnik/troop_ledger_app/internal/core/ports/services"
	"github.com/skarbnik/troop_ledger_app/internal/core/services"
	"github.com/skarbnik/troop_ledger_app/internal/dto"
)

type ImportServiceTestSuite struct {
	suite.Suite
	mockUnitRepo        *MockUnitRepository
	mockJournalTypeRepo *MockJournalTypeRepository
	mockImportLogRepo   *MockImportLogRepository
	mockJournalSvc      *MockJournalSvc
	mockEntrySvc        *MockEntrySvc
	service             portssvc.ImportSvcFacade
}

func (suite *ImportServiceTestSuite) SetupTest() {
	suite.mockUnitRepo = new(MockUnitRepository)
	suite.mockJournalTypeRepo = new(MockJournalTypeRepository)
	suite.mockImportLogRepo = new(MockImportLogRepository)
	suite.mockJournalSvc = new(MockJournalSvc)
	suite.mockEntrySvc = new(MockEntrySvc)
	suite.service = services.NewImportService(suite.mockUnitRepo, suite.mockJournalTypeRepo, suite.mockImportLogRepo, suite.mockJournalSvc, suite.mockEntrySvc)
}

func (suite *ImportServiceTestSuite) bankType() *domain.JournalType {
	return &domain.JournalType{JournalTypeID: 20, Name: "Książka bankowa", Kind: domain.KindBank}
}

func record(ref string, amount int64) dto.StatementRecord {
	return dto.StatementRecord{
		Date:              domain.Day(2024, time.May, 6),
		Amount:            decimal.NewFromInt(amount),
		Description:       "przelew",
		ExternalReference: ref,
		CategoryID:        1,
	}
}

func (suite *ImportServiceTestSuite) TestImportStatements_PartialSuccess() {
	ctx := context.Background()
	unit := &domain.Unit{UnitID: 1, Code: "21wdh", AutoBankImport: true}
	journal := &domain.Journal{JournalID: 5, UnitID: 1, JournalTypeID: 20, Year: 2024}

	suite.mockUnitRepo.On("FindUnitByID", ctx, int64(1)).Return(unit, nil).Once()
	suite.mockJournalTypeRepo.On("FindJournalTypeByKind", ctx, domain.KindBank).Return(suite.bankType(), nil).Once()
	suite.mockJournalSvc.On("GetOrCreateJournal", ctx, int64(1), int64(20), 2024).Return(journal, nil).Twice()

	suite.mockEntrySvc.On("CreateEntry", ctx, mock.MatchedBy(func(req dto.CreateEntryRequest) bool {
		return req.StatementNumber == "REF-1"
	})).Return(&domain.Entry{EntryID: 100}, nil).Once()
	suite.mockEntrySvc.On("CreateEntry", ctx, mock.MatchedBy(func(req dto.CreateEntryRequest) bool {
		return req.StatementNumber == "REF-2"
	})).Return(nil, apperrors.NewValidationError(apperrors.FieldErrors{"items": {"an entry must have at least one item"}})).Once()

	suite.mockImportLogRepo.On("SaveImportLog", ctx, mock.MatchedBy(func(log domain.BankImportLog) bool {
		return log.SuccessCount == 1 && log.ErrorCount == 1 && log.Year == 2024 && log.ImportLogID != ""
	})).Return(nil).Once()

	importLog, err := suite.service.ImportStatements(ctx, dto.ImportBatchRequest{
		UnitID:   1,
		FileName: "statement-2024-05.json",
		Records:  []dto.StatementRecord{record("REF-1", 50), record("REF-2", 30)},
	})

	suite.Require().NoError(err)
	suite.True(importLog.PartiallySuccessful())
	suite.Require().Len(importLog.ErrorMessages, 1)
	suite.Contains(importLog.ErrorMessages[0], "record 2 (REF-2)")
	suite.mockImportLogRepo.AssertExpectations(suite.T())
}

func (suite *ImportServiceTestSuite) TestImportStatements_ExpenseSign() {
	ctx := context.Background()
	unit := &domain.Unit{UnitID: 1, Code: "21wdh", AutoBankImport: true}
	journal := &domain.Journal{JournalID: 5, UnitID: 1, JournalTypeID: 20, Year: 2024}

	suite.mockUnitRepo.On("FindUnitByID", ctx, int64(1)).Return(unit, nil).Once()
	suite.mockJournalTypeRepo.On("FindJournalTypeByKind", ctx, domain.KindBank).Return(suite.bankType(), nil).Once()
	suite.mockJournalSvc.On("GetOrCreateJournal", ctx, int64(1), int64(20), 2024).Return(journal, nil).Once()

	suite.mockEntrySvc.On("CreateEntry", ctx, mock.MatchedBy(func(req dto.CreateEntryRequest) bool {
		return req.IsExpense && len(req.Items) == 1 && req.Items[0].Amount.Equal(decimal.NewFromInt(75))
	})).Return(&domain.Entry{EntryID: 100}, nil).Once()
	suite.mockImportLogRepo.On("SaveImportLog", ctx, mock.Anything).Return(nil).Once()

	importLog, err := suite.service.ImportStatements(ctx, dto.ImportBatchRequest{
		UnitID:   1,
		FileName: "statement.json",
		Records:  []dto.StatementRecord{record("REF-3", -75)},
	})

	suite.Require().NoError(err)
	suite.True(importLog.Successful())
	suite.mockEntrySvc.AssertExpectations(suite.T())
}

func (suite *ImportServiceTestSuite) TestImportStatements_NoDeduplication() {
	ctx := context.Background()
	unit := &domain.Unit{UnitID: 1, Code: "21wdh", AutoBankImport: true}
	journal := &domain.Journal{JournalID: 5, UnitID: 1, JournalTypeID: 20, Year: 2024}

	suite.mockUnitRepo.On("FindUnitByID", ctx, int64(1)).Return(unit, nil).Once()
	suite.mockJournalTypeRepo.On("FindJournalTypeByKind", ctx, domain.KindBank).Return(suite.bankType(), nil).Once()
	suite.mockJournalSvc.On("GetOrCreateJournal", ctx, int64(1), int64(20), 2024).Return(journal, nil).Twice()
	suite.mockEntrySvc.On("CreateEntry", ctx, mock.Anything).Return(&domain.Entry{EntryID: 100}, nil).Twice()
	suite.mockImportLogRepo.On("SaveImportLog", ctx, mock.MatchedBy(func(log domain.BankImportLog) bool {
		return log.SuccessCount == 2
	})).Return(nil).Once()

	importLog, err := suite.service.ImportStatements(ctx, dto.ImportBatchRequest{
		UnitID:   1,
		FileName: "statement.json",
		Records:  []dto.StatementRecord{record("REF-1", 50), record("REF-1", 50)},
	})

	suite.Require().NoError(err)
	suite.Equal(2, importLog.SuccessCount)
	suite.mockEntrySvc.AssertExpectations(suite.T())
}

func (suite *ImportServiceTestSuite) TestImportStatements_UnitWithoutAutoImport() {
	ctx := context.Background()
	unit := &domain.Unit{UnitID: 1, Code: "21wdh", AutoBankImport: false}

	suite.mockUnitRepo.On("FindUnitByID", ctx, int64(1)).Return(unit, nil).Once()

	importLog, err := suite.service.ImportStatements(ctx, dto.ImportBatchRequest{
		UnitID:   1,
		FileName: "statement.json",
		Records:  []dto.StatementRecord{record("REF-1", 50)},
	})

	suite.Require().Error(err)
	suite.Nil(importLog)
	suite.mockImportLogRepo.AssertNotCalled(suite.T(), "SaveImportLog", mock.Anything, mock.Anything)
}

func (suite *ImportServiceTestSuite) TestImportStatements_EmptyBatchRejected() {
	ctx := context.Background()

	importLog, err := suite.service.ImportStatements(ctx, dto.ImportBatchRequest{
		UnitID:   1,
		FileName: "statement.json",
	})

	suite.Require().Error(err)
	suite.Nil(importLog)
	suite.mockUnitRepo.AssertNotCalled(suite.T(), "FindUnitByID", mock.Anything, mock.Anything)
}

func TestImportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ImportServiceTestSuite))
}
