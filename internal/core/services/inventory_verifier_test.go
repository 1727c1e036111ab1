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
)

type InventoryVerifierTestSuite struct {
	suite.Suite
	mockJournalRepo     *MockJournalRepository
	mockCategoryRepo    *MockCategoryRepository
	mockJournalTypeRepo *MockJournalTypeRepository
	mockInventoryRepo   *MockInventoryRepository
	verifier            portssvc.InventoryVerifierFacade
	unit                domain.Unit
}

func (suite *InventoryVerifierTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.mockJournalTypeRepo = new(MockJournalTypeRepository)
	suite.mockInventoryRepo = new(MockInventoryRepository)
	suite.verifier = services.NewInventoryEntryVerifier(suite.mockJournalRepo, suite.mockCategoryRepo, suite.mockJournalTypeRepo, suite.mockInventoryRepo)
	suite.unit = domain.Unit{UnitID: 1, Code: "21wdh"}
}

func (suite *InventoryVerifierTestSuite) journalTypes() []domain.JournalType {
	return []domain.JournalType{
		{JournalTypeID: 10, Name: "Książka finansowa", Kind: domain.KindFinance},
		{JournalTypeID: 20, Name: "Książka bankowa", Kind: domain.KindBank},
		{JournalTypeID: 30, Name: "Książka inwentarzowa", Kind: domain.KindInventory},
	}
}

func (suite *InventoryVerifierTestSuite) equipmentCategory() *domain.Category {
	return &domain.Category{CategoryID: 3, Year: 2024, Name: "Wyposażenie", IsExpense: true}
}

func equipmentEntries(categoryID int64, amounts ...int64) []domain.Entry {
	entries := make([]domain.Entry, 0, len(amounts))
	for i, amount := range amounts {
		entries = append(entries, domain.Entry{
			EntryID:   int64(i + 1),
			Date:      domain.Day(2024, time.March, i+1),
			IsExpense: true,
			Items:     []domain.Item{{CategoryID: categoryID, Amount: decimal.NewFromInt(amount)}},
		})
	}
	return entries
}

func (suite *InventoryVerifierTestSuite) TestVerify_Reconciles() {
	ctx := context.Background()
	financeJournal := &domain.Journal{JournalID: 1, UnitID: 1, JournalTypeID: 10, Year: 2024}

	suite.mockJournalTypeRepo.On("ListJournalTypes", ctx).Return(suite.journalTypes(), nil).Once()
	suite.mockCategoryRepo.On("FindCategoryByYearAndName", mock.Anything, 2024, "Wyposażenie").Return(suite.equipmentCategory(), nil).Once()
	suite.mockInventoryRepo.On("InventoryIncomeTotals", mock.Anything, int64(1), 2024).Return(map[int64]decimal.Decimal{10: decimal.NewFromInt(150)}, nil).Once()

	suite.mockJournalRepo.On("FindJournalByUnitTypeYear", mock.Anything, int64(1), int64(10), 2024).Return(financeJournal, nil).Once()
	suite.mockJournalRepo.On("FindEntriesForRange", mock.Anything, int64(1), (*time.Time)(nil), (*time.Time)(nil)).Return(equipmentEntries(3, 100, 50), nil).Once()
	// No bank or inventory journal for the year means zero booked, matching
	// zero inventory income for those sources.
	suite.mockJournalRepo.On("FindJournalByUnitTypeYear", mock.Anything, int64(1), int64(20), 2024).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockJournalRepo.On("FindJournalByUnitTypeYear", mock.Anything, int64(1), int64(30), 2024).Return(nil, apperrors.ErrNotFound).Once()

	fields, err := suite.verifier.Verify(ctx, suite.unit, []int{2024})

	suite.Require().NoError(err)
	suite.True(fields.IsEmpty(), "expected no mismatches, got: %s", fields)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *InventoryVerifierTestSuite) TestVerify_ReportsMismatch() {
	ctx := context.Background()
	financeJournal := &domain.Journal{JournalID: 1, UnitID: 1, JournalTypeID: 10, Year: 2024}

	suite.mockJournalTypeRepo.On("ListJournalTypes", ctx).Return(suite.journalTypes(), nil).Once()
	suite.mockCategoryRepo.On("FindCategoryByYearAndName", mock.Anything, 2024, "Wyposażenie").Return(suite.equipmentCategory(), nil).Once()
	suite.mockInventoryRepo.On("InventoryIncomeTotals", mock.Anything, int64(1), 2024).Return(map[int64]decimal.Decimal{10: decimal.NewFromInt(150)}, nil).Once()

	suite.mockJournalRepo.On("FindJournalByUnitTypeYear", mock.Anything, int64(1), int64(10), 2024).Return(financeJournal, nil).Once()
	suite.mockJournalRepo.On("FindEntriesForRange", mock.Anything, int64(1), (*time.Time)(nil), (*time.Time)(nil)).Return(equipmentEntries(3, 100), nil).Once()
	suite.mockJournalRepo.On("FindJournalByUnitTypeYear", mock.Anything, int64(1), int64(20), 2024).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockJournalRepo.On("FindJournalByUnitTypeYear", mock.Anything, int64(1), int64(30), 2024).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockInventoryRepo.On("FindInventorySourceByID", mock.Anything, int64(10)).Return(&domain.InventorySource{InventorySourceID: 10, Name: "zakup z książki finansowej"}, nil).Once()

	fields, err := suite.verifier.Verify(ctx, suite.unit, []int{2024})

	suite.Require().NoError(err)
	suite.Require().Len(fields, 1)
	suite.Contains(fields, "Książka finansowa 2024")
	suite.Contains(fields.String(), "100.00")
	suite.Contains(fields.String(), "150.00")
	suite.Contains(fields.String(), "zakup z książki finansowej")
}

func (suite *InventoryVerifierTestSuite) TestVerify_InventoryBookTakesPart() {
	ctx := context.Background()

	suite.mockJournalTypeRepo.On("ListJournalTypes", ctx).Return(suite.journalTypes(), nil).Once()
	suite.mockCategoryRepo.On("FindCategoryByYearAndName", mock.Anything, 2024, "Wyposażenie").Return(suite.equipmentCategory(), nil).Once()
	// Inventory income attributed to the inventory book's own source, with no
	// journal of any type booked for the year.
	suite.mockInventoryRepo.On("InventoryIncomeTotals", mock.Anything, int64(1), 2024).Return(map[int64]decimal.Decimal{30: decimal.NewFromInt(40)}, nil).Once()
	for _, typeID := range []int64{10, 20, 30} {
		suite.mockJournalRepo.On("FindJournalByUnitTypeYear", mock.Anything, int64(1), typeID, 2024).Return(nil, apperrors.ErrNotFound).Once()
	}
	suite.mockInventoryRepo.On("FindInventorySourceByID", mock.Anything, int64(30)).Return(&domain.InventorySource{InventorySourceID: 30, Name: "przekazanie z książki inwentarzowej"}, nil).Once()

	fields, err := suite.verifier.Verify(ctx, suite.unit, []int{2024})

	suite.Require().NoError(err)
	suite.Require().Len(fields, 1)
	suite.Contains(fields, "Książka inwentarzowa 2024")
	suite.Contains(fields.String(), "40.00")
}

func (suite *InventoryVerifierTestSuite) TestVerify_YearWithoutEquipmentCategory() {
	ctx := context.Background()

	suite.mockJournalTypeRepo.On("ListJournalTypes", ctx).Return(suite.journalTypes(), nil).Once()
	suite.mockCategoryRepo.On("FindCategoryByYearAndName", mock.Anything, 2019, "Wyposażenie").Return(nil, apperrors.ErrNotFound).Once()

	fields, err := suite.verifier.Verify(ctx, suite.unit, []int{2019})

	suite.Require().NoError(err)
	suite.True(fields.IsEmpty())
	suite.mockInventoryRepo.AssertNotCalled(suite.T(), "InventoryIncomeTotals", mock.Anything, mock.Anything, mock.Anything)
}

func TestInventoryVerifierTestSuite(t *testing.T) {
	suite.Run(t, new(InventoryVerifierTestSuite))
}
