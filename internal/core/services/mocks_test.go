package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/skarbnik/troop_ledger_app/internal/apperrors"
	"github.com/skarbnik/troop_ledger_app/internal/core/domain"
)

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, journalID int64) (*domain.Journal, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindJournalByUnitTypeYear(ctx context.Context, unitID, journalTypeID int64, year int) (*domain.Journal, error) {
	args := m.Called(ctx, unitID, journalTypeID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindPreviousJournal(ctx context.Context, unitID, journalTypeID int64, maxYear int) (*domain.Journal, error) {
	args := m.Called(ctx, unitID, journalTypeID, maxYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindNextJournal(ctx context.Context, unitID, journalTypeID int64, minYear int) (*domain.Journal, error) {
	args := m.Called(ctx, unitID, journalTypeID, minYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindEntriesForRange(ctx context.Context, journalID int64, fromDate, toDate *time.Time) ([]domain.Entry, error) {
	args := m.Called(ctx, journalID, fromDate, toDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}

func (m *MockJournalRepository) FindJournalGrants(ctx context.Context, journalID int64) ([]domain.JournalGrant, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalGrant), args.Error(1)
}

func (m *MockJournalRepository) FindOpenJournalsOlderThan(ctx context.Context, olderThanYear int) ([]domain.Journal, error) {
	args := m.Called(ctx, olderThanYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) ListChainHeads(ctx context.Context) ([]domain.Journal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) CreateJournal(ctx context.Context, journal domain.Journal, journalGrants []domain.JournalGrant) (*domain.Journal, error) {
	args := m.Called(ctx, journal, journalGrants)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) UpdateJournalBlockedState(ctx context.Context, journalID int64, isOpen bool, blockedTo *time.Time) error {
	args := m.Called(ctx, journalID, isOpen, blockedTo)
	return args.Error(0)
}

func (m *MockJournalRepository) RecalculateNextInitialBalances(ctx context.Context, journal domain.Journal) error {
	args := m.Called(ctx, journal)
	return args.Error(0)
}

// --- Mock EntryRepository ---
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) FindEntryByID(ctx context.Context, entryID int64) (*domain.Entry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) FindSubentries(ctx context.Context, parentEntryID int64) ([]domain.Entry, error) {
	args := m.Called(ctx, parentEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) SaveEntry(ctx context.Context, entry *domain.Entry, linked *domain.Entry) error {
	args := m.Called(ctx, entry, linked)
	return args.Error(0)
}

func (m *MockEntryRepository) DeleteEntry(ctx context.Context, entry domain.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) ReplaceSubentries(ctx context.Context, parent *domain.Entry, toCreate []domain.Entry, toDeleteIDs []int64) error {
	args := m.Called(ctx, parent, toCreate, toDeleteIDs)
	return args.Error(0)
}

// --- Mock CategoryRepository ---
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindCategoriesByYear(ctx context.Context, year int) ([]domain.Category, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindCategoryByYearAndName(ctx context.Context, year int, name string) (*domain.Category, error) {
	args := m.Called(ctx, year, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

// --- Mock GrantRepository ---
type MockGrantRepository struct {
	mock.Mock
}

func (m *MockGrantRepository) ListGrants(ctx context.Context) ([]domain.Grant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Grant), args.Error(1)
}

// --- Mock UnitRepository ---
type MockUnitRepository struct {
	mock.Mock
}

func (m *MockUnitRepository) FindUnitByID(ctx context.Context, unitID int64) (*domain.Unit, error) {
	args := m.Called(ctx, unitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Unit), args.Error(1)
}

func (m *MockUnitRepository) FindUnitByCode(ctx context.Context, code string) (*domain.Unit, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Unit), args.Error(1)
}

func (m *MockUnitRepository) ListUnits(ctx context.Context) ([]domain.Unit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Unit), args.Error(1)
}

// --- Mock JournalTypeRepository ---
type MockJournalTypeRepository struct {
	mock.Mock
}

func (m *MockJournalTypeRepository) FindJournalTypeByID(ctx context.Context, journalTypeID int64) (*domain.JournalType, error) {
	args := m.Called(ctx, journalTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalType), args.Error(1)
}

func (m *MockJournalTypeRepository) FindJournalTypeByKind(ctx context.Context, kind domain.JournalTypeKind) (*domain.JournalType, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalType), args.Error(1)
}

func (m *MockJournalTypeRepository) ListJournalTypes(ctx context.Context) ([]domain.JournalType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalType), args.Error(1)
}

// --- Mock InventoryRepository ---
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) InventoryIncomeTotals(ctx context.Context, unitID int64, year int) (map[int64]decimal.Decimal, error) {
	args := m.Called(ctx, unitID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]decimal.Decimal), args.Error(1)
}

func (m *MockInventoryRepository) FindInventorySourceByID(ctx context.Context, inventorySourceID int64) (*domain.InventorySource, error) {
	args := m.Called(ctx, inventorySourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventorySource), args.Error(1)
}

// --- Mock ImportLogRepository ---
type MockImportLogRepository struct {
	mock.Mock
}

func (m *MockImportLogRepository) SaveImportLog(ctx context.Context, log domain.BankImportLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockImportLogRepository) ListImportLogsByUnit(ctx context.Context, unitID int64, limit int) ([]domain.BankImportLog, error) {
	args := m.Called(ctx, unitID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankImportLog), args.Error(1)
}

// --- Mock InventoryVerifier ---
type MockInventoryVerifier struct {
	mock.Mock
}

func (m *MockInventoryVerifier) Verify(ctx context.Context, unit domain.Unit, years []int) (apperrors.FieldErrors, error) {
	args := m.Called(ctx, unit, years)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(apperrors.FieldErrors), args.Error(1)
}
