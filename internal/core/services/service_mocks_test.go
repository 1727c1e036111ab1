package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/skarbnik/troop_ledger_app/internal/core/domain"
	"github.com/skarbnik/troop_ledger_app/internal/dto"
)

// --- Mock JournalSvc ---
type MockJournalSvc struct {
	mock.Mock
}

func (m *MockJournalSvc) GetJournalByID(ctx context.Context, journalID int64) (*domain.Journal, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalSvc) GetOrCreateJournal(ctx context.Context, unitID, journalTypeID int64, year int) (*domain.Journal, error) {
	args := m.Called(ctx, unitID, journalTypeID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalSvc) GetCurrentForType(ctx context.Context, unitID, journalTypeID int64) (*domain.Journal, error) {
	args := m.Called(ctx, unitID, journalTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalSvc) GetPreviousForType(ctx context.Context, unitID, journalTypeID int64) (*domain.Journal, error) {
	args := m.Called(ctx, unitID, journalTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalSvc) JournalBalances(ctx context.Context, journalID int64, toDate time.Time) (*dto.JournalBalancesResponse, error) {
	args := m.Called(ctx, journalID, toDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.JournalBalancesResponse), args.Error(1)
}

func (m *MockJournalSvc) CategorySum(ctx context.Context, journalID, categoryID int64, toDate time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, journalID, categoryID, toDate)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockJournalSvc) BalanceForGrant(ctx context.Context, journalID, grantID int64, toDate time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, journalID, grantID, toDate)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockJournalSvc) VerifyJournal(ctx context.Context, journalID int64, blockedTo time.Time) error {
	args := m.Called(ctx, journalID, blockedTo)
	return args.Error(0)
}

func (m *MockJournalSvc) CloseJournal(ctx context.Context, journalID int64, blockedTo time.Time) error {
	args := m.Called(ctx, journalID, blockedTo)
	return args.Error(0)
}

func (m *MockJournalSvc) ReopenJournal(ctx context.Context, journalID int64) error {
	args := m.Called(ctx, journalID)
	return args.Error(0)
}

func (m *MockJournalSvc) RecalculateNextInitialBalances(ctx context.Context, journalID int64) error {
	args := m.Called(ctx, journalID)
	return args.Error(0)
}

func (m *MockJournalSvc) CloseOldOpenJournals(ctx context.Context, olderThanYear int) (*dto.CloseOldJournalsResponse, error) {
	args := m.Called(ctx, olderThanYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CloseOldJournalsResponse), args.Error(1)
}

// --- Mock EntrySvc ---
type MockEntrySvc struct {
	mock.Mock
}

func (m *MockEntrySvc) GetEntryByID(ctx context.Context, entryID int64) (*domain.Entry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockEntrySvc) CreateEntry(ctx context.Context, req dto.CreateEntryRequest) (*domain.Entry, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockEntrySvc) UpdateEntry(ctx context.Context, entryID int64, req dto.UpdateEntryRequest) (*domain.Entry, error) {
	args := m.Called(ctx, entryID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockEntrySvc) DeleteEntry(ctx context.Context, entryID int64) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

func (m *MockEntrySvc) EntryBalance(ctx context.Context, entryID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, entryID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockEntrySvc) UpdateSubentries(ctx context.Context, parentEntryID int64, subentryCount int) ([]domain.Entry, error) {
	args := m.Called(ctx, parentEntryID, subentryCount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entry), args.Error(1)
}
