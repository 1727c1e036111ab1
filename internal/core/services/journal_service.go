package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/skarbnik/troop_ledger_app/internal/apperrors"
	"github.com/skarbnik/troop_ledger_app/internal/core/domain"
	portsrepo "github.com/skarbnik/troop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/skarbnik/troop_ledger_app/internal/core/ports/services"
	"github.com/skarbnik/troop_ledger_app/internal/dto"
	"github.com/skarbnik/troop_ledger_app/internal/platform/logging"
	"github.com/skarbnik/troop_ledger_app/internal/utils/accounting"
)

var (
	ErrBlockDateInvalid = errors.New("journal close date must fall within the journal's year")
)

// journalService is the journal balance and lifecycle engine. All sums are
// re-derived from persisted entries per request; the only caching is the
// operation-scoped accounting.Ledger.
type journalService struct {
	journalRepo  portsrepo.JournalRepositoryFacade
	grantRepo    portsrepo.GrantRepositoryFacade
	unitRepo     portsrepo.UnitRepositoryFacade
	inventorySvc portssvc.InventoryVerifierFacade
	now          func() time.Time
}

// NewJournalService creates a new journal service.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, grantRepo portsrepo.GrantRepositoryFacade, unitRepo portsrepo.UnitRepositoryFacade, inventorySvc portssvc.InventoryVerifierFacade) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo:  journalRepo,
		grantRepo:    grantRepo,
		unitRepo:     unitRepo,
		inventorySvc: inventorySvc,
		now:          time.Now,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// GetJournalByID retrieves a journal by id.
func (s *journalService) GetJournalByID(ctx context.Context, journalID int64) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal %d: %w", journalID, err)
	}
	return journal, nil
}

// GetOrCreateJournal resolves the (unit, type, year) journal, creating it on
// demand. The unique constraint on (unit, type, year) is the source of truth
// for creation races: a duplicate insert is resolved by re-fetching.
func (s *journalService) GetOrCreateJournal(ctx context.Context, unitID, journalTypeID int64, year int) (*domain.Journal, error) {
	logger := logging.FromCtx(ctx)

	journal, err := s.journalRepo.FindJournalByUnitTypeYear(ctx, unitID, journalTypeID, year)
	if err == nil {
		return journal, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up journal for unit %d type %d year %d: %w", unitID, journalTypeID, year, err)
	}

	// A missing current-year journal is created open; a missing past-year
	// journal is created closed with the block boundary at its end of year.
	isOpen := year == s.now().Year()
	var blockedTo *time.Time
	if !isOpen {
		end := domain.EndOfYear(year)
		blockedTo = &end
	}

	newJournal := domain.Journal{
		UnitID:                   unitID,
		JournalTypeID:            journalTypeID,
		Year:                     year,
		IsOpen:                   isOpen,
		BlockedTo:                blockedTo,
		InitialBalance:           decimal.Zero,
		InitialBalanceOnePercent: decimal.Zero,
	}

	journalGrants, err := s.seedInitialBalances(ctx, &newJournal)
	if err != nil {
		return nil, err
	}

	created, err := s.journalRepo.CreateJournal(ctx, newJournal, journalGrants)
	if err == nil {
		logger.Info("Journal created on demand",
			slog.Int64("unit_id", unitID), slog.Int64("journal_type_id", journalTypeID), slog.Int("year", year))
		return created, nil
	}
	if errors.Is(err, apperrors.ErrDuplicate) {
		// Lost the creation race; the winner's row is authoritative.
		logger.Warn("Concurrent journal creation detected, re-fetching",
			slog.Int64("unit_id", unitID), slog.Int64("journal_type_id", journalTypeID), slog.Int("year", year))
		return s.journalRepo.FindJournalByUnitTypeYear(ctx, unitID, journalTypeID, year)
	}
	return nil, fmt.Errorf("failed to create journal for unit %d type %d year %d: %w", unitID, journalTypeID, year, err)
}

// GetCurrentForType resolves or creates the unit's current-year journal.
func (s *journalService) GetCurrentForType(ctx context.Context, unitID, journalTypeID int64) (*domain.Journal, error) {
	return s.GetOrCreateJournal(ctx, unitID, journalTypeID, s.now().Year())
}

// GetPreviousForType resolves or creates the unit's previous-year journal.
func (s *journalService) GetPreviousForType(ctx context.Context, unitID, journalTypeID int64) (*domain.Journal, error) {
	return s.GetOrCreateJournal(ctx, unitID, journalTypeID, s.now().Year()-1)
}

// seedInitialBalances derives the new journal's opening balances from the
// immediately preceding journal's full-year closing balances. Without a
// predecessor the balances stay zero and no journal grants are seeded.
func (s *journalService) seedInitialBalances(ctx context.Context, journal *domain.Journal) ([]domain.JournalGrant, error) {
	previous, err := s.journalRepo.FindPreviousJournal(ctx, journal.UnitID, journal.JournalTypeID, journal.Year-1)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find previous journal: %w", err)
	}

	ledger, err := s.loadLedger(ctx, *previous)
	if err != nil {
		return nil, err
	}
	journal.InitialBalance = ledger.FinalBalance()
	journal.InitialBalanceOnePercent = ledger.FinalBalanceOnePercent()

	grants, err := s.grantRepo.ListGrants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list grants: %w", err)
	}
	journalGrants := make([]domain.JournalGrant, 0, len(grants))
	for _, grant := range grants {
		journalGrants = append(journalGrants, domain.JournalGrant{
			GrantID:             grant.GrantID,
			InitialGrantBalance: ledger.FinalBalanceForGrant(grant.GrantID),
		})
	}
	return journalGrants, nil
}

// loadLedger builds the operation-scoped sum cache over the journal's
// persisted entries. The ledger never outlives the calling operation.
func (s *journalService) loadLedger(ctx context.Context, journal domain.Journal) (*accounting.Ledger, error) {
	entries, err := s.journalRepo.FindEntriesForRange(ctx, journal.JournalID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries for journal %d: %w", journal.JournalID, err)
	}
	journalGrants, err := s.journalRepo.FindJournalGrants(ctx, journal.JournalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal grants for journal %d: %w", journal.JournalID, err)
	}
	return accounting.NewLedger(journal, journalGrants, entries), nil
}

// JournalBalances derives the journal's balances up to toDate.
func (s *journalService) JournalBalances(ctx context.Context, journalID int64, toDate time.Time) (*dto.JournalBalancesResponse, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal %d: %w", journalID, err)
	}
	ledger, err := s.loadLedger(ctx, *journal)
	if err != nil {
		return nil, err
	}
	grants, err := s.grantRepo.ListGrants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list grants: %w", err)
	}

	grantBalances := make([]dto.GrantBalance, 0, len(grants))
	for _, grant := range grants {
		grantBalances = append(grantBalances, dto.GrantBalance{
			GrantID: grant.GrantID,
			Name:    grant.Name,
			Balance: ledger.BalanceForGrant(grant.GrantID, toDate),
		})
	}

	return &dto.JournalBalancesResponse{
		JournalID:         journal.JournalID,
		Year:              journal.Year,
		IsOpen:            journal.IsOpen,
		BlockedTo:         journal.BlockedTo,
		ToDate:            toDate,
		IncomeSum:         ledger.IncomeSum(toDate),
		ExpenseSum:        ledger.ExpenseSum(toDate),
		Balance:           ledger.Balance(toDate),
		BalanceOnePercent: ledger.BalanceOnePercent(toDate),
		GrantBalances:     grantBalances,
	}, nil
}

// CategorySum derives one category's sum up to toDate.
func (s *journalService) CategorySum(ctx context.Context, journalID, categoryID int64, toDate time.Time) (decimal.Decimal, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to find journal %d: %w", journalID, err)
	}
	ledger, err := s.loadLedger(ctx, *journal)
	if err != nil {
		return decimal.Zero, err
	}
	return ledger.CategorySum(categoryID, toDate), nil
}

// BalanceForGrant derives one grant's balance up to toDate.
func (s *journalService) BalanceForGrant(ctx context.Context, journalID, grantID int64, toDate time.Time) (decimal.Decimal, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to find journal %d: %w", journalID, err)
	}
	ledger, err := s.loadLedger(ctx, *journal)
	if err != nil {
		return decimal.Zero, err
	}
	return ledger.BalanceForGrant(grantID, toDate), nil
}

// VerifyJournal runs the full closing verification without persisting.
func (s *journalService) VerifyJournal(ctx context.Context, journalID int64, blockedTo time.Time) error {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return fmt.Errorf("failed to find journal %d: %w", journalID, err)
	}
	return s.verify(ctx, *journal, blockedTo)
}

// verify runs every closing check and collects all violations; it never
// short-circuits on the first failure.
func (s *journalService) verify(ctx context.Context, journal domain.Journal, blockedTo time.Time) error {
	ledger, err := s.loadLedger(ctx, journal)
	if err != nil {
		return err
	}
	grants, err := s.grantRepo.ListGrants(ctx)
	if err != nil {
		return fmt.Errorf("failed to list grants: %w", err)
	}

	fields := apperrors.FieldErrors{}

	onePercentBalance := ledger.BalanceOnePercent(blockedTo)
	if onePercentBalance.IsNegative() {
		fields.Add("one_percent", fmt.Sprintf("one-percent balance (%s) must not be less than zero", onePercentBalance))
	}

	grantBalancesSum := decimal.Zero
	for _, grant := range grants {
		balance := ledger.BalanceForGrant(grant.GrantID, blockedTo)
		grantBalancesSum = grantBalancesSum.Add(balance)
		if balance.IsNegative() {
			fields.Add("grants", fmt.Sprintf("closing balance for grant %s (%s) must not be less than zero", grant.Name, balance))
		}
	}

	balancesSum := onePercentBalance.Add(grantBalancesSum)
	totalBalance := ledger.Balance(blockedTo)
	if !balancesSum.IsZero() && balancesSum.GreaterThan(totalBalance) {
		if totalBalance.IsNegative() {
			fields.Add("one_percent", fmt.Sprintf("closing balance (%s) is negative: settle all grant funds down to zero (currently %s)", totalBalance, balancesSum))
		} else {
			fields.Add("one_percent", fmt.Sprintf("closing balance for grants (%s) must not exceed the journal balance (%s)", balancesSum, totalBalance))
		}
	}

	for _, entry := range ledger.Entries {
		for _, item := range entry.Items {
			if item.Category != nil && item.Category.IsOnePercent && !item.Amount.Equal(item.AmountOnePercent) {
				fields.Add("entries", fmt.Sprintf("invalid one-percent item in entry %d (amount=%s != amount_one_percent=%s)", entry.EntryID, item.Amount, item.AmountOnePercent))
			}
		}
	}

	unit, err := s.unitRepo.FindUnitByID(ctx, journal.UnitID)
	if err != nil {
		return fmt.Errorf("failed to find unit %d: %w", journal.UnitID, err)
	}
	inventoryFields, err := s.inventorySvc.Verify(ctx, *unit, []int{journal.Year})
	if err != nil {
		return fmt.Errorf("failed to verify inventory for unit %d year %d: %w", journal.UnitID, journal.Year, err)
	}
	fields.Merge(inventoryFields)

	if !fields.IsEmpty() {
		return apperrors.NewVerificationError(fields)
	}
	return nil
}

// CloseJournal verifies and blocks the journal up to blockedTo. On any
// verification failure the journal is left untouched.
func (s *journalService) CloseJournal(ctx context.Context, journalID int64, blockedTo time.Time) error {
	logger := logging.FromCtx(ctx)

	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return fmt.Errorf("failed to find journal %d: %w", journalID, err)
	}
	if blockedTo.IsZero() || blockedTo.Year() != journal.Year {
		fields := apperrors.FieldErrors{}
		fields.Add("blocked_to", ErrBlockDateInvalid.Error())
		return apperrors.NewValidationError(fields)
	}
	// Callers may hand in the boundary in any location; ledger dates are
	// day-granular UTC.
	blockedTo = domain.Day(blockedTo.Year(), blockedTo.Month(), blockedTo.Day())

	if err := s.verify(ctx, *journal, blockedTo); err != nil {
		return err
	}

	// Blocking up to the end of year closes the journal entirely; an earlier
	// boundary keeps it open for entries dated after the boundary.
	isOpen := !blockedTo.Equal(journal.EndOfYear())
	if err := s.journalRepo.UpdateJournalBlockedState(ctx, journalID, isOpen, &blockedTo); err != nil {
		return fmt.Errorf("failed to close journal %d: %w", journalID, err)
	}
	logger.Info("Journal closed", slog.Int64("journal_id", journalID), slog.Time("blocked_to", blockedTo), slog.Bool("is_open", isOpen))
	return nil
}

// ReopenJournal clears the block boundary and reopens the journal.
func (s *journalService) ReopenJournal(ctx context.Context, journalID int64) error {
	if err := s.journalRepo.UpdateJournalBlockedState(ctx, journalID, true, nil); err != nil {
		return fmt.Errorf("failed to reopen journal %d: %w", journalID, err)
	}
	return nil
}

// RecalculateNextInitialBalances re-derives the initial balances of every
// later journal in the (unit, type) chain. Deterministic and idempotent: a
// second run right after the first changes nothing.
func (s *journalService) RecalculateNextInitialBalances(ctx context.Context, journalID int64) error {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		return fmt.Errorf("failed to find journal %d: %w", journalID, err)
	}
	if err := s.journalRepo.RecalculateNextInitialBalances(ctx, *journal); err != nil {
		return fmt.Errorf("failed to recalculate chain after journal %d: %w", journalID, err)
	}
	return nil
}

// CloseOldOpenJournals closes every still-open journal from years before
// olderThanYear, collecting verification failures per journal.
func (s *journalService) CloseOldOpenJournals(ctx context.Context, olderThanYear int) (*dto.CloseOldJournalsResponse, error) {
	logger := logging.FromCtx(ctx)

	journals, err := s.journalRepo.FindOpenJournalsOlderThan(ctx, olderThanYear)
	if err != nil {
		return nil, fmt.Errorf("failed to find open journals older than %d: %w", olderThanYear, err)
	}

	resp := &dto.CloseOldJournalsResponse{}
	for _, journal := range journals {
		if err := s.CloseJournal(ctx, journal.JournalID, journal.EndOfYear()); err != nil {
			var verr *apperrors.VerificationError
			if errors.As(err, &verr) {
				resp.Failures = append(resp.Failures, dto.JournalCloseFailure{
					JournalID: journal.JournalID,
					Year:      journal.Year,
					Reason:    verr.Fields.String(),
				})
				continue
			}
			return nil, err
		}
		resp.ClosedCount++
	}
	logger.Info("Old open journals processed", slog.Int("closed", resp.ClosedCount), slog.Int("failed", len(resp.Failures)))
	return resp, nil
}
