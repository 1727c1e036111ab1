package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/skarbnik/troop_ledger_app/internal/apperrors"
	"github.com/skarbnik/troop_ledger_app/internal/core/domain"
	portsrepo "github.com/skarbnik/troop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/skarbnik/troop_ledger_app/internal/core/ports/services"
	"github.com/skarbnik/troop_ledger_app/internal/utils/accounting"
)

// equipmentCategoryName is the registry category whose spending must match
// the inventory book. Registry data is Polish, so the constant is too.
const equipmentCategoryName = "Wyposażenie"

// verifyYearConcurrency caps the per-year fan-out of the reconciliation.
const verifyYearConcurrency = 4

// inventoryEntryVerifier reconciles equipment amounts booked in each of the
// unit's journals against income recorded in the inventory book. Every
// journal type takes part, the inventory book included; each type maps to the
// inventory source sharing its id.
type inventoryEntryVerifier struct {
	journalRepo     portsrepo.JournalRepositoryFacade
	categoryRepo    portsrepo.CategoryRepositoryFacade
	journalTypeRepo portsrepo.JournalTypeRepositoryFacade
	inventoryRepo   portsrepo.InventoryRepositoryFacade
}

// NewInventoryEntryVerifier creates a new inventory verifier.
func NewInventoryEntryVerifier(journalRepo portsrepo.JournalRepositoryFacade, categoryRepo portsrepo.CategoryRepositoryFacade, journalTypeRepo portsrepo.JournalTypeRepositoryFacade, inventoryRepo portsrepo.InventoryRepositoryFacade) portssvc.InventoryVerifierFacade {
	return &inventoryEntryVerifier{
		journalRepo:     journalRepo,
		categoryRepo:    categoryRepo,
		journalTypeRepo: journalTypeRepo,
		inventoryRepo:   inventoryRepo,
	}
}

var _ portssvc.InventoryVerifierFacade = (*inventoryEntryVerifier)(nil)

// Verify reconciles each requested year independently and returns every
// mismatch keyed by journal type name and year.
func (v *inventoryEntryVerifier) Verify(ctx context.Context, unit domain.Unit, years []int) (apperrors.FieldErrors, error) {
	journalTypes, err := v.journalTypeRepo.ListJournalTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal types: %w", err)
	}

	fields := apperrors.FieldErrors{}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(verifyYearConcurrency)
	for _, year := range years {
		year := year
		g.Go(func() error {
			yearFields, err := v.verifyYear(gctx, unit, year, journalTypes)
			if err != nil {
				return err
			}
			mu.Lock()
			fields.Merge(yearFields)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return fields, nil
}

func (v *inventoryEntryVerifier) verifyYear(ctx context.Context, unit domain.Unit, year int, journalTypes []domain.JournalType) (apperrors.FieldErrors, error) {
	fields := apperrors.FieldErrors{}

	equipment, err := v.categoryRepo.FindCategoryByYearAndName(ctx, year, equipmentCategoryName)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Years without the equipment category have nothing to reconcile.
			return fields, nil
		}
		return nil, fmt.Errorf("failed to find category %q for year %d: %w", equipmentCategoryName, year, err)
	}

	inventoryTotals, err := v.inventoryRepo.InventoryIncomeTotals(ctx, unit.UnitID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to sum inventory income for unit %d year %d: %w", unit.UnitID, year, err)
	}

	for _, journalType := range journalTypes {
		bookedSum, err := v.equipmentSum(ctx, unit, journalType, year, equipment.CategoryID)
		if err != nil {
			return nil, err
		}
		inventorySum, ok := inventoryTotals[journalType.JournalTypeID]
		if !ok {
			inventorySum = decimal.Zero
		}
		if !bookedSum.Equal(inventorySum) {
			sourceName := journalType.Name
			if source, err := v.inventoryRepo.FindInventorySourceByID(ctx, journalType.JournalTypeID); err == nil {
				sourceName = source.Name
			}
			fields.Add(
				fmt.Sprintf("%s %d", journalType.Name, year),
				fmt.Sprintf("equipment amounts booked in the journal (%s) do not match inventory income from source %q (%s)",
					bookedSum.StringFixed(2), sourceName, inventorySum.StringFixed(2)),
			)
		}
	}
	return fields, nil
}

// equipmentSum totals the equipment category over the journal's whole year.
// A missing journal contributes zero.
func (v *inventoryEntryVerifier) equipmentSum(ctx context.Context, unit domain.Unit, journalType domain.JournalType, year int, categoryID int64) (decimal.Decimal, error) {
	journal, err := v.journalRepo.FindJournalByUnitTypeYear(ctx, unit.UnitID, journalType.JournalTypeID, year)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("failed to find %s journal for unit %d year %d: %w", journalType.Name, unit.UnitID, year, err)
	}
	entries, err := v.journalRepo.FindEntriesForRange(ctx, journal.JournalID, nil, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load entries for journal %d: %w", journal.JournalID, err)
	}
	return accounting.CategorySum(entries, categoryID, journal.EndOfYear()), nil
}
