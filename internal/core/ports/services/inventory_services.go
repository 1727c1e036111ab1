package services

import (
	"context"

	"github.com/skarbnik/troop_ledger_app/internal/apperrors"
	"github.com/skarbnik/troop_ledger_app/internal/core/domain"
)

// InventoryVerifierFacade reconciles equipment spending in the finance books
// against the unit's inventory book, independently per year.
type InventoryVerifierFacade interface {
	// Verify returns every mismatch keyed by (journal type name + year). An
	// empty result means the years reconcile.
	Verify(ctx context.Context, unit domain.Unit, years []int) (apperrors.FieldErrors, error)
}
