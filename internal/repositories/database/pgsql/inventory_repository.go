package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/skarbnik/troop_ledger_app/internal/apperrors"
	"github.com/skarbnik/troop_ledger_app/internal/core/domain"
	portsrepo "github.com/skarbnik/troop_ledger_app/internal/core/ports/repositories"
	"github.com/skarbnik/troop_ledger_app/internal/models"
	"github.com/skarbnik/troop_ledger_app/internal/utils/mapping"
)

type PgxInventoryRepository struct {
	BaseRepository
}

// newPgxInventoryRepository creates a new read-only repository over the
// inventory book.
func newPgxInventoryRepository(pool *pgxpool.Pool) portsrepo.InventoryRepositoryFacade {
	return &PgxInventoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.InventoryRepositoryFacade = (*PgxInventoryRepository)(nil)

// InventoryIncomeTotals sums income inventory record values for the unit and
// year, grouped by inventory source id.
func (r *PgxInventoryRepository) InventoryIncomeTotals(ctx context.Context, unitID int64, year int) (map[int64]decimal.Decimal, error) {
	query := `
		SELECT inventory_source_id, COALESCE(SUM(total_value), 0)
		FROM inventory_entries
		WHERE unit_id = $1
		  AND NOT is_expense
		  AND date >= make_date($2, 1, 1)
		  AND date <= make_date($2, 12, 31)
		GROUP BY inventory_source_id;
	`
	rows, err := r.Pool.Query(ctx, query, unitID, year)
	if err != nil {
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to sum inventory income for unit %d year %d", unitID, year), err)
	}
	defer rows.Close()

	totals := map[int64]decimal.Decimal{}
	for rows.Next() {
		var sourceID int64
		var total decimal.Decimal
		if err := rows.Scan(&sourceID, &total); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan inventory total row", err)
		}
		totals[sourceID] = total
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating inventory total rows", err)
	}
	return totals, nil
}

// FindInventorySourceByID retrieves an inventory source by its ID.
func (r *PgxInventoryRepository) FindInventorySourceByID(ctx context.Context, inventorySourceID int64) (*domain.InventorySource, error) {
	query := `SELECT inventory_source_id, name FROM inventory_sources WHERE inventory_source_id = $1;`
	var m models.InventorySource
	err := r.Pool.QueryRow(ctx, query, inventorySourceID).Scan(&m.InventorySourceID, &m.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to find inventory source %d", inventorySourceID), err)
	}
	d := mapping.ToDomainInventorySource(m)
	return &d, nil
}
