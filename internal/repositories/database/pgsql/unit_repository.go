package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skarbnik/troop_ledger_app/internal/apperrors"
	"github.com/skarbnik/troop_ledger_app/internal/core/domain"
	portsrepo "github.com/skarbnik/troop_ledger_app/internal/core/ports/repositories"
	"github.com/skarbnik/troop_ledger_app/internal/models"
	"github.com/skarbnik/troop_ledger_app/internal/utils/mapping"
)

type PgxUnitRepository struct {
	BaseRepository
}

// newPgxUnitRepository creates a new repository for organizational unit data.
func newPgxUnitRepository(pool *pgxpool.Pool) portsrepo.UnitRepositoryFacade {
	return &PgxUnitRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.UnitRepositoryFacade = (*PgxUnitRepository)(nil)

const unitColumns = `unit_id, code, name, bank_account, auto_bank_import`

func (r *PgxUnitRepository) scanUnit(row pgx.Row, context string) (*domain.Unit, error) {
	var m models.Unit
	err := row.Scan(&m.UnitID, &m.Code, &m.Name, &m.BankAccount, &m.AutoBankImport)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, context, err)
	}
	d := mapping.ToDomainUnit(m)
	return &d, nil
}

// FindUnitByID retrieves a unit by its ID.
func (r *PgxUnitRepository) FindUnitByID(ctx context.Context, unitID int64) (*domain.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units WHERE unit_id = $1;`
	return r.scanUnit(r.Pool.QueryRow(ctx, query, unitID), fmt.Sprintf("failed to find unit %d", unitID))
}

// FindUnitByCode retrieves a unit by its short code.
func (r *PgxUnitRepository) FindUnitByCode(ctx context.Context, code string) (*domain.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units WHERE code = $1;`
	return r.scanUnit(r.Pool.QueryRow(ctx, query, code), "failed to find unit "+code)
}

// ListUnits retrieves all units ordered by code.
func (r *PgxUnitRepository) ListUnits(ctx context.Context) ([]domain.Unit, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+unitColumns+` FROM units ORDER BY code;`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query units", err)
	}
	defer rows.Close()

	units := []domain.Unit{}
	for rows.Next() {
		var m models.Unit
		if err := rows.Scan(&m.UnitID, &m.Code, &m.Name, &m.BankAccount, &m.AutoBankImport); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan unit row", err)
		}
		units = append(units, mapping.ToDomainUnit(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating unit rows", err)
	}
	return units, nil
}
