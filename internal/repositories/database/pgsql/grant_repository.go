package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skarbnik/troop_ledger_app/internal/apperrors"
	"github.com/skarbnik/troop_ledger_app/internal/core/domain"
	portsrepo "github.com/skarbnik/troop_ledger_app/internal/core/ports/repositories"
	"github.com/skarbnik/troop_ledger_app/internal/models"
	"github.com/skarbnik/troop_ledger_app/internal/utils/mapping"
)

type PgxGrantRepository struct {
	BaseRepository
}

// newPgxGrantRepository creates a new repository for grant registry data.
func newPgxGrantRepository(pool *pgxpool.Pool) portsrepo.GrantRepositoryFacade {
	return &PgxGrantRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.GrantRepositoryFacade = (*PgxGrantRepository)(nil)

// ListGrants retrieves all grants ordered by name.
func (r *PgxGrantRepository) ListGrants(ctx context.Context) ([]domain.Grant, error) {
	rows, err := r.Pool.Query(ctx, `SELECT grant_id, name FROM grants ORDER BY name;`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query grants", err)
	}
	defer rows.Close()

	grants := []domain.Grant{}
	for rows.Next() {
		var m models.Grant
		if err := rows.Scan(&m.GrantID, &m.Name); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan grant row", err)
		}
		grants = append(grants, mapping.ToDomainGrant(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating grant rows", err)
	}
	return grants, nil
}
