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

type PgxCategoryRepository struct {
	BaseRepository
}

// newPgxCategoryRepository creates a new repository for registry category data.
func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

const categoryColumns = `category_id, year, name, is_expense, is_one_percent, position`

// FindCategoriesByYear retrieves the year's categories ordered by position.
func (r *PgxCategoryRepository) FindCategoriesByYear(ctx context.Context, year int) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE year = $1 ORDER BY position;`
	rows, err := r.Pool.Query(ctx, query, year)
	if err != nil {
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to query categories for year %d", year), err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var m models.Category
		if err := rows.Scan(&m.CategoryID, &m.Year, &m.Name, &m.IsExpense, &m.IsOnePercent, &m.Position); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan category row", err)
		}
		categories = append(categories, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating category rows", err)
	}
	return mapping.ToDomainCategorySlice(categories), nil
}

// FindCategoryByYearAndName retrieves one category by its year and name.
func (r *PgxCategoryRepository) FindCategoryByYearAndName(ctx context.Context, year int, name string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE year = $1 AND name = $2;`
	var m models.Category
	err := r.Pool.QueryRow(ctx, query, year, name).Scan(&m.CategoryID, &m.Year, &m.Name, &m.IsExpense, &m.IsOnePercent, &m.Position)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to find category %q for year %d", name, year), err)
	}
	d := mapping.ToDomainCategory(m)
	return &d, nil
}
