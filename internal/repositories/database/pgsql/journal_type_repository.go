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

type PgxJournalTypeRepository struct {
	BaseRepository
}

// newPgxJournalTypeRepository creates a new repository for journal type registry data.
func newPgxJournalTypeRepository(pool *pgxpool.Pool) portsrepo.JournalTypeRepositoryFacade {
	return &PgxJournalTypeRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.JournalTypeRepositoryFacade = (*PgxJournalTypeRepository)(nil)

// FindJournalTypeByID retrieves a journal type by its ID.
func (r *PgxJournalTypeRepository) FindJournalTypeByID(ctx context.Context, journalTypeID int64) (*domain.JournalType, error) {
	query := `SELECT journal_type_id, name, kind FROM journal_types WHERE journal_type_id = $1;`
	var m models.JournalType
	err := r.Pool.QueryRow(ctx, query, journalTypeID).Scan(&m.JournalTypeID, &m.Name, &m.Kind)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to find journal type %d", journalTypeID), err)
	}
	d := mapping.ToDomainJournalType(m)
	return &d, nil
}

// FindJournalTypeByKind retrieves the journal type of the given kind.
func (r *PgxJournalTypeRepository) FindJournalTypeByKind(ctx context.Context, kind domain.JournalTypeKind) (*domain.JournalType, error) {
	query := `SELECT journal_type_id, name, kind FROM journal_types WHERE kind = $1;`
	var m models.JournalType
	err := r.Pool.QueryRow(ctx, query, string(kind)).Scan(&m.JournalTypeID, &m.Name, &m.Kind)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal type of kind "+string(kind), err)
	}
	d := mapping.ToDomainJournalType(m)
	return &d, nil
}

// ListJournalTypes retrieves all journal types.
func (r *PgxJournalTypeRepository) ListJournalTypes(ctx context.Context) ([]domain.JournalType, error) {
	rows, err := r.Pool.Query(ctx, `SELECT journal_type_id, name, kind FROM journal_types ORDER BY journal_type_id;`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal types", err)
	}
	defer rows.Close()

	types := []domain.JournalType{}
	for rows.Next() {
		var m models.JournalType
		if err := rows.Scan(&m.JournalTypeID, &m.Name, &m.Kind); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal type row", err)
		}
		types = append(types, mapping.ToDomainJournalType(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal type rows", err)
	}
	return types, nil
}
