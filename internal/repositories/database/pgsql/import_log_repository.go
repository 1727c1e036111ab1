package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skarbnik/troop_ledger_app/internal/apperrors"
	"github.com/skarbnik/troop_ledger_app/internal/core/domain"
	portsrepo "github.com/skarbnik/troop_ledger_app/internal/core/ports/repositories"
	"github.com/skarbnik/troop_ledger_app/internal/models"
	"github.com/skarbnik/troop_ledger_app/internal/utils/mapping"
)

type PgxImportLogRepository struct {
	BaseRepository
}

// newPgxImportLogRepository creates a new repository for the bank import
// audit trail.
func newPgxImportLogRepository(pool *pgxpool.Pool) portsrepo.ImportLogRepositoryFacade {
	return &PgxImportLogRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ImportLogRepositoryFacade = (*PgxImportLogRepository)(nil)

// SaveImportLog appends one import audit record. Logs are never updated.
func (r *PgxImportLogRepository) SaveImportLog(ctx context.Context, log domain.BankImportLog) error {
	m := mapping.ToModelBankImportLog(log)
	query := `
		INSERT INTO bank_import_logs (import_log_id, unit_id, file_name, account_number, year, success_count, error_count, error_messages, import_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ImportLogID,
		m.UnitID,
		m.FileName,
		m.AccountNumber,
		m.Year,
		m.SuccessCount,
		m.ErrorCount,
		m.ErrorMessages,
		m.ImportDate,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert import log "+m.ImportLogID, err)
	}
	return nil
}

// ListImportLogsByUnit retrieves the unit's most recent import logs.
func (r *PgxImportLogRepository) ListImportLogsByUnit(ctx context.Context, unitID int64, limit int) ([]domain.BankImportLog, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT import_log_id, unit_id, file_name, account_number, year, success_count, error_count, error_messages, import_date
		FROM bank_import_logs
		WHERE unit_id = $1
		ORDER BY import_date DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, unitID, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to query import logs for unit %d", unitID), err)
	}
	defer rows.Close()

	logs := []domain.BankImportLog{}
	for rows.Next() {
		var m models.BankImportLog
		err := rows.Scan(
			&m.ImportLogID,
			&m.UnitID,
			&m.FileName,
			&m.AccountNumber,
			&m.Year,
			&m.SuccessCount,
			&m.ErrorCount,
			&m.ErrorMessages,
			&m.ImportDate,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan import log row", err)
		}
		logs = append(logs, mapping.ToDomainBankImportLog(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating import log rows", err)
	}
	return logs, nil
}
