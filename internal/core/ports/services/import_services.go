package services

import (
	"context"

	"github.com/skarbnik/troop_ledger_app/internal/core/domain"
	"github.com/skarbnik/troop_ledger_app/internal/dto"
)

// ImportSvcFacade consumes the structured bank-statement feed. Records are
// imported one by one; failures are reported per record and never abort the
// batch, so partial success is the normal outcome.
type ImportSvcFacade interface {
	ImportStatements(ctx context.Context, req dto.ImportBatchRequest) (*domain.BankImportLog, error)
}
