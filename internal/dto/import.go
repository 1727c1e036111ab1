package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementRecord is one structured record produced by the external bank
// feed. The amount is signed: negative means an expense. The feed has already
// parsed and categorized the raw statement; the ledger only validates and
// books it.
type StatementRecord struct {
	Date              time.Time       `json:"date" validate:"required"`
	Amount            decimal.Decimal `json:"amount" validate:"required"`
	Description       string          `json:"description" validate:"required"`
	Counterparty      string          `json:"counterparty"`
	ExternalReference string          `json:"externalReference" validate:"required"`
	CategoryID        int64           `json:"categoryID" validate:"required,gt=0"`
}

// ImportBatchRequest books one batch of feed records against a unit's bank
// journals.
type ImportBatchRequest struct {
	UnitID        int64             `json:"unitID" validate:"required,gt=0"`
	FileName      string            `json:"fileName" validate:"required"`
	AccountNumber string            `json:"accountNumber"`
	Records       []StatementRecord `json:"records" validate:"required,min=1,dive"`
}
