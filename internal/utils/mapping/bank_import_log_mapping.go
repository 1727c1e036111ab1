package mapping

import (
	"github.com/skarbnik/troop_ledger_app/internal/core/domain"
	"github.com/skarbnik/troop_ledger_app/internal/models"
)

// ToModelBankImportLog converts a domain BankImportLog to a model BankImportLog
func ToModelBankImportLog(d domain.BankImportLog) models.BankImportLog {
	return models.BankImportLog{
		ImportLogID:   d.ImportLogID,
		UnitID:        d.UnitID,
		FileName:      d.FileName,
		AccountNumber: d.AccountNumber,
		Year:          d.Year,
		SuccessCount:  d.SuccessCount,
		ErrorCount:    d.ErrorCount,
		ErrorMessages: d.ErrorMessages,
		ImportDate:    d.ImportDate,
	}
}

// ToDomainBankImportLog converts a model BankImportLog to a domain BankImportLog
func ToDomainBankImportLog(m models.BankImportLog) domain.BankImportLog {
	return domain.BankImportLog{
		ImportLogID:   m.ImportLogID,
		UnitID:        m.UnitID,
		FileName:      m.FileName,
		AccountNumber: m.AccountNumber,
		Year:          m.Year,
		SuccessCount:  m.SuccessCount,
		ErrorCount:    m.ErrorCount,
		ErrorMessages: m.ErrorMessages,
		ImportDate:    m.ImportDate,
	}
}
