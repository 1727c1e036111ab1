package mapping

import (
	"github.com/skarbnik/troop_ledger_app/internal/core/domain"
	"github.com/skarbnik/troop_ledger_app/internal/models"
)

// ToDomainUnit converts a model Unit to a domain Unit
func ToDomainUnit(m models.Unit) domain.Unit {
	return domain.Unit{
		UnitID:         m.UnitID,
		Code:           m.Code,
		Name:           m.Name,
		BankAccount:    m.BankAccount,
		AutoBankImport: m.AutoBankImport,
	}
}

// ToDomainJournalType converts a model JournalType to a domain JournalType
func ToDomainJournalType(m models.JournalType) domain.JournalType {
	return domain.JournalType{
		JournalTypeID: m.JournalTypeID,
		Name:          m.Name,
		Kind:          domain.JournalTypeKind(m.Kind),
	}
}

// ToDomainCategory converts a model Category to a domain Category
func ToDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID:   m.CategoryID,
		Year:         m.Year,
		Name:         m.Name,
		IsExpense:    m.IsExpense,
		IsOnePercent: m.IsOnePercent,
		Position:     m.Position,
	}
}

// ToDomainCategorySlice converts a slice of model Categories to domain Categories
func ToDomainCategorySlice(ms []models.Category) []domain.Category {
	ds := make([]domain.Category, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCategory(m)
	}
	return ds
}

// ToDomainGrant converts a model Grant to a domain Grant
func ToDomainGrant(m models.Grant) domain.Grant {
	return domain.Grant{
		GrantID: m.GrantID,
		Name:    m.Name,
	}
}

// ToDomainInventorySource converts a model InventorySource to a domain InventorySource
func ToDomainInventorySource(m models.InventorySource) domain.InventorySource {
	return domain.InventorySource{
		InventorySourceID: m.InventorySourceID,
		Name:              m.Name,
	}
}
