package mapping

import (
	"github.com/skarbnik/troop_ledger_app/internal/core/domain"
	"github.com/skarbnik/troop_ledger_app/internal/models"
)

// ToModelEntry converts a domain Entry to a model Entry. Items are persisted
// separately.
func ToModelEntry(d domain.Entry) models.Entry {
	return models.Entry{
		EntryID:          d.EntryID,
		JournalID:        d.JournalID,
		Date:             d.Date,
		Name:             d.Name,
		IsExpense:        d.IsExpense,
		DocumentNumber:   d.DocumentNumber,
		StatementNumber:  d.StatementNumber,
		LinkedEntryID:    d.LinkedEntryID,
		ParentEntryID:    d.ParentEntryID,
		IsSubentry:       d.IsSubentry,
		SubentryPosition: d.SubentryPosition,
		SubentriesCount:  d.SubentriesCount,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEntry converts a model Entry to a domain Entry without items.
func ToDomainEntry(m models.Entry) domain.Entry {
	return domain.Entry{
		EntryID:          m.EntryID,
		JournalID:        m.JournalID,
		Date:             m.Date,
		Name:             m.Name,
		IsExpense:        m.IsExpense,
		DocumentNumber:   m.DocumentNumber,
		StatementNumber:  m.StatementNumber,
		LinkedEntryID:    m.LinkedEntryID,
		ParentEntryID:    m.ParentEntryID,
		IsSubentry:       m.IsSubentry,
		SubentryPosition: m.SubentryPosition,
		SubentriesCount:  m.SubentriesCount,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelItem converts a domain Item to a model Item
func ToModelItem(d domain.Item) models.Item {
	return models.Item{
		ItemID:           d.ItemID,
		EntryID:          d.EntryID,
		CategoryID:       d.CategoryID,
		Amount:           d.Amount,
		AmountOnePercent: d.AmountOnePercent,
	}
}

// ToDomainItem converts a model Item to a domain Item without grants.
func ToDomainItem(m models.Item) domain.Item {
	return domain.Item{
		ItemID:           m.ItemID,
		EntryID:          m.EntryID,
		CategoryID:       m.CategoryID,
		Amount:           m.Amount,
		AmountOnePercent: m.AmountOnePercent,
	}
}

// ToDomainItemGrant converts a model ItemGrant to a domain ItemGrant
func ToDomainItemGrant(m models.ItemGrant) domain.ItemGrant {
	return domain.ItemGrant{
		ItemGrantID: m.ItemGrantID,
		ItemID:      m.ItemID,
		GrantID:     m.GrantID,
		Amount:      m.Amount,
	}
}
