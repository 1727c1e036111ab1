package mapping

import (
	"github.com/skarbnik/troop_ledger_app/internal/core/domain"
	"github.com/skarbnik/troop_ledger_app/internal/models"
)

// ToModelJournal converts a domain Journal to a model Journal
func ToModelJournal(d domain.Journal) models.Journal {
	return models.Journal{
		JournalID:                d.JournalID,
		UnitID:                   d.UnitID,
		JournalTypeID:            d.JournalTypeID,
		Year:                     d.Year,
		IsOpen:                   d.IsOpen,
		BlockedTo:                d.BlockedTo,
		InitialBalance:           d.InitialBalance,
		InitialBalanceOnePercent: d.InitialBalanceOnePercent,
		AuditFields:              ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournal converts a model Journal to a domain Journal
func ToDomainJournal(m models.Journal) domain.Journal {
	return domain.Journal{
		JournalID:                m.JournalID,
		UnitID:                   m.UnitID,
		JournalTypeID:            m.JournalTypeID,
		Year:                     m.Year,
		IsOpen:                   m.IsOpen,
		BlockedTo:                m.BlockedTo,
		InitialBalance:           m.InitialBalance,
		InitialBalanceOnePercent: m.InitialBalanceOnePercent,
		AuditFields:              ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalGrant converts a domain JournalGrant to a model JournalGrant
func ToModelJournalGrant(d domain.JournalGrant) models.JournalGrant {
	return models.JournalGrant{
		JournalID:           d.JournalID,
		GrantID:             d.GrantID,
		InitialGrantBalance: d.InitialGrantBalance,
	}
}

// ToDomainJournalGrant converts a model JournalGrant to a domain JournalGrant
func ToDomainJournalGrant(m models.JournalGrant) domain.JournalGrant {
	return domain.JournalGrant{
		JournalID:           m.JournalID,
		GrantID:             m.GrantID,
		InitialGrantBalance: m.InitialGrantBalance,
	}
}
