package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// JournalTypeKind distinguishes the three ledger books a unit keeps.
type JournalTypeKind string

const (
	KindFinance   JournalTypeKind = "FINANCE"
	KindBank      JournalTypeKind = "BANK"
	KindInventory JournalTypeKind = "INVENTORY"
)

// JournalType identifies one of the ledger books (finance, bank, inventory).
type JournalType struct {
	JournalTypeID int64           `json:"journalTypeID"`
	Name          string          `json:"name"`
	Kind          JournalTypeKind `json:"kind"`
}

// IsBank reports whether entries in journals of this type follow bank-book
// rules (statement numbers, sub-entries).
func (t JournalType) IsBank() bool {
	return t.Kind == KindBank
}

// Journal is a yearly ledger scoped to one (unit, journal type) pair.
// It owns ordered entries, an initial balance seeded from the previous year's
// closing balance, and open/close state.
type Journal struct {
	JournalID                int64           `json:"journalID"`
	UnitID                   int64           `json:"unitID"`
	JournalTypeID            int64           `json:"journalTypeID"`
	Year                     int             `json:"year"`
	IsOpen                   bool            `json:"isOpen"`
	BlockedTo                *time.Time      `json:"blockedTo"` // entries dated at or before this day are frozen
	InitialBalance           decimal.Decimal `json:"initialBalance"`
	InitialBalanceOnePercent decimal.Decimal `json:"initialBalanceOnePercent"`
	AuditFields
}

func (j Journal) String() string {
	state := "closed"
	if j.IsOpen {
		state = "open"
	}
	return fmt.Sprintf("Journal(id:%d, type:%d, year:%d, unit:%d, %s, balance:%s, balance1%%:%s)",
		j.JournalID, j.JournalTypeID, j.Year, j.UnitID, state,
		j.InitialBalance.String(), j.InitialBalanceOnePercent.String())
}

// EndOfYear returns the last day of the journal's fiscal year.
func (j Journal) EndOfYear() time.Time {
	return EndOfYear(j.Year)
}

// IsNotBlocked reports whether entries dated asOfDay may still be changed.
// With no block boundary the journal's open flag decides; otherwise only
// entries dated strictly after the boundary are mutable.
func (j Journal) IsNotBlocked(asOfDay time.Time) bool {
	if j.BlockedTo == nil {
		return j.IsOpen
	}
	return j.BlockedTo.Before(asOfDay)
}

// JournalGrant tracks one grant's initial balance within one journal.
// Rows are created lazily, one per (journal, grant) pair.
type JournalGrant struct {
	JournalID           int64           `json:"journalID"`
	GrantID             int64           `json:"grantID"`
	InitialGrantBalance decimal.Decimal `json:"initialGrantBalance"`
}
