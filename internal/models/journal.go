package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Journal represents one yearly ledger of a (unit, journal type) pair.
type Journal struct {
	JournalID                int64           `db:"journal_id"`
	UnitID                   int64           `db:"unit_id"`
	JournalTypeID            int64           `db:"journal_type_id"`
	Year                     int             `db:"year"`
	IsOpen                   bool            `db:"is_open"`
	BlockedTo                *time.Time      `db:"blocked_to"` // Nullable
	InitialBalance           decimal.Decimal `db:"initial_balance"`
	InitialBalanceOnePercent decimal.Decimal `db:"initial_balance_one_percent"`
	AuditFields
}

// JournalGrant tracks one grant's initial balance within one journal.
type JournalGrant struct {
	JournalID           int64           `db:"journal_id"`
	GrantID             int64           `db:"grant_id"`
	InitialGrantBalance decimal.Decimal `db:"initial_grant_balance"`
}
