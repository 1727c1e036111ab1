package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry represents one dated transaction within a journal.
type Entry struct {
	EntryID          int64      `db:"entry_id"`
	JournalID        int64      `db:"journal_id"`
	Date             time.Time  `db:"date"`
	Name             string     `db:"name"`
	IsExpense        bool       `db:"is_expense"`
	DocumentNumber   string     `db:"document_number"`
	StatementNumber  string     `db:"statement_number"`
	LinkedEntryID    *int64     `db:"linked_entry_id"` // Nullable
	ParentEntryID    *int64     `db:"parent_entry_id"` // Nullable
	IsSubentry       bool       `db:"is_subentry"`
	SubentryPosition string     `db:"subentry_position"`
	SubentriesCount  int        `db:"subentries_count"`
	AuditFields
}

// Item represents one category-tagged amount of an entry.
type Item struct {
	ItemID           int64           `db:"item_id"`
	EntryID          int64           `db:"entry_id"`
	CategoryID       int64           `db:"category_id"`
	Amount           decimal.Decimal `db:"amount"`
	AmountOnePercent decimal.Decimal `db:"amount_one_percent"`
}

// ItemGrant splits part of an item's amount onto a grant.
type ItemGrant struct {
	ItemGrantID int64           `db:"item_grant_id"`
	ItemID      int64           `db:"item_id"`
	GrantID     int64           `db:"grant_id"`
	Amount      decimal.Decimal `db:"amount"`
}
