package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemGrantInput splits part of an item's amount onto a grant.
type ItemGrantInput struct {
	GrantID int64           `json:"grantID"`
	Amount  decimal.Decimal `json:"amount"`
}

// ItemInput is one category-tagged amount of an entry request.
type ItemInput struct {
	CategoryID       int64            `json:"categoryID"`
	Amount           decimal.Decimal  `json:"amount"`
	AmountOnePercent decimal.Decimal  `json:"amountOnePercent"`
	Grants           []ItemGrantInput `json:"grants,omitempty"`
}

// LinkedEntryInput describes the opposite-type entry mirroring a transfer.
// Its date and absolute sum are taken from the main entry; its sign is the
// opposite of the main entry's.
type LinkedEntryInput struct {
	JournalID       int64       `json:"journalID"`
	Name            string      `json:"name"`
	DocumentNumber  string      `json:"documentNumber"`
	StatementNumber string      `json:"statementNumber"`
	Items           []ItemInput `json:"items"`
}

// CreateEntryRequest creates a dated transaction in a journal.
type CreateEntryRequest struct {
	JournalID       int64             `json:"journalID"`
	Date            time.Time         `json:"date"`
	Name            string            `json:"name"`
	IsExpense       bool              `json:"isExpense"`
	DocumentNumber  string            `json:"documentNumber"`
	StatementNumber string            `json:"statementNumber"`
	Items           []ItemInput       `json:"items"`
	Linked          *LinkedEntryInput `json:"linked,omitempty"`
}

// UpdateEntryRequest atomically replaces an entry's fields and items. A type
// change carries the re-categorized items in the same request.
type UpdateEntryRequest struct {
	Date            time.Time   `json:"date"`
	Name            string      `json:"name"`
	IsExpense       bool        `json:"isExpense"`
	DocumentNumber  string      `json:"documentNumber"`
	StatementNumber string      `json:"statementNumber"`
	Items           []ItemInput `json:"items"`
}
