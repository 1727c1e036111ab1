package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// GrantBalance is one grant's derived balance within a journal.
type GrantBalance struct {
	GrantID int64           `json:"grantID"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

// JournalBalancesResponse carries a journal's derived sums up to a cutoff date.
type JournalBalancesResponse struct {
	JournalID         int64           `json:"journalID"`
	Year              int             `json:"year"`
	IsOpen            bool            `json:"isOpen"`
	BlockedTo         *time.Time      `json:"blockedTo"`
	ToDate            time.Time       `json:"toDate"`
	IncomeSum         decimal.Decimal `json:"incomeSum"`
	ExpenseSum        decimal.Decimal `json:"expenseSum"`
	Balance           decimal.Decimal `json:"balance"`
	BalanceOnePercent decimal.Decimal `json:"balanceOnePercent"`
	GrantBalances     []GrantBalance  `json:"grantBalances"`
}

// JournalCloseFailure records why one journal could not be closed in a batch.
type JournalCloseFailure struct {
	JournalID int64  `json:"journalID"`
	Year      int    `json:"year"`
	Reason    string `json:"reason"`
}

// CloseOldJournalsResponse summarizes a batch close of stale open journals.
type CloseOldJournalsResponse struct {
	ClosedCount int                   `json:"closedCount"`
	Failures    []JournalCloseFailure `json:"failures"`
}
