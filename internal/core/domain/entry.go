package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemGrant splits part of an item's amount onto a grant. The split amounts
// of one item must not exceed the item's amount.
type ItemGrant struct {
	ItemGrantID int64           `json:"itemGrantID"`
	ItemID      int64           `json:"itemID"`
	GrantID     int64           `json:"grantID"`
	Amount      decimal.Decimal `json:"amount"`
}

// Item is a single category-tagged amount within an entry. The amount is
// absolute; the sign is carried by the owning entry's IsExpense flag.
type Item struct {
	ItemID           int64           `json:"itemID"`
	EntryID          int64           `json:"entryID"`
	CategoryID       int64           `json:"categoryID"`
	Amount           decimal.Decimal `json:"amount"`
	AmountOnePercent decimal.Decimal `json:"amountOnePercent"`
	Grants           []ItemGrant     `json:"grants,omitempty"`

	// Category is registry data attached when the item is loaded.
	Category *Category `json:"-"`
}

// GrantTotal returns the part of the item already split onto grants.
func (i Item) GrantTotal() decimal.Decimal {
	total := decimal.Zero
	for _, ig := range i.Grants {
		total = total.Add(ig.Amount)
	}
	return total
}

// Entry is one dated transaction composed of items. It may reference a linked
// opposite-type entry and, in bank journals, own lettered sub-entries. Both
// relations are kept as ids and resolved by lookup, never as object cycles.
type Entry struct {
	EntryID          int64      `json:"entryID"`
	JournalID        int64      `json:"journalID"`
	Date             time.Time  `json:"date"`
	Name             string     `json:"name"`
	IsExpense        bool       `json:"isExpense"`
	DocumentNumber   string     `json:"documentNumber"`
	StatementNumber  string     `json:"statementNumber"`
	LinkedEntryID    *int64     `json:"linkedEntryID"`
	ParentEntryID    *int64     `json:"parentEntryID"`
	IsSubentry       bool       `json:"isSubentry"`
	SubentryPosition string     `json:"subentryPosition"` // 'b', 'c', ... ; the parent itself is the unlettered 'a'
	SubentriesCount  int        `json:"subentriesCount"`  // 1 + number of sub-entries
	Items            []Item     `json:"items"`
	AuditFields
}

// EffectiveStatementNumber falls back to the document number for records
// created before statement numbers existed.
func (e Entry) EffectiveStatementNumber() string {
	if e.StatementNumber != "" {
		return e.StatementNumber
	}
	return e.DocumentNumber
}

// Sum is the total of the entry's item amounts.
func (e Entry) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, item := range e.Items {
		total = total.Add(item.Amount)
	}
	return total
}

// SumOnePercent totals the one-percent amounts over items whose category is
// flagged one-percent. Expense entries never contribute to the one-percent
// side, so the sum is forced to zero for them.
func (e Entry) SumOnePercent() decimal.Decimal {
	if e.IsExpense {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, item := range e.Items {
		if item.Category != nil && item.Category.IsOnePercent {
			total = total.Add(item.AmountOnePercent)
		}
	}
	return total
}

// AmountForCategory returns the amount of the item tagged with the category,
// or zero when the entry has no such item.
func (e Entry) AmountForCategory(categoryID int64) decimal.Decimal {
	for _, item := range e.Items {
		if item.CategoryID == categoryID {
			return item.Amount
		}
	}
	return decimal.Zero
}

// SumForGrant totals the grant splits for one grant across all items.
func (e Entry) SumForGrant(grantID int64) decimal.Decimal {
	total := decimal.Zero
	for _, item := range e.Items {
		for _, ig := range item.Grants {
			if ig.GrantID == grantID {
				total = total.Add(ig.Amount)
			}
		}
	}
	return total
}

// HasCategory reports whether any item is tagged with the category.
func (e Entry) HasCategory(categoryID int64) bool {
	for _, item := range e.Items {
		if item.CategoryID == categoryID {
			return true
		}
	}
	return false
}

// SubentryPositionFor returns the letter suffix for the i-th sub-entry
// (0-based). The parent holds the conceptual position 'a', so the first
// sub-entry is 'b'.
func SubentryPositionFor(i int) string {
	return string(rune('b' + i))
}
