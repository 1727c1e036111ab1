package domain

// Category is a per-fiscal-year spending or income category. Categories are
// external registry data, read-only to the ledger, and immutable once entries
// reference them.
type Category struct {
	CategoryID   int64  `json:"categoryID"`
	Year         int    `json:"year"`
	Name         string `json:"name"`
	IsExpense    bool   `json:"isExpense"`
	IsOnePercent bool   `json:"isOnePercent"`
	Position     int    `json:"position"`
}

// Grant is an external funding source with cross-year identity. Its running
// balance is tracked per journal via JournalGrant.
type Grant struct {
	GrantID int64  `json:"grantID"`
	Name    string `json:"name"`
}
