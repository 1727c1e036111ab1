package models

// Unit represents an organizational unit (a troop).
type Unit struct {
	UnitID         int64  `db:"unit_id"`
	Code           string `db:"code"`
	Name           string `db:"name"`
	BankAccount    string `db:"bank_account"`
	AutoBankImport bool   `db:"auto_bank_import"`
}

// JournalType identifies one of the ledger books a unit keeps.
type JournalType struct {
	JournalTypeID int64  `db:"journal_type_id"`
	Name          string `db:"name"`
	Kind          string `db:"kind"`
}

// Category represents a per-fiscal-year spending or income category.
type Category struct {
	CategoryID   int64  `db:"category_id"`
	Year         int    `db:"year"`
	Name         string `db:"name"`
	IsExpense    bool   `db:"is_expense"`
	IsOnePercent bool   `db:"is_one_percent"`
	Position     int    `db:"position"`
}

// Grant represents an external funding source with cross-year identity.
type Grant struct {
	GrantID int64  `db:"grant_id"`
	Name    string `db:"name"`
}

// InventorySource tags inventory records with the financing ledger book.
type InventorySource struct {
	InventorySourceID int64  `db:"inventory_source_id"`
	Name              string `db:"name"`
}
