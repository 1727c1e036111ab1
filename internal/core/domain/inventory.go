package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventorySource tags inventory records with the ledger book that financed
// them. Sources map 1:1 onto journal types by id.
type InventorySource struct {
	InventorySourceID int64  `json:"inventorySourceID"`
	Name              string `json:"name"`
}

// InventoryEntry is one record of the unit's inventory book. The ledger only
// reads these to reconcile equipment spending; it never writes them.
type InventoryEntry struct {
	InventoryEntryID  int64           `json:"inventoryEntryID"`
	UnitID            int64           `json:"unitID"`
	InventorySourceID int64           `json:"inventorySourceID"`
	Date              time.Time       `json:"date"`
	IsExpense         bool            `json:"isExpense"`
	TotalValue        decimal.Decimal `json:"totalValue"`
}
