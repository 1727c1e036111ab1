package models

import "time"

// BankImportLog is the append-only audit record of one bank import batch.
// Error messages are stored as a text array.
type BankImportLog struct {
	ImportLogID   string    `db:"import_log_id"` // UUID
	UnitID        int64     `db:"unit_id"`
	FileName      string    `db:"file_name"`
	AccountNumber string    `db:"account_number"`
	Year          int       `db:"year"`
	SuccessCount  int       `db:"success_count"`
	ErrorCount    int       `db:"error_count"`
	ErrorMessages []string  `db:"error_messages"`
	ImportDate    time.Time `db:"import_date"`
}
