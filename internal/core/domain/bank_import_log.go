package domain

import "time"

// BankImportLog is an append-only audit record of one import batch. Partial
// success is expected: successes and per-record failures are counted side by
// side and the batch is never rolled back as a whole.
type BankImportLog struct {
	ImportLogID   string    `json:"importLogID"` // UUID
	UnitID        int64     `json:"unitID"`
	FileName      string    `json:"fileName"`
	AccountNumber string    `json:"accountNumber"`
	Year          int       `json:"year"`
	SuccessCount  int       `json:"successCount"`
	ErrorCount    int       `json:"errorCount"`
	ErrorMessages []string  `json:"errorMessages"`
	ImportDate    time.Time `json:"importDate"`
}

// Successful reports whether every record of the batch was imported.
func (l BankImportLog) Successful() bool {
	return l.ErrorCount == 0 && l.SuccessCount > 0
}

// PartiallySuccessful reports whether the batch had both successes and errors.
func (l BankImportLog) PartiallySuccessful() bool {
	return l.ErrorCount > 0 && l.SuccessCount > 0
}

// Failed reports whether no record of the batch was imported.
func (l BankImportLog) Failed() bool {
	return l.SuccessCount == 0
}
