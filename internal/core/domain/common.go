package domain

import "time"

// AuditFields holds standard audit information for persisted entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// Day truncates t to a calendar day in UTC. All ledger dates are day-granular.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// EndOfYear returns December 31st of the given year.
func EndOfYear(year int) time.Time {
	return Day(year, time.December, 31)
}

// BeginningOfYear returns January 1st of the given year.
func BeginningOfYear(year int) time.Time {
	return Day(year, time.January, 1)
}
