package models

import "time"

// AuditFields holds standard audit information for persisted entities.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
}
