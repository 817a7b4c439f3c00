package models

import "time"

// AuditFields holds the change-tracking columns shared by mutable tables.
type AuditFields struct {
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
	Version       int64     `db:"version"`
}
