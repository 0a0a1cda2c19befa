package domain

import (
	"encoding/json"
	"time"
)

// AuditOperation classifies what happened to a record.
type AuditOperation string

const (
	OpCreate AuditOperation = "CREATE"
	OpUpdate AuditOperation = "UPDATE"
	OpDelete AuditOperation = "DELETE"
)

// AuditLogEntry captures the before/after snapshot of one mutated record.
// Entries are append-only: never updated or deleted once written.
type AuditLogEntry struct {
	LogID          string          `db:"log_id"`
	OrganizationID string          `db:"organization_id"`
	EntityName     string          `db:"entity_name"`
	RecordID       string          `db:"record_id"`
	Operation      AuditOperation  `db:"operation"`
	OldValues      json.RawMessage `db:"old_values"` // Nil for CREATE
	NewValues      json.RawMessage `db:"new_values"` // Nil for DELETE
	Actor          string          `db:"actor"`
	UnitOfWorkID   string          `db:"unit_of_work_id"`
	ChangedAt      time.Time       `db:"changed_at"`
}
