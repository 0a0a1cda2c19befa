package domain

import "time"

// StockAuditStatus is the state of a physical stock count.
// Transitions: PENDING -> IN_PROGRESS -> COMPLETED, or PENDING|IN_PROGRESS ->
// CANCELLED. COMPLETED and CANCELLED are terminal.
type StockAuditStatus string

const (
	AuditPending    StockAuditStatus = "PENDING"
	AuditInProgress StockAuditStatus = "IN_PROGRESS"
	AuditCompleted  StockAuditStatus = "COMPLETED"
	AuditCancelled  StockAuditStatus = "CANCELLED"
)

// CanTransitionTo reports whether the audit state machine permits moving from
// the current status to next.
func (s StockAuditStatus) CanTransitionTo(next StockAuditStatus) bool {
	switch s {
	case AuditPending:
		return next == AuditInProgress || next == AuditCancelled
	case AuditInProgress:
		return next == AuditCompleted || next == AuditCancelled
	default:
		return false
	}
}

// StockAudit is a physical count of inventory against expected quantities.
type StockAudit struct {
	AuditID        string           `db:"audit_id"`
	OrganizationID string           `db:"organization_id"`
	Name           string           `db:"name"`
	ScheduledDate  time.Time        `db:"scheduled_date"`
	Status         StockAuditStatus `db:"status"`
	ConductedBy    string           `db:"conducted_by"`
	Notes          string           `db:"notes"`
	AuditFields
}

// StockAuditItem is one product within a stock audit. ExpectedQuantity is
// snapshotted when the audit starts and never changes for the life of the
// audit. Variance is always ActualQuantity - ExpectedQuantity, recomputed from
// its two inputs rather than stored independently.
type StockAuditItem struct {
	ItemID           string     `db:"item_id"`
	AuditID          string     `db:"audit_id"`
	ProductID        string     `db:"product_id"` // Unique per (audit, product)
	ExpectedQuantity int64      `db:"expected_quantity"`
	ActualQuantity   *int64     `db:"actual_quantity"` // Nil until counted
	CountedAt        *time.Time `db:"counted_at"`
	CreatedAt        time.Time  `db:"created_at"`
}

// Variance returns actual - expected, or 0 if the item has not been counted.
func (i StockAuditItem) Variance() int64 {
	if i.ActualQuantity == nil {
		return 0
	}
	return *i.ActualQuantity - i.ExpectedQuantity
}

// Counted reports whether an actual quantity has been recorded.
func (i StockAuditItem) Counted() bool {
	return i.ActualQuantity != nil
}
