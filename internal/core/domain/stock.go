package domain

import "time"

// MovementReason classifies a stock movement.
type MovementReason string

const (
	MovementReceipt         MovementReason = "RECEIPT"
	MovementIssue           MovementReason = "ISSUE"
	MovementAdjustment      MovementReason = "ADJUSTMENT"
	MovementAuditCorrection MovementReason = "AUDIT_CORRECTION"
)

// StockLevel tracks on-hand and reserved quantities for one product.
// Invariants: Quantity >= 0, Reserved <= Quantity, so Available() >= 0 in every
// committed state.
type StockLevel struct {
	ProductID       string `db:"product_id"`
	OrganizationID  string `db:"organization_id"`
	Quantity        int64  `db:"quantity"`
	Reserved        int64  `db:"reserved"`
	MinimumQuantity int64  `db:"minimum_quantity"`
	MaximumQuantity int64  `db:"maximum_quantity"` // 0 means no ceiling
	Location        string `db:"location"`
	AuditFields
}

// Available is the quantity not earmarked by reservations.
func (s StockLevel) Available() int64 {
	return s.Quantity - s.Reserved
}

// StockMovement is one row in the implicit ledger of inventory changes. The sum
// of deltas for a product since creation reconciles to its current quantity.
type StockMovement struct {
	MovementID     string         `db:"movement_id"`
	OrganizationID string         `db:"organization_id"`
	ProductID      string         `db:"product_id"`
	Delta          int64          `db:"delta"` // Signed; never zero
	Reason         MovementReason `db:"reason"`
	Reference      string         `db:"reference"` // Originating document, nullable
	UnitOfWorkID   string         `db:"unit_of_work_id"`
	MovedAt        time.Time      `db:"moved_at"`
	MovedBy        string         `db:"moved_by"`
}
