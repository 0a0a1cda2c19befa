package events

import "time"

// Event type names, used as registry keys.
const (
	TypeStockLevelChanged = "inventory.stock_level_changed"
	TypeAuditCompleted    = "inventory.audit_completed"
)

// DomainEvent is a typed notification describing a committed state change.
// Events are buffered inside the unit of work that produced them and become
// visible to subscribers only after that unit of work commits.
type DomainEvent interface {
	EventType() string
	EntityID() string
	OrganizationID() string
	OccurredAt() time.Time
}

// StockLevelChanged fires when a mutation drops a product's quantity to or
// below its minimum level. It fires at most once per mutation.
type StockLevelChanged struct {
	ProductID       string
	Organization    string
	OldQuantity     int64
	NewQuantity     int64
	MinimumQuantity int64
	At              time.Time
}

func (e StockLevelChanged) EventType() string      { return TypeStockLevelChanged }
func (e StockLevelChanged) EntityID() string       { return e.ProductID }
func (e StockLevelChanged) OrganizationID() string { return e.Organization }
func (e StockLevelChanged) OccurredAt() time.Time  { return e.At }

// AuditCompleted fires when a stock audit finishes, after its corrective
// movements have been applied.
type AuditCompleted struct {
	AuditID        string
	Organization   string
	TotalItems     int
	VarianceItems  int
	TotalVariance  int64
	At             time.Time
}

func (e AuditCompleted) EventType() string      { return TypeAuditCompleted }
func (e AuditCompleted) EntityID() string       { return e.AuditID }
func (e AuditCompleted) OrganizationID() string { return e.Organization }
func (e AuditCompleted) OccurredAt() time.Time  { return e.At }
