package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceivePurchaseRequest books a goods receipt against a purchase document.
type ReceivePurchaseRequest struct {
	OrganizationID   string          `json:"organizationID" validate:"required"`
	ProductID        string          `json:"productID" validate:"required"`
	Quantity         int64           `json:"quantity" validate:"required,gt=0"`
	UnitCost         decimal.Decimal `json:"unitCost" validate:"required"`
	Date             time.Time       `json:"date" validate:"required"`
	Reference        string          `json:"reference"` // Purchase order number or similar
	InventoryAccount string          `json:"inventoryAccount" validate:"required"`
	PayableAccount   string          `json:"payableAccount" validate:"required"`
}

// FulfillSaleRequest ships previously reserved stock and books revenue + cost.
type FulfillSaleRequest struct {
	OrganizationID    string          `json:"organizationID" validate:"required"`
	ProductID         string          `json:"productID" validate:"required"`
	Quantity          int64           `json:"quantity" validate:"required,gt=0"`
	UnitPrice         decimal.Decimal `json:"unitPrice" validate:"required"`
	UnitCost          decimal.Decimal `json:"unitCost" validate:"required"`
	Date              time.Time       `json:"date" validate:"required"`
	Reference         string          `json:"reference"`
	ReceivableAccount string          `json:"receivableAccount" validate:"required"`
	RevenueAccount    string          `json:"revenueAccount" validate:"required"`
	COGSAccount       string          `json:"cogsAccount" validate:"required"`
	InventoryAccount  string          `json:"inventoryAccount" validate:"required"`
}

// ManualAdjustmentRequest applies a manual stock correction with a balancing
// ledger posting.
type ManualAdjustmentRequest struct {
	OrganizationID    string          `json:"organizationID" validate:"required"`
	ProductID         string          `json:"productID" validate:"required"`
	Delta             int64           `json:"delta" validate:"required"`
	UnitCost          decimal.Decimal `json:"unitCost" validate:"required"`
	Date              time.Time       `json:"date" validate:"required"`
	Reason            string          `json:"reason" validate:"required"`
	InventoryAccount  string          `json:"inventoryAccount" validate:"required"`
	AdjustmentAccount string          `json:"adjustmentAccount" validate:"required"` // Write-off or gain account
}

// WorkflowResult reports what one business operation produced.
type WorkflowResult struct {
	UnitOfWorkID string   `json:"unitOfWorkID"`
	NewQuantity  int64    `json:"newQuantity"`
	EntryIDs     []string `json:"entryIDs"`
}
