package dto

import (
	"github.com/shopspring/decimal"
)

// CreateProductRequest defines the data needed to create a product along with
// its initial (empty) stock level.
type CreateProductRequest struct {
	OrganizationID  string          `json:"organizationID" validate:"required"`
	SKU             string          `json:"sku" validate:"required"` // Unique within the organization
	Name            string          `json:"name" validate:"required"`
	Category        string          `json:"category"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	CostPrice       decimal.Decimal `json:"costPrice"`
	MinimumQuantity int64           `json:"minimumQuantity" validate:"gte=0"`
	MaximumQuantity int64           `json:"maximumQuantity" validate:"gte=0"`
	Location        string          `json:"location"`
}
