package domain

import (
	"github.com/shopspring/decimal"
)

// ProductStatus is the lifecycle state of a product.
type ProductStatus string

const (
	ProductActive       ProductStatus = "ACTIVE"
	ProductInactive     ProductStatus = "INACTIVE"
	ProductDiscontinued ProductStatus = "DISCONTINUED"
)

// Product is a sellable/stockable item in the catalog.
type Product struct {
	ProductID      string          `db:"product_id"`
	OrganizationID string          `db:"organization_id"`
	SKU            string          `db:"sku"` // Unique per organization
	Name           string          `db:"name"`
	Category       string          `db:"category"`
	UnitPrice      decimal.Decimal `db:"unit_price"`
	CostPrice      decimal.Decimal `db:"cost_price"`
	Status         ProductStatus   `db:"status"`
	AuditFields
}
