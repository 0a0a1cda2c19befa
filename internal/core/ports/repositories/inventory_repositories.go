package repositories

import (
	"context"

	"github.com/SscSPs/erp_core_backend/internal/core/domain"
)

// ProductReader defines read operations for the product catalog.
type ProductReader interface {
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)
	FindProductBySKU(ctx context.Context, organizationID, sku string) (*domain.Product, error)
	ListProducts(ctx context.Context, organizationID string, limit, offset int) ([]domain.Product, error)
}

// ProductWriter defines write operations for the product catalog.
type ProductWriter interface {
	SaveProduct(ctx context.Context, product domain.Product) error
	UpdateProduct(ctx context.Context, product domain.Product) error
}

// ProductRepository combines product read and write operations.
type ProductRepository interface {
	ProductReader
	ProductWriter
}

// StockReader defines read operations for stock levels and movements.
type StockReader interface {
	// FindStockLevel retrieves the stock level row for a product. Inside a
	// transaction, implementations lock the row for the transaction's duration.
	FindStockLevel(ctx context.Context, productID string) (*domain.StockLevel, error)

	// ListStockLevels retrieves all stock levels for an organization.
	ListStockLevels(ctx context.Context, organizationID string) ([]domain.StockLevel, error)

	// ListMovementsByProduct retrieves the movement history of a product, oldest first.
	ListMovementsByProduct(ctx context.Context, productID string) ([]domain.StockMovement, error)

	// SumMovementsByProduct returns the sum of movement deltas for a product.
	SumMovementsByProduct(ctx context.Context, productID string) (int64, error)
}

// StockWriter defines write operations for stock levels and movements.
type StockWriter interface {
	// SaveStockLevel persists a new stock level row.
	SaveStockLevel(ctx context.Context, level domain.StockLevel) error

	// UpdateStockLevel persists changed quantity/reserved values.
	UpdateStockLevel(ctx context.Context, level domain.StockLevel) error

	// AppendMovement records one stock movement. Movements are append-only.
	AppendMovement(ctx context.Context, movement domain.StockMovement) error
}

// StockRepository combines stock read and write operations.
type StockRepository interface {
	StockReader
	StockWriter
}
