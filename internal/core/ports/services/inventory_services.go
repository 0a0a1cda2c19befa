package services

import (
	"context"

	"github.com/SscSPs/erp_core_backend/internal/core/domain"
	"github.com/SscSPs/erp_core_backend/internal/dto"
)

// InventorySvcFacade is the stock mutation surface of the inventory store.
// All mutating operations require an active unit of work; every successful
// quantity change appends exactly one stock movement.
type InventorySvcFacade interface {
	// Adjust changes on-hand quantity by delta (positive or negative).
	Adjust(ctx context.Context, productID string, delta int64, reason domain.MovementReason, reference string) (*domain.StockLevel, error)

	// Reserve earmarks stock for a pending commitment without changing quantity.
	Reserve(ctx context.Context, productID string, amount int64) error

	// Consume removes previously reserved stock, decrementing quantity and
	// reserved together.
	Consume(ctx context.Context, productID string, amount int64, reason domain.MovementReason, reference string) (*domain.StockLevel, error)

	// Release returns reserved stock to available without touching quantity.
	Release(ctx context.Context, productID string, amount int64) error

	// GetStockLevel reads the current stock level of a product.
	GetStockLevel(ctx context.Context, productID string) (*domain.StockLevel, error)

	// GetMovements reads the movement history of a product, oldest first.
	GetMovements(ctx context.Context, productID string) ([]domain.StockMovement, error)
}

// ProductSvcFacade manages the product catalog.
type ProductSvcFacade interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*domain.Product, error)
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, organizationID string, limit, offset int) ([]domain.Product, error)
	UpdateProductStatus(ctx context.Context, productID string, status domain.ProductStatus) error
}
