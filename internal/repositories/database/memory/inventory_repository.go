package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/erp_core_backend/internal/apperrors"
	"github.com/SscSPs/erp_core_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/erp_core_backend/internal/core/ports/repositories"
)

type memProductRepository struct {
	store *Store
}

var _ portsrepo.ProductRepository = (*memProductRepository)(nil)

func (r *memProductRepository) SaveProduct(_ context.Context, product domain.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.products {
		if existing.OrganizationID == product.OrganizationID && existing.SKU == product.SKU {
			return fmt.Errorf("%w: product sku %s", apperrors.ErrDuplicate, product.SKU)
		}
	}
	r.store.products[product.ProductID] = product
	return nil
}

func (r *memProductRepository) UpdateProduct(_ context.Context, product domain.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.products[product.ProductID]; !ok {
		return fmt.Errorf("%w: product %s", apperrors.ErrNotFound, product.ProductID)
	}
	r.store.products[product.ProductID] = product
	return nil
}

func (r *memProductRepository) FindProductByID(_ context.Context, productID string) (*domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	p, ok := r.store.products[productID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &p, nil
}

func (r *memProductRepository) FindProductBySKU(_ context.Context, organizationID, sku string) (*domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, p := range r.store.products {
		if p.OrganizationID == organizationID && p.SKU == sku {
			return &p, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *memProductRepository) ListProducts(_ context.Context, organizationID string, limit, offset int) ([]domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var products []domain.Product
	for _, p := range r.store.products {
		if p.OrganizationID == organizationID {
			products = append(products, p)
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].SKU < products[j].SKU })
	return paginate(products, limit, offset), nil
}

type memStockRepository struct {
	store *Store
}

var _ portsrepo.StockRepository = (*memStockRepository)(nil)

func (r *memStockRepository) FindStockLevel(_ context.Context, productID string) (*domain.StockLevel, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	level, ok := r.store.stockLevels[productID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &level, nil
}

func (r *memStockRepository) ListStockLevels(_ context.Context, organizationID string) ([]domain.StockLevel, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var levels []domain.StockLevel
	for _, level := range r.store.stockLevels {
		if level.OrganizationID == organizationID {
			levels = append(levels, level)
		}
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i].ProductID < levels[j].ProductID })
	return levels, nil
}

func (r *memStockRepository) SaveStockLevel(_ context.Context, level domain.StockLevel) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.stockLevels[level.ProductID]; ok {
		return fmt.Errorf("%w: stock level for product %s", apperrors.ErrDuplicate, level.ProductID)
	}
	r.store.stockLevels[level.ProductID] = level
	return nil
}

func (r *memStockRepository) UpdateStockLevel(_ context.Context, level domain.StockLevel) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.stockLevels[level.ProductID]; !ok {
		return fmt.Errorf("%w: stock level for product %s", apperrors.ErrNotFound, level.ProductID)
	}
	r.store.stockLevels[level.ProductID] = level
	return nil
}

func (r *memStockRepository) AppendMovement(_ context.Context, movement domain.StockMovement) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.movements = append(r.store.movements, movement)
	return nil
}

func (r *memStockRepository) ListMovementsByProduct(_ context.Context, productID string) ([]domain.StockMovement, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var movements []domain.StockMovement
	for _, m := range r.store.movements {
		if m.ProductID == productID {
			movements = append(movements, m)
		}
	}
	return movements, nil
}

func (r *memStockRepository) SumMovementsByProduct(_ context.Context, productID string) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var sum int64
	for _, m := range r.store.movements {
		if m.ProductID == productID {
			sum += m.Delta
		}
	}
	return sum, nil
}
