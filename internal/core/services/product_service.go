package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/erp_core_backend/internal/apperrors"
	"github.com/SscSPs/erp_core_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/erp_core_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/erp_core_backend/internal/core/ports/services"
	"github.com/SscSPs/erp_core_backend/internal/dto"
	"github.com/SscSPs/erp_core_backend/internal/platform/logging"
)

// productService manages the product catalog. Each product owns exactly one
// stock level row, created together with it.
type productService struct {
	productRepo portsrepo.ProductRepository
	stockRepo   portsrepo.StockRepository
}

// NewProductService creates the product catalog service.
func NewProductService(productRepo portsrepo.ProductRepository, stockRepo portsrepo.StockRepository) portssvc.ProductSvcFacade {
	return &productService{
		productRepo: productRepo,
		stockRepo:   stockRepo,
	}
}

var _ portssvc.ProductSvcFacade = (*productService)(nil)

func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*domain.Product, error) {
	logger := logging.GetLoggerFromCtx(ctx)

	rec := recorderFromCtx(ctx)
	if rec == nil {
		return nil, ErrNoUnitOfWork
	}
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	if req.MaximumQuantity > 0 && req.MaximumQuantity < req.MinimumQuantity {
		return nil, fmt.Errorf("%w: maximum quantity below minimum", apperrors.ErrValidation)
	}

	existing, err := s.productRepo.FindProductBySKU(ctx, req.OrganizationID, req.SKU)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check SKU uniqueness: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: SKU %s", apperrors.ErrDuplicate, req.SKU)
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     rec.actor,
		LastUpdatedAt: now,
		LastUpdatedBy: rec.actor,
	}
	product := domain.Product{
		ProductID:      uuid.NewString(),
		OrganizationID: req.OrganizationID,
		SKU:            req.SKU,
		Name:           req.Name,
		Category:       req.Category,
		UnitPrice:      req.UnitPrice,
		CostPrice:      req.CostPrice,
		Status:         domain.ProductActive,
		AuditFields:    audit,
	}
	level := domain.StockLevel{
		ProductID:       product.ProductID,
		OrganizationID:  req.OrganizationID,
		Quantity:        0,
		Reserved:        0,
		MinimumQuantity: req.MinimumQuantity,
		MaximumQuantity: req.MaximumQuantity,
		Location:        req.Location,
		AuditFields:     audit,
	}

	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		logger.Error("failed to save product", slog.String("error", err.Error()), slog.String("sku", req.SKU))
		return nil, err
	}
	if err := s.stockRepo.SaveStockLevel(ctx, level); err != nil {
		return nil, fmt.Errorf("failed to save stock level: %w", err)
	}

	rec.recordChange(product.OrganizationID, "Product", product.ProductID, domain.OpCreate, nil, product)
	rec.recordChange(product.OrganizationID, "StockLevel", product.ProductID, domain.OpCreate, nil, level)

	logger.Info("product created", slog.String("product_id", product.ProductID), slog.String("sku", product.SKU))
	return &product, nil
}

func (s *productService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	return s.productRepo.FindProductByID(ctx, productID)
}

func (s *productService) ListProducts(ctx context.Context, organizationID string, limit, offset int) ([]domain.Product, error) {
	products, err := s.productRepo.ListProducts(ctx, organizationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

func (s *productService) UpdateProductStatus(ctx context.Context, productID string, status domain.ProductStatus) error {
	rec := recorderFromCtx(ctx)
	if rec == nil {
		return ErrNoUnitOfWork
	}
	switch status {
	case domain.ProductActive, domain.ProductInactive, domain.ProductDiscontinued:
	default:
		return fmt.Errorf("%w: unknown product status %q", apperrors.ErrValidation, status)
	}

	before, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return err
	}

	after := *before
	after.Status = status
	after.LastUpdatedAt = time.Now().UTC()
	after.LastUpdatedBy = rec.actor
	if err := s.productRepo.UpdateProduct(ctx, after); err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	rec.recordChange(before.OrganizationID, "Product", productID, domain.OpUpdate, before, after)
	return nil
}
