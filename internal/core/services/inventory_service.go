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
	"github.com/SscSPs/erp_core_backend/internal/core/events"
	portsrepo "github.com/SscSPs/erp_core_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/erp_core_backend/internal/core/ports/services"
	"github.com/SscSPs/erp_core_backend/internal/platform/logging"
)

var (
	ErrNegativeStock         = errors.New("stock quantity cannot go below zero")
	ErrInsufficientAvailable = errors.New("insufficient available stock")
	ErrInsufficientReserved  = errors.New("amount exceeds reserved stock")
)

// inventoryService mutates stock levels under the quantity/reservation
// invariants and appends one movement per quantity change.
type inventoryService struct {
	stockRepo portsrepo.StockRepository
}

// NewInventoryService creates the inventory store.
func NewInventoryService(stockRepo portsrepo.StockRepository) portssvc.InventorySvcFacade {
	return &inventoryService{stockRepo: stockRepo}
}

var _ portssvc.InventorySvcFacade = (*inventoryService)(nil)

// Adjust changes on-hand quantity by delta. The resulting quantity must stay
// non-negative and must not drop below the reserved amount.
func (s *inventoryService) Adjust(ctx context.Context, productID string, delta int64, reason domain.MovementReason, reference string) (*domain.StockLevel, error) {
	rec := recorderFromCtx(ctx)
	if rec == nil {
		return nil, ErrNoUnitOfWork
	}
	if delta == 0 {
		return nil, fmt.Errorf("%w: adjustment delta must not be zero", apperrors.ErrValidation)
	}

	level, err := s.stockRepo.FindStockLevel(ctx, productID)
	if err != nil {
		return nil, err
	}
	before := *level

	newQuantity := level.Quantity + delta
	if newQuantity < 0 {
		return nil, fmt.Errorf("%w: product %s has %d on hand, delta %d", ErrNegativeStock, productID, level.Quantity, delta)
	}
	if newQuantity < level.Reserved {
		return nil, fmt.Errorf("%w: product %s has %d reserved, adjustment would leave %d on hand", ErrInsufficientAvailable, productID, level.Reserved, newQuantity)
	}

	now := time.Now().UTC()
	level.Quantity = newQuantity
	level.LastUpdatedAt = now
	level.LastUpdatedBy = rec.actor
	if err := s.stockRepo.UpdateStockLevel(ctx, *level); err != nil {
		return nil, fmt.Errorf("failed to update stock level: %w", err)
	}
	if err := s.appendMovement(ctx, rec, level.OrganizationID, productID, delta, reason, reference, now); err != nil {
		return nil, err
	}

	rec.recordChange(level.OrganizationID, "StockLevel", productID, domain.OpUpdate, before, *level)
	s.raiseThresholdEvent(rec, before, *level, now)

	logging.GetLoggerFromCtx(ctx).Debug("stock adjusted",
		slog.String("product_id", productID),
		slog.Int64("delta", delta),
		slog.String("reason", string(reason)))
	return level, nil
}

// Reserve earmarks stock without changing quantity; only available shrinks.
func (s *inventoryService) Reserve(ctx context.Context, productID string, amount int64) error {
	rec := recorderFromCtx(ctx)
	if rec == nil {
		return ErrNoUnitOfWork
	}
	if amount <= 0 {
		return fmt.Errorf("%w: reservation amount must be positive", apperrors.ErrValidation)
	}

	level, err := s.stockRepo.FindStockLevel(ctx, productID)
	if err != nil {
		return err
	}
	before := *level

	if amount > level.Available() {
		return fmt.Errorf("%w: product %s has %d available, requested %d", ErrInsufficientAvailable, productID, level.Available(), amount)
	}

	now := time.Now().UTC()
	level.Reserved += amount
	level.LastUpdatedAt = now
	level.LastUpdatedBy = rec.actor
	if err := s.stockRepo.UpdateStockLevel(ctx, *level); err != nil {
		return fmt.Errorf("failed to update stock level: %w", err)
	}

	rec.recordChange(level.OrganizationID, "StockLevel", productID, domain.OpUpdate, before, *level)
	return nil
}

// Consume removes previously reserved stock: quantity and reserved decrease
// together, so available is unchanged.
func (s *inventoryService) Consume(ctx context.Context, productID string, amount int64, reason domain.MovementReason, reference string) (*domain.StockLevel, error) {
	rec := recorderFromCtx(ctx)
	if rec == nil {
		return nil, ErrNoUnitOfWork
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: consume amount must be positive", apperrors.ErrValidation)
	}

	level, err := s.stockRepo.FindStockLevel(ctx, productID)
	if err != nil {
		return nil, err
	}
	before := *level

	if amount > level.Reserved {
		return nil, fmt.Errorf("%w: product %s has %d reserved, requested %d", ErrInsufficientReserved, productID, level.Reserved, amount)
	}

	now := time.Now().UTC()
	level.Quantity -= amount
	level.Reserved -= amount
	level.LastUpdatedAt = now
	level.LastUpdatedBy = rec.actor
	if err := s.stockRepo.UpdateStockLevel(ctx, *level); err != nil {
		return nil, fmt.Errorf("failed to update stock level: %w", err)
	}
	if err := s.appendMovement(ctx, rec, level.OrganizationID, productID, -amount, reason, reference, now); err != nil {
		return nil, err
	}

	rec.recordChange(level.OrganizationID, "StockLevel", productID, domain.OpUpdate, before, *level)
	s.raiseThresholdEvent(rec, before, *level, now)
	return level, nil
}

// Release returns reserved stock to available without touching quantity.
func (s *inventoryService) Release(ctx context.Context, productID string, amount int64) error {
	rec := recorderFromCtx(ctx)
	if rec == nil {
		return ErrNoUnitOfWork
	}
	if amount <= 0 {
		return fmt.Errorf("%w: release amount must be positive", apperrors.ErrValidation)
	}

	level, err := s.stockRepo.FindStockLevel(ctx, productID)
	if err != nil {
		return err
	}
	before := *level

	if amount > level.Reserved {
		return fmt.Errorf("%w: product %s has %d reserved, requested %d", ErrInsufficientReserved, productID, level.Reserved, amount)
	}

	now := time.Now().UTC()
	level.Reserved -= amount
	level.LastUpdatedAt = now
	level.LastUpdatedBy = rec.actor
	if err := s.stockRepo.UpdateStockLevel(ctx, *level); err != nil {
		return fmt.Errorf("failed to update stock level: %w", err)
	}

	rec.recordChange(level.OrganizationID, "StockLevel", productID, domain.OpUpdate, before, *level)
	return nil
}

func (s *inventoryService) GetStockLevel(ctx context.Context, productID string) (*domain.StockLevel, error) {
	return s.stockRepo.FindStockLevel(ctx, productID)
}

func (s *inventoryService) GetMovements(ctx context.Context, productID string) ([]domain.StockMovement, error) {
	return s.stockRepo.ListMovementsByProduct(ctx, productID)
}

// appendMovement records the single movement row for a quantity change.
func (s *inventoryService) appendMovement(ctx context.Context, rec *changeRecorder, organizationID, productID string, delta int64, reason domain.MovementReason, reference string, at time.Time) error {
	movement := domain.StockMovement{
		MovementID:     uuid.NewString(),
		OrganizationID: organizationID,
		ProductID:      productID,
		Delta:          delta,
		Reason:         reason,
		Reference:      reference,
		UnitOfWorkID:   rec.unitOfWorkID,
		MovedAt:        at,
		MovedBy:        rec.actor,
	}
	if err := s.stockRepo.AppendMovement(ctx, movement); err != nil {
		return fmt.Errorf("failed to append stock movement: %w", err)
	}
	return nil
}

// raiseThresholdEvent fires StockLevelChanged when the mutation dropped the
// quantity to or below the minimum. Evaluated strictly on pre/post values, at
// most once per mutation.
func (s *inventoryService) raiseThresholdEvent(rec *changeRecorder, before, after domain.StockLevel, at time.Time) {
	if before.Quantity > before.MinimumQuantity && after.Quantity <= after.MinimumQuantity {
		rec.raiseEvent(events.StockLevelChanged{
			ProductID:       after.ProductID,
			Organization:    after.OrganizationID,
			OldQuantity:     before.Quantity,
			NewQuantity:     after.Quantity,
			MinimumQuantity: after.MinimumQuantity,
			At:              at,
		})
	}
}
