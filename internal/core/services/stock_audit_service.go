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
	"github.com/SscSPs/erp_core_backend/internal/dto"
	"github.com/SscSPs/erp_core_backend/internal/platform/logging"
)

var (
	ErrInvalidAuditTransition = errors.New("stock audit status transition not permitted")
	ErrIncompleteAuditItems   = errors.New("stock audit has uncounted items")
)

// stockAuditService drives physical counts: snapshot at start, counts while in
// progress, corrective movements at completion.
type stockAuditService struct {
	auditRepo   portsrepo.StockAuditRepository
	stockRepo   portsrepo.StockRepository
	productRepo portsrepo.ProductRepository
	inventory   portssvc.InventorySvcFacade
}

// NewStockAuditService creates the stock audit engine.
func NewStockAuditService(
	auditRepo portsrepo.StockAuditRepository,
	stockRepo portsrepo.StockRepository,
	productRepo portsrepo.ProductRepository,
	inventory portssvc.InventorySvcFacade,
) portssvc.StockAuditSvcFacade {
	return &stockAuditService{
		auditRepo:   auditRepo,
		stockRepo:   stockRepo,
		productRepo: productRepo,
		inventory:   inventory,
	}
}

var _ portssvc.StockAuditSvcFacade = (*stockAuditService)(nil)

func (s *stockAuditService) CreateAudit(ctx context.Context, req dto.CreateAuditRequest) (*domain.StockAudit, error) {
	rec := recorderFromCtx(ctx)
	if rec == nil {
		return nil, ErrNoUnitOfWork
	}
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	audit := domain.StockAudit{
		AuditID:        uuid.NewString(),
		OrganizationID: req.OrganizationID,
		Name:           req.Name,
		ScheduledDate:  req.ScheduledDate,
		Status:         domain.AuditPending,
		ConductedBy:    rec.actor,
		Notes:          req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     rec.actor,
			LastUpdatedAt: now,
			LastUpdatedBy: rec.actor,
		},
	}
	if err := s.auditRepo.SaveAudit(ctx, audit); err != nil {
		return nil, fmt.Errorf("failed to save stock audit: %w", err)
	}

	rec.recordChange(audit.OrganizationID, "StockAudit", audit.AuditID, domain.OpCreate, nil, audit)

	logging.GetLoggerFromCtx(ctx).Info("stock audit created",
		slog.String("audit_id", audit.AuditID), slog.String("name", audit.Name))
	return &audit, nil
}

// StartAudit snapshots the current quantity of every active product into the
// audit's items. The snapshot is immutable for the life of the audit: later
// sales or receipts do not move the expected quantities.
func (s *stockAuditService) StartAudit(ctx context.Context, auditID string) ([]domain.StockAuditItem, error) {
	rec := recorderFromCtx(ctx)
	if rec == nil {
		return nil, ErrNoUnitOfWork
	}

	audit, err := s.transition(ctx, rec, auditID, domain.AuditInProgress)
	if err != nil {
		return nil, err
	}

	products, err := s.productRepo.ListProducts(ctx, audit.OrganizationID, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list products for audit: %w", err)
	}

	now := time.Now().UTC()
	items := make([]domain.StockAuditItem, 0, len(products))
	for _, p := range products {
		if p.Status != domain.ProductActive {
			continue
		}
		level, err := s.stockRepo.FindStockLevel(ctx, p.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to snapshot stock for product %s: %w", p.ProductID, err)
		}
		items = append(items, domain.StockAuditItem{
			ItemID:           uuid.NewString(),
			AuditID:          auditID,
			ProductID:        p.ProductID,
			ExpectedQuantity: level.Quantity,
			CreatedAt:        now,
		})
	}

	if err := s.auditRepo.SaveAuditItems(ctx, items); err != nil {
		return nil, fmt.Errorf("failed to save audit items: %w", err)
	}
	for _, item := range items {
		rec.recordChange(audit.OrganizationID, "StockAuditItem", item.ItemID, domain.OpCreate, nil, item)
	}

	logging.GetLoggerFromCtx(ctx).Info("stock audit started",
		slog.String("audit_id", auditID), slog.Int("items", len(items)))
	return items, nil
}

// RecordCount stores an actual quantity for one product. Only permitted while
// the parent audit is in progress.
func (s *stockAuditService) RecordCount(ctx context.Context, auditID, productID string, actual int64) (*domain.StockAuditItem, error) {
	rec := recorderFromCtx(ctx)
	if rec == nil {
		return nil, ErrNoUnitOfWork
	}
	if actual < 0 {
		return nil, fmt.Errorf("%w: counted quantity cannot be negative", apperrors.ErrValidation)
	}

	audit, err := s.auditRepo.FindAuditByID(ctx, auditID)
	if err != nil {
		return nil, err
	}
	if audit.Status != domain.AuditInProgress {
		return nil, fmt.Errorf("%w: cannot record counts while audit is %s", ErrInvalidAuditTransition, audit.Status)
	}

	item, err := s.auditRepo.FindItem(ctx, auditID, productID)
	if err != nil {
		return nil, err
	}
	before := *item

	now := time.Now().UTC()
	if err := s.auditRepo.UpdateAuditItemCount(ctx, item.ItemID, actual, now); err != nil {
		return nil, fmt.Errorf("failed to record count: %w", err)
	}
	item.ActualQuantity = &actual
	item.CountedAt = &now

	rec.recordChange(audit.OrganizationID, "StockAuditItem", item.ItemID, domain.OpUpdate, before, *item)
	return item, nil
}

// CompleteAudit applies one corrective adjustment per non-zero variance and
// moves the audit to completed, all inside the caller's unit of work so that
// partial completion is never observable.
func (s *stockAuditService) CompleteAudit(ctx context.Context, auditID string) (*dto.AuditSummary, error) {
	rec := recorderFromCtx(ctx)
	if rec == nil {
		return nil, ErrNoUnitOfWork
	}

	audit, err := s.auditRepo.FindAuditByID(ctx, auditID)
	if err != nil {
		return nil, err
	}
	if !audit.Status.CanTransitionTo(domain.AuditCompleted) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidAuditTransition, audit.Status, domain.AuditCompleted)
	}

	items, err := s.auditRepo.FindItemsByAudit(ctx, auditID)
	if err != nil {
		return nil, err
	}

	uncounted := 0
	for _, item := range items {
		if !item.Counted() {
			uncounted++
		}
	}
	if uncounted > 0 {
		return nil, fmt.Errorf("%w: %d of %d items uncounted", ErrIncompleteAuditItems, uncounted, len(items))
	}

	summary := dto.AuditSummary{AuditID: auditID, TotalItems: len(items)}
	for _, item := range items {
		variance := item.Variance()
		if variance == 0 {
			continue
		}
		summary.VarianceItems++
		summary.TotalVariance += variance
		if _, err := s.inventory.Adjust(ctx, item.ProductID, variance, domain.MovementAuditCorrection, auditID); err != nil {
			return nil, fmt.Errorf("failed to apply audit correction for product %s: %w", item.ProductID, err)
		}
	}

	if _, err := s.transition(ctx, rec, auditID, domain.AuditCompleted); err != nil {
		return nil, err
	}

	rec.raiseEvent(events.AuditCompleted{
		AuditID:       auditID,
		Organization:  audit.OrganizationID,
		TotalItems:    summary.TotalItems,
		VarianceItems: summary.VarianceItems,
		TotalVariance: summary.TotalVariance,
		At:            time.Now().UTC(),
	})

	logging.GetLoggerFromCtx(ctx).Info("stock audit completed",
		slog.String("audit_id", auditID),
		slog.Int("items", summary.TotalItems),
		slog.Int("variance_items", summary.VarianceItems),
		slog.Int64("total_variance", summary.TotalVariance))
	return &summary, nil
}

// CancelAudit discards recorded counts without mutating inventory.
func (s *stockAuditService) CancelAudit(ctx context.Context, auditID string) error {
	rec := recorderFromCtx(ctx)
	if rec == nil {
		return ErrNoUnitOfWork
	}

	audit, err := s.transition(ctx, rec, auditID, domain.AuditCancelled)
	if err != nil {
		return err
	}

	if err := s.auditRepo.DeleteItemsByAudit(ctx, auditID); err != nil {
		return fmt.Errorf("failed to discard audit items: %w", err)
	}

	logging.GetLoggerFromCtx(ctx).Info("stock audit cancelled",
		slog.String("audit_id", auditID), slog.String("name", audit.Name))
	return nil
}

func (s *stockAuditService) GetAudit(ctx context.Context, auditID string) (*domain.StockAudit, error) {
	return s.auditRepo.FindAuditByID(ctx, auditID)
}

func (s *stockAuditService) GetItems(ctx context.Context, auditID string) ([]domain.StockAuditItem, error) {
	return s.auditRepo.FindItemsByAudit(ctx, auditID)
}

// transition enforces the audit state machine and records the change.
func (s *stockAuditService) transition(ctx context.Context, rec *changeRecorder, auditID string, next domain.StockAuditStatus) (*domain.StockAudit, error) {
	audit, err := s.auditRepo.FindAuditByID(ctx, auditID)
	if err != nil {
		return nil, err
	}
	if !audit.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidAuditTransition, audit.Status, next)
	}

	before := *audit
	now := time.Now().UTC()
	if err := s.auditRepo.UpdateAuditStatus(ctx, auditID, next, rec.actor, now); err != nil {
		return nil, fmt.Errorf("failed to update audit status: %w", err)
	}
	audit.Status = next
	audit.LastUpdatedAt = now
	audit.LastUpdatedBy = rec.actor

	rec.recordChange(audit.OrganizationID, "StockAudit", auditID, domain.OpUpdate, before, *audit)
	return audit, nil
}
