package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/erp_core_backend/internal/apperrors"
	"github.com/SscSPs/erp_core_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/erp_core_backend/internal/core/ports/repositories"
)

type memStockAuditRepository struct {
	store *Store
}

var _ portsrepo.StockAuditRepository = (*memStockAuditRepository)(nil)

func (r *memStockAuditRepository) SaveAudit(_ context.Context, audit domain.StockAudit) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.audits[audit.AuditID] = audit
	return nil
}

func (r *memStockAuditRepository) FindAuditByID(_ context.Context, auditID string) (*domain.StockAudit, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	audit, ok := r.store.audits[auditID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &audit, nil
}

func (r *memStockAuditRepository) ListAudits(_ context.Context, organizationID string, limit, offset int) ([]domain.StockAudit, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var audits []domain.StockAudit
	for _, audit := range r.store.audits {
		if audit.OrganizationID == organizationID {
			audits = append(audits, audit)
		}
	}
	sort.Slice(audits, func(i, j int) bool { return audits[i].ScheduledDate.After(audits[j].ScheduledDate) })
	return paginate(audits, limit, offset), nil
}

func (r *memStockAuditRepository) UpdateAuditStatus(_ context.Context, auditID string, status domain.StockAuditStatus, updatedBy string, updatedAt time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	audit, ok := r.store.audits[auditID]
	if !ok {
		return fmt.Errorf("%w: stock audit %s", apperrors.ErrNotFound, auditID)
	}
	audit.Status = status
	audit.LastUpdatedAt = updatedAt
	audit.LastUpdatedBy = updatedBy
	r.store.audits[auditID] = audit
	return nil
}

func (r *memStockAuditRepository) SaveAuditItems(_ context.Context, items []domain.StockAuditItem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, item := range items {
		for _, existing := range r.store.auditItems {
			if existing.AuditID == item.AuditID && existing.ProductID == item.ProductID {
				return fmt.Errorf("%w: audit item for product %s", apperrors.ErrDuplicate, item.ProductID)
			}
		}
		r.store.auditItems[item.ItemID] = item
	}
	return nil
}

func (r *memStockAuditRepository) FindItemsByAudit(_ context.Context, auditID string) ([]domain.StockAuditItem, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var items []domain.StockAuditItem
	for _, item := range r.store.auditItems {
		if item.AuditID == auditID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })
	return items, nil
}

func (r *memStockAuditRepository) FindItem(_ context.Context, auditID, productID string) (*domain.StockAuditItem, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, item := range r.store.auditItems {
		if item.AuditID == auditID && item.ProductID == productID {
			return &item, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *memStockAuditRepository) UpdateAuditItemCount(_ context.Context, itemID string, actual int64, countedAt time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	item, ok := r.store.auditItems[itemID]
	if !ok {
		return fmt.Errorf("%w: audit item %s", apperrors.ErrNotFound, itemID)
	}
	item.ActualQuantity = &actual
	item.CountedAt = &countedAt
	r.store.auditItems[itemID] = item
	return nil
}

func (r *memStockAuditRepository) DeleteItemsByAudit(_ context.Context, auditID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, item := range r.store.auditItems {
		if item.AuditID == auditID {
			delete(r.store.auditItems, id)
		}
	}
	return nil
}
