package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/erp_core_backend/internal/core/domain"
)

// StockAuditReader defines read operations for stock audits.
type StockAuditReader interface {
	FindAuditByID(ctx context.Context, auditID string) (*domain.StockAudit, error)
	ListAudits(ctx context.Context, organizationID string, limit, offset int) ([]domain.StockAudit, error)
	FindItemsByAudit(ctx context.Context, auditID string) ([]domain.StockAuditItem, error)
	FindItem(ctx context.Context, auditID, productID string) (*domain.StockAuditItem, error)
}

// StockAuditWriter defines write operations for stock audits.
type StockAuditWriter interface {
	SaveAudit(ctx context.Context, audit domain.StockAudit) error
	UpdateAuditStatus(ctx context.Context, auditID string, status domain.StockAuditStatus, updatedBy string, updatedAt time.Time) error
	SaveAuditItems(ctx context.Context, items []domain.StockAuditItem) error
	UpdateAuditItemCount(ctx context.Context, itemID string, actual int64, countedAt time.Time) error
	DeleteItemsByAudit(ctx context.Context, auditID string) error
}

// StockAuditRepository combines stock audit read and write operations.
type StockAuditRepository interface {
	StockAuditReader
	StockAuditWriter
}
