package services

import (
	"context"

	"github.com/SscSPs/erp_core_backend/internal/core/domain"
	"github.com/SscSPs/erp_core_backend/internal/dto"
)

// StockAuditSvcFacade drives the physical stock count state machine.
// Creating, starting, recording and completing all mutate state and therefore
// require an active unit of work.
type StockAuditSvcFacade interface {
	// CreateAudit registers a pending audit.
	CreateAudit(ctx context.Context, req dto.CreateAuditRequest) (*domain.StockAudit, error)

	// StartAudit moves a pending audit to in-progress and snapshots the
	// current quantity of every in-scope product as the expected quantity.
	StartAudit(ctx context.Context, auditID string) ([]domain.StockAuditItem, error)

	// RecordCount stores the physically counted quantity for one product.
	RecordCount(ctx context.Context, auditID, productID string, actual int64) (*domain.StockAuditItem, error)

	// CompleteAudit finishes an in-progress audit once every item is counted,
	// applying one corrective stock adjustment per non-zero variance.
	CompleteAudit(ctx context.Context, auditID string) (*dto.AuditSummary, error)

	// CancelAudit abandons a non-terminal audit, discarding recorded counts
	// without mutating inventory.
	CancelAudit(ctx context.Context, auditID string) error

	// GetAudit reads an audit by ID.
	GetAudit(ctx context.Context, auditID string) (*domain.StockAudit, error)

	// GetItems reads the items of an audit.
	GetItems(ctx context.Context, auditID string) ([]domain.StockAuditItem, error)
}
