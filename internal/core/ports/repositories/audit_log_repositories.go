package repositories

import (
	"context"

	"github.com/SscSPs/erp_core_backend/internal/core/domain"
)

// AuditLogRepository persists the append-only mutation trail. There is no
// update or delete operation: the log is immutable history.
type AuditLogRepository interface {
	// AppendEntries writes buffered audit log entries within the ambient
	// transaction, so they commit or roll back with the data they describe.
	AppendEntries(ctx context.Context, entries []domain.AuditLogEntry) error

	// ListByRecord retrieves the history of one record, oldest first.
	ListByRecord(ctx context.Context, entityName, recordID string) ([]domain.AuditLogEntry, error)

	// ListByUnitOfWork retrieves every entry produced by one unit of work.
	ListByUnitOfWork(ctx context.Context, unitOfWorkID string) ([]domain.AuditLogEntry, error)
}
