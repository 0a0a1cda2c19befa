package memory

import (
	"context"

	"github.com/SscSPs/erp_core_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/erp_core_backend/internal/core/ports/repositories"
)

type memAuditLogRepository struct {
	store *Store
}

var _ portsrepo.AuditLogRepository = (*memAuditLogRepository)(nil)

func (r *memAuditLogRepository) AppendEntries(_ context.Context, entries []domain.AuditLogEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.auditLogs = append(r.store.auditLogs, entries...)
	return nil
}

func (r *memAuditLogRepository) ListByRecord(_ context.Context, entityName, recordID string) ([]domain.AuditLogEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var entries []domain.AuditLogEntry
	for _, e := range r.store.auditLogs {
		if e.EntityName == entityName && e.RecordID == recordID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (r *memAuditLogRepository) ListByUnitOfWork(_ context.Context, unitOfWorkID string) ([]domain.AuditLogEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var entries []domain.AuditLogEntry
	for _, e := range r.store.auditLogs {
		if e.UnitOfWorkID == unitOfWorkID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}
