package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/erp_core_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/erp_core_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxAuditLogRepository stores the append-only audit trail. Rows carry the
// before/after snapshots as jsonb.
type PgxAuditLogRepository struct {
	BaseRepository
}

func newPgxAuditLogRepository(pool *pgxpool.Pool) portsrepo.AuditLogRepository {
	return &PgxAuditLogRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditLogRepository = (*PgxAuditLogRepository)(nil)

func (r *PgxAuditLogRepository) AppendEntries(ctx context.Context, entries []domain.AuditLogEntry) error {
	if len(entries) == 0 {
		return nil
	}
	query := `
		INSERT INTO audit_logs (log_id, organization_id, entity_name, record_id, operation, old_values, new_values, actor, unit_of_work_id, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	conn := r.conn(ctx)
	for _, e := range entries {
		_, err := conn.Exec(ctx, query,
			e.LogID, e.OrganizationID, e.EntityName, e.RecordID, e.Operation,
			e.OldValues, e.NewValues, e.Actor, e.UnitOfWorkID, e.ChangedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert audit log entry: %w", err)
		}
	}
	return nil
}

func (r *PgxAuditLogRepository) ListByRecord(ctx context.Context, entityName, recordID string) ([]domain.AuditLogEntry, error) {
	query := `
		SELECT log_id, organization_id, entity_name, record_id, operation, old_values, new_values, actor, unit_of_work_id, changed_at
		FROM audit_logs
		WHERE entity_name = $1 AND record_id = $2
		ORDER BY changed_at;
	`
	return r.queryEntries(ctx, query, entityName, recordID)
}

func (r *PgxAuditLogRepository) ListByUnitOfWork(ctx context.Context, unitOfWorkID string) ([]domain.AuditLogEntry, error) {
	query := `
		SELECT log_id, organization_id, entity_name, record_id, operation, old_values, new_values, actor, unit_of_work_id, changed_at
		FROM audit_logs
		WHERE unit_of_work_id = $1
		ORDER BY changed_at;
	`
	return r.queryEntries(ctx, query, unitOfWorkID)
}

func (r *PgxAuditLogRepository) queryEntries(ctx context.Context, query string, args ...any) ([]domain.AuditLogEntry, error) {
	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}
	defer rows.Close()

	var entries []domain.AuditLogEntry
	for rows.Next() {
		var e domain.AuditLogEntry
		err := rows.Scan(
			&e.LogID, &e.OrganizationID, &e.EntityName, &e.RecordID, &e.Operation,
			&e.OldValues, &e.NewValues, &e.Actor, &e.UnitOfWorkID, &e.ChangedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit log entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
