package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/erp_core_backend/internal/apperrors"
	"github.com/SscSPs/erp_core_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/erp_core_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxStockAuditRepository stores stock audits and their line items.
type PgxStockAuditRepository struct {
	BaseRepository
}

func newPgxStockAuditRepository(pool *pgxpool.Pool) portsrepo.StockAuditRepository {
	return &PgxStockAuditRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.StockAuditRepository = (*PgxStockAuditRepository)(nil)

const stockAuditColumns = `audit_id, organization_id, name, scheduled_date, status, conducted_by, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanStockAudit(row pgx.Row) (*domain.StockAudit, error) {
	var a domain.StockAudit
	err := row.Scan(
		&a.AuditID, &a.OrganizationID, &a.Name, &a.ScheduledDate, &a.Status,
		&a.ConductedBy, &a.Notes,
		&a.CreatedAt, &a.CreatedBy, &a.LastUpdatedAt, &a.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan stock audit: %w", err)
	}
	return &a, nil
}

func scanStockAuditItem(row pgx.Row) (*domain.StockAuditItem, error) {
	var item domain.StockAuditItem
	err := row.Scan(
		&item.ItemID, &item.AuditID, &item.ProductID, &item.ExpectedQuantity,
		&item.ActualQuantity, &item.CountedAt, &item.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan stock audit item: %w", err)
	}
	return &item, nil
}

func (r *PgxStockAuditRepository) SaveAudit(ctx context.Context, audit domain.StockAudit) error {
	query := `
		INSERT INTO stock_audits (audit_id, organization_id, name, scheduled_date, status, conducted_by, notes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.conn(ctx).Exec(ctx, query,
		audit.AuditID, audit.OrganizationID, audit.Name, audit.ScheduledDate,
		audit.Status, audit.ConductedBy, audit.Notes,
		audit.CreatedAt, audit.CreatedBy, audit.LastUpdatedAt, audit.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert stock audit: %w", err)
	}
	return nil
}

func (r *PgxStockAuditRepository) FindAuditByID(ctx context.Context, auditID string) (*domain.StockAudit, error) {
	query := `SELECT ` + stockAuditColumns + ` FROM stock_audits WHERE audit_id = $1;`
	return scanStockAudit(r.conn(ctx).QueryRow(ctx, query, auditID))
}

func (r *PgxStockAuditRepository) ListAudits(ctx context.Context, organizationID string, limit, offset int) ([]domain.StockAudit, error) {
	query := `SELECT ` + stockAuditColumns + ` FROM stock_audits WHERE organization_id = $1 ORDER BY scheduled_date DESC`
	args := []any{organizationID}
	if limit > 0 {
		query += ` LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}
	rows, err := r.conn(ctx).Query(ctx, query+`;`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock audits: %w", err)
	}
	defer rows.Close()

	var audits []domain.StockAudit
	for rows.Next() {
		a, err := scanStockAudit(rows)
		if err != nil {
			return nil, err
		}
		audits = append(audits, *a)
	}
	return audits, rows.Err()
}

func (r *PgxStockAuditRepository) UpdateAuditStatus(ctx context.Context, auditID string, status domain.StockAuditStatus, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE stock_audits
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE audit_id = $4;
	`
	tag, err := r.conn(ctx).Exec(ctx, query, status, updatedAt, updatedBy, auditID)
	if err != nil {
		return fmt.Errorf("failed to update audit status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: stock audit %s", apperrors.ErrNotFound, auditID)
	}
	return nil
}

func (r *PgxStockAuditRepository) SaveAuditItems(ctx context.Context, items []domain.StockAuditItem) error {
	if len(items) == 0 {
		return nil
	}
	query := `
		INSERT INTO stock_audit_items (item_id, audit_id, product_id, expected_quantity, actual_quantity, counted_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	conn := r.conn(ctx)
	for _, item := range items {
		_, err := conn.Exec(ctx, query,
			item.ItemID, item.AuditID, item.ProductID, item.ExpectedQuantity,
			item.ActualQuantity, item.CountedAt, item.CreatedAt,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return fmt.Errorf("%w: audit item for product %s", apperrors.ErrDuplicate, item.ProductID)
			}
			return fmt.Errorf("failed to insert audit item: %w", err)
		}
	}
	return nil
}

func (r *PgxStockAuditRepository) FindItemsByAudit(ctx context.Context, auditID string) ([]domain.StockAuditItem, error) {
	query := `
		SELECT item_id, audit_id, product_id, expected_quantity, actual_quantity, counted_at, created_at
		FROM stock_audit_items
		WHERE audit_id = $1
		ORDER BY product_id;
	`
	rows, err := r.conn(ctx).Query(ctx, query, auditID)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit items: %w", err)
	}
	defer rows.Close()

	var items []domain.StockAuditItem
	for rows.Next() {
		item, err := scanStockAuditItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *PgxStockAuditRepository) FindItem(ctx context.Context, auditID, productID string) (*domain.StockAuditItem, error) {
	query := `
		SELECT item_id, audit_id, product_id, expected_quantity, actual_quantity, counted_at, created_at
		FROM stock_audit_items
		WHERE audit_id = $1 AND product_id = $2;
	`
	return scanStockAuditItem(r.conn(ctx).QueryRow(ctx, query, auditID, productID))
}

func (r *PgxStockAuditRepository) UpdateAuditItemCount(ctx context.Context, itemID string, actual int64, countedAt time.Time) error {
	query := `
		UPDATE stock_audit_items
		SET actual_quantity = $1, counted_at = $2
		WHERE item_id = $3;
	`
	tag, err := r.conn(ctx).Exec(ctx, query, actual, countedAt, itemID)
	if err != nil {
		return fmt.Errorf("failed to update audit item count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: audit item %s", apperrors.ErrNotFound, itemID)
	}
	return nil
}

func (r *PgxStockAuditRepository) DeleteItemsByAudit(ctx context.Context, auditID string) error {
	query := `DELETE FROM stock_audit_items WHERE audit_id = $1;`
	if _, err := r.conn(ctx).Exec(ctx, query, auditID); err != nil {
		return fmt.Errorf("failed to delete audit items: %w", err)
	}
	return nil
}
