package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/erp_core_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/erp_core_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxLedgerEntryRepository stores the append-only ledger entry log.
type PgxLedgerEntryRepository struct {
	BaseRepository
}

func newPgxLedgerEntryRepository(pool *pgxpool.Pool) portsrepo.LedgerEntryRepository {
	return &PgxLedgerEntryRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerEntryRepository = (*PgxLedgerEntryRepository)(nil)

const ledgerEntryColumns = `entry_id, organization_id, account_id, entry_date, amount, entry_type, description, COALESCE(reference, ''), unit_of_work_id, created_at, created_by`

func scanLedgerEntry(row pgx.Row) (*domain.LedgerEntry, error) {
	var e domain.LedgerEntry
	err := row.Scan(
		&e.EntryID, &e.OrganizationID, &e.AccountID, &e.EntryDate, &e.Amount,
		&e.EntryType, &e.Description, &e.Reference, &e.UnitOfWorkID,
		&e.CreatedAt, &e.CreatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
	}
	return &e, nil
}

func (r *PgxLedgerEntryRepository) SaveEntries(ctx context.Context, entries []domain.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}
	query := `
		INSERT INTO ledger_entries (entry_id, organization_id, account_id, entry_date, amount, entry_type, description, reference, unit_of_work_id, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	conn := r.conn(ctx)
	for _, e := range entries {
		_, err := conn.Exec(ctx, query,
			e.EntryID, e.OrganizationID, e.AccountID, e.EntryDate, e.Amount,
			e.EntryType, e.Description, e.Reference, e.UnitOfWorkID,
			e.CreatedAt, e.CreatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to insert ledger entry %s: %w", e.EntryID, err)
		}
	}
	return nil
}

func (r *PgxLedgerEntryRepository) SumEntriesByAccount(ctx context.Context, accountID string, asOf *time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN entry_type = 'DEBIT' THEN amount ELSE -amount END), 0)
		FROM ledger_entries
		WHERE account_id = $1
	`
	args := []any{accountID}
	if asOf != nil {
		query += ` AND entry_date <= $2`
		args = append(args, *asOf)
	}

	var sum decimal.Decimal
	if err := r.conn(ctx).QueryRow(ctx, query+`;`, args...).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum ledger entries: %w", err)
	}
	return sum, nil
}

func (r *PgxLedgerEntryRepository) ListEntriesByAccount(ctx context.Context, accountID string, limit, offset int) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerEntryColumns + ` FROM ledger_entries WHERE account_id = $1 ORDER BY entry_date, created_at`
	args := []any{accountID}
	if limit > 0 {
		query += ` LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}
	return r.queryEntries(ctx, query+`;`, args...)
}

func (r *PgxLedgerEntryRepository) ListEntriesByUnitOfWork(ctx context.Context, unitOfWorkID string) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerEntryColumns + ` FROM ledger_entries WHERE unit_of_work_id = $1 ORDER BY created_at;`
	return r.queryEntries(ctx, query, unitOfWorkID)
}

func (r *PgxLedgerEntryRepository) queryEntries(ctx context.Context, query string, args ...any) ([]domain.LedgerEntry, error) {
	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		e, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}
