package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/erp_core_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerEntryReader defines read operations for posted ledger entries.
type LedgerEntryReader interface {
	// SumEntriesByAccount returns the signed sum of all entries posted to an
	// account up to asOf (all time when asOf is nil).
	SumEntriesByAccount(ctx context.Context, accountID string, asOf *time.Time) (decimal.Decimal, error)

	// ListEntriesByAccount retrieves the entries posted to an account, oldest first.
	ListEntriesByAccount(ctx context.Context, accountID string, limit, offset int) ([]domain.LedgerEntry, error)

	// ListEntriesByUnitOfWork retrieves all entries produced by one unit of work.
	ListEntriesByUnitOfWork(ctx context.Context, unitOfWorkID string) ([]domain.LedgerEntry, error)
}

// LedgerEntryWriter defines write operations for ledger entries.
type LedgerEntryWriter interface {
	// SaveEntries appends posted entries. Entries are immutable: there is no
	// update or delete operation on this interface by design of the schema.
	SaveEntries(ctx context.Context, entries []domain.LedgerEntry) error
}

// LedgerEntryRepository combines ledger entry read and write operations.
type LedgerEntryRepository interface {
	LedgerEntryReader
	LedgerEntryWriter
}
