package memory

import (
	"context"
	"time"

	"github.com/SscSPs/erp_core_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/erp_core_backend/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

type memLedgerEntryRepository struct {
	store *Store
}

var _ portsrepo.LedgerEntryRepository = (*memLedgerEntryRepository)(nil)

func (r *memLedgerEntryRepository) SaveEntries(_ context.Context, entries []domain.LedgerEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.entries = append(r.store.entries, entries...)
	return nil
}

func (r *memLedgerEntryRepository) SumEntriesByAccount(_ context.Context, accountID string, asOf *time.Time) (decimal.Decimal, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	sum := decimal.Zero
	for _, e := range r.store.entries {
		if e.AccountID != accountID {
			continue
		}
		if asOf != nil && e.EntryDate.After(*asOf) {
			continue
		}
		sum = sum.Add(e.SignedAmount())
	}
	return sum, nil
}

func (r *memLedgerEntryRepository) ListEntriesByAccount(_ context.Context, accountID string, limit, offset int) ([]domain.LedgerEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var entries []domain.LedgerEntry
	for _, e := range r.store.entries {
		if e.AccountID == accountID {
			entries = append(entries, e)
		}
	}
	return paginate(entries, limit, offset), nil
}

func (r *memLedgerEntryRepository) ListEntriesByUnitOfWork(_ context.Context, unitOfWorkID string) ([]domain.LedgerEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var entries []domain.LedgerEntry
	for _, e := range r.store.entries {
		if e.UnitOfWorkID == unitOfWorkID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}
