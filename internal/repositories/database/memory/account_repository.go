package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/erp_core_backend/internal/apperrors"
	"github.com/SscSPs/erp_core_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/erp_core_backend/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

type memAccountRepository struct {
	store *Store
}

var _ portsrepo.AccountRepository = (*memAccountRepository)(nil)

func (r *memAccountRepository) SaveAccount(_ context.Context, account domain.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.accounts {
		if existing.OrganizationID == account.OrganizationID && existing.Code == account.Code {
			return fmt.Errorf("%w: account code %s", apperrors.ErrDuplicate, account.Code)
		}
	}
	r.store.accounts[account.AccountID] = account
	return nil
}

func (r *memAccountRepository) FindAccountByID(_ context.Context, accountID string) (*domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	acc, ok := r.store.accounts[accountID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &acc, nil
}

func (r *memAccountRepository) FindAccountByCode(_ context.Context, organizationID, code string) (*domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, acc := range r.store.accounts {
		if acc.OrganizationID == organizationID && acc.Code == code {
			return &acc, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *memAccountRepository) FindAccountsByIDs(_ context.Context, accountIDs []string) (map[string]domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make(map[string]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		if acc, ok := r.store.accounts[id]; ok {
			result[id] = acc
		}
	}
	return result, nil
}

func (r *memAccountRepository) ListAccounts(_ context.Context, organizationID string, limit, offset int) ([]domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var accounts []domain.Account
	for _, acc := range r.store.accounts {
		if acc.OrganizationID == organizationID {
			accounts = append(accounts, acc)
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Code < accounts[j].Code })
	return paginate(accounts, limit, offset), nil
}

func (r *memAccountRepository) ApplyBalanceChanges(_ context.Context, changes map[string]decimal.Decimal, updatedBy string, updatedAt time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for accountID, delta := range changes {
		acc, ok := r.store.accounts[accountID]
		if !ok {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		acc.Balance = acc.Balance.Add(delta)
		acc.LastUpdatedAt = updatedAt
		acc.LastUpdatedBy = updatedBy
		r.store.accounts[accountID] = acc
	}
	return nil
}

func (r *memAccountRepository) DeactivateAccount(_ context.Context, accountID, updatedBy string, updatedAt time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	acc, ok := r.store.accounts[accountID]
	if !ok || !acc.IsActive {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	acc.IsActive = false
	acc.LastUpdatedAt = updatedAt
	acc.LastUpdatedBy = updatedBy
	r.store.accounts[accountID] = acc
	return nil
}

// paginate applies limit/offset to an already sorted slice. A non-positive
// limit means no pagination.
func paginate[T any](items []T, limit, offset int) []T {
	if limit <= 0 {
		return items
	}
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
