package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/erp_core_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for chart-of-accounts data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves several accounts at once, keyed by ID.
	// Missing IDs are simply absent from the result map.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// FindAccountByCode retrieves an account by its organization-scoped code.
	FindAccountByCode(ctx context.Context, organizationID, code string) (*domain.Account, error)

	// ListAccounts retrieves the accounts of an organization.
	ListAccounts(ctx context.Context, organizationID string, limit, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for chart-of-accounts data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// ApplyBalanceChanges adjusts the cached balances of the given accounts by
	// the given signed deltas, all within the ambient transaction.
	ApplyBalanceChanges(ctx context.Context, changes map[string]decimal.Decimal, updatedBy string, updatedAt time.Time) error

	// DeactivateAccount marks an account inactive.
	DeactivateAccount(ctx context.Context, accountID, updatedBy string, updatedAt time.Time) error
}

// AccountRepository combines account read and write operations.
type AccountRepository interface {
	AccountReader
	AccountWriter
}
