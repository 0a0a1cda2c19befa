package services

import (
	"context"
	"time"

	"github.com/SscSPs/erp_core_backend/internal/core/domain"
	"github.com/SscSPs/erp_core_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// LedgerSvcFacade is the double-entry posting surface of the ledger store.
// Posting is only permitted inside an active unit of work.
type LedgerSvcFacade interface {
	// PostEntries appends one balanced double-entry posting. The signed
	// amounts of all legs must cancel to zero.
	PostEntries(ctx context.Context, req dto.PostEntriesRequest) ([]domain.LedgerEntry, error)

	// Balance returns the signed sum of entries posted to the account up to
	// asOf (all time when nil). Read-only; usable outside a unit of work.
	Balance(ctx context.Context, accountID string, asOf *time.Time) (decimal.Decimal, error)
}

// AccountSvcFacade manages the chart of accounts.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, organizationID string, limit, offset int) ([]domain.Account, error)
	DeactivateAccount(ctx context.Context, accountID string) error
}
