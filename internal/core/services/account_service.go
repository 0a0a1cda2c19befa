package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/erp_core_backend/internal/apperrors"
	"github.com/SscSPs/erp_core_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/erp_core_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/erp_core_backend/internal/core/ports/services"
	"github.com/SscSPs/erp_core_backend/internal/dto"
	"github.com/SscSPs/erp_core_backend/internal/platform/logging"
	"github.com/shopspring/decimal"
)

// ErrAccountCycle indicates a parent assignment that would make an account its
// own ancestor.
var ErrAccountCycle = errors.New("account hierarchy must not contain cycles")

// accountService manages the chart of accounts.
type accountService struct {
	accountRepo portsrepo.AccountRepository
}

// NewAccountService creates the chart-of-accounts service.
func NewAccountService(accountRepo portsrepo.AccountRepository) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := logging.GetLoggerFromCtx(ctx)

	rec := recorderFromCtx(ctx)
	if rec == nil {
		return nil, ErrNoUnitOfWork
	}
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	existing, err := s.accountRepo.FindAccountByCode(ctx, req.OrganizationID, req.Code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check account code uniqueness: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: account code %s", apperrors.ErrDuplicate, req.Code)
	}

	parentID := ""
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		parentID = *req.ParentAccountID
		parent, err := s.accountRepo.FindAccountByID(ctx, parentID)
		if err != nil {
			return nil, fmt.Errorf("parent account %s: %w", parentID, err)
		}
		if parent.OrganizationID != req.OrganizationID {
			return nil, fmt.Errorf("%w: parent account belongs to another organization", apperrors.ErrValidation)
		}
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		OrganizationID:  req.OrganizationID,
		Code:            req.Code,
		Name:            req.Name,
		AccountType:     req.AccountType,
		ParentAccountID: parentID,
		Description:     req.Description,
		IsActive:        true,
		Balance:         decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     rec.actor,
			LastUpdatedAt: now,
			LastUpdatedBy: rec.actor,
		},
	}

	// A fresh ID cannot appear in its own ancestor chain, but the walk also
	// catches a pre-existing cycle in the stored hierarchy.
	if parentID != "" {
		if err := s.ensureNoCycle(ctx, account.AccountID, parentID); err != nil {
			return nil, err
		}
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("failed to save account", slog.String("error", err.Error()), slog.String("account_id", account.AccountID))
		return nil, err
	}

	rec.recordChange(account.OrganizationID, "Account", account.AccountID, domain.OpCreate, nil, account)

	logger.Info("account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// ensureNoCycle walks the parent chain from parentID and fails if accountID is
// encountered. The check is explicit rather than relying on the absence of
// cycles in stored data.
func (s *accountService) ensureNoCycle(ctx context.Context, accountID, parentID string) error {
	seen := map[string]bool{accountID: true}
	current := parentID
	for current != "" {
		if seen[current] {
			return fmt.Errorf("%w: account %s", ErrAccountCycle, accountID)
		}
		seen[current] = true
		parent, err := s.accountRepo.FindAccountByID(ctx, current)
		if err != nil {
			return fmt.Errorf("walking account hierarchy: %w", err)
		}
		current = parent.ParentAccountID
	}
	return nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logging.GetLoggerFromCtx(ctx).Error("failed to find account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	return s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
}

func (s *accountService) ListAccounts(ctx context.Context, organizationID string, limit, offset int) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, organizationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return accounts, nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, accountID string) error {
	logger := logging.GetLoggerFromCtx(ctx)

	rec := recorderFromCtx(ctx)
	if rec == nil {
		return ErrNoUnitOfWork
	}

	before, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if !before.IsActive {
		return fmt.Errorf("%w: account %s is already inactive", apperrors.ErrValidation, accountID)
	}

	now := time.Now().UTC()
	if err := s.accountRepo.DeactivateAccount(ctx, accountID, rec.actor, now); err != nil {
		return err
	}

	after := *before
	after.IsActive = false
	after.LastUpdatedAt = now
	after.LastUpdatedBy = rec.actor
	rec.recordChange(before.OrganizationID, "Account", accountID, domain.OpUpdate, before, after)

	logger.Info("account deactivated", slog.String("account_id", accountID))
	return nil
}
