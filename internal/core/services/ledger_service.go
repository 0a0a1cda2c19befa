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

var (
	ErrUnbalanced     = errors.New("posting entries do not balance to zero")
	ErrUnknownAccount = errors.New("entry references an unknown or inactive account")
	ErrZeroAmount     = errors.New("entry amount must not be zero")
)

// ledgerService appends immutable double-entry postings and maintains the
// cached account balances they imply.
type ledgerService struct {
	accountRepo portsrepo.AccountRepository
	entryRepo   portsrepo.LedgerEntryRepository
}

// NewLedgerService creates the double-entry ledger store.
func NewLedgerService(accountRepo portsrepo.AccountRepository, entryRepo portsrepo.LedgerEntryRepository) portssvc.LedgerSvcFacade {
	return &ledgerService{
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// PostEntries validates and appends one balanced posting. All legs succeed or
// none do; previously posted entries are never altered.
func (s *ledgerService) PostEntries(ctx context.Context, req dto.PostEntriesRequest) ([]domain.LedgerEntry, error) {
	logger := logging.GetLoggerFromCtx(ctx)

	rec := recorderFromCtx(ctx)
	if rec == nil {
		return nil, ErrNoUnitOfWork
	}
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	sum := decimal.Zero
	accountIDs := make([]string, 0, len(req.Entries))
	for _, in := range req.Entries {
		if in.Amount.IsZero() {
			return nil, fmt.Errorf("%w: account %s", ErrZeroAmount, in.AccountID)
		}
		if in.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: amount must be positive, sign comes from the entry type (account %s)", apperrors.ErrValidation, in.AccountID)
		}
		signed := in.Amount
		if in.EntryType == domain.Credit {
			signed = signed.Neg()
		}
		sum = sum.Add(signed)
		accountIDs = append(accountIDs, in.AccountID)
	}
	if !sum.IsZero() {
		return nil, fmt.Errorf("%w: signed sum is %s", ErrUnbalanced, sum.String())
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts for posting: %w", err)
	}
	for _, id := range accountIDs {
		acc, ok := accounts[id]
		if !ok {
			return nil, fmt.Errorf("%w: account %s", ErrUnknownAccount, id)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", ErrUnknownAccount, id)
		}
		if acc.OrganizationID != req.OrganizationID {
			return nil, fmt.Errorf("%w: account %s belongs to another organization", ErrUnknownAccount, id)
		}
	}

	now := time.Now().UTC()
	entries := make([]domain.LedgerEntry, len(req.Entries))
	balanceChanges := make(map[string]decimal.Decimal, len(req.Entries))
	for i, in := range req.Entries {
		entries[i] = domain.LedgerEntry{
			EntryID:        uuid.NewString(),
			OrganizationID: req.OrganizationID,
			AccountID:      in.AccountID,
			EntryDate:      req.Date,
			Amount:         in.Amount,
			EntryType:      in.EntryType,
			Description:    req.Description,
			Reference:      req.Reference,
			UnitOfWorkID:   rec.unitOfWorkID,
			CreatedAt:      now,
			CreatedBy:      rec.actor,
		}
		balanceChanges[in.AccountID] = balanceChanges[in.AccountID].Add(entries[i].SignedAmount())
	}

	if err := s.entryRepo.SaveEntries(ctx, entries); err != nil {
		return nil, fmt.Errorf("failed to save ledger entries: %w", err)
	}
	if err := s.accountRepo.ApplyBalanceChanges(ctx, balanceChanges, rec.actor, now); err != nil {
		return nil, fmt.Errorf("failed to apply balance changes: %w", err)
	}

	// One trail entry per posting: the legs are immutable children of it.
	rec.recordChange(req.OrganizationID, "LedgerEntry", rec.unitOfWorkID, domain.OpCreate, nil, entries)

	logger.Debug("posted ledger entries",
		slog.Int("legs", len(entries)),
		slog.String("unit_of_work_id", rec.unitOfWorkID))
	return entries, nil
}

// Balance returns the signed sum of entries for an account up to asOf. The
// cached Account.Balance is maintained at posting time; this recomputes from
// the entries themselves, which are the source of truth.
func (s *ledgerService) Balance(ctx context.Context, accountID string, asOf *time.Time) (decimal.Decimal, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return decimal.Zero, err
	}
	sum, err := s.entryRepo.SumEntriesByAccount(ctx, accountID, asOf)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum entries for account %s: %w", accountID, err)
	}
	return sum, nil
}
