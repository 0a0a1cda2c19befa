package services

import (
	"context"
	"fmt"
	"time"

	portsrepo "github.com/SscSPs/erp_core_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/erp_core_backend/internal/core/ports/services"
	"github.com/SscSPs/erp_core_backend/internal/dto"
)

// reportingService produces read-only projections. It never writes and never
// participates in a unit of work.
type reportingService struct {
	accountRepo portsrepo.AccountRepository
	entryRepo   portsrepo.LedgerEntryRepository
	productRepo portsrepo.ProductRepository
	stockRepo   portsrepo.StockRepository
	auditRepo   portsrepo.StockAuditRepository
}

// NewReportingService creates the reporting query surface.
func NewReportingService(
	accountRepo portsrepo.AccountRepository,
	entryRepo portsrepo.LedgerEntryRepository,
	productRepo portsrepo.ProductRepository,
	stockRepo portsrepo.StockRepository,
	auditRepo portsrepo.StockAuditRepository,
) portssvc.ReportingSvcFacade {
	return &reportingService{
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		productRepo: productRepo,
		stockRepo:   stockRepo,
		auditRepo:   auditRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func (s *reportingService) TrialBalance(ctx context.Context, organizationID string, asOf *time.Time) ([]dto.TrialBalanceRow, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, organizationID, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	rows := make([]dto.TrialBalanceRow, 0, len(accounts))
	for _, acc := range accounts {
		balance, err := s.entryRepo.SumEntriesByAccount(ctx, acc.AccountID, asOf)
		if err != nil {
			return nil, fmt.Errorf("failed to sum entries for account %s: %w", acc.AccountID, err)
		}
		rows = append(rows, dto.TrialBalanceRow{
			AccountID:   acc.AccountID,
			Code:        acc.Code,
			Name:        acc.Name,
			AccountType: acc.AccountType,
			Balance:     balance,
		})
	}
	return rows, nil
}

func (s *reportingService) LowStock(ctx context.Context, organizationID string) ([]dto.LowStockRow, error) {
	levels, err := s.stockRepo.ListStockLevels(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock levels: %w", err)
	}

	rows := make([]dto.LowStockRow, 0)
	for _, level := range levels {
		if level.Quantity > level.MinimumQuantity {
			continue
		}
		product, err := s.productRepo.FindProductByID(ctx, level.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to load product %s: %w", level.ProductID, err)
		}
		rows = append(rows, dto.LowStockRow{
			ProductID:       level.ProductID,
			SKU:             product.SKU,
			Name:            product.Name,
			Quantity:        level.Quantity,
			Reserved:        level.Reserved,
			MinimumQuantity: level.MinimumQuantity,
		})
	}
	return rows, nil
}

func (s *reportingService) AuditVariances(ctx context.Context, auditID string) ([]dto.AuditVarianceRow, error) {
	items, err := s.auditRepo.FindItemsByAudit(ctx, auditID)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.AuditVarianceRow, 0, len(items))
	for _, item := range items {
		if !item.Counted() {
			continue
		}
		rows = append(rows, dto.AuditVarianceRow{
			ProductID:        item.ProductID,
			ExpectedQuantity: item.ExpectedQuantity,
			ActualQuantity:   *item.ActualQuantity,
			Variance:         item.Variance(),
		})
	}
	return rows, nil
}
