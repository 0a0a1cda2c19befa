package services

import (
	"context"
	"time"

	"github.com/SscSPs/erp_core_backend/internal/dto"
)

// ReportingSvcFacade exposes read-only projections over current state. These
// are pure queries and never participate in the write path.
type ReportingSvcFacade interface {
	// TrialBalance returns per-account signed balances as of a date.
	TrialBalance(ctx context.Context, organizationID string, asOf *time.Time) ([]dto.TrialBalanceRow, error)

	// LowStock lists products at or below their minimum quantity.
	LowStock(ctx context.Context, organizationID string) ([]dto.LowStockRow, error)

	// AuditVariances lists the counted items of an audit with their variances.
	AuditVariances(ctx context.Context, auditID string) ([]dto.AuditVarianceRow, error)
}
