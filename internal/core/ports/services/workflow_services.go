package services

import (
	"context"

	"github.com/SscSPs/erp_core_backend/internal/dto"
)

// WorkflowSvcFacade expresses whole business operations as single units of
// work: each call mutates order lines, stock, ledger balances and history
// atomically through the coordinator.
type WorkflowSvcFacade interface {
	// ReceivePurchase books a purchase receipt: stock in, one receipt
	// movement, and a balanced DR inventory-asset / CR accounts-payable posting.
	ReceivePurchase(ctx context.Context, req dto.ReceivePurchaseRequest) (*dto.WorkflowResult, error)

	// FulfillSale consumes reserved stock and posts revenue and cost entries.
	FulfillSale(ctx context.Context, req dto.FulfillSaleRequest) (*dto.WorkflowResult, error)

	// PostManualAdjustment applies a manual stock correction with a balancing
	// ledger posting against a write-off/gain account.
	PostManualAdjustment(ctx context.Context, req dto.ManualAdjustmentRequest) (*dto.WorkflowResult, error)
}
