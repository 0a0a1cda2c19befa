package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/erp_core_backend/internal/core/domain"
	portssvc "github.com/SscSPs/erp_core_backend/internal/core/ports/services"
	"github.com/SscSPs/erp_core_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// workflowService expresses whole business operations as single units of work
// through the coordinator: stock, ledger and history move together or not at all.
type workflowService struct {
	coordinator portssvc.CoordinatorSvcFacade
}

// NewWorkflowService creates the business workflow service.
func NewWorkflowService(coordinator portssvc.CoordinatorSvcFacade) portssvc.WorkflowSvcFacade {
	return &workflowService{coordinator: coordinator}
}

var _ portssvc.WorkflowSvcFacade = (*workflowService)(nil)

// ReceivePurchase books a goods receipt: stock in plus DR inventory-asset /
// CR accounts-payable for quantity x unit cost.
func (s *workflowService) ReceivePurchase(ctx context.Context, req dto.ReceivePurchaseRequest) (*dto.WorkflowResult, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	var result dto.WorkflowResult
	err := s.coordinator.Run(ctx, func(txCtx context.Context, uow portssvc.UnitOfWork) error {
		level, err := uow.Inventory().Adjust(txCtx, req.ProductID, req.Quantity, domain.MovementReceipt, req.Reference)
		if err != nil {
			return err
		}

		total := req.UnitCost.Mul(decimal.NewFromInt(req.Quantity))
		entries, err := uow.Ledger().PostEntries(txCtx, dto.PostEntriesRequest{
			OrganizationID: req.OrganizationID,
			Date:           req.Date,
			Description:    fmt.Sprintf("Purchase receipt: %d units of %s", req.Quantity, req.ProductID),
			Reference:      req.Reference,
			Entries: []dto.EntryInput{
				{AccountID: req.InventoryAccount, Amount: total, EntryType: domain.Debit},
				{AccountID: req.PayableAccount, Amount: total, EntryType: domain.Credit},
			},
		})
		if err != nil {
			return err
		}

		result = dto.WorkflowResult{
			UnitOfWorkID: uow.ID(),
			NewQuantity:  level.Quantity,
			EntryIDs:     entryIDs(entries),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// FulfillSale ships stock and books revenue and cost of goods sold. The
// reservation is taken and consumed inside the same unit of work, so the
// reserved <= quantity invariant holds at commit regardless of prior state.
func (s *workflowService) FulfillSale(ctx context.Context, req dto.FulfillSaleRequest) (*dto.WorkflowResult, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	var result dto.WorkflowResult
	err := s.coordinator.Run(ctx, func(txCtx context.Context, uow portssvc.UnitOfWork) error {
		if err := uow.Inventory().Reserve(txCtx, req.ProductID, req.Quantity); err != nil {
			return err
		}
		level, err := uow.Inventory().Consume(txCtx, req.ProductID, req.Quantity, domain.MovementIssue, req.Reference)
		if err != nil {
			return err
		}

		qty := decimal.NewFromInt(req.Quantity)
		revenue := req.UnitPrice.Mul(qty)
		cost := req.UnitCost.Mul(qty)
		entries, err := uow.Ledger().PostEntries(txCtx, dto.PostEntriesRequest{
			OrganizationID: req.OrganizationID,
			Date:           req.Date,
			Description:    fmt.Sprintf("Sale fulfillment: %d units of %s", req.Quantity, req.ProductID),
			Reference:      req.Reference,
			Entries: []dto.EntryInput{
				{AccountID: req.ReceivableAccount, Amount: revenue, EntryType: domain.Debit},
				{AccountID: req.RevenueAccount, Amount: revenue, EntryType: domain.Credit},
				{AccountID: req.COGSAccount, Amount: cost, EntryType: domain.Debit},
				{AccountID: req.InventoryAccount, Amount: cost, EntryType: domain.Credit},
			},
		})
		if err != nil {
			return err
		}

		result = dto.WorkflowResult{
			UnitOfWorkID: uow.ID(),
			NewQuantity:  level.Quantity,
			EntryIDs:     entryIDs(entries),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// PostManualAdjustment corrects stock by delta and books the matching
// write-off or gain posting.
func (s *workflowService) PostManualAdjustment(ctx context.Context, req dto.ManualAdjustmentRequest) (*dto.WorkflowResult, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	var result dto.WorkflowResult
	err := s.coordinator.Run(ctx, func(txCtx context.Context, uow portssvc.UnitOfWork) error {
		level, err := uow.Inventory().Adjust(txCtx, req.ProductID, req.Delta, domain.MovementAdjustment, req.Reason)
		if err != nil {
			return err
		}

		magnitude := req.Delta
		if magnitude < 0 {
			magnitude = -magnitude
		}
		total := req.UnitCost.Mul(decimal.NewFromInt(magnitude))

		// Gain adjustments debit inventory; losses credit it.
		legs := []dto.EntryInput{
			{AccountID: req.InventoryAccount, Amount: total, EntryType: domain.Debit},
			{AccountID: req.AdjustmentAccount, Amount: total, EntryType: domain.Credit},
		}
		if req.Delta < 0 {
			legs = []dto.EntryInput{
				{AccountID: req.AdjustmentAccount, Amount: total, EntryType: domain.Debit},
				{AccountID: req.InventoryAccount, Amount: total, EntryType: domain.Credit},
			}
		}

		entries, err := uow.Ledger().PostEntries(txCtx, dto.PostEntriesRequest{
			OrganizationID: req.OrganizationID,
			Date:           req.Date,
			Description:    fmt.Sprintf("Manual stock adjustment: %s", req.Reason),
			Reference:      req.Reason,
			Entries:        legs,
		})
		if err != nil {
			return err
		}

		result = dto.WorkflowResult{
			UnitOfWorkID: uow.ID(),
			NewQuantity:  level.Quantity,
			EntryIDs:     entryIDs(entries),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func entryIDs(entries []domain.LedgerEntry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.EntryID
	}
	return ids
}
