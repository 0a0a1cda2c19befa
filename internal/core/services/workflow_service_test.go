package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/erp_core_backend/internal/core/domain"
	"github.com/SscSPs/erp_core_backend/internal/core/events"
	portsrepo "github.com/SscSPs/erp_core_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/erp_core_backend/internal/core/ports/services"
	"github.com/SscSPs/erp_core_backend/internal/core/services"
	"github.com/SscSPs/erp_core_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type WorkflowServiceTestSuite struct {
	suite.Suite
	repos          portsrepo.Container
	registry       *events.Registry
	svc            *portssvc.Container
	organizationID string
	inventoryAcc   domain.Account
	payableAcc     domain.Account
	receivableAcc  domain.Account
	revenueAcc     domain.Account
	cogsAcc        domain.Account
	adjustmentAcc  domain.Account
	product        domain.Product
}

func (suite *WorkflowServiceTestSuite) SetupTest() {
	suite.repos, suite.registry, suite.svc = newTestServices()
	suite.organizationID = uuid.NewString()
	suite.inventoryAcc = createTestAccount(suite.T(), suite.svc, suite.organizationID, "1400", domain.Asset)
	suite.payableAcc = createTestAccount(suite.T(), suite.svc, suite.organizationID, "2100", domain.Liability)
	suite.receivableAcc = createTestAccount(suite.T(), suite.svc, suite.organizationID, "1200", domain.Asset)
	suite.revenueAcc = createTestAccount(suite.T(), suite.svc, suite.organizationID, "4000", domain.Revenue)
	suite.cogsAcc = createTestAccount(suite.T(), suite.svc, suite.organizationID, "5000", domain.Expense)
	suite.adjustmentAcc = createTestAccount(suite.T(), suite.svc, suite.organizationID, "5900", domain.Expense)
	suite.product = createTestProduct(suite.T(), suite.svc, suite.organizationID, "LT001", 0)
}

func (suite *WorkflowServiceTestSuite) balance(accountID string) decimal.Decimal {
	balance, err := suite.svc.Ledger.Balance(context.Background(), accountID, nil)
	suite.Require().NoError(err)
	return balance
}

func (suite *WorkflowServiceTestSuite) receivePurchase(quantity int64, unitCost decimal.Decimal) *dto.WorkflowResult {
	result, err := suite.svc.Workflows.ReceivePurchase(context.Background(), dto.ReceivePurchaseRequest{
		OrganizationID:   suite.organizationID,
		ProductID:        suite.product.ProductID,
		Quantity:         quantity,
		UnitCost:         unitCost,
		Date:             time.Now().UTC(),
		Reference:        "PO-1001",
		InventoryAccount: suite.inventoryAcc.AccountID,
		PayableAccount:   suite.payableAcc.AccountID,
	})
	suite.Require().NoError(err)
	return result
}

func (suite *WorkflowServiceTestSuite) TestReceivePurchase_MovesStockAndMoney() {
	result := suite.receivePurchase(10, decimal.NewFromInt(1200000))

	suite.Equal(int64(10), result.NewQuantity)
	suite.Len(result.EntryIDs, 2)

	level, err := suite.svc.Inventory.GetStockLevel(context.Background(), suite.product.ProductID)
	suite.Require().NoError(err)
	suite.Equal(int64(10), level.Quantity)

	movements, err := suite.svc.Inventory.GetMovements(context.Background(), suite.product.ProductID)
	suite.Require().NoError(err)
	suite.Require().Len(movements, 1)
	suite.Equal(int64(10), movements[0].Delta)
	suite.Equal(domain.MovementReceipt, movements[0].Reason)
	suite.Equal("PO-1001", movements[0].Reference)
	suite.Equal(result.UnitOfWorkID, movements[0].UnitOfWorkID)

	total := decimal.NewFromInt(12000000)
	suite.True(suite.balance(suite.inventoryAcc.AccountID).Equal(total))
	suite.True(suite.balance(suite.payableAcc.AccountID).Equal(total.Neg()))

	// The trail for this unit of work is the stock update plus the posting.
	trail, err := suite.repos.AuditLog.ListByUnitOfWork(context.Background(), result.UnitOfWorkID)
	suite.Require().NoError(err)
	suite.Len(trail, 2)
}

func (suite *WorkflowServiceTestSuite) TestFulfillSale_BooksRevenueAndCost() {
	suite.receivePurchase(10, decimal.NewFromInt(100))

	result, err := suite.svc.Workflows.FulfillSale(context.Background(), dto.FulfillSaleRequest{
		OrganizationID:    suite.organizationID,
		ProductID:         suite.product.ProductID,
		Quantity:          4,
		UnitPrice:         decimal.NewFromInt(150),
		UnitCost:          decimal.NewFromInt(100),
		Date:              time.Now().UTC(),
		Reference:         "SO-2001",
		ReceivableAccount: suite.receivableAcc.AccountID,
		RevenueAccount:    suite.revenueAcc.AccountID,
		COGSAccount:       suite.cogsAcc.AccountID,
		InventoryAccount:  suite.inventoryAcc.AccountID,
	})
	suite.Require().NoError(err)
	suite.Equal(int64(6), result.NewQuantity)
	suite.Len(result.EntryIDs, 4)

	level, err := suite.svc.Inventory.GetStockLevel(context.Background(), suite.product.ProductID)
	suite.Require().NoError(err)
	suite.Equal(int64(6), level.Quantity)
	suite.Equal(int64(0), level.Reserved)

	revenue := decimal.NewFromInt(600)
	cost := decimal.NewFromInt(400)
	suite.True(suite.balance(suite.receivableAcc.AccountID).Equal(revenue))
	suite.True(suite.balance(suite.revenueAcc.AccountID).Equal(revenue.Neg()))
	suite.True(suite.balance(suite.cogsAcc.AccountID).Equal(cost))
	suite.True(suite.balance(suite.inventoryAcc.AccountID).Equal(decimal.NewFromInt(1000).Sub(cost)))
}

func (suite *WorkflowServiceTestSuite) TestFulfillSale_InsufficientStockRollsBackEverything() {
	suite.receivePurchase(3, decimal.NewFromInt(100))
	inventoryBefore := suite.balance(suite.inventoryAcc.AccountID)

	_, err := suite.svc.Workflows.FulfillSale(context.Background(), dto.FulfillSaleRequest{
		OrganizationID:    suite.organizationID,
		ProductID:         suite.product.ProductID,
		Quantity:          5,
		UnitPrice:         decimal.NewFromInt(150),
		UnitCost:          decimal.NewFromInt(100),
		Date:              time.Now().UTC(),
		ReceivableAccount: suite.receivableAcc.AccountID,
		RevenueAccount:    suite.revenueAcc.AccountID,
		COGSAccount:       suite.cogsAcc.AccountID,
		InventoryAccount:  suite.inventoryAcc.AccountID,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInsufficientAvailable)

	level, err := suite.svc.Inventory.GetStockLevel(context.Background(), suite.product.ProductID)
	suite.Require().NoError(err)
	suite.Equal(int64(3), level.Quantity)
	suite.Equal(int64(0), level.Reserved)
	suite.True(suite.balance(suite.inventoryAcc.AccountID).Equal(inventoryBefore))
	suite.True(suite.balance(suite.revenueAcc.AccountID).IsZero())
}

func (suite *WorkflowServiceTestSuite) TestPostManualAdjustment_WriteOff() {
	suite.receivePurchase(10, decimal.NewFromInt(100))

	result, err := suite.svc.Workflows.PostManualAdjustment(context.Background(), dto.ManualAdjustmentRequest{
		OrganizationID:    suite.organizationID,
		ProductID:         suite.product.ProductID,
		Delta:             -2,
		UnitCost:          decimal.NewFromInt(100),
		Date:              time.Now().UTC(),
		Reason:            "damaged in storage",
		InventoryAccount:  suite.inventoryAcc.AccountID,
		AdjustmentAccount: suite.adjustmentAcc.AccountID,
	})
	suite.Require().NoError(err)
	suite.Equal(int64(8), result.NewQuantity)

	// The write-off debits the adjustment account and credits inventory.
	suite.True(suite.balance(suite.adjustmentAcc.AccountID).Equal(decimal.NewFromInt(200)))
	suite.True(suite.balance(suite.inventoryAcc.AccountID).Equal(decimal.NewFromInt(800)))

	movements, err := suite.svc.Inventory.GetMovements(context.Background(), suite.product.ProductID)
	suite.Require().NoError(err)
	last := movements[len(movements)-1]
	suite.Equal(domain.MovementAdjustment, last.Reason)
	suite.Equal(int64(-2), last.Delta)
}

func (suite *WorkflowServiceTestSuite) TestPostManualAdjustment_Gain() {
	suite.receivePurchase(10, decimal.NewFromInt(100))

	result, err := suite.svc.Workflows.PostManualAdjustment(context.Background(), dto.ManualAdjustmentRequest{
		OrganizationID:    suite.organizationID,
		ProductID:         suite.product.ProductID,
		Delta:             3,
		UnitCost:          decimal.NewFromInt(100),
		Date:              time.Now().UTC(),
		Reason:            "found during recount",
		InventoryAccount:  suite.inventoryAcc.AccountID,
		AdjustmentAccount: suite.adjustmentAcc.AccountID,
	})
	suite.Require().NoError(err)
	suite.Equal(int64(13), result.NewQuantity)

	suite.True(suite.balance(suite.inventoryAcc.AccountID).Equal(decimal.NewFromInt(1300)))
	suite.True(suite.balance(suite.adjustmentAcc.AccountID).Equal(decimal.NewFromInt(-300)))
}

func (suite *WorkflowServiceTestSuite) TestReceivePurchase_RequestValidation() {
	_, err := suite.svc.Workflows.ReceivePurchase(context.Background(), dto.ReceivePurchaseRequest{
		OrganizationID: suite.organizationID,
		ProductID:      suite.product.ProductID,
		// Quantity missing
		UnitCost:         decimal.NewFromInt(100),
		Date:             time.Now().UTC(),
		InventoryAccount: suite.inventoryAcc.AccountID,
		PayableAccount:   suite.payableAcc.AccountID,
	})

	suite.Require().Error(err)
}

func TestWorkflowServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WorkflowServiceTestSuite))
}
