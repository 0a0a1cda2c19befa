package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/erp_core_backend/internal/core/domain"
	"github.com/SscSPs/erp_core_backend/internal/core/events"
	portsrepo "github.com/SscSPs/erp_core_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/erp_core_backend/internal/core/ports/services"
	"github.com/SscSPs/erp_core_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	repos          portsrepo.Container
	registry       *events.Registry
	svc            *portssvc.Container
	organizationID string
	inventoryAcc   domain.Account
	payableAcc     domain.Account
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.repos, suite.registry, suite.svc = newTestServices()
	suite.organizationID = uuid.NewString()
	suite.inventoryAcc = createTestAccount(suite.T(), suite.svc, suite.organizationID, "1400", domain.Asset)
	suite.payableAcc = createTestAccount(suite.T(), suite.svc, suite.organizationID, "2100", domain.Liability)
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_SumsToZero() {
	amount := decimal.NewFromInt(5000)
	err := suite.svc.Coordinator.Run(context.Background(), func(txCtx context.Context, uow portssvc.UnitOfWork) error {
		_, err := uow.Ledger().PostEntries(txCtx, dto.PostEntriesRequest{
			OrganizationID: suite.organizationID,
			Date:           time.Now().UTC(),
			Description:    "opening stock",
			Entries: []dto.EntryInput{
				{AccountID: suite.inventoryAcc.AccountID, Amount: amount, EntryType: domain.Debit},
				{AccountID: suite.payableAcc.AccountID, Amount: amount, EntryType: domain.Credit},
			},
		})
		return err
	})
	suite.Require().NoError(err)

	rows, err := suite.svc.Reporting.TrialBalance(context.Background(), suite.organizationID, nil)
	suite.Require().NoError(err)
	suite.Require().Len(rows, 2)

	total := decimal.Zero
	byCode := map[string]decimal.Decimal{}
	for _, row := range rows {
		total = total.Add(row.Balance)
		byCode[row.Code] = row.Balance
	}
	suite.True(total.IsZero())
	suite.True(byCode["1400"].Equal(amount))
	suite.True(byCode["2100"].Equal(amount.Neg()))
}

func (suite *ReportingServiceTestSuite) TestLowStock_ReportsAtOrBelowMinimum() {
	low := createTestProduct(suite.T(), suite.svc, suite.organizationID, "SKU-LOW", 5)
	healthy := createTestProduct(suite.T(), suite.svc, suite.organizationID, "SKU-OK", 5)

	adjustTestStock(suite.T(), suite.svc, low.ProductID, 5, domain.MovementReceipt)
	adjustTestStock(suite.T(), suite.svc, healthy.ProductID, 20, domain.MovementReceipt)

	rows, err := suite.svc.Reporting.LowStock(context.Background(), suite.organizationID)
	suite.Require().NoError(err)
	suite.Require().Len(rows, 1)
	suite.Equal("SKU-LOW", rows[0].SKU)
	suite.Equal(int64(5), rows[0].Quantity)
}

func (suite *ReportingServiceTestSuite) TestAuditVariances_ListsCountedItemsOnly() {
	product := createTestProduct(suite.T(), suite.svc, suite.organizationID, "SKU-001", 0)
	adjustTestStock(suite.T(), suite.svc, product.ProductID, 10, domain.MovementReceipt)

	var auditID string
	err := suite.svc.Coordinator.Run(context.Background(), func(txCtx context.Context, uow portssvc.UnitOfWork) error {
		audit, err := uow.StockAudits().CreateAudit(txCtx, dto.CreateAuditRequest{
			OrganizationID: suite.organizationID,
			Name:           "spot check",
			ScheduledDate:  time.Now().UTC(),
		})
		if err != nil {
			return err
		}
		auditID = audit.AuditID
		if _, err := uow.StockAudits().StartAudit(txCtx, auditID); err != nil {
			return err
		}
		_, err = uow.StockAudits().RecordCount(txCtx, auditID, product.ProductID, 8)
		return err
	})
	suite.Require().NoError(err)

	rows, err := suite.svc.Reporting.AuditVariances(context.Background(), auditID)
	suite.Require().NoError(err)
	suite.Require().Len(rows, 1)
	suite.Equal(int64(10), rows[0].ExpectedQuantity)
	suite.Equal(int64(8), rows[0].ActualQuantity)
	suite.Equal(int64(-2), rows[0].Variance)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
