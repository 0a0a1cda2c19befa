package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/erp_core_backend/internal/apperrors"
	"github.com/SscSPs/erp_core_backend/internal/core/domain"
	"github.com/SscSPs/erp_core_backend/internal/core/events"
	portsrepo "github.com/SscSPs/erp_core_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/erp_core_backend/internal/core/ports/services"
	"github.com/SscSPs/erp_core_backend/internal/core/services"
	"github.com/SscSPs/erp_core_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type StockAuditServiceTestSuite struct {
	suite.Suite
	repos          portsrepo.Container
	registry       *events.Registry
	svc            *portssvc.Container
	organizationID string
	product        domain.Product
}

func (suite *StockAuditServiceTestSuite) SetupTest() {
	suite.repos, suite.registry, suite.svc = newTestServices()
	suite.organizationID = uuid.NewString()
	suite.product = createTestProduct(suite.T(), suite.svc, suite.organizationID, "SKU-001", 0)
	adjustTestStock(suite.T(), suite.svc, suite.product.ProductID, 10, domain.MovementReceipt)
}

func (suite *StockAuditServiceTestSuite) createAudit() domain.StockAudit {
	var audit *domain.StockAudit
	err := suite.svc.Coordinator.Run(context.Background(), func(txCtx context.Context, uow portssvc.UnitOfWork) error {
		var err error
		audit, err = uow.StockAudits().CreateAudit(txCtx, dto.CreateAuditRequest{
			OrganizationID: suite.organizationID,
			Name:           "quarterly count",
			ScheduledDate:  time.Now().UTC(),
		})
		return err
	})
	suite.Require().NoError(err)
	suite.Equal(domain.AuditPending, audit.Status)
	return *audit
}

func (suite *StockAuditServiceTestSuite) startAudit(auditID string) []domain.StockAuditItem {
	var items []domain.StockAuditItem
	err := suite.svc.Coordinator.Run(context.Background(), func(txCtx context.Context, uow portssvc.UnitOfWork) error {
		var err error
		items, err = uow.StockAudits().StartAudit(txCtx, auditID)
		return err
	})
	suite.Require().NoError(err)
	return items
}

func (suite *StockAuditServiceTestSuite) recordCount(auditID, productID string, actual int64) error {
	return suite.svc.Coordinator.Run(context.Background(), func(txCtx context.Context, uow portssvc.UnitOfWork) error {
		_, err := uow.StockAudits().RecordCount(txCtx, auditID, productID, actual)
		return err
	})
}

func (suite *StockAuditServiceTestSuite) completeAudit(auditID string) (*dto.AuditSummary, error) {
	var summary *dto.AuditSummary
	err := suite.svc.Coordinator.Run(context.Background(), func(txCtx context.Context, uow portssvc.UnitOfWork) error {
		var err error
		summary, err = uow.StockAudits().CompleteAudit(txCtx, auditID)
		return err
	})
	return summary, err
}

func (suite *StockAuditServiceTestSuite) TestStartAudit_SnapshotsActiveProducts() {
	inactive := createTestProduct(suite.T(), suite.svc, suite.organizationID, "SKU-OFF", 0)
	err := suite.svc.Coordinator.Run(context.Background(), func(txCtx context.Context, uow portssvc.UnitOfWork) error {
		return uow.Products().UpdateProductStatus(txCtx, inactive.ProductID, domain.ProductInactive)
	})
	suite.Require().NoError(err)

	audit := suite.createAudit()
	items := suite.startAudit(audit.AuditID)

	suite.Require().Len(items, 1)
	suite.Equal(suite.product.ProductID, items[0].ProductID)
	suite.Equal(int64(10), items[0].ExpectedQuantity)
	suite.False(items[0].Counted())

	stored, err := suite.svc.StockAudits.GetAudit(context.Background(), audit.AuditID)
	suite.Require().NoError(err)
	suite.Equal(domain.AuditInProgress, stored.Status)
}

func (suite *StockAuditServiceTestSuite) TestCompleteAudit_AppliesVarianceCorrections() {
	audit := suite.createAudit()
	suite.startAudit(audit.AuditID)

	// Counted 7 against an expected 10: variance -3.
	suite.Require().NoError(suite.recordCount(audit.AuditID, suite.product.ProductID, 7))

	summary, err := suite.completeAudit(audit.AuditID)
	suite.Require().NoError(err)
	suite.Equal(1, summary.TotalItems)
	suite.Equal(1, summary.VarianceItems)
	suite.Equal(int64(-3), summary.TotalVariance)

	level, err := suite.svc.Inventory.GetStockLevel(context.Background(), suite.product.ProductID)
	suite.Require().NoError(err)
	suite.Equal(int64(7), level.Quantity)

	movements, err := suite.svc.Inventory.GetMovements(context.Background(), suite.product.ProductID)
	suite.Require().NoError(err)
	last := movements[len(movements)-1]
	suite.Equal(domain.MovementAuditCorrection, last.Reason)
	suite.Equal(int64(-3), last.Delta)
	suite.Equal(audit.AuditID, last.Reference)
}

func (suite *StockAuditServiceTestSuite) TestCompleteAudit_FrozenSnapshotWithInterveningSale() {
	audit := suite.createAudit()
	items := suite.startAudit(audit.AuditID)
	suite.Require().Equal(int64(10), items[0].ExpectedQuantity)

	// A sale ships 3 units while the count is under way.
	err := suite.svc.Coordinator.Run(context.Background(), func(txCtx context.Context, uow portssvc.UnitOfWork) error {
		if err := uow.Inventory().Reserve(txCtx, suite.product.ProductID, 3); err != nil {
			return err
		}
		_, err := uow.Inventory().Consume(txCtx, suite.product.ProductID, 3, domain.MovementIssue, "SO-7")
		return err
	})
	suite.Require().NoError(err)

	// The shelf still shows the 10 units counted before the sale; the expected
	// quantity stays frozen at the start-of-audit snapshot.
	suite.Require().NoError(suite.recordCount(audit.AuditID, suite.product.ProductID, 10))

	summary, err := suite.completeAudit(audit.AuditID)
	suite.Require().NoError(err)
	suite.Equal(int64(3), summary.TotalVariance)

	level, err := suite.svc.Inventory.GetStockLevel(context.Background(), suite.product.ProductID)
	suite.Require().NoError(err)
	suite.Equal(int64(10), level.Quantity)
}

func (suite *StockAuditServiceTestSuite) TestCompleteAudit_ZeroVarianceMakesNoMovements() {
	audit := suite.createAudit()
	suite.startAudit(audit.AuditID)
	suite.Require().NoError(suite.recordCount(audit.AuditID, suite.product.ProductID, 10))

	before, err := suite.svc.Inventory.GetMovements(context.Background(), suite.product.ProductID)
	suite.Require().NoError(err)

	summary, err := suite.completeAudit(audit.AuditID)
	suite.Require().NoError(err)
	suite.Equal(0, summary.VarianceItems)

	after, err := suite.svc.Inventory.GetMovements(context.Background(), suite.product.ProductID)
	suite.Require().NoError(err)
	suite.Len(after, len(before))
}

func (suite *StockAuditServiceTestSuite) TestCompleteAudit_UncountedItems() {
	audit := suite.createAudit()
	suite.startAudit(audit.AuditID)

	_, err := suite.completeAudit(audit.AuditID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrIncompleteAuditItems)
}

func (suite *StockAuditServiceTestSuite) TestCompleteAudit_TwiceRejected() {
	audit := suite.createAudit()
	suite.startAudit(audit.AuditID)
	suite.Require().NoError(suite.recordCount(audit.AuditID, suite.product.ProductID, 10))

	_, err := suite.completeAudit(audit.AuditID)
	suite.Require().NoError(err)

	_, err = suite.completeAudit(audit.AuditID)
	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidAuditTransition)
}

func (suite *StockAuditServiceTestSuite) TestCompleteAudit_RaisesEvent() {
	var completed []events.AuditCompleted
	suite.registry.Subscribe(events.TypeAuditCompleted, events.HandlerFunc(func(_ context.Context, ev events.DomainEvent) error {
		completed = append(completed, ev.(events.AuditCompleted))
		return nil
	}))

	audit := suite.createAudit()
	suite.startAudit(audit.AuditID)
	suite.Require().NoError(suite.recordCount(audit.AuditID, suite.product.ProductID, 8))

	_, err := suite.completeAudit(audit.AuditID)
	suite.Require().NoError(err)

	suite.Require().Len(completed, 1)
	suite.Equal(audit.AuditID, completed[0].AuditID)
	suite.Equal(int64(-2), completed[0].TotalVariance)
}

func (suite *StockAuditServiceTestSuite) TestRecordCount_RequiresInProgress() {
	audit := suite.createAudit()

	err := suite.recordCount(audit.AuditID, suite.product.ProductID, 10)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidAuditTransition)
}

func (suite *StockAuditServiceTestSuite) TestRecordCount_RejectsNegative() {
	audit := suite.createAudit()
	suite.startAudit(audit.AuditID)

	err := suite.recordCount(audit.AuditID, suite.product.ProductID, -1)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *StockAuditServiceTestSuite) TestRecordCount_OverwritesPriorCount() {
	audit := suite.createAudit()
	suite.startAudit(audit.AuditID)

	suite.Require().NoError(suite.recordCount(audit.AuditID, suite.product.ProductID, 7))
	suite.Require().NoError(suite.recordCount(audit.AuditID, suite.product.ProductID, 9))

	items, err := suite.svc.StockAudits.GetItems(context.Background(), audit.AuditID)
	suite.Require().NoError(err)
	suite.Require().Len(items, 1)
	suite.Require().True(items[0].Counted())
	suite.Equal(int64(9), *items[0].ActualQuantity)
	suite.Equal(int64(-1), items[0].Variance())
}

func (suite *StockAuditServiceTestSuite) TestCancelAudit_DiscardsItemsWithoutTouchingStock() {
	audit := suite.createAudit()
	suite.startAudit(audit.AuditID)
	suite.Require().NoError(suite.recordCount(audit.AuditID, suite.product.ProductID, 3))

	err := suite.svc.Coordinator.Run(context.Background(), func(txCtx context.Context, uow portssvc.UnitOfWork) error {
		return uow.StockAudits().CancelAudit(txCtx, audit.AuditID)
	})
	suite.Require().NoError(err)

	stored, err := suite.svc.StockAudits.GetAudit(context.Background(), audit.AuditID)
	suite.Require().NoError(err)
	suite.Equal(domain.AuditCancelled, stored.Status)

	items, err := suite.svc.StockAudits.GetItems(context.Background(), audit.AuditID)
	suite.Require().NoError(err)
	suite.Empty(items)

	level, err := suite.svc.Inventory.GetStockLevel(context.Background(), suite.product.ProductID)
	suite.Require().NoError(err)
	suite.Equal(int64(10), level.Quantity)
}

func (suite *StockAuditServiceTestSuite) TestCancelAudit_CompletedIsTerminal() {
	audit := suite.createAudit()
	suite.startAudit(audit.AuditID)
	suite.Require().NoError(suite.recordCount(audit.AuditID, suite.product.ProductID, 10))
	_, err := suite.completeAudit(audit.AuditID)
	suite.Require().NoError(err)

	err = suite.svc.Coordinator.Run(context.Background(), func(txCtx context.Context, uow portssvc.UnitOfWork) error {
		return uow.StockAudits().CancelAudit(txCtx, audit.AuditID)
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidAuditTransition)
}

func TestStockAuditServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StockAuditServiceTestSuite))
}
