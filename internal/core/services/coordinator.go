package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/erp_core_backend/internal/core/events"
	portsrepo "github.com/SscSPs/erp_core_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/erp_core_backend/internal/core/ports/services"
	"github.com/SscSPs/erp_core_backend/internal/platform/identity"
	"github.com/SscSPs/erp_core_backend/internal/platform/logging"
)

// ErrNestedTransaction indicates a Run call made from inside another unit of
// work. Units of work compose by putting more logic into one closure.
var ErrNestedTransaction = errors.New("unit of work cannot be nested")

// coordinator owns the atomic transaction boundary. It executes a work closure
// under one store transaction, flushes buffered audit log entries inside that
// transaction, and dispatches buffered domain events strictly after commit.
type coordinator struct {
	txManager portsrepo.TxManager
	auditLog  portsrepo.AuditLogRepository
	registry  *events.Registry

	accounts    portssvc.AccountSvcFacade
	ledger      portssvc.LedgerSvcFacade
	products    portssvc.ProductSvcFacade
	inventory   portssvc.InventorySvcFacade
	stockAudits portssvc.StockAuditSvcFacade
}

// NewCoordinator creates the unit-of-work coordinator.
func NewCoordinator(
	txManager portsrepo.TxManager,
	auditLog portsrepo.AuditLogRepository,
	registry *events.Registry,
	accounts portssvc.AccountSvcFacade,
	ledger portssvc.LedgerSvcFacade,
	products portssvc.ProductSvcFacade,
	inventory portssvc.InventorySvcFacade,
	stockAudits portssvc.StockAuditSvcFacade,
) portssvc.CoordinatorSvcFacade {
	return &coordinator{
		txManager:   txManager,
		auditLog:    auditLog,
		registry:    registry,
		accounts:    accounts,
		ledger:      ledger,
		products:    products,
		inventory:   inventory,
		stockAudits: stockAudits,
	}
}

var _ portssvc.CoordinatorSvcFacade = (*coordinator)(nil)

// unitOfWork is the handle set passed to a work closure. All handles share the
// recorder and transaction bound into the closure's context.
type unitOfWork struct {
	rec *changeRecorder
	c   *coordinator
}

func (u *unitOfWork) ID() string                                { return u.rec.unitOfWorkID }
func (u *unitOfWork) Accounts() portssvc.AccountSvcFacade       { return u.c.accounts }
func (u *unitOfWork) Ledger() portssvc.LedgerSvcFacade          { return u.c.ledger }
func (u *unitOfWork) Products() portssvc.ProductSvcFacade       { return u.c.products }
func (u *unitOfWork) Inventory() portssvc.InventorySvcFacade    { return u.c.inventory }
func (u *unitOfWork) StockAudits() portssvc.StockAuditSvcFacade { return u.c.stockAudits }

func (u *unitOfWork) RaiseEvent(event events.DomainEvent) {
	u.rec.raiseEvent(event)
}

// Run executes work under one atomic transaction. Any error from work or an
// underlying store rolls back every mutation together with the buffered audit
// trail. On success the audit log rows are flushed inside the transaction just
// before commit, and events are dispatched only once the commit has happened,
// so no observer ever sees an event for a change that was rolled back.
func (c *coordinator) Run(ctx context.Context, work portssvc.WorkFn) error {
	logger := logging.GetLoggerFromCtx(ctx)

	if recorderFromCtx(ctx) != nil {
		return ErrNestedTransaction
	}

	rec := newChangeRecorder(identity.ActorFromCtx(ctx))
	uow := &unitOfWork{rec: rec, c: c}

	err := c.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		txCtx = withRecorder(txCtx, rec)
		if err := work(txCtx, uow); err != nil {
			return err
		}
		if len(rec.logEntries) > 0 {
			if err := c.auditLog.AppendEntries(txCtx, rec.logEntries); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Warn("unit of work rolled back",
			slog.String("unit_of_work_id", rec.unitOfWorkID),
			slog.String("error", err.Error()))
		return err
	}

	logger.Info("unit of work committed",
		slog.String("unit_of_work_id", rec.unitOfWorkID),
		slog.Int("audit_entries", len(rec.logEntries)),
		slog.Int("events", len(rec.events)))

	if len(rec.events) > 0 {
		c.registry.Dispatch(ctx, rec.events)
	}
	return nil
}
