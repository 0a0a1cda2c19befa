package services

import (
	"context"

	"github.com/SscSPs/erp_core_backend/internal/core/events"
)

// UnitOfWork hands a work closure transactional handles to the stores. Every
// mutation performed through these handles commits or rolls back as one.
type UnitOfWork interface {
	// ID is the unit-of-work identifier stamped onto movements, entries and
	// audit log rows produced inside it.
	ID() string

	Accounts() AccountSvcFacade
	Ledger() LedgerSvcFacade
	Products() ProductSvcFacade
	Inventory() InventorySvcFacade
	StockAudits() StockAuditSvcFacade

	// RaiseEvent buffers a domain event for post-commit dispatch.
	RaiseEvent(event events.DomainEvent)
}

// WorkFn is one business operation expressed against a unit of work.
type WorkFn func(ctx context.Context, uow UnitOfWork) error

// CoordinatorSvcFacade owns the atomic transaction boundary. Nested Run calls
// are rejected: a unit of work is the unit of atomicity and is composed by
// putting more logic inside one work closure, never by nesting.
type CoordinatorSvcFacade interface {
	Run(ctx context.Context, work WorkFn) error
}
