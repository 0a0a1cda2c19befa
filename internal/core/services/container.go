package services

import (
	"log/slog"

	"github.com/SscSPs/erp_core_backend/internal/core/events"
	portsrepo "github.com/SscSPs/erp_core_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/erp_core_backend/internal/core/ports/services"
)

// NewContainer wires every service over the given repositories and event
// registry. The coordinator is the only component that touches the
// transaction manager; all other services assume an ambient transaction.
func NewContainer(repos portsrepo.Container, registry *events.Registry, logger *slog.Logger) *portssvc.Container {
	if logger == nil {
		logger = slog.Default()
	}

	accounts := NewAccountService(repos.Accounts)
	ledger := NewLedgerService(repos.Accounts, repos.Entries)
	products := NewProductService(repos.Products, repos.Stock)
	inventory := NewInventoryService(repos.Stock)
	stockAudits := NewStockAuditService(repos.Audits, repos.Stock, repos.Products, inventory)

	coordinator := NewCoordinator(
		repos.TxManager,
		repos.AuditLog,
		registry,
		accounts,
		ledger,
		products,
		inventory,
		stockAudits,
	)

	return &portssvc.Container{
		Accounts:    accounts,
		Ledger:      ledger,
		Products:    products,
		Inventory:   inventory,
		StockAudits: stockAudits,
		Coordinator: coordinator,
		Workflows:   NewWorkflowService(coordinator),
		Reporting:   NewReportingService(repos.Accounts, repos.Entries, repos.Products, repos.Stock, repos.Audits),
	}
}
