package services

// Container bundles the service facades for wiring at the composition root.
type Container struct {
	Accounts    AccountSvcFacade
	Ledger      LedgerSvcFacade
	Products    ProductSvcFacade
	Inventory   InventorySvcFacade
	StockAudits StockAuditSvcFacade
	Coordinator CoordinatorSvcFacade
	Workflows   WorkflowSvcFacade
	Reporting   ReportingSvcFacade
}
