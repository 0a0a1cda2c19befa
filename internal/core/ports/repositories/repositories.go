package repositories

// Container bundles every repository implementation behind one wiring point,
// so service construction does not depend on the storage engine.
type Container struct {
	TxManager TxManager
	Accounts  AccountRepository
	Entries   LedgerEntryRepository
	Products  ProductRepository
	Stock     StockRepository
	Audits    StockAuditRepository
	AuditLog  AuditLogRepository
}
