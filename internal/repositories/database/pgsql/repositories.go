package pgsql

import (
	portsrepo "github.com/SscSPs/erp_core_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositories builds the full repository container over one pgx pool.
func NewRepositories(pool *pgxpool.Pool) portsrepo.Container {
	return portsrepo.Container{
		TxManager: NewTxManager(pool),
		Accounts:  newPgxAccountRepository(pool),
		Entries:   newPgxLedgerEntryRepository(pool),
		Products:  newPgxProductRepository(pool),
		Stock:     newPgxStockRepository(pool),
		Audits:    newPgxStockAuditRepository(pool),
		AuditLog:  newPgxAuditLogRepository(pool),
	}
}
