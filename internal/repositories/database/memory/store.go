// Package memory provides an in-process implementation of the repository
// ports. Transactions are snapshot based: a unit of work copies the store
// state up front and restores it when the work function fails, so rollback
// semantics match the durable store without a running database.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/SscSPs/erp_core_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/erp_core_backend/internal/core/ports/repositories"
)

type txCtxKey struct{}

// Store holds all entity state behind one mutex.
type Store struct {
	mu sync.RWMutex

	accounts    map[string]domain.Account
	entries     []domain.LedgerEntry
	products    map[string]domain.Product
	stockLevels map[string]domain.StockLevel
	movements   []domain.StockMovement
	audits      map[string]domain.StockAudit
	auditItems  map[string]domain.StockAuditItem
	auditLogs   []domain.AuditLogEntry

	// txMu serializes whole units of work so a snapshot/restore pair never
	// interleaves with another transaction's writes.
	txMu sync.Mutex
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		accounts:    make(map[string]domain.Account),
		products:    make(map[string]domain.Product),
		stockLevels: make(map[string]domain.StockLevel),
		audits:      make(map[string]domain.StockAudit),
		auditItems:  make(map[string]domain.StockAuditItem),
	}
}

// NewRepositories builds the repository container over one in-memory store.
func NewRepositories(store *Store) portsrepo.Container {
	return portsrepo.Container{
		TxManager: &memTxManager{store: store},
		Accounts:  &memAccountRepository{store: store},
		Entries:   &memLedgerEntryRepository{store: store},
		Products:  &memProductRepository{store: store},
		Stock:     &memStockRepository{store: store},
		Audits:    &memStockAuditRepository{store: store},
		AuditLog:  &memAuditLogRepository{store: store},
	}
}

type storeSnapshot struct {
	accounts    map[string]domain.Account
	entries     []domain.LedgerEntry
	products    map[string]domain.Product
	stockLevels map[string]domain.StockLevel
	movements   []domain.StockMovement
	audits      map[string]domain.StockAudit
	auditItems  map[string]domain.StockAuditItem
	auditLogs   []domain.AuditLogEntry
}

// Domain structs are stored by value and replaced wholesale on update, so a
// shallow clone of each container is a complete snapshot.
func (s *Store) snapshot() storeSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return storeSnapshot{
		accounts:    maps.Clone(s.accounts),
		entries:     slices.Clone(s.entries),
		products:    maps.Clone(s.products),
		stockLevels: maps.Clone(s.stockLevels),
		movements:   slices.Clone(s.movements),
		audits:      maps.Clone(s.audits),
		auditItems:  maps.Clone(s.auditItems),
		auditLogs:   slices.Clone(s.auditLogs),
	}
}

func (s *Store) restore(snap storeSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = snap.accounts
	s.entries = snap.entries
	s.products = snap.products
	s.stockLevels = snap.stockLevels
	s.movements = snap.movements
	s.audits = snap.audits
	s.auditItems = snap.auditItems
	s.auditLogs = snap.auditLogs
}

// memTxManager implements the transaction port with snapshot rollback.
type memTxManager struct {
	store *Store
}

var _ portsrepo.TxManager = (*memTxManager)(nil)

func (m *memTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.store.txMu.Lock()
	defer m.store.txMu.Unlock()

	snap := m.store.snapshot()
	if err := fn(context.WithValue(ctx, txCtxKey{}, true)); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

func (m *memTxManager) InTx(ctx context.Context) bool {
	inTx, _ := ctx.Value(txCtxKey{}).(bool)
	return inTx
}
