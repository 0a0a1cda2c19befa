package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/erp_core_backend/internal/apperrors"
	portsrepo "github.com/SscSPs/erp_core_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is the subset of pgx operations shared by *pgxpool.Pool and pgx.Tx, so
// repository methods run against the pool or the ambient transaction alike.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type txCtxKey struct{}

// BaseRepository provides pool access and transaction routing for all
// repositories.
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// conn returns the ambient transaction when ctx carries one, else the pool.
func (r *BaseRepository) conn(ctx context.Context) DBTX {
	if tx, ok := ctx.Value(txCtxKey{}).(pgx.Tx); ok {
		return tx
	}
	return r.Pool
}

// TxManager implements the transaction port over pgx. Units of work run at
// serializable isolation; the store's conflict detection is the only locking.
type TxManager struct {
	Pool *pgxpool.Pool
}

// NewTxManager creates the pgx-backed transaction manager.
func NewTxManager(pool *pgxpool.Pool) portsrepo.TxManager {
	return &TxManager{Pool: pool}
}

var _ portsrepo.TxManager = (*TxManager)(nil)

// WithinTx runs fn inside one serializable transaction carried in the context.
func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := m.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // No-op after a successful commit.

	if err := fn(context.WithValue(ctx, txCtxKey{}, tx)); err != nil {
		return mapConflict(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return mapConflict(fmt.Errorf("failed to commit transaction: %w", err))
	}
	return nil
}

// InTx reports whether ctx carries an active transaction.
func (m *TxManager) InTx(ctx context.Context) bool {
	_, ok := ctx.Value(txCtxKey{}).(pgx.Tx)
	return ok
}

// mapConflict translates serialization failures and deadlocks into the typed
// conflict error so callers can decide whether to retry.
func mapConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01": // serialization_failure, deadlock_detected
			return fmt.Errorf("%w: %s", apperrors.ErrConflict, pgErr.Message)
		}
	}
	return err
}
