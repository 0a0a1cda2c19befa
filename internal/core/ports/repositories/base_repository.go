package repositories

import (
	"context"
)

// TxManager abstracts the store's transaction primitive. The active transaction
// is carried in the context so that repository implementations can route all
// reads and writes made inside fn through it.
type TxManager interface {
	// WithinTx runs fn inside one atomic transaction. It commits when fn
	// returns nil and rolls back every write when fn returns an error or
	// panics. Isolation violations surface as apperrors.ErrConflict.
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error

	// InTx reports whether ctx already carries an active transaction.
	InTx(ctx context.Context) bool
}
