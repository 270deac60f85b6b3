package repositories

import (
	"context"
)

// TransactionManager runs a unit of work atomically against the store.
type TransactionManager interface {
	// WithinTx runs fn inside a database transaction carried by the context
	// passed to fn. Repositories called with that context join the
	// transaction. A nested call joins the outer transaction. The
	// transaction is committed when fn returns nil and rolled back otherwise.
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
