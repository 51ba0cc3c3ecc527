package translatable

import "context"

// Transactor executes a function within a transactional scope. Everything
// the function does through the context commits or rolls back as one unit.
//
// The PostgreSQL implementation stores the open transaction in the context
// so that repository calls made with it run on the same transaction.
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// NopTransactor is a Transactor that runs the function directly, without any
// transactional scope. Use it with repository implementations that have no
// transaction concept, or in tests.
type NopTransactor struct{}

// InTx calls fn with the unmodified context.
func (NopTransactor) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
