package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx that the
// repositories need.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type txKey struct{}

// queryEngine resolves the querier for ctx: the transaction stored by
// Transactor.InTx when present, the pool otherwise.
func queryEngine(ctx context.Context, pool *pgxpool.Pool) querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return pool
}

// InTransaction reports whether ctx carries a transaction opened by
// Transactor.InTx.
func InTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(pgx.Tx)
	return ok
}

// WithTx executes fn within a database transaction.
// If fn returns an error or panics, the transaction is rolled back (panics
// are re-raised). Otherwise the transaction is committed.
func WithTx(ctx context.Context, pool *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	return tx.Commit(ctx)
}

// Transactor implements translatable.Transactor over a pgx pool. It stores
// the open transaction in the context so repository calls made inside InTx
// run on the same transaction.
type Transactor struct {
	pool *pgxpool.Pool
}

// NewTransactor creates a Transactor over the given pool.
func NewTransactor(pool *pgxpool.Pool) *Transactor {
	return &Transactor{pool: pool}
}

// InTx runs fn inside a transaction. A nested call joins the surrounding
// transaction instead of opening a new one.
func (t *Transactor) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if InTransaction(ctx) {
		return fn(ctx)
	}
	return WithTx(ctx, t.pool, func(tx pgx.Tx) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}
