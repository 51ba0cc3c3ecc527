package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect establishes a PostgreSQL connection pool with retry logic.
// Each failed attempt waits (attempt number × RetryInterval) before the
// next, so restarting fleets do not hammer a recovering database.
func Connect(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	connConfig, err := pgxpool.ParseConfig(cfg.ConnectionString)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseConfig, err)
	}
	connConfig.MaxConns = cfg.MaxOpenConns
	connConfig.MinConns = cfg.MinConns
	connConfig.HealthCheckPeriod = cfg.HealthCheckPeriod
	connConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	connConfig.MaxConnLifetime = cfg.MaxConnLifetime

	attempts := max(cfg.RetryAttempts, 1)
	for i := 0; i < attempts; i++ {
		pool, err := pgxpool.NewWithConfig(ctx, connConfig)
		if err != nil {
			if err := wait(ctx, time.Duration(i+1)*cfg.RetryInterval); err != nil {
				return nil, errors.Join(ErrFailedToConnect, err)
			}
			continue
		}

		// Ping to surface authentication and permission problems now
		// rather than on the first query.
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			if err := wait(ctx, time.Duration(i+1)*cfg.RetryInterval); err != nil {
				return nil, errors.Join(ErrFailedToConnect, err)
			}
			continue
		}

		return pool, nil
	}

	return nil, ErrFailedToConnect
}

func wait(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// Healthcheck returns a function that pings the pool, suitable for health
// check endpoints.
func Healthcheck(pool *pgxpool.Pool) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if err := pool.Ping(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

// Shutdown returns a function that closes the connection pool, for use as a
// shutdown hook.
func Shutdown(pool *pgxpool.Pool) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		pool.Close()
		return nil
	}
}
