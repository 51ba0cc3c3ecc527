package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Migrate applies the embedded SQL migrations to the database behind pool.
//
// The pgx pool is bridged to database/sql because goose expects the standard
// library interface. The bridge shares the pool's connections, so it is not
// closed here.
func Migrate(ctx context.Context, pool *pgxpool.Pool, migrations embed.FS, migrationTable string, log *slog.Logger) error {
	db := stdlib.OpenDBFromPool(pool)

	goose.SetBaseFS(migrations)
	goose.SetLogger(&gooseLoggerAdapter{log})
	goose.SetTableName(migrationTable)

	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Join(ErrSetDialect, err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return errors.Join(ErrApplyMigrations, err)
	}

	return nil
}

type gooseLoggerAdapter struct {
	log *slog.Logger
}

func (g *gooseLoggerAdapter) Printf(format string, args ...any) {
	g.log.Info(fmt.Sprintf(format, args...))
}

func (g *gooseLoggerAdapter) Fatalf(format string, args ...any) {
	// Error level only: goose returns the error to the caller, and
	// os.Exit here would skip cleanup.
	g.log.Error(fmt.Sprintf(format, args...))
}
