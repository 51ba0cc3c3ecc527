package postgres

import "errors"

var (
	ErrFailedToParseConfig = errors.New("postgres: failed to parse pool configuration")
	ErrFailedToConnect     = errors.New("postgres: failed to open connection")
	ErrHealthcheckFailed   = errors.New("postgres: healthcheck failed")
	ErrSetDialect          = errors.New("postgres migrator: failed to set dialect")
	ErrApplyMigrations     = errors.New("postgres migrator: failed to apply migrations")
	ErrInvalidMapping      = errors.New("postgres: invalid mapping")
	ErrNilPool             = errors.New("postgres: connection pool cannot be nil")
	ErrNilEncoder          = errors.New("postgres: row encoder cannot be nil")
)
