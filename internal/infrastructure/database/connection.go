package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/learnmode/internal/infrastructure/config"
)

// Supported database/sql driver names.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
)

// Dialect maps a database/sql driver name onto the ent SQL dialect it speaks.
func Dialect(driver string) (string, error) {
	switch driver {
	case DriverSQLite:
		return dialect.SQLite, nil
	case DriverPostgres, DriverPgx:
		return dialect.Postgres, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// NewDriver opens the configured database as an ent dialect driver.
func NewDriver(cfg *config.Config, log logrus.FieldLogger) (dialect.Driver, func(), error) {
	driver, err := cfg.DatabaseDriver()
	if err != nil {
		return nil, nil, fmt.Errorf("determine database driver: %w", err)
	}
	dsn, err := cfg.DatabaseURL()
	if err != nil {
		return nil, nil, fmt.Errorf("determine database dsn: %w", err)
	}
	return Open(driver, dsn, cfg.Database.LogSQL, log)
}

// Open connects with an explicit driver name and DSN. With logSQL every
// statement is logged at debug level.
func Open(driver, dsn string, logSQL bool, log logrus.FieldLogger) (dialect.Driver, func(), error) {
	dialectName, err := Dialect(driver)
	if err != nil {
		return nil, nil, err
	}

	rawDB, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s db: %w", driver, err)
	}
	if driver == DriverSQLite {
		rawDB.SetMaxOpenConns(1)
		rawDB.SetMaxIdleConns(1)
	} else {
		rawDB.SetMaxOpenConns(10)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rawDB.PingContext(ctx); err != nil {
		rawDB.Close()
		return nil, nil, fmt.Errorf("ping %s db: %w", driver, err)
	}
	if driver == DriverSQLite {
		if _, err := rawDB.ExecContext(ctx, "PRAGMA foreign_keys = ON;"); err != nil {
			rawDB.Close()
			return nil, nil, fmt.Errorf("enable sqlite foreign keys: %w", err)
		}
	}

	drv := entsql.OpenDB(dialectName, rawDB)
	cleanup := func() { _ = drv.Close() }
	if logSQL && log != nil {
		return dialect.DebugWithContext(drv, func(_ context.Context, args ...any) {
			log.WithField("driver", driver).Debug(args...)
		}), cleanup, nil
	}
	return drv, cleanup, nil
}
