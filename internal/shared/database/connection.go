package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"biosphere-server/internal/shared/config"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

type DB struct {
	*sql.DB
	driver string
}

type Tx struct {
	*sql.Tx
	driver string
}

type Executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Driver reports the database/sql driver name the connection was opened with.
func (db *DB) Driver() string {
	return db.driver
}

// Rebind rewrites $N placeholders into the form the driver expects.
func (db *DB) Rebind(query string) string {
	return rebind(db.driver, query)
}

func (tx *Tx) Rebind(query string) string {
	return rebind(tx.driver, query)
}

func rebind(driver, query string) string {
	if driver != config.DriverSQLite {
		return query
	}
	return strings.ReplaceAll(query, "$", "?")
}

func (db *DB) BeginTxContext(ctx context.Context) (*Tx, error) {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &Tx{tx, db.driver}, nil
}

func Connect() (*DB, error) {
	cfg := config.GlobalConfig
	logger := slog.With("component", "database", "operation", "connect")
	logger.Debug("Initializing database connection")

	logger.Info("Connecting to database",
		"driver", cfg.Database.Driver,
		"host", cfg.Database.Host,
		"database", cfg.Database.Name,
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	db, err := Open(cfg.Database.Driver, cfg.ConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err, "driver", cfg.Database.Driver)
		return nil, err
	}

	if db.driver == config.DriverPostgres {
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	}

	logger.Info("Database connection established successfully", "driver", cfg.Database.Driver)
	return db, nil
}

// Open connects to driver at dsn and pings it. SQLite connections are
// limited to a single writer.
func Open(driver, dsn string) (*DB, error) {
	logger := slog.With("component", "database", "operation", "open", "driver", driver)

	switch driver {
	case config.DriverPostgres, config.DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == config.DriverSQLite {
		sqlDB.SetMaxOpenConns(1)
	}

	logger.Debug("Testing database connection with ping")
	if err := sqlDB.Ping(); err != nil {
		if closeErr := sqlDB.Close(); closeErr != nil {
			logger.Error("Failed to close database after ping failure", "close_error", closeErr, "ping_error", err)
		}
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: sqlDB, driver: driver}, nil
}
