// Package database opens the SQL connection pool shared by the snapshot
// repositories, the migrator and the SQL event bus.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mamecholeye-lab/Rmam/pkg/logger"
)

// Supported drivers and their goose dialects.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

// Database wraps *sql.DB with transaction helpers.
type Database struct {
	db     *sql.DB
	driver string
}

// NewPool opens a Postgres pool through the pgx stdlib driver and verifies connectivity.
func NewPool(ctx context.Context, url string, log logger.Logger) (*Database, error) {
	d, err := open(ctx, DriverPostgres, url)
	if err != nil {
		return nil, err
	}
	d.db.SetMaxOpenConns(10)
	d.db.SetMaxIdleConns(5)
	d.db.SetConnMaxLifetime(30 * time.Minute)
	log.Info("database opened", "driver", DriverPostgres)
	return d, nil
}

// NewSQLite opens the SQLite file at path. SQLite allows a single writer, so
// the pool is capped at one connection.
func NewSQLite(ctx context.Context, path string, log logger.Logger) (*Database, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on", path)
	d, err := open(ctx, DriverSQLite, dsn)
	if err != nil {
		return nil, err
	}
	d.db.SetMaxOpenConns(1)
	log.Info("database opened", "driver", DriverSQLite, "path", path)
	return d, nil
}

func open(ctx context.Context, driver, dsn string) (*Database, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("database: open %s: %w", driver, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database: ping %s: %w", driver, err)
	}
	return &Database{db: db, driver: driver}, nil
}

// DB returns the underlying pool for direct queries.
func (d *Database) DB() *sql.DB {
	return d.db
}

// Dialect returns the goose dialect matching the driver.
func (d *Database) Dialect() string {
	if d.driver == DriverSQLite {
		return "sqlite3"
	}
	return "postgres"
}

// WithTx runs fn inside a transaction. The transaction commits when fn
// returns nil and rolls back otherwise.
func (d *Database) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("database: begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("database: commit: %w", err)
	}
	return nil
}

// Ping checks the connection health.
func (d *Database) Ping(ctx context.Context) error {
	if err := d.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database: ping: %w", err)
	}
	return nil
}

// Close closes the pool.
func (d *Database) Close() error {
	return d.db.Close()
}
