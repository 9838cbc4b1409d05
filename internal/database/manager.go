// Package database owns the scoped lifecycle of the single database handle
// used by the shell: open, ping, schema bootstrap, close. The handle is
// acquired once per session and released exactly once, whatever way the
// session ends.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/metakv/internal/common"
	"github.com/dmitrijs2005/metakv/internal/config"
	"github.com/dmitrijs2005/metakv/internal/logging"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Per-driver DDL. Lengths are also enforced by store-side validation, so
// SQLite's untyped TEXT columns keep the same effective contract as the
// Postgres varchars.
const (
	ddlPostgres = `
		CREATE TABLE IF NOT EXISTS metadata (
			key   varchar(80)  NOT NULL PRIMARY KEY,
			value varchar(200) NOT NULL
		)
	`
	ddlSQLite = `
		CREATE TABLE IF NOT EXISTS metadata (
			key   TEXT NOT NULL PRIMARY KEY,
			value TEXT NOT NULL
		)
	`
)

// Manager holds the open database handle together with the driver it was
// opened with.
type Manager struct {
	db     *sql.DB
	driver string
	log    logging.Logger
	out    io.Writer
}

// Open validates cfg, establishes the connection, and bootstraps the schema.
// Status lines go to out; diagnostics go to the logger.
//
// Failures map to the startup error categories: common.ErrorConfig before
// any connection attempt, common.ErrorConnection when the connect or ping
// fails, common.ErrorSchemaBootstrap when table creation fails for any
// reason other than the table already existing.
func Open(ctx context.Context, cfg *config.Config, log logging.Logger, out io.Writer) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Info(ctx, "connecting", "driver", cfg.Driver)

	dsn := cfg.DSN()
	if cfg.Driver == config.DriverSQLite {
		dsn = sqliteDSN(dsn)
	}

	db, err := sql.Open(sqlDriverName(cfg.Driver), dsn)
	if err != nil {
		fmt.Fprintf(out, "[ERROR] Could not connect: %v\n", err)
		return nil, fmt.Errorf("%w: %v", common.ErrorConnection, err)
	}

	if cfg.Driver == config.DriverSQLite {
		// One connection only: :memory: databases exist per connection.
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		fmt.Fprintf(out, "[ERROR] Could not connect: %v\n", err)
		return nil, fmt.Errorf("%w: %v", common.ErrorConnection, err)
	}

	fmt.Fprint(out, "[OK] Connected.\n\n")
	log.Info(ctx, "connected")

	m := &Manager{db: db, driver: cfg.Driver, log: log, out: out}

	if err := m.bootstrap(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return m, nil
}

// bootstrap issues the idempotent CREATE TABLE statement. A failure caused
// by the table already existing is success; anything else is fatal.
func (m *Manager) bootstrap(ctx context.Context) error {
	ddl := ddlSQLite
	if m.driver == config.DriverPostgres {
		ddl = ddlPostgres
	}

	_, err := m.db.ExecContext(ctx, ddl)
	if err == nil {
		fmt.Fprint(m.out, "[OK] Table 'metadata' is ready.\n\n")
		m.log.Debug(ctx, "schema bootstrap complete")
		return nil
	}

	if isAlreadyExists(err) {
		fmt.Fprint(m.out, "[OK] Table 'metadata' already exists.\n\n")
		m.log.Debug(ctx, "schema bootstrap skipped, table exists")
		return nil
	}

	return fmt.Errorf("%w: %v", common.ErrorSchemaBootstrap, err)
}

// DB returns the open handle. Callers borrow it per operation and must not
// close it.
func (m *Manager) DB() *sql.DB {
	return m.db
}

// Driver returns the configured driver name.
func (m *Manager) Driver() string {
	return m.driver
}

// Close releases the connection. Called exactly once per successful Open.
func (m *Manager) Close() error {
	err := m.db.Close()
	fmt.Fprint(m.out, "\n[OK] Connection closed.\n")
	m.log.Info(context.Background(), "connection closed")
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// sqlDriverName maps the configured driver to the database/sql driver name
// registered by the imported driver packages. Unknown drivers never reach
// this point: Validate rejects them first.
func sqlDriverName(driver string) string {
	if driver == config.DriverPostgres {
		return "pgx"
	}
	return "sqlite"
}

// sqliteDSN appends the LIKE pragma to the DSN. SQLite's LIKE is
// case-insensitive for ASCII by default; Postgres LIKE is case-sensitive.
// The pragma is per-connection state, and a DSN option reaches every
// connection the pool ever opens, where a one-off PRAGMA statement would
// stop at the first.
func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path + "&_pragma=case_sensitive_like(1)"
	}
	return path + "?_pragma=case_sensitive_like(1)"
}

// isAlreadyExists reports whether a bootstrap error means the table is
// already there. Postgres classifies this structurally: SQLSTATE 42P07
// (duplicate_table), or 23505 (unique_violation) when two sessions race
// through CREATE TABLE IF NOT EXISTS at once. SQLite exposes no stable
// structured code for this case, so the message text is the fallback.
func isAlreadyExists(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "42P07" || pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "already exists")
}
