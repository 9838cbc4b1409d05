// Package dbx holds the minimal database handle abstraction shared by
// repositories. Both *sql.DB and *sql.Tx satisfy DBTX, so a repository never
// cares who owns the underlying connection: it borrows the handle per call
// and retains nothing.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql used by the repositories.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
