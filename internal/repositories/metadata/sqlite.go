package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/metakv/internal/common"
	"github.com/dmitrijs2005/metakv/internal/dbx"
	"github.com/dmitrijs2005/metakv/internal/logging"
	"github.com/dmitrijs2005/metakv/internal/models"
)

// SQLiteRepository implements metadata storage over a dbx.DBTX using ?
// placeholders. Key ordering relies on SQLite's default BINARY collation.
type SQLiteRepository struct {
	db  dbx.DBTX
	log logging.Logger
}

// NewSQLiteRepository constructs a repository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX, log logging.Logger) *SQLiteRepository {
	return &SQLiteRepository{db: db, log: log}
}

// Set upserts a record by key in a single atomic statement.
func (r *SQLiteRepository) Set(ctx context.Context, key string, value string) error {
	if err := validate(key, value); err != nil {
		return err
	}

	query := `
		INSERT INTO metadata (key, value)
		VALUES (?, ?)
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value;
	`
	_, err := r.db.ExecContext(ctx, query, key, value)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	r.log.Debug(ctx, "upsert", "key", key)
	return nil
}

// Get returns the value stored under key, or common.ErrorNotFound.
func (r *SQLiteRepository) Get(ctx context.Context, key string) (string, error) {
	query := `SELECT value FROM metadata WHERE key = ?`

	var value string
	err := r.db.QueryRowContext(ctx, query, key).Scan(&value)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}

	return value, nil
}

// Delete removes the record under key. Deleting an absent key is a no-op.
func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM metadata WHERE key = ?`

	_, err := r.db.ExecContext(ctx, query, key)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	r.log.Debug(ctx, "delete", "key", key)
	return nil
}

// List returns all records ordered by key ascending.
func (r *SQLiteRepository) List(ctx context.Context) ([]models.Record, error) {
	query := `SELECT key, value FROM metadata ORDER BY key`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

// Find returns the records whose key matches the LIKE pattern, ordered by
// key ascending. Wildcards in the pattern are passed through verbatim.
func (r *SQLiteRepository) Find(ctx context.Context, pattern string) ([]models.Record, error) {
	query := `SELECT key, value FROM metadata WHERE key LIKE ? ORDER BY key`

	rows, err := r.db.QueryContext(ctx, query, pattern)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}
