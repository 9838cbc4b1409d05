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

// PostgresRepository implements metadata storage over a dbx.DBTX
// (*sql.DB or *sql.Tx) using $n placeholders.
//
// List and Find order with COLLATE "C" so the result order is byte-wise
// lexicographic regardless of the database locale, matching SQLite's
// default BINARY collation.
type PostgresRepository struct {
	db  dbx.DBTX
	log logging.Logger
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX, log logging.Logger) *PostgresRepository {
	return &PostgresRepository{db: db, log: log}
}

// Set upserts a record by key in a single atomic statement.
func (r *PostgresRepository) Set(ctx context.Context, key string, value string) error {
	if err := validate(key, value); err != nil {
		return err
	}

	query := `
		INSERT INTO metadata (key, value)
		VALUES ($1, $2)
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
func (r *PostgresRepository) Get(ctx context.Context, key string) (string, error) {
	query := `SELECT value FROM metadata WHERE key = $1`

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
func (r *PostgresRepository) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM metadata WHERE key = $1`

	_, err := r.db.ExecContext(ctx, query, key)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	r.log.Debug(ctx, "delete", "key", key)
	return nil
}

// List returns all records ordered by key ascending.
func (r *PostgresRepository) List(ctx context.Context) ([]models.Record, error) {
	query := `SELECT key, value FROM metadata ORDER BY key COLLATE "C"`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

// Find returns the records whose key matches the LIKE pattern, ordered by
// key ascending. Wildcards in the pattern are passed through verbatim.
func (r *PostgresRepository) Find(ctx context.Context, pattern string) ([]models.Record, error) {
	query := `SELECT key, value FROM metadata WHERE key LIKE $1 ORDER BY key COLLATE "C"`

	rows, err := r.db.QueryContext(ctx, query, pattern)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	return collectRecords(rows)
}

// collectRecords scans (key, value) rows into a slice.
func collectRecords(rows *sql.Rows) ([]models.Record, error) {
	var result []models.Record
	for rows.Next() {
		var item models.Record
		if err := rows.Scan(&item.Key, &item.Value); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
