// Package metadata provides the repositories backing the metadata table:
// a PostgreSQL implementation for shared deployments and a SQLite one for
// local files. Both speak the same Repository contract over a dbx.DBTX.
package metadata

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/dmitrijs2005/metakv/internal/common"
	"github.com/dmitrijs2005/metakv/internal/config"
	"github.com/dmitrijs2005/metakv/internal/dbx"
	"github.com/dmitrijs2005/metakv/internal/logging"
	"github.com/dmitrijs2005/metakv/internal/models"
)

// Column limits of the metadata table. Enforced before any statement is
// sent, so both backends reject oversized input identically regardless of
// their column types.
const (
	MaxKeyLen   = 80
	MaxValueLen = 200
)

// Repository is the storage contract for metadata records.
//
// Set is an atomic upsert. Get returns common.ErrorNotFound for an absent
// key; an empty stored value is a normal result, not an absence. Delete of
// an absent key is a no-op. List and Find return records ordered by key
// ascending (byte-wise); Find matches keys against a SQL LIKE pattern,
// wildcards taken verbatim.
type Repository interface {
	Set(ctx context.Context, key string, value string) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]models.Record, error)
	Find(ctx context.Context, pattern string) ([]models.Record, error)
}

// New returns the Repository implementation for the given driver name.
func New(driver string, db dbx.DBTX, log logging.Logger) (Repository, error) {
	switch driver {
	case config.DriverPostgres:
		return NewPostgresRepository(db, log), nil
	case config.DriverSQLite:
		return NewSQLiteRepository(db, log), nil
	default:
		return nil, fmt.Errorf("%w: no repository for driver %q", common.ErrorConfig, driver)
	}
}

// validate checks the column limits. Lengths are counted in runes, matching
// how the database counts varchar characters.
func validate(key string, value string) error {
	if n := utf8.RuneCountInString(key); n > MaxKeyLen {
		return fmt.Errorf("%w (max %d chars): '%s'", common.ErrorKeyTooLong, MaxKeyLen, key)
	}
	if n := utf8.RuneCountInString(value); n > MaxValueLen {
		return fmt.Errorf("%w (max %d chars): '%s'", common.ErrorValueTooLong, MaxValueLen, value)
	}
	return nil
}
