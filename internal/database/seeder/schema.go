package seeder

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"jobboard/internal/database"

	"github.com/jackc/pgx/v5"
)

// ErrSchemaMismatch is returned when a seeded table lacks expected columns,
// usually because migrations have not been applied.
var ErrSchemaMismatch = errors.New("schema mismatch")

const columnsQuery = `SELECT column_name
	 FROM information_schema.columns
	 WHERE table_schema = current_schema() AND table_name = $1`

// RequireColumns fails with ErrSchemaMismatch naming every column of want
// that table does not have.
func RequireColumns(ctx context.Context, db database.Querier, table string, want ...string) error {
	if db == nil || table == "" {
		return fmt.Errorf("require columns: missing db or table")
	}

	rows, err := db.Query(ctx, columnsQuery, table)
	if err != nil {
		return fmt.Errorf("list columns of %s: %w", table, err)
	}
	have, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return fmt.Errorf("list columns of %s: %w", table, err)
	}

	var missing []string
	for _, col := range want {
		if !slices.Contains(have, col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s lacks %s", ErrSchemaMismatch, table, strings.Join(missing, ", "))
	}
	return nil
}
