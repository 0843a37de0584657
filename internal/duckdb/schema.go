// Package duckdb runs read-only analytics over score history in an
// in-memory DuckDB database.
package duckdb

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
)

//go:embed schema.sql
var scoreRecordsDDL string

// scoreRecordsTable is the table every query in this package reads.
const scoreRecordsTable = "score_records"

// ApplySchema creates the score_records table when it is missing. It is safe
// to call on a database that already has it.
func ApplySchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("duckdb: db is nil")
	}
	if _, err := db.ExecContext(ctx, scoreRecordsDDL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	var tables int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM information_schema.tables WHERE table_name = ?`, scoreRecordsTable,
	).Scan(&tables)
	if err != nil {
		return fmt.Errorf("check schema: %w", err)
	}
	if tables != 1 {
		return fmt.Errorf("apply schema: table %s missing", scoreRecordsTable)
	}
	return nil
}
