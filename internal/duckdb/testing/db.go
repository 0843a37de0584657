package duckdbtesting

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"qm/internal/duckdb"
	"qm/internal/testutil"
)

const defaultTimeout = 2 * time.Second

// Open opens an in-memory DuckDB with the schema applied and closes it at
// test cleanup.
func Open(t testing.TB) (*sql.DB, context.Context) {
	t.Helper()
	ctx := testutil.Context(t, defaultTimeout)
	db, err := duckdb.OpenMemory(ctx)
	if err != nil {
		t.Fatalf("open duckdb: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db, ctx
}

// QueryInt returns a single integer value from the database.
func QueryInt(t testing.TB, ctx context.Context, db *sql.DB, query string, args ...any) int {
	t.Helper()
	var out int
	if err := db.QueryRowContext(ctx, query, args...).Scan(&out); err != nil {
		t.Fatalf("query int failed: %v", err)
	}
	return out
}
