package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/duckdb/duckdb-go/v2"
)

// DriverName is the database/sql driver registered by duckdb-go.
const DriverName = "duckdb"

// OpenMemory opens an empty in-memory database with the schema applied.
func OpenMemory(ctx context.Context) (*sql.DB, error) {
	if ctx == nil {
		return nil, errors.New("duckdb: context is nil")
	}
	db, err := sql.Open(DriverName, "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	// Each connection to an empty DSN is its own database.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping duckdb: %w", err)
	}
	if err := ApplySchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
