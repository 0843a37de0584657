package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"qm/internal/score"
)

// InsertRecords loads score records into score_records in one transaction.
func InsertRecords(ctx context.Context, db *sql.DB, records []score.Record) (err error) {
	if ctx == nil {
		return errors.New("duckdb: context is nil")
	}
	if db == nil {
		return errors.New("duckdb: db is nil")
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin ingest: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO score_records
		(session_id, recorded_at, category, mode, status, total, planned, correct, wrong, timed_out, duration_s)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare ingest: %w", err)
	}
	defer stmt.Close()
	for i, record := range records {
		var recordedAt any
		if !record.Timestamp.IsZero() {
			recordedAt = record.Timestamp.UTC()
		}
		if _, err := stmt.ExecContext(ctx,
			nullString(record.SessionID),
			recordedAt,
			record.Category,
			record.Mode,
			record.Status,
			record.Total,
			record.Planned,
			record.Correct,
			record.Wrong,
			record.TimedOut,
			record.DurationSeconds,
		); err != nil {
			return fmt.Errorf("insert record %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit ingest: %w", err)
	}
	return nil
}

func nullString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
