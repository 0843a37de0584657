package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"qm/internal/score"
)

// CategoryStats aggregates quiz sessions for one category. Flashcard
// sessions are counted in Sessions only.
type CategoryStats struct {
	Category     string
	Sessions     int
	Quizzes      int
	Answered     int
	Correct      int
	Wrong        int
	TimedOut     int
	Accuracy     float64
	BestAccuracy float64
	AvgDuration  time.Duration
	LastPlayed   time.Time
}

const categoryStatsQuery = `
SELECT
  category,
  COUNT(*) AS sessions,
  CAST(COUNT(*) FILTER (WHERE mode = 'quiz') AS BIGINT) AS quizzes,
  CAST(COALESCE(SUM(total) FILTER (WHERE mode = 'quiz'), 0) AS BIGINT) AS answered,
  CAST(COALESCE(SUM(correct), 0) AS BIGINT) AS correct,
  CAST(COALESCE(SUM(wrong), 0) AS BIGINT) AS wrong,
  CAST(COALESCE(SUM(timed_out), 0) AS BIGINT) AS timed_out,
  CAST(SUM(correct) AS DOUBLE) / NULLIF(SUM(total) FILTER (WHERE mode = 'quiz'), 0) AS accuracy,
  MAX(CASE WHEN mode = 'quiz' AND total > 0 THEN CAST(correct AS DOUBLE) / total END) AS best_accuracy,
  AVG(duration_s) AS avg_duration_s,
  MAX(recorded_at) AS last_played
FROM score_records
GROUP BY category
ORDER BY category`

// Summarize aggregates records already loaded into db.
func Summarize(ctx context.Context, db *sql.DB) ([]CategoryStats, error) {
	rows, err := db.QueryContext(ctx, categoryStatsQuery)
	if err != nil {
		return nil, fmt.Errorf("query category stats: %w", err)
	}
	defer rows.Close()

	var out []CategoryStats
	for rows.Next() {
		var (
			stats        CategoryStats
			accuracy     sql.NullFloat64
			bestAccuracy sql.NullFloat64
			avgDuration  sql.NullFloat64
			lastPlayed   sql.NullTime
		)
		if err := rows.Scan(
			&stats.Category,
			&stats.Sessions,
			&stats.Quizzes,
			&stats.Answered,
			&stats.Correct,
			&stats.Wrong,
			&stats.TimedOut,
			&accuracy,
			&bestAccuracy,
			&avgDuration,
			&lastPlayed,
		); err != nil {
			return nil, fmt.Errorf("scan category stats: %w", err)
		}
		stats.Accuracy = accuracy.Float64
		stats.BestAccuracy = bestAccuracy.Float64
		stats.AvgDuration = time.Duration(avgDuration.Float64 * float64(time.Second))
		if lastPlayed.Valid {
			stats.LastPlayed = lastPlayed.Time
		}
		out = append(out, stats)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category stats: %w", err)
	}
	return out, nil
}

// Stats ingests records into a fresh in-memory database and aggregates them
// per category.
func Stats(ctx context.Context, records []score.Record) ([]CategoryStats, error) {
	db, err := OpenMemory(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	if err := InsertRecords(ctx, db, records); err != nil {
		return nil, err
	}
	return Summarize(ctx, db)
}
