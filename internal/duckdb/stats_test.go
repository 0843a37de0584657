package duckdb_test

import (
	"math"
	"testing"
	"time"

	"qm/internal/duckdb"
	duckdbtesting "qm/internal/duckdb/testing"
	"qm/internal/score"
	"qm/internal/testutil"
)

var played = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func sampleRecords() []score.Record {
	return []score.Record{
		{Category: "geo", Mode: "quiz", Status: score.StatusComplete, Timestamp: played, Total: 4, Planned: 4, Correct: 2, Wrong: 1, TimedOut: 1, DurationSeconds: 30},
		{Category: "geo", Mode: "quiz", Status: score.StatusComplete, Timestamp: played.Add(time.Hour), Total: 4, Planned: 4, Correct: 4, DurationSeconds: 10},
		{Category: "geo", Mode: "flashcard", Status: score.StatusComplete, Timestamp: played.Add(2 * time.Hour), Total: 3, Planned: 3, DurationSeconds: 20},
		{Category: "art", Mode: "quiz", Status: score.StatusAborted, Total: 0, Planned: 5},
	}
}

// TestSchemaAppliesOnOpen verifies the score_records table exists and that
// applying the schema again keeps existing rows.
func TestSchemaAppliesOnOpen(t *testing.T) {
	db, ctx := duckdbtesting.Open(t)
	count := duckdbtesting.QueryInt(t, ctx, db, `SELECT COUNT(*) FROM information_schema.tables WHERE table_name = 'score_records'`)
	if count != 1 {
		t.Fatalf("expected score_records table, got %d", count)
	}
	if err := duckdb.InsertRecords(ctx, db, sampleRecords()[:1]); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := duckdb.ApplySchema(ctx, db); err != nil {
		t.Fatalf("reapply schema: %v", err)
	}
	if rows := duckdbtesting.QueryInt(t, ctx, db, `SELECT COUNT(*) FROM score_records`); rows != 1 {
		t.Fatalf("expected row to survive, got %d", rows)
	}
	if err := duckdb.ApplySchema(ctx, nil); err == nil {
		t.Fatalf("expected error for nil db")
	}
}

// TestInsertRecordsRejectsNegativeCounts verifies check constraints.
func TestInsertRecordsRejectsNegativeCounts(t *testing.T) {
	db, ctx := duckdbtesting.Open(t)
	err := duckdb.InsertRecords(ctx, db, []score.Record{{Category: "geo", Mode: "quiz", Status: "complete", Correct: -1}})
	if err == nil {
		t.Fatalf("expected constraint violation")
	}
	if count := duckdbtesting.QueryInt(t, ctx, db, `SELECT COUNT(*) FROM score_records`); count != 0 {
		t.Fatalf("expected rollback, got %d rows", count)
	}
}

// TestStatsAggregatesPerCategory verifies accuracy and duration aggregates.
func TestStatsAggregatesPerCategory(t *testing.T) {
	db, ctx := duckdbtesting.Open(t)
	if err := duckdb.InsertRecords(ctx, db, sampleRecords()); err != nil {
		t.Fatalf("insert: %v", err)
	}
	stats, err := duckdb.Summarize(ctx, db)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if len(stats) != 2 || stats[0].Category != "art" || stats[1].Category != "geo" {
		t.Fatalf("unexpected categories %+v", stats)
	}
	art := stats[0]
	if art.Sessions != 1 || art.Accuracy != 0 || !art.LastPlayed.IsZero() {
		t.Fatalf("unexpected art stats %+v", art)
	}
	geo := stats[1]
	if geo.Sessions != 3 || geo.Quizzes != 2 || geo.Answered != 8 || geo.Correct != 6 || geo.TimedOut != 1 {
		t.Fatalf("unexpected geo counts %+v", geo)
	}
	if math.Abs(geo.Accuracy-0.75) > 1e-9 || geo.BestAccuracy != 1 {
		t.Fatalf("unexpected geo accuracy %+v", geo)
	}
	if geo.AvgDuration != 20*time.Second {
		t.Fatalf("unexpected average duration %s", geo.AvgDuration)
	}
	if !geo.LastPlayed.Equal(played.Add(2 * time.Hour)) {
		t.Fatalf("unexpected last played %s", geo.LastPlayed)
	}
}

// TestStatsEmptyHistory verifies no rows yields no stats.
func TestStatsEmptyHistory(t *testing.T) {
	stats, err := duckdb.Stats(testutil.Context(t, 0), nil)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if len(stats) != 0 {
		t.Fatalf("expected no stats, got %+v", stats)
	}
}
