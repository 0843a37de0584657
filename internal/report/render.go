package report

import (
	"context"
	"io"
	"strings"
	"time"

	"qm/internal/duckdb"
	"qm/internal/score"
)

// Render writes the history report for category to w. Aggregates are
// computed with DuckDB when there is at least one record.
func Render(ctx context.Context, w io.Writer, category string, records []score.Record) error {
	page := Page{Category: category, Records: records, GeneratedAt: time.Now()}
	if len(records) > 0 {
		stats, err := duckdb.Stats(ctx, records)
		if err != nil {
			return err
		}
		for i := range stats {
			if stats[i].Category == category {
				page.Stats = &stats[i]
			}
		}
	}
	return HistoryPage(page).Render(ctx, w)
}

// RenderHTML renders page into a string.
func RenderHTML(ctx context.Context, page Page) (string, error) {
	var builder strings.Builder
	if err := HistoryPage(page).Render(ctx, &builder); err != nil {
		return "", err
	}
	return builder.String(), nil
}
