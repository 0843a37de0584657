// Package report renders score history as a static HTML page.
package report

import (
	"strconv"
	"time"

	"qm/internal/duckdb"
	"qm/internal/score"
)

// Page is the data behind one history report.
type Page struct {
	Category    string
	Records     []score.Record
	Stats       *duckdb.CategoryStats
	GeneratedAt time.Time
}

type summaryItem struct {
	label string
	value string
}

func pageTitle(category string) string {
	return "qm scores: " + category
}

func summaryItems(stats duckdb.CategoryStats) []summaryItem {
	return []summaryItem{
		{label: "Sessions", value: strconv.Itoa(stats.Sessions)},
		{label: "Answered", value: strconv.Itoa(stats.Answered)},
		{label: "Accuracy", value: formatPercent(stats.Accuracy)},
		{label: "Best session", value: formatPercent(stats.BestAccuracy)},
		{label: "Average duration", value: formatDuration(stats.AvgDuration)},
		{label: "Last played", value: formatTimestamp(stats.LastPlayed)},
	}
}

// recordCells returns the right-aligned cells of one history row.
func recordCells(i int, record score.Record) []string {
	return []string{
		strconv.Itoa(i + 1),
		record.Mode,
		strconv.Itoa(record.Correct),
		strconv.Itoa(record.Wrong),
		strconv.Itoa(record.TimedOut),
		strconv.Itoa(record.Total),
		formatDuration(record.Duration()),
	}
}
