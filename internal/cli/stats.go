package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"qm/internal/duckdb"
	"qm/internal/score"
)

// runStats builds the handler for the stats command.
func runStats(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		flags := newFlagSet(cmd, stderr)
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if rejectArgs(cmd, flags, stderr) {
			return ExitUsage
		}

		env, err := loadEnvironment(stderr, false)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		records, err := readAllHistory(env.history)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to read scores: %v\n", err)
			return ExitError
		}
		if len(records) == 0 {
			fmt.Fprintf(stdout, "No scores recorded in %s\n", env.history.Dir())
			return ExitOK
		}
		stats, err := duckdb.Stats(context.Background(), records)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to aggregate scores: %v\n", err)
			return ExitError
		}
		fmt.Fprintln(stdout, renderTable(statsHeaders, statsRows(stats), env.cfg.UI.NoColor))
		return ExitOK
	}
}

var statsHeaders = []string{"Category", "Sessions", "Quizzes", "Correct", "Wrong", "Timed out", "Accuracy", "Best", "Avg time", "Last played"}

func statsRows(stats []duckdb.CategoryStats) [][]string {
	rows := make([][]string, 0, len(stats))
	for _, stat := range stats {
		rows = append(rows, []string{
			stat.Category,
			fmtInt(stat.Sessions),
			fmtInt(stat.Quizzes),
			fmtInt(stat.Correct),
			fmtInt(stat.Wrong),
			fmtInt(stat.TimedOut),
			fmt.Sprintf("%.0f%%", stat.Accuracy*100),
			fmt.Sprintf("%.0f%%", stat.BestAccuracy*100),
			stat.AvgDuration.Round(time.Second).String(),
			stat.LastPlayed.Local().Format("2006-01-02 15:04"),
		})
	}
	return rows
}

// readAllHistory reads every category's records.
func readAllHistory(history *score.History) ([]score.Record, error) {
	categories, err := history.Categories()
	if err != nil {
		return nil, err
	}
	var records []score.Record
	for _, category := range categories {
		found, err := history.Read(category)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", category, err)
		}
		records = append(records, found...)
	}
	return records, nil
}
