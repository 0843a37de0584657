package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"qm/internal/score"
)

// runScores builds the handler for the scores command.
func runScores(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		flags := newFlagSet(cmd, stderr)
		category := flags.String("category", "", "Category to show (default: list categories)")
		last := flags.Int("last", 10, "Number of most recent records (0 = all)")
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
		if *category == "" {
			categories, err := env.history.Categories()
			if err != nil {
				fmt.Fprintf(stderr, "Failed to list scores: %v\n", err)
				return ExitError
			}
			if len(categories) == 0 {
				fmt.Fprintf(stdout, "No scores recorded in %s\n", env.history.Dir())
				return ExitOK
			}
			for _, name := range categories {
				fmt.Fprintln(stdout, name)
			}
			return ExitOK
		}

		records, err := env.history.Last(*category, *last)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to read scores: %v\n", err)
			return ExitError
		}
		if len(records) == 0 {
			fmt.Fprintf(stdout, "No scores recorded for %s\n", *category)
			return ExitOK
		}
		fmt.Fprintln(stdout, renderTable(scoreHeaders, scoreRows(records), env.cfg.UI.NoColor))
		return ExitOK
	}
}

var scoreHeaders = []string{"When", "Mode", "Status", "Correct", "Wrong", "Timed out", "Answered", "Duration"}

// scoreRows formats history records newest first.
func scoreRows(records []score.Record) [][]string {
	rows := make([][]string, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		record := records[i]
		rows = append(rows, []string{
			record.Timestamp.Local().Format("2006-01-02 15:04"),
			record.Mode,
			record.Status,
			fmtInt(record.Correct),
			fmtInt(record.Wrong),
			fmtInt(record.TimedOut),
			fmtInt(record.Total) + "/" + fmtInt(record.Planned),
			record.Duration().Round(time.Second).String(),
		})
	}
	return rows
}

func fmtInt(value int) string {
	return strconv.Itoa(value)
}
