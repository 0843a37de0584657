package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"qm/internal/report"
)

var renderReport = report.Render

// runReport builds the handler for the report command.
func runReport(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		flags := newFlagSet(cmd, stderr)
		category := flags.String("category", "", "Category to report on")
		outputPath := flags.String("output", "", "Report output path (default: stdout)")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if rejectArgs(cmd, flags, stderr) {
			return ExitUsage
		}
		if *category == "" {
			fmt.Fprintln(stderr, "Missing --category")
			return ExitUsage
		}

		env, err := loadEnvironment(stderr, false)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		records, err := env.history.Read(*category)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to read scores: %v\n", err)
			return ExitError
		}
		if *outputPath == "" {
			if err := renderReport(context.Background(), stdout, *category, records); err != nil {
				fmt.Fprintf(stderr, "Failed to render report: %v\n", err)
				return ExitError
			}
			return ExitOK
		}
		file, err := os.Create(*outputPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to write report: %v\n", err)
			return ExitError
		}
		renderErr := renderReport(context.Background(), file, *category, records)
		closeErr := file.Close()
		if renderErr != nil {
			fmt.Fprintf(stderr, "Failed to render report: %v\n", renderErr)
			return ExitError
		}
		if closeErr != nil {
			fmt.Fprintf(stderr, "Failed to write report: %v\n", closeErr)
			return ExitError
		}
		fmt.Fprintf(stdout, "Report written to %s\n", *outputPath)
		return ExitOK
	}
}
