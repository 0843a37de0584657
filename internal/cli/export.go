package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"qm/internal/bank"
)

// runExport builds the handler for the export command.
func runExport(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		flags := newFlagSet(cmd, stderr)
		file := flags.String("file", "", "Bank file to convert")
		formatFlag := flags.String("format", "", "Target format: csv|json|yaml (default: from --output)")
		outputPath := flags.String("output", "", "Output path (default: stdout)")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if rejectArgs(cmd, flags, stderr) {
			return ExitUsage
		}
		if *file == "" {
			fmt.Fprintln(stderr, "Missing --file")
			return ExitUsage
		}
		format, err := exportFormat(*formatFlag, *outputPath)
		if err != nil {
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			return ExitUsage
		}

		env, err := loadEnvironment(stderr, false)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		loaded, err := env.cache.Load(context.Background(), *file)
		if err != nil {
			fmt.Fprintf(stderr, "Export failed: %v\n", err)
			return ExitError
		}
		if *outputPath != "" {
			if extFormat, err := bank.FormatFor(*outputPath); err == nil && extFormat == format {
				if err := env.cache.Save(*outputPath, loaded.Questions()); err != nil {
					fmt.Fprintf(stderr, "Export failed: %v\n", err)
					return ExitError
				}
				fmt.Fprintf(stdout, "Wrote %d questions to %s\n", loaded.Len(), *outputPath)
				return ExitOK
			}
		}
		var buf bytes.Buffer
		if err := bank.Encode(&buf, format, loaded.Questions()); err != nil {
			fmt.Fprintf(stderr, "Export failed: %v\n", err)
			return ExitError
		}
		if *outputPath == "" {
			_, _ = stdout.Write(buf.Bytes())
			return ExitOK
		}
		if err := os.WriteFile(*outputPath, buf.Bytes(), 0o644); err != nil {
			fmt.Fprintf(stderr, "Export failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Wrote %d questions to %s\n", loaded.Len(), *outputPath)
		return ExitOK
	}
}

// exportFormat picks the target format from the flag or the output extension.
func exportFormat(value, outputPath string) (bank.Format, error) {
	switch bank.Format(strings.ToLower(strings.TrimSpace(value))) {
	case bank.FormatCSV:
		return bank.FormatCSV, nil
	case bank.FormatJSON:
		return bank.FormatJSON, nil
	case bank.FormatYAML, "yml":
		return bank.FormatYAML, nil
	case "":
		if outputPath == "" {
			return "", fmt.Errorf("--format is required when writing to stdout")
		}
		return bank.FormatFor(outputPath)
	default:
		return "", fmt.Errorf("unsupported format %q (expected csv|json|yaml)", value)
	}
}
