package cli

import (
	"fmt"
	"io"

	"qm/internal/bank"
)

// runTemplate builds the handler for the template command.
func runTemplate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		flags := newFlagSet(cmd, stderr)
		outputPath := flags.String("output", "", "Template path ending in .csv, .json, .yaml or .yml")
		force := flags.Bool("force", false, "Overwrite an existing file")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if rejectArgs(cmd, flags, stderr) {
			return ExitUsage
		}
		if *outputPath == "" {
			fmt.Fprintln(stderr, "Missing --output")
			return ExitUsage
		}
		if err := bank.WriteTemplate(*outputPath, *force); err != nil {
			fmt.Fprintf(stderr, "Template failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Wrote %s\n", *outputPath)
		return ExitOK
	}
}
