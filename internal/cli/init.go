package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"qm/internal/config"
)

// runInit builds the handler for the init command.
func runInit(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		flags := newFlagSet(cmd, stderr)
		dir := flags.String("dir", "", "Project root (default: current directory)")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if rejectArgs(cmd, flags, stderr) {
			return ExitUsage
		}

		root := *dir
		if root == "" {
			wd, err := workingDir()
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
			root = wd
		}
		root, err := filepath.Abs(root)
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		configPath, err := config.Scaffold(root)
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Wrote %s\n", configPath)
		return ExitOK
	}
}
