package cli

import (
	"context"
	"fmt"
	"io"

	"qm/internal/bank"
)

// runValidate builds the handler for the validate command.
func runValidate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		flags := newFlagSet(cmd, stderr)
		verboseFlag := flags.Bool("verbose", false, "Log cache activity to stderr")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}

		env, err := loadEnvironment(stderr, *verboseFlag)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
			return ExitError
		}
		paths := flags.Args()
		if len(paths) == 0 {
			entries, err := bank.Discover(env.paths.CategoriesDir)
			if err != nil {
				fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
				return ExitError
			}
			for _, entry := range entries {
				paths = append(paths, entry.Path)
			}
		}
		if len(paths) == 0 {
			fmt.Fprintf(stdout, "Config OK; no question banks in %s\n", env.paths.CategoriesDir)
			return ExitOK
		}

		failed := 0
		for _, path := range paths {
			loaded, err := env.cache.Load(context.Background(), path)
			if err != nil {
				failed++
				fmt.Fprintf(stderr, "FAIL %v\n", err)
				continue
			}
			fmt.Fprintf(stdout, "OK   %s (%d questions)\n", path, loaded.Len())
		}
		if failed > 0 {
			fmt.Fprintf(stderr, "Validation failed: %d of %d banks rejected\n", failed, len(paths))
			return ExitError
		}
		return ExitOK
	}
}
