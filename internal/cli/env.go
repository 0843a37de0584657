package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"qm/internal/bank"
	"qm/internal/config"
	"qm/internal/score"
	"qm/internal/verbose"
)

// workingDir locates the project; tests override it.
var workingDir = os.Getwd

// environment is the resolved configuration shared by commands.
type environment struct {
	cfg     config.Config
	paths   config.Paths
	cache   *bank.Cache
	history *score.History
	log     *verbose.Logger
}

// loadEnvironment discovers the config from the working directory and builds
// the bank cache and history store it describes.
func loadEnvironment(stderr io.Writer, verboseEnabled bool) (*environment, error) {
	wd, err := workingDir()
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	cfg, paths, err := config.Discover(wd)
	if err != nil {
		return nil, err
	}
	var log *verbose.Logger
	if verboseEnabled {
		log = verbose.New(stderr, cfg.UI.NoColor)
	}
	cache, err := bank.NewCache(bank.Options{
		Capacity:    cfg.CacheCapacity,
		Fingerprint: bank.FingerprintMode(cfg.Fingerprint),
		Verbose:     log,
	})
	if err != nil {
		return nil, err
	}
	log.Logf(verbose.StyleDefault, "config root %s, categories %s, history %s", paths.Root, paths.CategoriesDir, paths.HistoryDir)
	return &environment{
		cfg:     cfg,
		paths:   paths,
		cache:   cache,
		history: score.NewHistory(paths.HistoryDir, log),
		log:     log,
	}, nil
}

// findCategory resolves a category name to its bank file.
func (env *environment) findCategory(name string) (string, error) {
	entries, err := bank.Discover(env.paths.CategoriesDir)
	if err != nil {
		return "", fmt.Errorf("list categories: %w", err)
	}
	name = strings.Trim(strings.TrimSpace(name), "/")
	var names []string
	for _, entry := range entries {
		if entry.Category == name {
			return entry.Path, nil
		}
		names = append(names, entry.Category)
	}
	if len(names) == 0 {
		return "", fmt.Errorf("no question banks found in %s", env.paths.CategoriesDir)
	}
	return "", fmt.Errorf("unknown category %q (available: %s)", name, strings.Join(names, ", "))
}

// parseFlags parses command flags and reports the exit code to use when
// parsing stops the command.
func parseFlags(cmd *Command, flags *flag.FlagSet, args []string, stdout, stderr io.Writer) (int, bool) {
	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			printCommandUsage(cmd, stdout)
			return ExitOK, false
		}
		fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
		printCommandUsage(cmd, stderr)
		return ExitUsage, false
	}
	return ExitOK, true
}

// rejectArgs fails when positional arguments are left over.
func rejectArgs(cmd *Command, flags *flag.FlagSet, stderr io.Writer) bool {
	if flags.NArg() == 0 {
		return false
	}
	fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
	printCommandUsage(cmd, stderr)
	return true
}

func newFlagSet(cmd *Command, stderr io.Writer) *flag.FlagSet {
	flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
	flags.SetOutput(stderr)
	return flags
}
