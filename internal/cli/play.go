package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"qm/internal/bank"
	"qm/internal/config"
	"qm/internal/question"
	"qm/internal/runner"
	"qm/internal/score"
	"qm/internal/session"
	"qm/internal/ui/live"
)

// playInput supplies answers; tests override it.
var playInput io.Reader = os.Stdin

var (
	runPlain = runner.Play
	runLive  = func(ctx context.Context, s *session.Session, in io.Reader, out io.Writer, opts live.Options) error {
		_, err := live.Run(ctx, s, in, out, opts)
		return err
	}
)

// runPlay builds the handler for the play command.
func runPlay(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		flags := newFlagSet(cmd, stderr)
		category := flags.String("category", "", "Category name under the categories directory")
		file := flags.String("file", "", "Bank file to play")
		modeFlag := flags.String("mode", string(session.ModeQuiz), "Session mode: quiz|flashcard")
		limitFlag := flags.String("limit", "", "Per-question limit (e.g. 45s, 60, none); default from config")
		kindsFlag := flags.String("kinds", "", "Comma-separated question kinds to include")
		count := flags.Int("count", 0, "Maximum number of questions (0 = all)")
		shuffle := flags.Bool("shuffle", false, "Shuffle question order")
		uiFlag := flags.String("ui", "", "UI mode: auto|live|plain; default from config")
		verboseFlag := flags.Bool("verbose", false, "Log session and cache activity to stderr")
		noHistory := flags.Bool("no-history", false, "Do not record the score")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if rejectArgs(cmd, flags, stderr) {
			return ExitUsage
		}
		if (*category == "") == (*file == "") {
			fmt.Fprintln(stderr, "Exactly one of --category or --file is required")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		mode, err := session.ParseMode(*modeFlag)
		if err != nil {
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			return ExitUsage
		}
		kinds, err := parseKinds(*kindsFlag)
		if err != nil {
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			return ExitUsage
		}
		if *count < 0 {
			fmt.Fprintln(stderr, "invalid arguments: --count must be >= 0")
			return ExitUsage
		}

		env, err := loadEnvironment(stderr, *verboseFlag)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		limit, err := resolveLimit(*limitFlag, env.cfg)
		if err != nil {
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			return ExitUsage
		}
		uiMode := *uiFlag
		if uiMode == "" {
			uiMode = env.cfg.UI.Mode
		}
		decision, err := resolveUIMode(uiMode, *verboseFlag, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		bankPath, name, err := resolveBank(env, *category, *file)
		if err != nil {
			fmt.Fprintf(stderr, "Play failed: %v\n", err)
			return ExitError
		}
		loaded, err := env.cache.Load(context.Background(), bankPath)
		if err != nil {
			fmt.Fprintf(stderr, "Play failed: %v\n", err)
			return ExitError
		}
		subset := buildSubset(loaded, kinds, *count, *shuffle)

		s, err := session.Start(subset, mode, limit, session.Options{
			Observer: runner.LogObserver{Log: env.log},
			Check:    question.Options{CaseSensitive: env.cfg.CaseSensitive},
		})
		if errors.Is(err, session.ErrEmptyBank) {
			fmt.Fprintf(stderr, "Play failed: no questions in %s match the selection\n", bankPath)
			return ExitError
		}
		if err != nil {
			fmt.Fprintf(stderr, "Play failed: %v\n", err)
			return ExitError
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if decision.useLive {
			err = runLive(ctx, s, playInput, stdout, live.Options{Category: name, NoColor: env.cfg.UI.NoColor})
		} else {
			err = runPlain(ctx, s, playInput, stdout, runner.Options{Verbose: env.log})
		}
		if err != nil && !errors.Is(err, context.Canceled) {
			fmt.Fprintf(stderr, "Play failed: %v\n", err)
			return ExitError
		}

		record, err := score.Summarize(s, name)
		if err != nil {
			fmt.Fprintf(stderr, "Play failed: %v\n", err)
			return ExitError
		}
		printRecord(stdout, record)
		if *noHistory {
			return ExitOK
		}
		if err := env.history.Append(record); err != nil {
			fmt.Fprintf(stderr, "Failed to save score: %v\n", err)
			return ExitError
		}
		if path, err := env.history.Path(name); err == nil {
			fmt.Fprintf(stdout, "Score saved to %s\n", path)
		}
		return ExitOK
	}
}

// resolveBank picks the bank file and the category it is scored under.
func resolveBank(env *environment, category, file string) (string, string, error) {
	if category != "" {
		path, err := env.findCategory(category)
		if err != nil {
			return "", "", err
		}
		name, err := bank.CategoryName(env.paths.CategoriesDir, path)
		return path, name, err
	}
	abs, err := filepath.Abs(file)
	if err != nil {
		return "", "", err
	}
	if name, err := bank.CategoryName(env.paths.CategoriesDir, abs); err == nil && !strings.HasPrefix(name, "..") {
		return abs, name, nil
	}
	return abs, strings.TrimSuffix(filepath.Base(abs), filepath.Ext(abs)), nil
}

// buildSubset filters, optionally shuffles and then truncates the bank.
func buildSubset(loaded *bank.Bank, kinds []question.Kind, count int, shuffle bool) []question.Question {
	if !shuffle {
		return bank.Select([]*bank.Bank{loaded}, bank.Filter{Kinds: kinds, Limit: count})
	}
	subset := bank.Shuffle(bank.Select([]*bank.Bank{loaded}, bank.Filter{Kinds: kinds}), rand.New(rand.NewSource(time.Now().UnixNano())))
	if count > 0 && count < len(subset) {
		subset = subset[:count]
	}
	return subset
}

// parseKinds reads a comma-separated kind list.
func parseKinds(value string) ([]question.Kind, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	var kinds []question.Kind
	for _, part := range strings.Split(value, ",") {
		kind, ok := question.ParseKind(part)
		if !ok {
			return nil, fmt.Errorf("unknown question kind %q", strings.TrimSpace(part))
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

// resolveLimit reads a duration, a whole number of seconds or "none".
func resolveLimit(value string, cfg config.Config) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return cfg.TimeLimit()
	}
	if strings.EqualFold(value, config.TimeLimitNone) {
		return session.NoLimit, nil
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds < 0 {
			return 0, fmt.Errorf("time limit must be >= 0, got %d", seconds)
		}
		return time.Duration(seconds) * time.Second, nil
	}
	limit, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid time limit %q", value)
	}
	if limit < 0 {
		return 0, fmt.Errorf("time limit must be >= 0, got %s", limit)
	}
	return limit, nil
}

// printRecord writes the one-line score summary.
func printRecord(w io.Writer, record score.Record) {
	if record.Mode == string(session.ModeFlashcard) {
		fmt.Fprintf(w, "Reviewed %d of %d cards in %s\n", record.Total, record.Planned, record.Duration().Round(time.Second))
		return
	}
	fmt.Fprintf(w, "Score: %d/%d correct, %d wrong, %d timed out (%.0f%%) in %s\n",
		record.Correct, record.Total, record.Wrong, record.TimedOut, record.Accuracy()*100, record.Duration().Round(time.Second))
}
