package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"qm/internal/bank"
	"qm/internal/config"
	"qm/internal/question"
	"qm/internal/session"
	"qm/internal/testutil"
	"qm/internal/ui/live"
)

const exampleCategory = "templates/example_template"

// setupProject points the CLI at a fresh project directory and runs init.
func setupProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv(config.DataDirEnv, "")
	originalWD := workingDir
	t.Cleanup(func() { workingDir = originalWD })
	workingDir = func() (string, error) { return root, nil }

	var out, errOut bytes.Buffer
	if code := Run([]string{"init"}, &out, &errOut); code != ExitOK {
		t.Fatalf("init: expected exit %d, got %d (%s)", ExitOK, code, errOut.String())
	}
	return root
}

// withInput feeds answers to play.
func withInput(t *testing.T, input string) {
	t.Helper()
	original := playInput
	t.Cleanup(func() { playInput = original })
	playInput = strings.NewReader(input)
}

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := Run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

// TestInitScaffoldsProject verifies init writes config and example bank once.
func TestInitScaffoldsProject(t *testing.T) {
	root := setupProject(t)
	if _, err := os.Stat(config.ConfigPath(root)); err != nil {
		t.Fatalf("expected config file: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "categories", "templates", "example_template.json")); err != nil {
		t.Fatalf("expected example bank: %v", err)
	}
	code, _, stderr := run(t, "init")
	if code != ExitError || !strings.Contains(stderr, "already exists") {
		t.Fatalf("expected second init to fail, got %d %q", code, stderr)
	}
}

// TestValidateReportsEachBank verifies validate loads every discovered bank.
func TestValidateReportsEachBank(t *testing.T) {
	root := setupProject(t)
	code, stdout, stderr := run(t, "validate")
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, stderr)
	}
	if !strings.Contains(stdout, "(4 questions)") {
		t.Fatalf("expected question count, got %q", stdout)
	}

	testutil.WriteFile(t, filepath.Join(root, "categories"), "broken.json", `[{"type":"truefalse","question":"Sky is green","correct":"maybe"}]`)
	code, _, stderr = run(t, "validate")
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(stderr, "FAIL") || !strings.Contains(stderr, "broken.json") {
		t.Fatalf("expected failing bank in stderr, got %q", stderr)
	}
}

// TestPlayRecordsHistory verifies a plain session is scored, saved and reported.
func TestPlayRecordsHistory(t *testing.T) {
	root := setupProject(t)
	withInput(t, "Paris\ntrue\nTokyo\na-1,b-2\n")
	code, stdout, stderr := run(t, "play", "--category", exampleCategory, "--ui", "plain", "--limit", "none")
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, stderr)
	}
	if !strings.Contains(stdout, "Score: 4/4 correct, 0 wrong, 0 timed out (100%)") {
		t.Fatalf("expected perfect score, got %q", stdout)
	}
	historyPath := filepath.Join(root, "scores", "templates", "example_template.jsonl")
	if content := testutil.ReadFile(t, historyPath); strings.Count(content, "\n") != 1 {
		t.Fatalf("expected one history line, got %q", content)
	}

	code, stdout, _ = run(t, "scores", "--category", exampleCategory)
	if code != ExitOK || !strings.Contains(stdout, "complete") {
		t.Fatalf("expected score table, got %d %q", code, stdout)
	}
	code, stdout, _ = run(t, "scores")
	if code != ExitOK || !strings.Contains(stdout, exampleCategory) {
		t.Fatalf("expected category list, got %d %q", code, stdout)
	}

	reportPath := filepath.Join(root, "report.html")
	code, _, stderr = run(t, "report", "--category", exampleCategory, "--output", reportPath)
	if code != ExitOK {
		t.Fatalf("report: expected exit %d, got %d (%s)", ExitOK, code, stderr)
	}
	if !strings.Contains(testutil.ReadFile(t, reportPath), "qm scores: "+exampleCategory) {
		t.Fatalf("expected report title")
	}
}

// TestPlayQuitRecordsAbortedSession verifies an early quit is still saved.
func TestPlayQuitRecordsAbortedSession(t *testing.T) {
	root := setupProject(t)
	withInput(t, "Paris\nx\n")
	code, stdout, stderr := run(t, "play", "--category", exampleCategory, "--ui", "plain", "--limit", "none", "--kinds", "multiple,fillin")
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, stderr)
	}
	if !strings.Contains(stdout, "Score: 1/1 correct") {
		t.Fatalf("expected partial score, got %q", stdout)
	}
	content := testutil.ReadFile(t, filepath.Join(root, "scores", "templates", "example_template.jsonl"))
	if !strings.Contains(content, `"status":"aborted"`) || !strings.Contains(content, `"planned":2`) {
		t.Fatalf("expected aborted record with 2 planned, got %q", content)
	}
}

// TestPlayNoHistorySkipsAppend verifies --no-history leaves the store untouched.
func TestPlayNoHistorySkipsAppend(t *testing.T) {
	root := setupProject(t)
	withInput(t, "Tokyo\n")
	code, _, stderr := run(t, "play", "--category", exampleCategory, "--ui", "plain", "--kinds", "fillin", "--no-history")
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, stderr)
	}
	if _, err := os.Stat(filepath.Join(root, "scores", "templates", "example_template.jsonl")); !os.IsNotExist(err) {
		t.Fatalf("expected no history file, got %v", err)
	}
}

// TestPlayUsesLiveUIOnTerminal verifies the live front end is chosen for a TTY.
func TestPlayUsesLiveUIOnTerminal(t *testing.T) {
	setupProject(t)
	originalTTY, originalLive := isTerminal, runLive
	t.Cleanup(func() { isTerminal, runLive = originalTTY, originalLive })
	isTerminal = func(io.Writer) bool { return true }
	called := false
	runLive = func(ctx context.Context, s *session.Session, in io.Reader, out io.Writer, opts live.Options) error {
		called = true
		if opts.Category != exampleCategory {
			t.Errorf("expected category %q, got %q", exampleCategory, opts.Category)
		}
		return s.Abort()
	}
	code, stdout, stderr := run(t, "play", "--category", exampleCategory, "--no-history")
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, stderr)
	}
	if !called {
		t.Fatalf("expected live UI to run")
	}
	if !strings.Contains(stdout, "Score: 0/0") {
		t.Fatalf("expected empty score, got %q", stdout)
	}
}

// TestPlayArgumentErrors verifies usage failures exit with the usage code.
func TestPlayArgumentErrors(t *testing.T) {
	setupProject(t)
	cases := []struct {
		name string
		args []string
		code int
	}{
		{name: "no source", args: []string{"play"}, code: ExitUsage},
		{name: "both sources", args: []string{"play", "--category", "a", "--file", "b.json"}, code: ExitUsage},
		{name: "bad mode", args: []string{"play", "--category", exampleCategory, "--mode", "exam"}, code: ExitUsage},
		{name: "bad kind", args: []string{"play", "--category", exampleCategory, "--kinds", "essay"}, code: ExitUsage},
		{name: "bad limit", args: []string{"play", "--category", exampleCategory, "--limit", "soon"}, code: ExitUsage},
		{name: "bad ui", args: []string{"play", "--category", exampleCategory, "--ui", "fancy"}, code: ExitUsage},
		{name: "unknown category", args: []string{"play", "--category", "history"}, code: ExitError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, _, _ := run(t, tc.args...)
			if code != tc.code {
				t.Fatalf("expected exit %d, got %d", tc.code, code)
			}
		})
	}
}

// TestStatsAggregatesHistory verifies stats reads every category through DuckDB.
func TestStatsAggregatesHistory(t *testing.T) {
	setupProject(t)
	code, stdout, _ := run(t, "stats")
	if code != ExitOK || !strings.Contains(stdout, "No scores recorded") {
		t.Fatalf("expected empty stats, got %d %q", code, stdout)
	}
	withInput(t, "Tokyo\n")
	if code, _, stderr := run(t, "play", "--category", exampleCategory, "--ui", "plain", "--kinds", "fillin"); code != ExitOK {
		t.Fatalf("play: expected exit %d, got %d (%s)", ExitOK, code, stderr)
	}
	code, stdout, stderr := run(t, "stats")
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, stderr)
	}
	if !strings.Contains(stdout, exampleCategory) || !strings.Contains(stdout, "100%") {
		t.Fatalf("expected category stats, got %q", stdout)
	}
}

// TestExportConvertsBank verifies export re-encodes a bank.
func TestExportConvertsBank(t *testing.T) {
	root := setupProject(t)
	source := filepath.Join(root, "categories", "templates", "example_template.json")

	code, stdout, stderr := run(t, "export", "--file", source, "--format", "csv")
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, stderr)
	}
	if !strings.HasPrefix(stdout, strings.Join(bank.CSVHeader, ",")) {
		t.Fatalf("expected csv header, got %q", stdout)
	}

	target := filepath.Join(root, "out", "bank.yaml")
	code, _, stderr = run(t, "export", "--file", source, "--output", target)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, stderr)
	}
	questions, err := bank.Parse(target, []byte(testutil.ReadFile(t, target)))
	if err != nil {
		t.Fatalf("parse exported bank: %v", err)
	}
	if len(questions) != 4 {
		t.Fatalf("expected 4 questions, got %d", len(questions))
	}

	if code, _, _ := run(t, "export", "--file", source); code != ExitUsage {
		t.Fatalf("expected usage error without a format, got %d", code)
	}
}

// TestTemplateRespectsExistingFiles verifies --force is needed to overwrite.
func TestTemplateRespectsExistingFiles(t *testing.T) {
	setupProject(t)
	path := filepath.Join(t.TempDir(), "starter.csv")
	if code, _, stderr := run(t, "template", "--output", path); code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, stderr)
	}
	if code, _, _ := run(t, "template", "--output", path); code != ExitError {
		t.Fatalf("expected exit %d for existing file, got %d", ExitError, code)
	}
	if code, _, _ := run(t, "template", "--output", path, "--force"); code != ExitOK {
		t.Fatalf("expected exit %d with --force, got %d", ExitOK, code)
	}
}

// TestResolveLimit verifies limit flag parsing.
func TestResolveLimit(t *testing.T) {
	cfg := config.Default()
	cases := []struct {
		value   string
		want    time.Duration
		wantErr bool
	}{
		{value: "", want: 60 * time.Second},
		{value: "none", want: session.NoLimit},
		{value: "NONE", want: session.NoLimit},
		{value: "45", want: 45 * time.Second},
		{value: "1m30s", want: 90 * time.Second},
		{value: "0", want: session.NoLimit},
		{value: "-5", wantErr: true},
		{value: "soon", wantErr: true},
	}
	for _, tc := range cases {
		got, err := resolveLimit(tc.value, cfg)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%q: expected error", tc.value)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tc.value, err)
		}
		if got != tc.want {
			t.Fatalf("%q: expected %s, got %s", tc.value, tc.want, got)
		}
	}
}

// TestQuestionsEditsBank verifies add, edit and delete persist and reload.
func TestQuestionsEditsBank(t *testing.T) {
	root := setupProject(t)
	bankPath := filepath.Join(root, "categories", "templates", "example_template.json")

	code, stdout, stderr := run(t, "questions", "list", "--category", exampleCategory)
	if code != ExitOK {
		t.Fatalf("list: expected exit %d, got %d (%s)", ExitOK, code, stderr)
	}
	if !strings.Contains(stdout, "  3. [fillin]") || !strings.Contains(stdout, "answer: Tokyo") {
		t.Fatalf("expected numbered questions, got %q", stdout)
	}

	code, stdout, stderr = run(t, "questions", "add", "--category", exampleCategory,
		"--type", "multiple", "--question", "Largest planet?", "--correct", "Jupiter", "--wrong", "Mars,Venus")
	if code != ExitOK {
		t.Fatalf("add: expected exit %d, got %d (%s)", ExitOK, code, stderr)
	}
	if !strings.Contains(stdout, "Added question 5") || !strings.Contains(stdout, "(5 questions)") {
		t.Fatalf("expected add summary, got %q", stdout)
	}

	code, _, stderr = run(t, "questions", "edit", "--category", exampleCategory, "--index", "3", "--correct", "Kyoto")
	if code != ExitOK {
		t.Fatalf("edit: expected exit %d, got %d (%s)", ExitOK, code, stderr)
	}
	code, _, stderr = run(t, "questions", "edit", "--category", exampleCategory, "--index", "4", "--answers", "a:2,b:1")
	if code != ExitOK {
		t.Fatalf("edit match: expected exit %d, got %d (%s)", ExitOK, code, stderr)
	}
	code, _, stderr = run(t, "questions", "delete", "--category", exampleCategory, "--index", "2")
	if code != ExitOK {
		t.Fatalf("delete: expected exit %d, got %d (%s)", ExitOK, code, stderr)
	}

	questions, err := bank.Parse(bankPath, []byte(testutil.ReadFile(t, bankPath)))
	if err != nil {
		t.Fatalf("reload bank: %v", err)
	}
	if len(questions) != 4 {
		t.Fatalf("expected 4 questions after edits, got %d", len(questions))
	}
	if got := question.CorrectText(questions[1]); got != "Kyoto" {
		t.Fatalf("expected edited fill-in answer, got %q", got)
	}
	match, ok := questions[2].(question.Match)
	if !ok || match.Answers["a"] != "2" || match.Answers["b"] != "1" {
		t.Fatalf("expected edited match answers, got %+v", questions[2])
	}
	if questions[3].Text() != "Largest planet?" {
		t.Fatalf("expected added question last, got %q", questions[3].Text())
	}

	withInput(t, "Kyoto\n")
	code, stdout, stderr = run(t, "play", "--category", exampleCategory, "--ui", "plain", "--kinds", "fillin", "--no-history")
	if code != ExitOK || !strings.Contains(stdout, "Score: 1/1 correct") {
		t.Fatalf("expected play to see the edit, got %d %q (%s)", code, stdout, stderr)
	}
}

// TestQuestionsRejectsInvalidEdits verifies bad input leaves the bank untouched.
func TestQuestionsRejectsInvalidEdits(t *testing.T) {
	root := setupProject(t)
	bankPath := filepath.Join(root, "categories", "templates", "example_template.json")
	before := testutil.ReadFile(t, bankPath)

	cases := []struct {
		name string
		args []string
		code int
	}{
		{name: "no action", args: []string{"questions"}, code: ExitUsage},
		{name: "unknown action", args: []string{"questions", "rename", "--category", exampleCategory}, code: ExitUsage},
		{name: "missing index", args: []string{"questions", "delete", "--category", exampleCategory}, code: ExitUsage},
		{name: "add without type", args: []string{"questions", "add", "--category", exampleCategory, "--question", "Q"}, code: ExitUsage},
		{name: "index out of range", args: []string{"questions", "delete", "--category", exampleCategory, "--index", "9"}, code: ExitError},
		{name: "invalid question", args: []string{"questions", "add", "--category", exampleCategory, "--type", "truefalse", "--question", "Q", "--correct", "maybe"}, code: ExitError},
		{name: "duplicate match key", args: []string{"questions", "edit", "--category", exampleCategory, "--index", "4", "--answers", "a:1,A:2"}, code: ExitError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, _, _ := run(t, tc.args...)
			if code != tc.code {
				t.Fatalf("expected exit %d, got %d", tc.code, code)
			}
		})
	}
	if after := testutil.ReadFile(t, bankPath); after != before {
		t.Fatalf("expected bank unchanged, got %q", after)
	}
}
