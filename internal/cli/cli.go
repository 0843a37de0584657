// Package cli implements the qm command line.
package cli

import (
	"fmt"
	"io"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Command is one qm subcommand.
type Command struct {
	Name    string
	Summary string
	Usage   []string
	Run     func(args []string, stdout, stderr io.Writer) int
}

// Run dispatches args to a command and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return ExitUsage
	}
	if isHelpArg(args[0]) {
		if len(args) > 1 {
			if cmd := findCommand(args[1]); cmd != nil {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
		}
		printUsage(stdout)
		return ExitOK
	}

	cmd := findCommand(args[0])
	if cmd == nil {
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return ExitUsage
	}

	return cmd.Run(args[1:], stdout, stderr)
}

func findCommand(name string) *Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

func wantsHelp(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-h", "--help":
			return true
		}
	}
	return false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  qm <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-9s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintln(w, "\nUse \"qm <command> --help\" for more information.")
}

func printCommandUsage(cmd *Command, w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	for _, line := range cmd.Usage {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if cmd.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", cmd.Summary)
	}
}

func command(name, summary string, usage []string, runner func(cmd *Command) func(args []string, stdout, stderr io.Writer) int) *Command {
	cmd := &Command{
		Name:    name,
		Summary: summary,
		Usage:   usage,
	}
	cmd.Run = runner(cmd)
	return cmd
}

var commands = []*Command{
	command("init", "Scaffold .qm/config.yml and an example bank", []string{
		"qm init [--dir <path>]",
	}, runInit),
	command("validate", "Validate config and question banks", []string{
		"qm validate [bank-file]...",
	}, runValidate),
	command("play", "Run a quiz or flashcard session", []string{
		"qm play (--category <name> | --file <path>) [--mode quiz|flashcard] [--limit <duration>|none]",
		"qm play --category <name> [--kinds multiple,truefalse,fillin,match] [--count N] [--shuffle] [--ui auto|live|plain]",
	}, runPlay),
	command("questions", "List, add, edit or delete questions in a bank", []string{
		"qm questions list (--category <name> | --file <path>)",
		"qm questions add (--category <name> | --file <path>) --type <kind> --question <text> [--correct <answer>] [--wrong a,b] [--left x|y --right 1|2 --answers a:1,b:2]",
		"qm questions edit (--category <name> | --file <path>) --index N [field flags]",
		"qm questions delete (--category <name> | --file <path>) --index N",
	}, runQuestions),
	command("scores", "Show recent scores", []string{
		"qm scores [--category <name>] [--last N]",
	}, runScores),
	command("stats", "Aggregate score history per category", []string{
		"qm stats",
	}, runStats),
	command("report", "Generate an HTML history report", []string{
		"qm report --category <name> [--output <path>]",
	}, runReport),
	command("export", "Convert a bank between csv, json and yaml", []string{
		"qm export --file <path> --format csv|json|yaml [--output <path>]",
	}, runExport),
	command("template", "Write an example bank", []string{
		"qm template --output <path> [--force]",
	}, runTemplate),
}
