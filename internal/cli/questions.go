package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"qm/internal/bank"
	"qm/internal/question"
)

// Actions accepted by the questions command.
const (
	questionsList   = "list"
	questionsAdd    = "add"
	questionsEdit   = "edit"
	questionsDelete = "delete"
)

// questionFields holds the flag values that describe one question.
type questionFields struct {
	kind     *string
	prompt   *string
	correct  *string
	wrong    *string
	left     *string
	right    *string
	answers  *string
	provided map[string]bool
}

func bindQuestionFields(flags *flag.FlagSet) *questionFields {
	return &questionFields{
		kind:    flags.String("type", "", "Question type: multiple|truefalse|fillin|match"),
		prompt:  flags.String("question", "", "Question text"),
		correct: flags.String("correct", "", "Correct answer (True/False for truefalse)"),
		wrong:   flags.String("wrong", "", "Comma-separated wrong answers (multiple)"),
		left:    flags.String("left", "", "Pipe-separated left items (match)"),
		right:   flags.String("right", "", "Pipe-separated right items (match)"),
		answers: flags.String("answers", "", "Comma-separated pairs such as a:1,b:2 (match)"),
	}
}

// runQuestions builds the handler for the questions command.
func runQuestions(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		if len(args) == 0 {
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		action := args[0]
		switch action {
		case questionsList, questionsAdd, questionsEdit, questionsDelete:
		default:
			fmt.Fprintf(stderr, "Unknown questions action: %s\n", action)
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		flags := newFlagSet(cmd, stderr)
		category := flags.String("category", "", "Category name under the categories directory")
		file := flags.String("file", "", "Bank file to edit")
		index := flags.Int("index", 0, "1-based question number (edit, delete)")
		fields := bindQuestionFields(flags)
		if code, ok := parseFlags(cmd, flags, args[1:], stdout, stderr); !ok {
			return code
		}
		if rejectArgs(cmd, flags, stderr) {
			return ExitUsage
		}
		fields.provided = map[string]bool{}
		flags.Visit(func(f *flag.Flag) { fields.provided[f.Name] = true })
		if (*category == "") == (*file == "") {
			fmt.Fprintln(stderr, "Exactly one of --category or --file is required")
			return ExitUsage
		}
		if (action == questionsEdit || action == questionsDelete) && *index < 1 {
			fmt.Fprintf(stderr, "invalid arguments: %s requires --index >= 1\n", action)
			return ExitUsage
		}
		if action == questionsAdd && (!fields.provided["type"] || !fields.provided["question"]) {
			fmt.Fprintln(stderr, "invalid arguments: add requires --type and --question")
			return ExitUsage
		}

		env, err := loadEnvironment(stderr, false)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		bankPath, _, err := resolveBank(env, *category, *file)
		if err != nil {
			fmt.Fprintf(stderr, "Questions failed: %v\n", err)
			return ExitError
		}
		loaded, err := env.cache.Load(context.Background(), bankPath)
		if err != nil {
			fmt.Fprintf(stderr, "Questions failed: %v\n", err)
			return ExitError
		}
		questions := loaded.Questions()

		if action == questionsList {
			printQuestions(stdout, questions)
			return ExitOK
		}
		if *index > len(questions) {
			fmt.Fprintf(stderr, "Questions failed: question %d out of range (1-%d)\n", *index, len(questions))
			return ExitError
		}

		var summary string
		switch action {
		case questionsAdd:
			raw, err := fields.apply(question.Raw{})
			if err != nil {
				fmt.Fprintf(stderr, "Invalid question: %v\n", err)
				return ExitError
			}
			q, err := question.Validate(raw)
			if err != nil {
				fmt.Fprintf(stderr, "Invalid question: %v\n", err)
				return ExitError
			}
			questions = append(questions, q)
			summary = fmt.Sprintf("Added question %d to %s", len(questions), bankPath)
		case questionsEdit:
			raw, err := fields.apply(question.ToRaw(questions[*index-1]))
			if err != nil {
				fmt.Fprintf(stderr, "Invalid question: %v\n", err)
				return ExitError
			}
			q, err := question.Validate(raw)
			if err != nil {
				fmt.Fprintf(stderr, "Invalid question: %v\n", err)
				return ExitError
			}
			questions[*index-1] = q
			summary = fmt.Sprintf("Updated question %d in %s", *index, bankPath)
		case questionsDelete:
			questions = append(questions[:*index-1], questions[*index:]...)
			summary = fmt.Sprintf("Deleted question %d from %s", *index, bankPath)
		}

		if err := env.cache.Save(bankPath, questions); err != nil {
			fmt.Fprintf(stderr, "Questions failed: %v\n", err)
			return ExitError
		}
		reloaded, err := env.cache.Load(context.Background(), bankPath)
		if err != nil {
			fmt.Fprintf(stderr, "Questions failed: saved bank does not reload: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "%s (%d questions)\n", summary, reloaded.Len())
		return ExitOK
	}
}

// apply overlays the provided flags on base. Changing the type starts from
// an empty question that keeps only the prompt.
func (f *questionFields) apply(base question.Raw) (question.Raw, error) {
	raw := base
	if f.provided["type"] && !strings.EqualFold(strings.TrimSpace(*f.kind), base.Type) {
		raw = question.Raw{Type: strings.TrimSpace(*f.kind), Question: base.Question}
	}
	if f.provided["question"] {
		raw.Question = *f.prompt
	}
	if f.provided["correct"] {
		raw.Correct = question.Scalar(*f.correct)
	}
	if f.provided["wrong"] {
		raw.WrongAnswers = bank.SplitList(*f.wrong, ",")
	}
	if !f.provided["left"] && !f.provided["right"] && !f.provided["answers"] {
		return raw, nil
	}
	pairs := question.RawPairs{}
	if raw.Pairs != nil {
		pairs = *raw.Pairs
	}
	if f.provided["left"] {
		pairs.Left = bank.SplitList(*f.left, "|")
	}
	if f.provided["right"] {
		pairs.Right = bank.SplitList(*f.right, "|")
	}
	if f.provided["answers"] {
		answers, err := bank.ParseAnswerPairs(*f.answers)
		if err != nil {
			return question.Raw{}, err
		}
		pairs.Answers = answers
	}
	raw.Pairs = &pairs
	return raw, nil
}

// printQuestions lists questions with 1-based numbers.
func printQuestions(w io.Writer, questions []question.Question) {
	if len(questions) == 0 {
		fmt.Fprintln(w, "No questions.")
		return
	}
	for i, q := range questions {
		fmt.Fprintf(w, "%3d. [%s] %s\n", i+1, q.Kind(), q.Text())
		fmt.Fprintf(w, "     answer: %s\n", question.CorrectText(q))
	}
}
