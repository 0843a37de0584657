package runner

import (
	"fmt"
	"io"
	"time"

	"qm/internal/question"
	"qm/internal/session"
)

// printPresentation writes one question with its options.
func printPresentation(w io.Writer, p session.Presentation, mode session.Mode) {
	fmt.Fprintf(w, "\nQuestion %d/%d", p.Index+1, p.Total)
	if p.TimeLimit > session.NoLimit {
		fmt.Fprintf(w, " (%s)", formatLimit(p.TimeLimit))
	}
	fmt.Fprintf(w, "\n%s\n", p.Prompt)
	for i, option := range p.Options {
		fmt.Fprintf(w, "  %s) %s\n", p.OptionLabel(i), option)
	}
	if p.Kind == question.KindMatch {
		for i, left := range p.Left {
			fmt.Fprintf(w, "  %s) %s\n", question.LeftLabel(i), left)
		}
		for i, right := range p.Right {
			fmt.Fprintf(w, "  %s. %s\n", question.RightLabel(i), right)
		}
	}
	fmt.Fprint(w, promptHint(p, mode))
}

func promptHint(p session.Presentation, mode session.Mode) string {
	if mode == session.ModeFlashcard {
		return "Press Enter to reveal (x to quit): "
	}
	switch p.Kind {
	case question.KindMultiple, question.KindTrueFalse:
		return "Answer (letter or text, x to quit): "
	case question.KindMatch:
		return "Pairs like a-1, b-2 (x to quit): "
	default:
		return "Answer (x to quit): "
	}
}

// printResult writes the outcome of one answered question.
func printResult(w io.Writer, result session.AnswerResult) {
	switch {
	case result.TimedOut:
		fmt.Fprintf(w, "Time is up. Correct answer: %s\n", result.Expected)
	case !result.Graded():
		return
	case result.IsCorrect():
		fmt.Fprintln(w, "Correct!")
	default:
		fmt.Fprintf(w, "Wrong. Correct answer: %s\n", result.Expected)
		if match, ok := result.Question.(question.Match); ok && result.Given.Pairs != nil {
			for _, pair := range question.ComparePairs(match, result.Given.Pairs) {
				fmt.Fprintf(w, "  %s\n", formatPair(pair))
			}
		}
	}
}

func formatPair(pair question.PairResult) string {
	switch {
	case pair.Extra:
		return fmt.Sprintf("%s-%s (unknown item)", pair.Left, pair.Given)
	case pair.Correct:
		return fmt.Sprintf("%s-%s ok", pair.Left, pair.Given)
	case pair.Given == "":
		return fmt.Sprintf("%s missing, expected %s", pair.Left, pair.Expected)
	default:
		return fmt.Sprintf("%s-%s wrong, expected %s", pair.Left, pair.Given, pair.Expected)
	}
}

// printSummary writes the closing line for a finished session.
func printSummary(w io.Writer, s *session.Session) {
	answers := s.Answers()
	if s.State() == session.Aborted {
		fmt.Fprintf(w, "\nSession aborted after %d of %d questions.\n", len(answers), s.Len())
	} else {
		fmt.Fprintf(w, "\nSession complete: %d questions.\n", len(answers))
	}
	if s.Mode() != session.ModeQuiz {
		return
	}
	var correct, wrong, timedOut int
	for _, answer := range answers {
		switch {
		case answer.TimedOut:
			timedOut++
		case answer.IsCorrect():
			correct++
		case answer.IsWrong():
			wrong++
		}
	}
	fmt.Fprintf(w, "Correct: %d  Wrong: %d  Timed out: %d\n", correct, wrong, timedOut)
}

func formatLimit(limit time.Duration) string {
	return limit.Round(time.Second).String() + " limit"
}
