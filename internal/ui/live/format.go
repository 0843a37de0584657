package live

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"qm/internal/question"
	"qm/internal/session"
)

// formatIndex formats a question index.
func formatIndex(index int) string {
	return "Q" + pad2(index+1)
}

// pad2 left-pads a number to two digits when needed.
func pad2(value int) string {
	if value >= 10 {
		return fmtInt(value)
	}
	return "0" + fmtInt(value)
}

// fmtInt converts an int to string.
func fmtInt(value int) string {
	return strconv.Itoa(value)
}

// formatQuestionText truncates question text for display.
func formatQuestionText(text string, limit int) string {
	normalized := strings.Join(strings.Fields(text), " ")
	if len(normalized) <= limit || limit <= 3 {
		return normalized
	}
	return normalized[:limit-3] + "..."
}

// formatGiven renders a given response.
func formatGiven(result session.AnswerResult) string {
	if !result.Answered {
		return "-"
	}
	if result.Given.Pairs == nil {
		return strings.TrimSpace(result.Given.Text)
	}
	keys := make([]string, 0, len(result.Given.Pairs))
	for key := range result.Given.Pairs {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return question.LeftIndex(keys[i]) < question.LeftIndex(keys[j])
	})
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+"-"+result.Given.Pairs[key])
	}
	return strings.Join(parts, ",")
}

// outcomeLabel names the outcome of a recorded answer.
func outcomeLabel(result session.AnswerResult) string {
	switch {
	case result.TimedOut:
		return "timed out"
	case !result.Graded():
		return "revealed"
	case result.IsCorrect():
		return "correct"
	default:
		return "wrong"
	}
}

// formatRemaining renders the countdown for the awaiting question.
func formatRemaining(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	return remaining.Round(time.Second).String()
}

// formatElapsed renders how long an answer took.
func formatElapsed(elapsed time.Duration) string {
	return elapsed.Round(100 * time.Millisecond).String()
}

// stylizeOutcome colors an outcome label.
func stylizeOutcome(result session.AnswerResult, text string, noColor bool) string {
	if noColor {
		return text
	}
	return outcomeStyle(result).Render(text)
}

// outcomeStyle selects a style for an outcome.
func outcomeStyle(result session.AnswerResult) lipgloss.Style {
	var color lipgloss.Color
	switch {
	case result.TimedOut:
		color = lipgloss.Color("214")
	case !result.Graded():
		color = lipgloss.Color("39")
	case result.IsCorrect():
		color = lipgloss.Color("42")
	default:
		color = lipgloss.Color("196")
	}
	return lipgloss.NewStyle().Foreground(color)
}
