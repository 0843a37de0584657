package live

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"qm/internal/question"
	"qm/internal/session"
)

// renderHeader renders the session header line.
func renderHeader(state State, remaining time.Duration, hasDeadline bool, noColor bool) string {
	line := "qm " + string(state.Mode)
	if state.Category != "" {
		line += " | " + state.Category
	}
	if state.HasQuestion {
		line += " | Question " + fmtInt(state.Current.Index+1) + "/" + fmtInt(state.Current.Total)
	}
	if hasDeadline {
		line += " | Time left: " + formatRemaining(remaining)
	}
	return stylize(line, noColor, lipgloss.Color("33"))
}

// renderQuestion renders the prompt and its choices.
func renderQuestion(state State, noColor bool) string {
	if !state.HasQuestion {
		return ""
	}
	p := state.Current
	lines := []string{stylizeBold(p.Prompt, noColor)}
	for i, option := range p.Options {
		lines = append(lines, "  "+p.OptionLabel(i)+") "+option)
	}
	if p.Kind == question.KindMatch {
		for i, left := range p.Left {
			lines = append(lines, "  "+question.LeftLabel(i)+") "+left)
		}
		for i, right := range p.Right {
			lines = append(lines, "  "+question.RightLabel(i)+". "+right)
		}
	}
	if state.Reveal != "" {
		lines = append(lines, stylize("Answer: "+state.Reveal, noColor, lipgloss.Color("39")))
	}
	return strings.Join(lines, "\n")
}

// renderFeedback renders the outcome of the previous question and any input error.
func renderFeedback(state State, noColor bool) string {
	var lines []string
	if state.LastResult != nil {
		result := *state.LastResult
		line := formatIndex(result.Index) + " " + outcomeLabel(result)
		if !result.IsCorrect() && result.Graded() {
			line += " (correct answer: " + result.Expected + ")"
		}
		lines = append(lines, stylizeOutcome(result, line, noColor))
	}
	if state.InputError != "" {
		lines = append(lines, stylize(state.InputError, noColor, lipgloss.Color("196")))
	}
	return strings.Join(lines, "\n")
}

// renderSummary renders the outcome counts line.
func renderSummary(state State, noColor bool) string {
	counts := state.Counts
	line := "Answered: " + fmtInt(counts.Answered)
	if state.Mode == session.ModeFlashcard {
		line += " Revealed: " + fmtInt(counts.Revealed)
	} else {
		line += " Correct: " + fmtInt(counts.Correct) +
			" Wrong: " + fmtInt(counts.Wrong)
	}
	line += " Timed out: " + fmtInt(counts.TimedOut)
	return stylize(line, noColor, lipgloss.Color("242"))
}

// renderFooter renders key help.
func renderFooter(state State, noColor bool) string {
	help := "enter: submit | esc: quit"
	if state.Mode == session.ModeFlashcard {
		help = "enter: reveal, then next | esc: quit"
	}
	if state.HasQuestion && state.Current.Kind == question.KindMatch {
		help = "pairs like a-1, b-2 | " + help
	}
	return stylize(help, noColor, lipgloss.Color("244"))
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

// stylizeBold renders emphasized text.
func stylizeBold(text string, noColor bool) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Bold(true).Render(text)
}
