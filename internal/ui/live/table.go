package live

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// defaultColumns returns the answered-question columns.
func defaultColumns() []table.Column {
	return columnsForWidth(100)
}

// columnsForWidth sizes the question column to the terminal.
func columnsForWidth(width int) []table.Column {
	questionWidth := width - 5 - 18 - 10 - 8 - 10
	if questionWidth < 16 {
		questionWidth = 16
	}
	return []table.Column{
		{Title: "#", Width: 5},
		{Title: "Question", Width: questionWidth},
		{Title: "Given", Width: 18},
		{Title: "Result", Width: 10},
		{Title: "Time", Width: 8},
	}
}

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	if noColor {
		return table.DefaultStyles()
	}
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// rowsForState converts recorded answers into table rows.
func rowsForState(state State, questionWidth int) []table.Row {
	rows := make([]table.Row, 0, len(state.Answers))
	for _, answer := range state.Answers {
		prompt := ""
		if answer.Question != nil {
			prompt = answer.Question.Text()
		}
		rows = append(rows, table.Row{
			formatIndex(answer.Index),
			formatQuestionText(prompt, questionWidth),
			formatQuestionText(formatGiven(answer), 18),
			outcomeLabel(answer),
			formatElapsed(answer.Elapsed),
		})
	}
	return rows
}
