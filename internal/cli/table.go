package cli

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// renderTable lays out rows under headers with column widths fitted to the
// widest cell.
func renderTable(headers []string, rows [][]string, noColor bool) string {
	columns := make([]table.Column, len(headers))
	for i, header := range headers {
		width := runewidth.StringWidth(header)
		for _, row := range rows {
			if i < len(row) {
				width = max(width, runewidth.StringWidth(row[i]))
			}
		}
		columns[i] = table.Column{Title: header, Width: width}
	}
	tableRows := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		tableRows = append(tableRows, table.Row(row))
	}
	styles := table.DefaultStyles()
	styles.Selected = lipgloss.NewStyle()
	if !noColor {
		styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(tableRows),
		table.WithFocused(false),
		table.WithStyles(styles),
	)
	t.SetHeight(len(rows) + 3)
	return t.View()
}
