// Package live drives a session through a Bubble Tea terminal UI.
package live

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"qm/internal/session"
)

// Run presents s in the live UI until it completes or the user quits. A
// session left running when the UI exits is aborted so its answers can still
// be scored.
func Run(ctx context.Context, s *session.Session, in io.Reader, out io.Writer, opts Options) (State, error) {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	model := NewModel(s, opts)
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	final, runErr := program.Run()
	if !s.State().Terminal() {
		if err := s.Abort(); err != nil {
			return State{}, err
		}
	}
	state := model.State()
	if finished, ok := final.(Model); ok {
		state = finished.State()
	}
	if err := ctx.Err(); err != nil {
		return state, err
	}
	if runErr != nil {
		return state, fmt.Errorf("live ui: %w", runErr)
	}
	return state, nil
}
