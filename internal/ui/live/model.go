package live

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"qm/internal/question"
	"qm/internal/runner"
	"qm/internal/session"
)

// Model renders a session as a live console UI using Bubble Tea.
// Only Update touches the session, so it is driven from one goroutine.
type Model struct {
	session       *session.Session
	state         State
	input         textinput.Model
	table         table.Model
	tickInterval  time.Duration
	now           func() time.Time
	clock         time.Time
	noColor       bool
	questionWidth int
}

// Options configures the live UI model.
type Options struct {
	Category     string
	NoColor      bool
	TickInterval time.Duration
	// Now must agree with the session clock. Defaults to time.Now.
	Now func() time.Time
}

// NewModel constructs a live UI model for a session that has not started.
func NewModel(s *session.Session, opts Options) Model {
	tickInterval := opts.TickInterval
	if tickInterval <= 0 {
		tickInterval = 200 * time.Millisecond
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	input := textinput.New()
	input.Placeholder = "your answer"
	input.Prompt = "> "
	input.CharLimit = 512
	input.Focus()

	columns := defaultColumns()
	t := table.New(
		table.WithColumns(columns),
		table.WithRows([]table.Row{}),
		table.WithFocused(false),
		table.WithHeight(6),
	)
	t.SetStyles(tableStyles(opts.NoColor))
	return Model{
		session: s,
		state: State{
			SessionID: s.ID(),
			Category:  opts.Category,
			Mode:      s.Mode(),
		},
		input:         input,
		table:         t,
		tickInterval:  tickInterval,
		now:           now,
		clock:         now(),
		noColor:       opts.NoColor,
		questionWidth: columns[1].Width,
	}
}

// State returns the current UI state.
func (m Model) State() State {
	return m.state
}

// Init presents the first question and starts ticking.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, advanceCmd, tick(m.tickInterval))
}

// Update consumes key presses and timer ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		columns := columnsForWidth(typed.Width)
		m.questionWidth = columns[1].Width
		m.table.SetWidth(typed.Width)
		m.table.SetColumns(columns)
		m.table.SetRows(rowsForState(m.state, m.questionWidth))
		m.input.Width = max(typed.Width-4, 10)
		return m, nil
	case advanceMsg:
		return m.advance()
	case tickMsg:
		m.clock = m.now()
		if m.state.Done {
			return m, nil
		}
		if deadline, ok := m.session.Deadline(); ok && m.clock.After(deadline) {
			result, err := m.session.Expire()
			if err == nil {
				next, cmd := m.recorded(result)
				return next, tea.Batch(cmd, tick(next.tickInterval))
			}
		}
		return m, tick(m.tickInterval)
	case tea.KeyMsg:
		switch typed.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m.abort()
		case tea.KeyEnter:
			return m.submit()
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the live UI.
func (m Model) View() string {
	remaining, hasDeadline := time.Duration(0), false
	if deadline, ok := m.session.Deadline(); ok {
		remaining, hasDeadline = deadline.Sub(m.clock), true
	}
	parts := []string{renderHeader(m.state, remaining, hasDeadline, m.noColor)}
	if feedback := renderFeedback(m.state, m.noColor); feedback != "" {
		parts = append(parts, feedback)
	}
	if m.state.HasQuestion {
		parts = append(parts, "", renderQuestion(m.state, m.noColor), m.input.View())
	}
	parts = append(parts, "", renderSummary(m.state, m.noColor), m.table.View(), renderFooter(m.state, m.noColor))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// advanceMsg asks the model to present the next question.
type advanceMsg struct{}

// tickMsg carries a clock tick for countdown updates.
type tickMsg time.Time

func advanceCmd() tea.Msg { return advanceMsg{} }

// tick emits a periodic tick message.
func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) advance() (tea.Model, tea.Cmd) {
	p, err := m.session.Next()
	if err != nil {
		m.state = Reduce(m.state, Event{Kind: EventInputError, Error: err.Error()})
		return m, nil
	}
	if p.Complete {
		m.state = Reduce(m.state, Event{Kind: EventEnd, State: m.session.State(), EmittedAt: m.now()})
		return m, tea.Quit
	}
	m.state = Reduce(m.state, Event{Kind: EventPresent, Presentation: p, EmittedAt: m.now()})
	m.input.Reset()
	return m, nil
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if !m.state.HasQuestion {
		return m, nil
	}
	line := m.input.Value()
	if runner.IsQuit(line) {
		return m.abort()
	}
	if m.session.Mode() == session.ModeFlashcard {
		if m.state.Reveal == "" {
			answer, err := m.session.Reveal()
			if err != nil {
				m.state = Reduce(m.state, Event{Kind: EventInputError, Error: err.Error()})
				return m, nil
			}
			m.state = Reduce(m.state, Event{Kind: EventReveal, Reveal: answer})
			return m, nil
		}
		result, err := m.session.Submit(question.TextResponse(line))
		if err != nil {
			m.state = Reduce(m.state, Event{Kind: EventInputError, Error: err.Error()})
			return m, nil
		}
		return m.recorded(result)
	}

	resp, err := runner.ParseAnswer(m.state.Current, line)
	if err != nil {
		m.state = Reduce(m.state, Event{Kind: EventInputError, Error: err.Error()})
		return m, nil
	}
	result, err := m.session.Submit(resp)
	if errors.Is(err, question.ErrUnrecognizedToken) || errors.Is(err, question.ErrResponseShape) {
		m.state = Reduce(m.state, Event{Kind: EventInputError, Error: err.Error()})
		m.input.Reset()
		return m, nil
	}
	if err != nil {
		m.state = Reduce(m.state, Event{Kind: EventInputError, Error: err.Error()})
		return m, nil
	}
	return m.recorded(result)
}

// recorded applies an answer and moves on to the next question.
func (m Model) recorded(result session.AnswerResult) (Model, tea.Cmd) {
	m.state = Reduce(m.state, Event{Kind: EventAnswer, Answer: result, EmittedAt: m.now()})
	m.table.SetRows(rowsForState(m.state, m.questionWidth))
	m.input.Reset()
	return m, advanceCmd
}

func (m Model) abort() (tea.Model, tea.Cmd) {
	if !m.session.State().Terminal() {
		if err := m.session.Abort(); err != nil {
			m.state = Reduce(m.state, Event{Kind: EventInputError, Error: err.Error()})
		}
	}
	m.state = Reduce(m.state, Event{Kind: EventEnd, State: m.session.State(), EmittedAt: m.now()})
	return m, tea.Quit
}
