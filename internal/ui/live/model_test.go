package live

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"qm/internal/question"
	"qm/internal/session"
	"qm/internal/testutil"
)

func newTestModel(t *testing.T, subset []question.Question, mode session.Mode, limit time.Duration) (Model, *session.Session, *testutil.FakeClock) {
	t.Helper()
	clock := testutil.NewFakeClock(time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC))
	s, err := session.Start(subset, mode, limit, session.Options{
		Now:  clock.Now,
		Rand: rand.New(rand.NewSource(1)),
	})
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	m := NewModel(s, Options{Category: "geo", NoColor: true, Now: clock.Now})
	m = step(t, m, advanceMsg{})
	return m, s, clock
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("expected Model, got %T", next)
	}
	return model
}

// answer types text and presses enter, then lets the model advance.
func answer(t *testing.T, m Model, text string) Model {
	t.Helper()
	if text != "" {
		m = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	}
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.State().HasQuestion {
		m = step(t, m, advanceMsg{})
	}
	return m
}

// TestModelScoresAnswers verifies typed answers are graded and the session completes.
func TestModelScoresAnswers(t *testing.T) {
	subset := []question.Question{
		question.FillIn{Prompt: "Capital of Japan?", Correct: "Tokyo"},
		question.TrueFalse{Prompt: "The Sun is a star.", Correct: true},
	}
	m, s, _ := newTestModel(t, subset, session.ModeQuiz, session.NoLimit)
	if !strings.Contains(m.View(), "Capital of Japan?") {
		t.Fatalf("expected prompt in view, got %q", m.View())
	}
	m = answer(t, m, "tokyo")
	m = answer(t, m, "nope")
	if m.State().InputError == "" {
		t.Fatalf("expected unrecognized token to be reported")
	}
	if s.State() != session.AwaitingAnswer {
		t.Fatalf("expected to keep waiting, got %s", s.State())
	}
	m = answer(t, m, "false")

	state := m.State()
	if !state.Done || state.Final != session.Complete {
		t.Fatalf("expected complete, got %+v", state)
	}
	if state.Counts.Correct != 1 || state.Counts.Wrong != 1 {
		t.Fatalf("expected 1 correct and 1 wrong, got %+v", state.Counts)
	}
	if !strings.Contains(m.View(), "Correct: 1 Wrong: 1") {
		t.Fatalf("expected summary in view, got %q", m.View())
	}
}

// TestModelTickExpiresQuestion verifies the countdown forces a timeout.
func TestModelTickExpiresQuestion(t *testing.T) {
	subset := []question.Question{question.TrueFalse{Prompt: "The Sun is a star.", Correct: true}}
	m, s, clock := newTestModel(t, subset, session.ModeQuiz, 5*time.Second)

	clock.Advance(4 * time.Second)
	m = step(t, m, tickMsg(clock.Now()))
	if !m.State().HasQuestion {
		t.Fatalf("expected question still awaiting before the limit")
	}
	if !strings.Contains(m.View(), "Time left: 1s") {
		t.Fatalf("expected countdown in view, got %q", m.View())
	}

	clock.Advance(2 * time.Second)
	m = step(t, m, tickMsg(clock.Now()))
	m = step(t, m, advanceMsg{})
	answers := s.Answers()
	if len(answers) != 1 || !answers[0].TimedOut || answers[0].IsCorrect() {
		t.Fatalf("expected forced timeout, got %+v", answers)
	}
	if m.State().Counts.TimedOut != 1 || s.State() != session.Complete {
		t.Fatalf("expected timed out and complete, got %+v in %s", m.State().Counts, s.State())
	}
}

// TestModelEscAbortsSession verifies quitting keeps the recorded answers.
func TestModelEscAbortsSession(t *testing.T) {
	subset := []question.Question{
		question.FillIn{Prompt: "Capital of Japan?", Correct: "Tokyo"},
		question.FillIn{Prompt: "Capital of Italy?", Correct: "Rome"},
	}
	m, s, _ := newTestModel(t, subset, session.ModeQuiz, session.NoLimit)
	m = answer(t, m, "Tokyo")
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if s.State() != session.Aborted || !m.State().Done {
		t.Fatalf("expected aborted session, got %s", s.State())
	}
	if len(s.Answers()) != 1 {
		t.Fatalf("expected 1 answer kept, got %d", len(s.Answers()))
	}
}

// TestModelFlashcardRevealsBeforeAdvancing verifies enter reveals, then moves on.
func TestModelFlashcardRevealsBeforeAdvancing(t *testing.T) {
	subset := []question.Question{question.FillIn{Prompt: "Capital of Japan?", Correct: "Tokyo"}}
	m, s, _ := newTestModel(t, subset, session.ModeFlashcard, session.NoLimit)
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.State().Reveal != "Tokyo" {
		t.Fatalf("expected reveal, got %q", m.State().Reveal)
	}
	if !strings.Contains(m.View(), "Answer: Tokyo") {
		t.Fatalf("expected reveal in view, got %q", m.View())
	}
	m = step(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = step(t, m, advanceMsg{})
	if s.State() != session.Complete || m.State().Counts.Revealed != 1 {
		t.Fatalf("expected one revealed card and completion, got %+v in %s", m.State().Counts, s.State())
	}
}

// TestModelMatchPairs verifies match answers are typed as label pairs.
func TestModelMatchPairs(t *testing.T) {
	subset := []question.Question{question.Match{
		Prompt:  "Match",
		Left:    []string{"Python", "HTML"},
		Right:   []string{"Programming", "Markup"},
		Answers: map[string]string{"a": "1", "b": "2"},
	}}
	m, s, _ := newTestModel(t, subset, session.ModeQuiz, session.NoLimit)
	m = answer(t, m, "a-1,b-2")
	answers := s.Answers()
	if len(answers) != 1 || !answers[0].IsCorrect() {
		t.Fatalf("expected correct match, got %+v", answers)
	}
	if m.State().Counts.Correct != 1 {
		t.Fatalf("expected correct count, got %+v", m.State().Counts)
	}
}
