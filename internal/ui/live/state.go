package live

import (
	"time"

	"qm/internal/session"
)

// Counts aggregates recorded outcomes.
type Counts struct {
	Answered int
	Correct  int
	Wrong    int
	TimedOut int
	Revealed int
}

// State captures the live UI state for one session.
type State struct {
	SessionID   string
	Category    string
	Mode        session.Mode
	Current     session.Presentation
	HasQuestion bool
	PresentedAt time.Time
	Reveal      string
	InputError  string
	LastResult  *session.AnswerResult
	Answers     []session.AnswerResult
	Counts      Counts
	Final       session.State
	Done        bool
}
