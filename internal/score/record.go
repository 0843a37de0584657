// Package score summarizes finished sessions and keeps per-category history.
package score

import (
	"fmt"
	"math"
	"time"

	"qm/internal/session"
)

// Status values recorded for a finished session.
const (
	StatusComplete = "complete"
	StatusAborted  = "aborted"
)

// Record is one finished session. Total counts answered questions and
// Planned the size of the subset that was started.
type Record struct {
	SessionID       string    `json:"session_id,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
	Category        string    `json:"category"`
	Mode            string    `json:"mode,omitempty"`
	Status          string    `json:"status,omitempty"`
	Total           int       `json:"total"`
	Planned         int       `json:"planned,omitempty"`
	Correct         int       `json:"correct"`
	Wrong           int       `json:"wrong"`
	TimedOut        int       `json:"timed_out"`
	DurationSeconds float64   `json:"duration_s"`
}

// Duration returns the session length.
func (r Record) Duration() time.Duration {
	return time.Duration(r.DurationSeconds * float64(time.Second))
}

// Accuracy returns correct answers as a fraction of answered questions.
func (r Record) Accuracy() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Total)
}

// Summarize builds the record for a session in Complete or Aborted. A
// session with no answers yields zero counts.
func Summarize(s *session.Session, category string) (Record, error) {
	state := s.State()
	if !state.Terminal() {
		return Record{}, fmt.Errorf("summarize session %s: %w", s.ID(),
			&session.Error{Kind: session.InvalidTransition, State: state, Op: "summarize"})
	}
	record := Record{
		SessionID:       s.ID(),
		Timestamp:       s.EndedAt(),
		Category:        category,
		Mode:            string(s.Mode()),
		Status:          StatusComplete,
		Planned:         s.Len(),
		DurationSeconds: roundSeconds(s.Duration()),
	}
	if state == session.Aborted {
		record.Status = StatusAborted
	}
	for _, answer := range s.Answers() {
		record.Total++
		switch {
		case !answer.Graded():
		case answer.TimedOut:
			record.TimedOut++
		case answer.IsCorrect():
			record.Correct++
		default:
			record.Wrong++
		}
	}
	return record, nil
}

func roundSeconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*1000) / 1000
}
