package runner

import (
	"time"

	"qm/internal/session"
	"qm/internal/verbose"
)

// LogObserver writes session lifecycle events to a verbose logger.
type LogObserver struct {
	Log *verbose.Logger
	// Next is notified after each event is logged.
	Next session.Observer
}

// OnPresent logs a presented question.
func (o LogObserver) OnPresent(p session.Presentation) {
	o.Log.Logf(verbose.StyleEvent, "question %d/%d presented (%s)", p.Index+1, p.Total, p.Kind)
	if o.Next != nil {
		o.Next.OnPresent(p)
	}
}

// OnAnswer logs a recorded outcome.
func (o LogObserver) OnAnswer(result session.AnswerResult) {
	style := verbose.StyleDefault
	if result.TimedOut || result.IsWrong() {
		style = verbose.StyleError
	}
	o.Log.Logf(style, "question %d %s elapsed=%s", result.Index+1, outcomeName(result), result.Elapsed.Round(time.Millisecond))
	if o.Next != nil {
		o.Next.OnAnswer(result)
	}
}

// OnEnd logs the final state and counts.
func (o LogObserver) OnEnd(state session.State, answers []session.AnswerResult) {
	o.Log.Logf(verbose.StyleMetrics, "session %s with %d answers", state, len(answers))
	if o.Next != nil {
		o.Next.OnEnd(state, answers)
	}
}

func outcomeName(result session.AnswerResult) string {
	switch {
	case result.TimedOut:
		return "timed_out"
	case !result.Graded():
		return "revealed"
	case result.IsCorrect():
		return "correct"
	default:
		return "wrong"
	}
}
