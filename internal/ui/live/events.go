package live

import (
	"time"

	"qm/internal/session"
)

// EventKind identifies the type of live UI event.
type EventKind int

const (
	// EventPresent signals a new question is awaiting an answer.
	EventPresent EventKind = iota
	// EventAnswer delivers the recorded outcome for a question.
	EventAnswer
	// EventReveal carries the flashcard answer.
	EventReveal
	// EventInputError reports input that could not be used as an answer.
	EventInputError
	// EventEnd signals the session reached a terminal state.
	EventEnd
)

// Event carries a UI update payload.
type Event struct {
	Kind         EventKind
	Presentation session.Presentation
	Answer       session.AnswerResult
	Reveal       string
	Error        string
	State        session.State
	EmittedAt    time.Time
}
