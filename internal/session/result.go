package session

import (
	"time"

	"qm/internal/question"
)

// Presentation is what a driver shows for one question. It never carries
// the expected answer.
type Presentation struct {
	Index     int
	Total     int
	Kind      question.Kind
	Prompt    string
	Options   []string
	Left      []string
	Right     []string
	TimeLimit time.Duration
	Complete  bool
}

// OptionLabel returns the letter shown next to option i.
func (p Presentation) OptionLabel(i int) string {
	return question.LeftLabel(i)
}

// ResolveOption maps an option letter to its text. Input that is not a
// shown letter is returned unchanged.
func (p Presentation) ResolveOption(input string) string {
	index := question.LeftIndex(input)
	if index < 0 || index >= len(p.Options) {
		return input
	}
	return p.Options[index]
}

// AnswerResult is the recorded outcome for one presented question.
type AnswerResult struct {
	Index    int
	Question question.Question
	Given    question.Response
	// Answered is false when nothing was given, including forced timeouts.
	Answered bool
	// Correct is nil in flashcard mode.
	Correct  *bool
	Expected string
	Elapsed  time.Duration
	TimedOut bool
}

// IsCorrect reports a graded, correct answer.
func (r AnswerResult) IsCorrect() bool {
	return r.Correct != nil && *r.Correct
}

// IsWrong reports a graded, incorrect answer that did not time out.
func (r AnswerResult) IsWrong() bool {
	return r.Correct != nil && !*r.Correct && !r.TimedOut
}

// Graded reports whether correctness was recorded.
func (r AnswerResult) Graded() bool {
	return r.Correct != nil
}

func verdict(value bool) *bool {
	return &value
}
