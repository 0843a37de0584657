package question

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies one of the four question variants.
type Kind string

const (
	KindMultiple  Kind = "multiple"
	KindTrueFalse Kind = "truefalse"
	KindFillIn    Kind = "fillin"
	KindMatch     Kind = "match"
)

// Kinds lists every supported kind in file order.
var Kinds = []Kind{KindMultiple, KindTrueFalse, KindFillIn, KindMatch}

// ParseKind maps a file type tag to a Kind.
func ParseKind(value string) (Kind, bool) {
	kind := Kind(strings.ToLower(strings.TrimSpace(value)))
	switch kind {
	case KindMultiple, KindTrueFalse, KindFillIn, KindMatch:
		return kind, true
	default:
		return "", false
	}
}

// Question is the closed set of validated question variants.
// Only Multiple, TrueFalse, FillIn and Match implement it.
type Question interface {
	Kind() Kind
	Text() string
	isQuestion()
}

// Multiple is a single-answer multiple choice question.
type Multiple struct {
	Prompt  string
	Correct string
	Wrong   []string
}

// TrueFalse is a statement judged true or false.
type TrueFalse struct {
	Prompt  string
	Correct bool
}

// FillIn expects a free-text answer.
type FillIn struct {
	Prompt  string
	Correct string
}

// Match pairs left items with right items.
// Answers maps a left label ("a", "b", ...) to a right label ("1", "2", ...).
type Match struct {
	Prompt  string
	Left    []string
	Right   []string
	Answers map[string]string
}

func (Multiple) Kind() Kind  { return KindMultiple }
func (TrueFalse) Kind() Kind { return KindTrueFalse }
func (FillIn) Kind() Kind    { return KindFillIn }
func (Match) Kind() Kind     { return KindMatch }

func (q Multiple) Text() string  { return q.Prompt }
func (q TrueFalse) Text() string { return q.Prompt }
func (q FillIn) Text() string    { return q.Prompt }
func (q Match) Text() string     { return q.Prompt }

func (Multiple) isQuestion()  {}
func (TrueFalse) isQuestion() {}
func (FillIn) isQuestion()    {}
func (Match) isQuestion()     {}

// LeftLabel returns the label of the left item at index i.
func LeftLabel(i int) string {
	if i < 26 {
		return string(rune('a' + i))
	}
	return LeftLabel(i/26-1) + string(rune('a'+i%26))
}

// RightLabel returns the label of the right item at index i.
func RightLabel(i int) string {
	return strconv.Itoa(i + 1)
}

// LeftIndex resolves a left label to its position, or -1.
func LeftIndex(label string) int {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		return -1
	}
	index := 0
	for _, r := range label {
		if r < 'a' || r > 'z' {
			return -1
		}
		index = index*26 + int(r-'a') + 1
	}
	return index - 1
}

// RightIndex resolves a right label to its position, or -1.
func RightIndex(label string) int {
	n, err := strconv.Atoi(strings.TrimSpace(label))
	if err != nil || n < 1 {
		return -1
	}
	return n - 1
}

// Clone returns a deep copy so callers cannot reach cached data.
func Clone(q Question) Question {
	switch typed := q.(type) {
	case Multiple:
		typed.Wrong = append([]string(nil), typed.Wrong...)
		return typed
	case TrueFalse:
		return typed
	case FillIn:
		return typed
	case Match:
		typed.Left = append([]string(nil), typed.Left...)
		typed.Right = append([]string(nil), typed.Right...)
		answers := make(map[string]string, len(typed.Answers))
		for key, value := range typed.Answers {
			answers[key] = value
		}
		typed.Answers = answers
		return typed
	default:
		panic(fmt.Sprintf("question: unhandled variant %T", q))
	}
}

// CorrectText renders the expected answer for display, e.g. flashcard reveals.
func CorrectText(q Question) string {
	switch typed := q.(type) {
	case Multiple:
		return typed.Correct
	case TrueFalse:
		if typed.Correct {
			return "True"
		}
		return "False"
	case FillIn:
		return typed.Correct
	case Match:
		parts := make([]string, 0, len(typed.Left))
		for i := range typed.Left {
			label := LeftLabel(i)
			right := RightIndex(typed.Answers[label])
			if right < 0 || right >= len(typed.Right) {
				continue
			}
			parts = append(parts, fmt.Sprintf("%s) %s = %s. %s", label, typed.Left[i], typed.Answers[label], typed.Right[right]))
		}
		return strings.Join(parts, "; ")
	default:
		panic(fmt.Sprintf("question: unhandled variant %T", q))
	}
}
