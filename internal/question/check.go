package question

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnrecognizedToken reports a true/false answer outside the accepted tokens.
var ErrUnrecognizedToken = errors.New("unrecognized true/false answer")

// ErrResponseShape reports a response that does not fit the question kind.
var ErrResponseShape = errors.New("response does not fit question kind")

// Response is a given answer: free text, or a left-to-right mapping for Match.
type Response struct {
	Text  string
	Pairs map[string]string
}

// TextResponse wraps a typed answer.
func TextResponse(text string) Response {
	return Response{Text: text}
}

// PairsResponse wraps a match mapping. The map is copied.
func PairsResponse(pairs map[string]string) Response {
	copied := make(map[string]string, len(pairs))
	for key, value := range pairs {
		copied[key] = value
	}
	return Response{Pairs: copied}
}

// ParseBool maps the accepted true/false tokens to a boolean.
func ParseBool(token string) (bool, error) {
	switch NormalizeAnswerText(token) {
	case "true", "t", "1":
		return true, nil
	case "false", "f", "0":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrUnrecognizedToken, token)
	}
}

// Check reports whether resp answers q correctly.
// It returns an error for malformed input rather than a wrong answer.
func Check(q Question, resp Response, opts Options) (bool, error) {
	switch typed := q.(type) {
	case Multiple:
		return opts.normalize(resp.Text) == opts.normalize(typed.Correct), nil
	case FillIn:
		return opts.normalize(resp.Text) == opts.normalize(typed.Correct), nil
	case TrueFalse:
		given, err := ParseBool(resp.Text)
		if err != nil {
			return false, err
		}
		return given == typed.Correct, nil
	case Match:
		if resp.Pairs == nil {
			return false, fmt.Errorf("%w: match expects pairs", ErrResponseShape)
		}
		results := ComparePairs(typed, resp.Pairs)
		if len(results) != len(typed.Answers) {
			return false, nil
		}
		for _, result := range results {
			if !result.Correct {
				return false, nil
			}
		}
		return true, nil
	default:
		return false, fmt.Errorf("question: unhandled variant %T", q)
	}
}

// PairResult compares one left item of a match response.
type PairResult struct {
	Left     string
	Expected string
	Given    string
	Correct  bool
	// Extra marks a given key that names no expected left item.
	Extra bool
}

// ComparePairs compares a match response entry by entry, sorted by left label.
// Missing entries are reported with an empty Given; unknown keys as Extra.
func ComparePairs(q Match, given map[string]string) []PairResult {
	normalized := make(map[string]string, len(given))
	var extras []PairResult
	for key, value := range given {
		index := LeftIndex(key)
		if index < 0 {
			extras = append(extras, PairResult{Left: key, Given: value, Extra: true})
			continue
		}
		label := LeftLabel(index)
		_, expected := q.Answers[label]
		_, seen := normalized[label]
		if !expected || seen {
			extras = append(extras, PairResult{Left: key, Given: value, Extra: true})
			continue
		}
		normalized[label] = value
	}

	labels := make([]string, 0, len(q.Answers))
	for label := range q.Answers {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		return LeftIndex(labels[i]) < LeftIndex(labels[j])
	})

	results := make([]PairResult, 0, len(labels)+len(extras))
	for _, label := range labels {
		expected := q.Answers[label]
		value, ok := normalized[label]
		correct := false
		if ok {
			index := RightIndex(value)
			correct = index >= 0 && RightLabel(index) == expected
		}
		results = append(results, PairResult{Left: label, Expected: expected, Given: value, Correct: correct})
	}
	sort.Slice(extras, func(i, j int) bool { return extras[i].Left < extras[j].Left })
	return append(results, extras...)
}
