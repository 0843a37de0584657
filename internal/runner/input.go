package runner

import (
	"fmt"
	"strings"

	"qm/internal/question"
	"qm/internal/session"
)

// QuitToken ends a session early when typed as an answer.
const QuitToken = "x"

// IsQuit reports whether line asks to stop the session.
func IsQuit(line string) bool {
	return strings.EqualFold(strings.TrimSpace(line), QuitToken)
}

// ParseAnswer converts a typed line into a response for the presented question.
// Option letters resolve to the option text for multiple choice and true/false.
// Match input is parsed as label pairs such as "a-1, b-2".
func ParseAnswer(p session.Presentation, line string) (question.Response, error) {
	line = strings.TrimSpace(line)
	switch p.Kind {
	case question.KindMultiple, question.KindTrueFalse:
		if line == "" {
			return question.Response{}, nil
		}
		return question.TextResponse(p.ResolveOption(line)), nil
	case question.KindFillIn:
		return question.TextResponse(line), nil
	case question.KindMatch:
		if line == "" {
			return question.Response{}, nil
		}
		pairs, err := ParsePairs(line)
		if err != nil {
			return question.Response{}, err
		}
		return question.PairsResponse(pairs), nil
	default:
		panic(fmt.Sprintf("runner: unhandled question kind %q", p.Kind))
	}
}

// ParsePairs reads "a-1", "a:1" or "a=1" entries separated by commas or spaces.
func ParsePairs(line string) (map[string]string, error) {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t'
	})
	pairs := make(map[string]string, len(fields))
	for _, field := range fields {
		left, right, ok := cutPair(field)
		if !ok || left == "" || right == "" {
			return nil, fmt.Errorf("%w: pair %q must look like a-1", question.ErrResponseShape, field)
		}
		pairs[strings.ToLower(left)] = right
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("%w: no pairs given", question.ErrResponseShape)
	}
	return pairs, nil
}

func cutPair(field string) (string, string, bool) {
	for _, sep := range []string{"-", ":", "="} {
		if left, right, ok := strings.Cut(field, sep); ok {
			return strings.TrimSpace(left), strings.TrimSpace(right), true
		}
	}
	return "", "", false
}
