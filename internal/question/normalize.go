package question

import "strings"

// Options controls answer comparison.
type Options struct {
	CaseSensitive bool
}

// NormalizeAnswerText trims whitespace and lowercases an answer for matching.
func NormalizeAnswerText(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// normalize applies the comparison rules selected by opts.
func (opts Options) normalize(value string) string {
	if opts.CaseSensitive {
		return strings.TrimSpace(value)
	}
	return NormalizeAnswerText(value)
}
