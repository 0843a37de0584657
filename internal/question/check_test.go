package question

import (
	"errors"
	"testing"
)

// TestCheckTextCaseAndWhitespace verifies trimmed, case-insensitive matching by default.
func TestCheckTextCaseAndWhitespace(t *testing.T) {
	cases := []struct {
		name  string
		q     Question
		given string
		opts  Options
		want  bool
	}{
		{"multiple exact", Multiple{Prompt: "Capital?", Correct: "Paris", Wrong: []string{"Rome"}}, "Paris", Options{}, true},
		{"multiple folded", Multiple{Prompt: "Capital?", Correct: "Paris", Wrong: []string{"Rome"}}, "  pARIS \n", Options{}, true},
		{"multiple wrong", Multiple{Prompt: "Capital?", Correct: "Paris", Wrong: []string{"Rome"}}, "Rome", Options{}, false},
		{"multiple case sensitive", Multiple{Prompt: "Capital?", Correct: "Paris", Wrong: []string{"Rome"}}, "paris", Options{CaseSensitive: true}, false},
		{"multiple case sensitive trims", Multiple{Prompt: "Capital?", Correct: "Paris", Wrong: []string{"Rome"}}, " Paris ", Options{CaseSensitive: true}, true},
		{"fillin folded", FillIn{Prompt: "Japan?", Correct: "Tokyo"}, "tokyo ", Options{}, true},
		{"fillin case sensitive", FillIn{Prompt: "Japan?", Correct: "Tokyo"}, "TOKYO", Options{CaseSensitive: true}, false},
		{"fillin empty", FillIn{Prompt: "Japan?", Correct: "Tokyo"}, "", Options{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Check(tc.q, TextResponse(tc.given), tc.opts)
			if err != nil {
				t.Fatalf("check: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

// TestCheckTrueFalseTokens verifies the fixed token set and input errors.
func TestCheckTrueFalseTokens(t *testing.T) {
	q := TrueFalse{Prompt: "The Sun is a star.", Correct: true}
	for _, token := range []string{"true", "T", " 1 ", "TRUE"} {
		got, err := Check(q, TextResponse(token), Options{})
		if err != nil || !got {
			t.Fatalf("token %q: expected correct, got %v (%v)", token, got, err)
		}
	}
	for _, token := range []string{"false", "f", "0"} {
		got, err := Check(q, TextResponse(token), Options{})
		if err != nil || got {
			t.Fatalf("token %q: expected wrong, got %v (%v)", token, got, err)
		}
	}
	_, err := Check(q, TextResponse("yes"), Options{})
	if !errors.Is(err, ErrUnrecognizedToken) {
		t.Fatalf("expected unrecognized token error, got %v", err)
	}
}

// TestCheckMatchExact verifies match grading requires the exact mapping.
func TestCheckMatchExact(t *testing.T) {
	q := Match{
		Prompt:  "Match technologies",
		Left:    []string{"Python", "HTML"},
		Right:   []string{"Programming language", "Markup language"},
		Answers: map[string]string{"a": "1", "b": "2"},
	}
	cases := []struct {
		name  string
		given map[string]string
		want  bool
	}{
		{"exact", map[string]string{"a": "1", "b": "2"}, true},
		{"label case and spaces", map[string]string{"A": " 1", "b": "02"}, true},
		{"swapped", map[string]string{"a": "2", "b": "1"}, false},
		{"missing", map[string]string{"a": "1"}, false},
		{"extra key", map[string]string{"a": "1", "b": "2", "c": "1"}, false},
		{"duplicate key", map[string]string{"a": "1", "A": "1", "b": "2"}, false},
		{"empty", map[string]string{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Check(q, PairsResponse(tc.given), Options{})
			if err != nil {
				t.Fatalf("check: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}

	if _, err := Check(q, TextResponse("a-1"), Options{}); !errors.Is(err, ErrResponseShape) {
		t.Fatalf("expected response shape error, got %v", err)
	}
}

// TestComparePairsReportsEachEntry verifies per-pair comparison for partial credit.
func TestComparePairsReportsEachEntry(t *testing.T) {
	q := Match{
		Prompt:  "Match",
		Left:    []string{"x", "y", "z"},
		Right:   []string{"1", "2", "3"},
		Answers: map[string]string{"a": "1", "b": "2", "c": "3"},
	}
	results := ComparePairs(q, map[string]string{"a": "1", "b": "3", "q": "1"})
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %+v", results)
	}
	if !results[0].Correct || results[1].Correct || results[2].Correct {
		t.Fatalf("unexpected correctness: %+v", results)
	}
	if results[2].Given != "" {
		t.Fatalf("expected missing entry for c, got %+v", results[2])
	}
	if !results[3].Extra || results[3].Left != "q" {
		t.Fatalf("expected extra entry q, got %+v", results[3])
	}
}
