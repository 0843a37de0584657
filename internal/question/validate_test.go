package question

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

// TestValidateVariants verifies each kind converts into its typed form.
func TestValidateVariants(t *testing.T) {
	payload := `[
  {"type": "multiple", "question": " What is the capital of France? ", "correct": "Paris", "wrong_answers": ["Rome", " Berlin "]},
  {"type": "truefalse", "question": "The Sun is a star.", "correct": true, "wrong_answers": ["False"]},
  {"type": "TrueFalse", "question": "Water is dry.", "correct": "False"},
  {"type": "fillin", "question": "The capital of Japan is ______.", "correct": "Tokyo", "wrong_answers": []},
  {"type": "match", "question": "Match technologies", "pairs": {"left": ["Python", "HTML"], "right": ["Programming language", "Markup language"], "answers": {"a": "1", "b": 2}}},
  {"q": "2+2", "a": 4}
]`
	var raws []Raw
	if err := json.Unmarshal([]byte(payload), &raws); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []Question{
		Multiple{Prompt: "What is the capital of France?", Correct: "Paris", Wrong: []string{"Rome", "Berlin"}},
		TrueFalse{Prompt: "The Sun is a star.", Correct: true},
		TrueFalse{Prompt: "Water is dry.", Correct: false},
		FillIn{Prompt: "The capital of Japan is ______.", Correct: "Tokyo"},
		Match{
			Prompt:  "Match technologies",
			Left:    []string{"Python", "HTML"},
			Right:   []string{"Programming language", "Markup language"},
			Answers: map[string]string{"a": "1", "b": "2"},
		},
		FillIn{Prompt: "2+2", Correct: "4"},
	}
	for i, raw := range raws {
		got, err := Validate(raw)
		if err != nil {
			t.Fatalf("question %d: %v", i, err)
		}
		if !reflect.DeepEqual(got, want[i]) {
			t.Fatalf("question %d: expected %#v, got %#v", i, want[i], got)
		}
	}
}

// TestValidateRejectsInconsistentQuestions verifies malformed questions are reported.
func TestValidateRejectsInconsistentQuestions(t *testing.T) {
	cases := []struct {
		name  string
		raw   Raw
		field string
	}{
		{"missing type", Raw{Question: "Q"}, "type"},
		{"unknown type", Raw{Type: "essay", Question: "Q"}, "type"},
		{"empty prompt", Raw{Type: "fillin", Question: "  ", Correct: "x"}, "question"},
		{"multiple without wrong", Raw{Type: "multiple", Question: "Q", Correct: "a"}, "wrong_answers"},
		{"multiple correct in wrong", Raw{Type: "multiple", Question: "Q", Correct: "a", WrongAnswers: StringList{"b", "A"}}, "wrong_answers[1]"},
		{"truefalse bad token", Raw{Type: "truefalse", Question: "Q", Correct: "maybe"}, "correct"},
		{"fillin no answer", Raw{Type: "fillin", Question: "Q"}, "correct"},
		{"match key out of range", Raw{Type: "match", Question: "Q", Left: []string{"x"}, Right: []string{"y"}, Answers: map[string]Scalar{"b": "1"}}, "answers[b]"},
		{"match value out of range", Raw{Type: "match", Question: "Q", Left: []string{"x"}, Right: []string{"y"}, Answers: map[string]Scalar{"a": "2"}}, "answers[a]"},
		{"match left without answer", Raw{Type: "match", Question: "Q", Left: []string{"x", "z"}, Right: []string{"y"}, Answers: map[string]Scalar{"a": "1"}}, "answers"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Validate(tc.raw)
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			found := false
			for _, issue := range validationErr.Issues {
				if issue.Field == tc.field {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected issue on %q, got %+v", tc.field, validationErr.Issues)
			}
		})
	}
}

// TestRawYAMLAndToRaw verifies YAML decoding and the canonical wire form agree.
func TestRawYAMLAndToRaw(t *testing.T) {
	payload := `- type: truefalse
  question: The Sun is a star.
  correct: yes
- type: multiple
  question: Pick one
  correct: 42
  wrong_answers: 41
`
	var raws []Raw
	if err := yaml.Unmarshal([]byte(payload), &raws); err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	if _, err := Validate(raws[0]); err == nil {
		t.Fatalf("expected yes to be rejected as a true/false token")
	}
	q, err := Validate(raws[1])
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	multiple := q.(Multiple)
	if multiple.Correct != "42" || !reflect.DeepEqual(multiple.Wrong, []string{"41"}) {
		t.Fatalf("unexpected multiple: %#v", multiple)
	}

	back, err := Validate(ToRaw(q))
	if err != nil {
		t.Fatalf("validate round trip: %v", err)
	}
	if !reflect.DeepEqual(back, q) {
		t.Fatalf("round trip changed question: %#v", back)
	}
}

// TestCloneDetachesMatch verifies clones do not share maps or slices.
func TestCloneDetachesMatch(t *testing.T) {
	original := Match{Prompt: "Q", Left: []string{"x"}, Right: []string{"y"}, Answers: map[string]string{"a": "1"}}
	clone := Clone(original).(Match)
	clone.Answers["a"] = "9"
	clone.Left[0] = "changed"
	if original.Answers["a"] != "1" || original.Left[0] != "x" {
		t.Fatalf("clone mutated original: %#v", original)
	}
}

// TestLabels verifies left and right label round trips.
func TestLabels(t *testing.T) {
	for _, i := range []int{0, 1, 25, 26, 27, 701} {
		if got := LeftIndex(LeftLabel(i)); got != i {
			t.Fatalf("left label %d round trip: got %d (%s)", i, got, LeftLabel(i))
		}
		if got := RightIndex(RightLabel(i)); got != i {
			t.Fatalf("right label %d round trip: got %d", i, got)
		}
	}
	if LeftIndex("1") != -1 || RightIndex("a") != -1 || RightIndex("0") != -1 {
		t.Fatalf("expected invalid labels to resolve to -1")
	}
}
