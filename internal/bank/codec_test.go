package bank

import (
	"bytes"
	"errors"
	"math/rand"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"qm/internal/question"
	"qm/internal/testutil"
)

// TestEncodeRoundTrip verifies every format decodes back to the same questions.
func TestEncodeRoundTrip(t *testing.T) {
	want := TemplateQuestions()
	for _, format := range []Format{FormatJSON, FormatCSV, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, format, want); err != nil {
				t.Fatalf("encode: %v", err)
			}
			got, err := Parse("bank."+string(format), buf.Bytes())
			if err != nil {
				t.Fatalf("parse: %v\n%s", err, buf.String())
			}
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("round trip mismatch\nwant %#v\ngot  %#v", want, got)
			}
		})
	}
}

// TestParseCSVMatchesJSON verifies the documented CSV layout loads like its JSON equivalent.
func TestParseCSVMatchesJSON(t *testing.T) {
	csvBank := "type,question,correct,wrong_answers,left,right,answers\n" +
		"multiple,What is the capital of France?,Paris,\"Rome,Berlin,Madrid\",,,\n" +
		"truefalse,The Sun is a star.,True,False,,,\n" +
		"fillin,The capital of Japan is ______.,Tokyo,,,,\n" +
		"match,Match technologies,,,Python|HTML,Programming language|Markup language,\"a:1,b:2\"\n"
	jsonBank := `[
  {"type": "multiple", "question": "What is the capital of France?", "correct": "Paris", "wrong_answers": ["Rome", "Berlin", "Madrid"]},
  {"type": "truefalse", "question": "The Sun is a star.", "correct": "True", "wrong_answers": ["False"]},
  {"type": "fillin", "question": "The capital of Japan is ______.", "correct": "Tokyo", "wrong_answers": []},
  {"type": "match", "question": "Match technologies", "pairs": {"left": ["Python", "HTML"], "right": ["Programming language", "Markup language"], "answers": {"a": "1", "b": "2"}}}
]`
	fromCSV, err := Parse("bank.csv", []byte(csvBank))
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	fromJSON, err := Parse("bank.json", []byte(jsonBank))
	if err != nil {
		t.Fatalf("parse json: %v", err)
	}
	if !reflect.DeepEqual(fromCSV, fromJSON) {
		t.Fatalf("csv and json differ\ncsv  %#v\njson %#v", fromCSV, fromJSON)
	}
}

// TestParseLegacyEntries verifies q/a entries in JSON and CSV load as fill-in questions.
func TestParseLegacyEntries(t *testing.T) {
	want := []question.Question{question.FillIn{Prompt: "2 + 2", Correct: "4"}}
	for name, input := range map[string]string{
		"bank.json": `[{"q": "2 + 2", "a": 4}]`,
		"bank.csv":  "q,a\n2 + 2,4\n",
	} {
		got, err := Parse(name, []byte(input))
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("%s: unexpected questions %#v", name, got)
		}
	}
}

// TestParseCSVRowErrors verifies CSV problems point at the offending question.
func TestParseCSVRowErrors(t *testing.T) {
	input := "type,question,correct,wrong_answers,left,right,answers\n" +
		"fillin,Q1,A,,,,\n" +
		"match,Q2,,,x|y,1|2,a-1\n"
	_, err := Parse("bank.csv", []byte(input))
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError, got %v", err)
	}
	if loadErr.Kind != ValidationFailure || loadErr.Index != 1 {
		t.Fatalf("unexpected load error %+v", loadErr)
	}

	dup := "type,question,correct,wrong_answers,left,right,answers\n" +
		"match,Q1,,,x|y,1|2,\"a:1,A:2\"\n"
	_, err = Parse("bank.csv", []byte(dup))
	if !errors.As(err, &loadErr) || loadErr.Kind != ValidationFailure || loadErr.Index != 0 {
		t.Fatalf("expected validation failure for duplicate answer keys, got %v", err)
	}
	if !strings.Contains(err.Error(), "duplicate answer") {
		t.Fatalf("expected duplicate answer message, got %v", err)
	}

	_, err = Parse("bank.csv", []byte("question\nQ1\n"))
	if !IsKind(err, ParseFailure) {
		t.Fatalf("expected parse failure for missing headers, got %v", err)
	}
}

// TestParseYAMLRejectsUnknownFields verifies strict YAML decoding.
func TestParseYAMLRejectsUnknownFields(t *testing.T) {
	_, err := Parse("bank.yaml", []byte("- type: fillin\n  question: Q\n  correct: A\n  hint: nope\n"))
	if !IsKind(err, ParseFailure) {
		t.Fatalf("expected parse failure, got %v", err)
	}
	got, err := Parse("bank.yml", []byte(""))
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty bank, got %v (%v)", got, err)
	}
}

// TestWriteCSVRejectsSeparators verifies items that would split on reload are refused.
func TestWriteCSVRejectsSeparators(t *testing.T) {
	questions := []question.Question{question.Multiple{Prompt: "Pick", Correct: "A", Wrong: []string{"B,C"}}}
	err := WriteCSV(&bytes.Buffer{}, questions)
	if !errors.Is(err, ErrCSVUnrepresentable) {
		t.Fatalf("expected ErrCSVUnrepresentable, got %v", err)
	}
}

// TestSelectFiltersAndLimits verifies subset selection keeps bank order.
func TestSelectFiltersAndLimits(t *testing.T) {
	first := New("/a.json", Fingerprint{}, TemplateQuestions())
	second := New("/b.json", Fingerprint{}, []question.Question{question.FillIn{Prompt: "Q", Correct: "A"}})

	all := Select([]*Bank{first, second}, Filter{})
	if len(all) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(all))
	}
	fillins := Select([]*Bank{first, second}, Filter{Kinds: []question.Kind{question.KindFillIn}})
	if len(fillins) != 2 || fillins[1].Text() != "Q" {
		t.Fatalf("unexpected fill-in subset %#v", fillins)
	}
	limited := Select([]*Bank{first, second}, Filter{Limit: 2})
	if len(limited) != 2 || limited[0].Kind() != question.KindMultiple || limited[1].Kind() != question.KindTrueFalse {
		t.Fatalf("unexpected limited subset %#v", limited)
	}
}

// TestShuffleLeavesInputUntouched verifies Shuffle copies before permuting.
func TestShuffleLeavesInputUntouched(t *testing.T) {
	input := TemplateQuestions()
	shuffled := Shuffle(input, rand.New(rand.NewSource(7)))
	if !reflect.DeepEqual(input, TemplateQuestions()) {
		t.Fatalf("input was reordered")
	}
	if len(shuffled) != len(input) {
		t.Fatalf("expected %d questions, got %d", len(input), len(shuffled))
	}
	seen := map[string]bool{}
	for _, q := range shuffled {
		seen[q.Text()] = true
	}
	if len(seen) != len(input) {
		t.Fatalf("shuffle lost questions: %v", seen)
	}
}

// TestDiscoverListsBanks verifies nested categories and ignored files.
func TestDiscoverListsBanks(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "geography.json", "[]")
	testutil.WriteFile(t, dir, "programming/python/loops.csv", "type,question\n")
	testutil.WriteFile(t, dir, "programming/go.yaml", "")
	testutil.WriteFile(t, dir, "notes.txt", "ignored")
	testutil.WriteFile(t, dir, ".hidden/secret.json", "[]")

	entries, err := Discover(dir)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	var categories []string
	for _, entry := range entries {
		categories = append(categories, entry.Category)
	}
	want := []string{"geography", "programming/go", "programming/python/loops"}
	if strings.Join(categories, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected categories %v", categories)
	}

	missing, err := Discover(filepath.Join(dir, "absent"))
	if err != nil || len(missing) != 0 {
		t.Fatalf("expected no entries for missing dir, got %v (%v)", missing, err)
	}
}

// TestWriteTemplate verifies template files load and are not overwritten by default.
func TestWriteTemplate(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"template.csv", "example_template.json"} {
		path := filepath.Join(dir, name)
		if err := WriteTemplate(path, false); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		cache := newTestCache(t, Options{})
		loaded, err := cache.Load(testutil.Context(t, 0), path)
		if err != nil {
			t.Fatalf("load %s: %v", name, err)
		}
		if loaded.Len() != len(question.Kinds) {
			t.Fatalf("expected one question per kind, got %d", loaded.Len())
		}
		if err := WriteTemplate(path, false); err == nil {
			t.Fatalf("expected existing template to be kept")
		}
	}
}
