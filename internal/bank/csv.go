package bank

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"qm/internal/question"
)

// CSVHeader is the column layout written by WriteCSV.
var CSVHeader = []string{"type", "question", "correct", "wrong_answers", "left", "right", "answers"}

// ErrCSVUnrepresentable reports a question whose items collide with CSV list separators.
var ErrCSVUnrepresentable = errors.New("question cannot be represented in csv")

// rowError pins a row-level problem to a question index.
type rowError struct {
	index int
	err   error
}

func (err *rowError) Error() string { return fmt.Sprintf("row %d: %v", err.index+2, err.err) }
func (err *rowError) Unwrap() error { return err.err }

func parseCSV(r io.Reader) ([]question.Raw, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("parse csv: file is empty or has no header")
	}
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	columns := map[string]int{}
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		columns[name] = i
	}
	_, hasType := columns["type"]
	_, hasQuestion := columns["question"]
	_, hasQ := columns["q"]
	_, hasA := columns["a"]
	legacy := !hasType && hasQ && hasA
	if !legacy && (!hasType || !hasQuestion) {
		return nil, fmt.Errorf("parse csv: missing required headers type, question")
	}

	var raws []question.Raw
	for index := 0; ; index++ {
		record, err := reader.Read()
		if err == io.EOF {
			return raws, nil
		}
		if err != nil {
			return nil, fmt.Errorf("parse csv: %w", err)
		}
		field := func(name string) string {
			i, ok := columns[name]
			if !ok || i >= len(record) {
				return ""
			}
			return record[i]
		}
		if legacy {
			raws = append(raws, question.Raw{Q: field("q"), A: question.Scalar(field("a"))})
			continue
		}
		raw, err := rawFromRow(field)
		if err != nil {
			return nil, &rowError{index: index, err: err}
		}
		raws = append(raws, raw)
	}
}

func rawFromRow(field func(string) string) (question.Raw, error) {
	raw := question.Raw{
		Type:         field("type"),
		Question:     field("question"),
		Correct:      question.Scalar(field("correct")),
		WrongAnswers: SplitList(field("wrong_answers"), ","),
	}
	kind, _ := question.ParseKind(raw.Type)
	if kind != question.KindMatch {
		return raw, nil
	}
	raw.Left = SplitList(field("left"), "|")
	raw.Right = SplitList(field("right"), "|")
	answers, err := ParseAnswerPairs(field("answers"))
	if err != nil {
		return question.Raw{}, err
	}
	raw.Answers = answers
	return raw, nil
}

// ParseAnswerPairs reads a comma-joined "a:1,b:2" match mapping. Keys are
// lowercased; a key given twice is a validation error.
func ParseAnswerPairs(value string) (map[string]question.Scalar, error) {
	answers := map[string]question.Scalar{}
	for _, pair := range SplitList(value, ",") {
		key, value, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, &question.ValidationError{Issues: []question.Issue{{
				Field:   "answers",
				Message: fmt.Sprintf("pair %q must look like a:1", pair),
			}}}
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if _, dup := answers[key]; dup {
			return nil, &question.ValidationError{Issues: []question.Issue{{
				Field:   "answers",
				Message: fmt.Sprintf("duplicate answer for %q", key),
			}}}
		}
		answers[key] = question.Scalar(strings.TrimSpace(value))
	}
	return answers, nil
}

// SplitList splits value on sep, trimming items and dropping blank ones.
func SplitList(value, sep string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, sep)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// WriteCSV encodes questions using CSVHeader.
func WriteCSV(w io.Writer, questions []question.Question) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(CSVHeader); err != nil {
		return err
	}
	for i, q := range questions {
		row, err := csvRow(q)
		if err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func csvRow(q question.Question) ([]string, error) {
	raw := question.ToRaw(q)
	row := []string{raw.Type, raw.Question, string(raw.Correct), "", "", "", ""}
	switch typed := q.(type) {
	case question.Multiple:
		if err := joinable(typed.Wrong, ","); err != nil {
			return nil, err
		}
		row[3] = strings.Join(typed.Wrong, ",")
	case question.TrueFalse:
		row[3] = strings.Join(raw.WrongAnswers, ",")
	case question.FillIn:
	case question.Match:
		if err := joinable(typed.Left, "|"); err != nil {
			return nil, err
		}
		if err := joinable(typed.Right, "|"); err != nil {
			return nil, err
		}
		row[4] = strings.Join(typed.Left, "|")
		row[5] = strings.Join(typed.Right, "|")
		labels := make([]string, 0, len(typed.Answers))
		for label := range typed.Answers {
			labels = append(labels, label)
		}
		sort.Slice(labels, func(i, j int) bool {
			return question.LeftIndex(labels[i]) < question.LeftIndex(labels[j])
		})
		pairs := make([]string, 0, len(labels))
		for _, label := range labels {
			pairs = append(pairs, label+":"+typed.Answers[label])
		}
		row[6] = strings.Join(pairs, ",")
	default:
		return nil, fmt.Errorf("unhandled variant %T", q)
	}
	return row, nil
}

func joinable(items []string, sep string) error {
	for _, item := range items {
		if strings.Contains(item, sep) {
			return fmt.Errorf("%w: %q contains %q", ErrCSVUnrepresentable, item, sep)
		}
	}
	return nil
}
