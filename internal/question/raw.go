package question

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Raw is the on-disk shape of a question shared by JSON and YAML banks.
type Raw struct {
	Type         string     `json:"type,omitempty" yaml:"type,omitempty"`
	Question     string     `json:"question,omitempty" yaml:"question,omitempty"`
	Correct      Scalar     `json:"correct,omitempty" yaml:"correct,omitempty"`
	WrongAnswers StringList `json:"wrong_answers,omitempty" yaml:"wrong_answers,omitempty"`
	Pairs        *RawPairs  `json:"pairs,omitempty" yaml:"pairs,omitempty"`

	// Flat match columns, as produced by CSV conversion.
	Left    []string          `json:"left,omitempty" yaml:"left,omitempty"`
	Right   []string          `json:"right,omitempty" yaml:"right,omitempty"`
	Answers map[string]Scalar `json:"answers,omitempty" yaml:"answers,omitempty"`

	// Legacy question/answer entries.
	Q string `json:"q,omitempty" yaml:"q,omitempty"`
	A Scalar `json:"a,omitempty" yaml:"a,omitempty"`
}

// RawPairs holds the match columns and the expected mapping.
type RawPairs struct {
	Left    []string          `json:"left" yaml:"left"`
	Right   []string          `json:"right" yaml:"right"`
	Answers map[string]Scalar `json:"answers" yaml:"answers"`
}

// Scalar accepts a string, bool or number and keeps its text form.
type Scalar string

// UnmarshalJSON decodes any JSON scalar into its text form.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	text, err := scalarText(value)
	if err != nil {
		return err
	}
	*s = Scalar(text)
	return nil
}

// UnmarshalYAML decodes any YAML scalar into its text form.
func (s *Scalar) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar value", node.Line)
	}
	*s = Scalar(node.Value)
	return nil
}

func scalarText(value any) (string, error) {
	switch typed := value.(type) {
	case nil:
		return "", nil
	case string:
		return typed, nil
	case bool:
		if typed {
			return "True", nil
		}
		return "False", nil
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("expected a scalar value, got %T", value)
	}
}

// StringList accepts either a list of strings or a single string.
type StringList []string

// UnmarshalJSON decodes a list or a lone string.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return fmt.Errorf("expected a list of strings")
	}
	*l = StringList{single}
	return nil
}

// UnmarshalYAML decodes a sequence or a lone scalar.
func (l *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*l = StringList{node.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*l = list
		return nil
	default:
		return fmt.Errorf("line %d: expected a list of strings", node.Line)
	}
}

// ToRaw converts a validated question into its canonical file shape.
func ToRaw(q Question) Raw {
	switch typed := q.(type) {
	case Multiple:
		return Raw{
			Type:         string(KindMultiple),
			Question:     typed.Prompt,
			Correct:      Scalar(typed.Correct),
			WrongAnswers: append(StringList(nil), typed.Wrong...),
		}
	case TrueFalse:
		correct, wrong := "True", "False"
		if !typed.Correct {
			correct, wrong = wrong, correct
		}
		return Raw{
			Type:         string(KindTrueFalse),
			Question:     typed.Prompt,
			Correct:      Scalar(correct),
			WrongAnswers: StringList{wrong},
		}
	case FillIn:
		return Raw{
			Type:     string(KindFillIn),
			Question: typed.Prompt,
			Correct:  Scalar(typed.Correct),
		}
	case Match:
		answers := make(map[string]Scalar, len(typed.Answers))
		for key, value := range typed.Answers {
			answers[key] = Scalar(value)
		}
		return Raw{
			Type:     string(KindMatch),
			Question: typed.Prompt,
			Pairs: &RawPairs{
				Left:    append([]string(nil), typed.Left...),
				Right:   append([]string(nil), typed.Right...),
				Answers: answers,
			},
		}
	default:
		panic(fmt.Sprintf("question: unhandled variant %T", q))
	}
}

func trimmed(value Scalar) string {
	return strings.TrimSpace(string(value))
}
