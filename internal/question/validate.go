package question

import (
	"fmt"
	"strings"
)

// Issue captures a validation problem in a raw question.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more validation issues for a single question.
type ValidationError struct {
	Issues []Issue
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "question validation failed"
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("question validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}

// Validate trims a raw question and converts it into its typed variant.
func Validate(raw Raw) (Question, error) {
	collector := &issueCollector{}

	if raw.Type == "" && strings.TrimSpace(raw.Q) != "" {
		return validateLegacy(raw, collector)
	}

	kind, ok := ParseKind(raw.Type)
	if !ok {
		if strings.TrimSpace(raw.Type) == "" {
			collector.add("type", "is required")
		} else {
			collector.add("type", fmt.Sprintf("unsupported type %q", raw.Type))
		}
		return nil, collector.result()
	}

	prompt := strings.TrimSpace(raw.Question)
	if prompt == "" {
		collector.add("question", "is required")
	}

	var q Question
	switch kind {
	case KindMultiple:
		q = validateMultiple(prompt, raw, collector)
	case KindTrueFalse:
		q = validateTrueFalse(prompt, raw, collector)
	case KindFillIn:
		q = validateFillIn(prompt, raw, collector)
	case KindMatch:
		q = validateMatch(prompt, raw, collector)
	default:
		panic(fmt.Sprintf("question: unhandled kind %q", kind))
	}

	if err := collector.result(); err != nil {
		return nil, err
	}
	return q, nil
}

func validateLegacy(raw Raw, collector *issueCollector) (Question, error) {
	answer := trimmed(raw.A)
	if answer == "" {
		collector.add("a", "is required")
	}
	if err := collector.result(); err != nil {
		return nil, err
	}
	return FillIn{Prompt: strings.TrimSpace(raw.Q), Correct: answer}, nil
}

func validateMultiple(prompt string, raw Raw, collector *issueCollector) Question {
	correct := trimmed(raw.Correct)
	if correct == "" {
		collector.add("correct", "is required")
	}
	wrong := make([]string, 0, len(raw.WrongAnswers))
	for i, value := range raw.WrongAnswers {
		value = strings.TrimSpace(value)
		if value == "" {
			collector.add(fmt.Sprintf("wrong_answers[%d]", i), "is required")
			continue
		}
		if correct != "" && NormalizeAnswerText(value) == NormalizeAnswerText(correct) {
			collector.add(fmt.Sprintf("wrong_answers[%d]", i), fmt.Sprintf("duplicates the correct answer %q", correct))
			continue
		}
		wrong = append(wrong, value)
	}
	if len(raw.WrongAnswers) == 0 {
		collector.add("wrong_answers", "must include at least one entry")
	}
	return Multiple{Prompt: prompt, Correct: correct, Wrong: wrong}
}

func validateTrueFalse(prompt string, raw Raw, collector *issueCollector) Question {
	value, err := ParseBool(string(raw.Correct))
	if err != nil {
		if trimmed(raw.Correct) == "" {
			collector.add("correct", "is required")
		} else {
			collector.add("correct", fmt.Sprintf("must be True or False, got %q", string(raw.Correct)))
		}
	}
	return TrueFalse{Prompt: prompt, Correct: value}
}

func validateFillIn(prompt string, raw Raw, collector *issueCollector) Question {
	correct := trimmed(raw.Correct)
	if correct == "" {
		collector.add("correct", "is required")
	}
	return FillIn{Prompt: prompt, Correct: correct}
}

func validateMatch(prompt string, raw Raw, collector *issueCollector) Question {
	left, right, answers := raw.Left, raw.Right, raw.Answers
	prefix := ""
	if raw.Pairs != nil && (len(raw.Pairs.Left) > 0 || len(raw.Pairs.Right) > 0 || len(raw.Pairs.Answers) > 0) {
		left, right, answers = raw.Pairs.Left, raw.Pairs.Right, raw.Pairs.Answers
		prefix = "pairs."
	}

	left = trimItems(prefix+"left", left, collector)
	right = trimItems(prefix+"right", right, collector)
	if len(left) == 0 {
		collector.add(prefix+"left", "must include at least one entry")
	}
	if len(right) == 0 {
		collector.add(prefix+"right", "must include at least one entry")
	}

	mapping := make(map[string]string, len(answers))
	for key, value := range answers {
		field := fmt.Sprintf("%sanswers[%s]", prefix, key)
		leftIndex := LeftIndex(key)
		if leftIndex < 0 || leftIndex >= len(left) {
			collector.add(field, fmt.Sprintf("key %q does not name a left item", key))
			continue
		}
		rightIndex := RightIndex(string(value))
		if rightIndex < 0 || rightIndex >= len(right) {
			collector.add(field, fmt.Sprintf("value %q does not name a right item", string(value)))
			continue
		}
		label := LeftLabel(leftIndex)
		if _, exists := mapping[label]; exists {
			collector.add(field, fmt.Sprintf("duplicate answer for %q", label))
			continue
		}
		mapping[label] = RightLabel(rightIndex)
	}
	for i := range left {
		label := LeftLabel(i)
		if _, ok := mapping[label]; !ok {
			collector.add(prefix+"answers", fmt.Sprintf("missing answer for %q", label))
		}
	}
	return Match{Prompt: prompt, Left: left, Right: right, Answers: mapping}
}

func trimItems(field string, values []string, collector *issueCollector) []string {
	out := make([]string, 0, len(values))
	for i, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			collector.add(fmt.Sprintf("%s[%d]", field, i), "is required")
			continue
		}
		out = append(out, value)
	}
	return out
}
