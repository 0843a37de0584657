package bank

import (
	"fmt"
	"os"

	"qm/internal/question"
)

// TemplateQuestions returns one example of every question kind.
func TemplateQuestions() []question.Question {
	return []question.Question{
		question.Multiple{
			Prompt:  "What is the capital of France?",
			Correct: "Paris",
			Wrong:   []string{"Rome", "Berlin", "Madrid"},
		},
		question.TrueFalse{Prompt: "The Sun is a star.", Correct: true},
		question.FillIn{Prompt: "The capital of Japan is ______.", Correct: "Tokyo"},
		question.Match{
			Prompt:  "Match technologies",
			Left:    []string{"Python", "HTML"},
			Right:   []string{"Programming language", "Markup language"},
			Answers: map[string]string{"a": "1", "b": "2"},
		},
	}
}

// WriteTemplate writes the example bank to path in the format implied by its
// extension. Existing files are left alone unless force is set.
func WriteTemplate(path string, force bool) error {
	if _, err := FormatFor(path); err != nil {
		return err
	}
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("template %s already exists", path)
		} else if !os.IsNotExist(err) {
			return err
		}
	}
	return WriteFile(path, TemplateQuestions())
}
