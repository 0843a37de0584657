package bank

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"qm/internal/question"
)

func rawQuestions(questions []question.Question) []question.Raw {
	raws := make([]question.Raw, 0, len(questions))
	for _, q := range questions {
		raws = append(raws, question.ToRaw(q))
	}
	return raws
}

// WriteJSON encodes questions as an indented JSON array.
func WriteJSON(w io.Writer, questions []question.Question) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	return encoder.Encode(rawQuestions(questions))
}

// WriteYAML encodes questions as a YAML sequence.
func WriteYAML(w io.Writer, questions []question.Question) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(rawQuestions(questions)); err != nil {
		return err
	}
	return encoder.Close()
}

// Encode writes questions in the given format.
func Encode(w io.Writer, format Format, questions []question.Question) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, questions)
	case FormatCSV:
		return WriteCSV(w, questions)
	case FormatYAML:
		return WriteYAML(w, questions)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// WriteFile encodes questions by extension and replaces path atomically.
func WriteFile(path string, questions []question.Question) error {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, format, questions); err != nil {
		return err
	}
	return writeAtomic(path, buf.Bytes())
}

// writeAtomic writes payload to a temp file and renames it over path.
func writeAtomic(path string, payload []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmpPath := path + ".tmp"
	file, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	_, writeErr := file.Write(payload)
	syncErr := file.Sync()
	closeErr := file.Close()
	for _, err := range []error{writeErr, syncErr, closeErr} {
		if err != nil {
			_ = os.Remove(tmpPath)
			return err
		}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
