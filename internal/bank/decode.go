package bank

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"qm/internal/question"
)

// Format is a bank file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
)

// FormatFor detects the bank format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".csv":
		return FormatCSV, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

//go:embed schema.json
var bankSchemaJSON string

var (
	bankSchemaOnce sync.Once
	bankSchema     *jsonschema.Schema
	bankSchemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	bankSchemaOnce.Do(func() {
		bankSchema, bankSchemaErr = jsonschema.CompileString("qm-bank.schema.json", bankSchemaJSON)
	})
	return bankSchema, bankSchemaErr
}

// Parse decodes and validates a whole bank. Any failure rejects the bank.
func Parse(path string, data []byte) ([]question.Question, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, parseError(path, err)
	}
	var raws []question.Raw
	switch format {
	case FormatJSON:
		raws, err = parseJSON(data)
	case FormatYAML:
		raws, err = parseYAML(data)
	case FormatCSV:
		raws, err = parseCSV(bytes.NewReader(data))
	}
	if err != nil {
		var rowErr *rowError
		if errors.As(err, &rowErr) {
			return nil, &LoadError{Path: path, Kind: ValidationFailure, Index: rowErr.index, Err: rowErr.err}
		}
		return nil, parseError(path, err)
	}
	return validateAll(path, raws)
}

func validateAll(path string, raws []question.Raw) ([]question.Question, error) {
	questions := make([]question.Question, 0, len(raws))
	for i, raw := range raws {
		q, err := question.Validate(raw)
		if err != nil {
			return nil, &LoadError{Path: path, Kind: ValidationFailure, Index: i, Err: err}
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func parseJSON(data []byte) ([]question.Raw, error) {
	var document any
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	schema, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("compile bank schema: %w", err)
	}
	if err := schema.Validate(document); err != nil {
		return nil, fmt.Errorf("bank schema: %w", err)
	}

	var raws []question.Raw
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&raws); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("parse json: multiple documents are not supported")
		}
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return raws, nil
}

func parseYAML(data []byte) ([]question.Raw, error) {
	var raws []question.Raw
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&raws); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return raws, nil
}
