package bank

import (
	"errors"
	"fmt"
)

// LoadErrorKind classifies a failed bank load.
type LoadErrorKind string

const (
	IOFailure         LoadErrorKind = "io"
	ParseFailure      LoadErrorKind = "parse"
	ValidationFailure LoadErrorKind = "validation"
)

// ErrUnsupportedFormat reports a bank file extension with no decoder.
var ErrUnsupportedFormat = errors.New("unsupported bank format")

// LoadError reports why a bank could not be loaded. Index is the offending
// question position for validation failures and -1 otherwise.
type LoadError struct {
	Path  string
	Kind  LoadErrorKind
	Index int
	Err   error
}

func (err *LoadError) Error() string {
	if err.Kind == ValidationFailure {
		return fmt.Sprintf("load bank %s: question %d: %v", err.Path, err.Index+1, err.Err)
	}
	return fmt.Sprintf("load bank %s: %s: %v", err.Path, err.Kind, err.Err)
}

func (err *LoadError) Unwrap() error { return err.Err }

func ioError(path string, err error) *LoadError {
	return &LoadError{Path: path, Kind: IOFailure, Index: -1, Err: err}
}

func parseError(path string, err error) *LoadError {
	return &LoadError{Path: path, Kind: ParseFailure, Index: -1, Err: err}
}

// IsKind reports whether err is a LoadError of the given kind.
func IsKind(err error, kind LoadErrorKind) bool {
	var loadErr *LoadError
	return errors.As(err, &loadErr) && loadErr.Kind == kind
}
