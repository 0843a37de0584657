package score

import (
	"errors"
	"fmt"
)

// ErrInvalidCategory reports a category that cannot name a history file.
var ErrInvalidCategory = errors.New("invalid category")

// HistoryWriteError reports a failed append. Record is the unsaved value so
// the caller can retry.
type HistoryWriteError struct {
	Path   string
	Record Record
	Err    error
}

func (err *HistoryWriteError) Error() string {
	return fmt.Sprintf("append history %s: %v", err.Path, err.Err)
}

func (err *HistoryWriteError) Unwrap() error { return err.Err }
