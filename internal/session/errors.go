package session

import "fmt"

// ErrorKind classifies session misuse.
type ErrorKind string

const (
	EmptyBank         ErrorKind = "empty_bank"
	InvalidTransition ErrorKind = "invalid_transition"
)

// Error reports a session that was started or driven incorrectly.
type Error struct {
	Kind  ErrorKind
	State State
	Op    string
}

var (
	// ErrEmptyBank matches any Error of kind EmptyBank.
	ErrEmptyBank = &Error{Kind: EmptyBank}
	// ErrInvalidTransition matches any Error of kind InvalidTransition.
	ErrInvalidTransition = &Error{Kind: InvalidTransition}
)

func (err *Error) Error() string {
	switch err.Kind {
	case EmptyBank:
		return "session: question subset is empty"
	case InvalidTransition:
		if err.Op == "" {
			return "session: invalid transition"
		}
		return fmt.Sprintf("session: cannot %s from state %s", err.Op, err.State)
	default:
		return fmt.Sprintf("session: %s", err.Kind)
	}
}

// Is matches errors by kind so callers can use the sentinels with errors.Is.
func (err *Error) Is(target error) bool {
	other, ok := target.(*Error)
	return ok && other.Kind == err.Kind
}
