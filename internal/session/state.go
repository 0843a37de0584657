package session

import "fmt"

// State is the position of a session in its lifecycle.
type State int

const (
	NotStarted State = iota
	Presenting
	AwaitingAnswer
	Scored
	TimedOut
	Complete
	Aborted
)

var stateNames = map[State]string{
	NotStarted:     "not_started",
	Presenting:     "presenting",
	AwaitingAnswer: "awaiting_answer",
	Scored:         "scored",
	TimedOut:       "timed_out",
	Complete:       "complete",
	Aborted:        "aborted",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == Complete || s == Aborted
}

type event int

const (
	eventPresent event = iota
	eventAwait
	eventScore
	eventTimeout
	eventComplete
	eventAbort
)

var eventNames = map[event]string{
	eventPresent:  "present",
	eventAwait:    "await",
	eventScore:    "score",
	eventTimeout:  "timeout",
	eventComplete: "complete",
	eventAbort:    "abort",
}

func (e event) String() string { return eventNames[e] }

// transitions lists every legal move. Anything absent is a caller error.
var transitions = map[State]map[event]State{
	NotStarted: {
		eventPresent: Presenting,
		eventAbort:   Aborted,
	},
	Presenting: {
		eventAwait: AwaitingAnswer,
		eventAbort: Aborted,
	},
	AwaitingAnswer: {
		eventScore:   Scored,
		eventTimeout: TimedOut,
		eventAbort:   Aborted,
	},
	Scored: {
		eventPresent:  Presenting,
		eventComplete: Complete,
		eventAbort:    Aborted,
	},
	TimedOut: {
		eventPresent:  Presenting,
		eventComplete: Complete,
		eventAbort:    Aborted,
	},
	Complete: {
		eventComplete: Complete,
	},
}

func transition(from State, ev event) (State, error) {
	if to, ok := transitions[from][ev]; ok {
		return to, nil
	}
	return from, &Error{Kind: InvalidTransition, State: from, Op: ev.String()}
}
