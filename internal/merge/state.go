package merge

import (
	"errors"
	"fmt"
)

// State is the merge trigger state.
type State int

const (
	StateIdle State = iota
	StateReady
	StateMerging
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateReady:
		return "ready"
	case StateMerging:
		return "merging"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// MarshalText renders the state name in JSON snapshots.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a state name.
func (s *State) UnmarshalText(b []byte) error {
	switch string(b) {
	case "idle":
		*s = StateIdle
	case "ready":
		*s = StateReady
	case "merging":
		*s = StateMerging
	default:
		return fmt.Errorf("unknown state %q", b)
	}
	return nil
}

// EventKind enumerates the inputs of the state machine.
type EventKind int

const (
	// EventSelect is a selection change on either side.
	EventSelect EventKind = iota
	// EventMergeStart is the merge trigger.
	EventMergeStart
	// EventMergeDone ends a merge, successful or not.
	EventMergeDone
)

// Event is one input to Transition. Valid reports whether both sides hold
// an image selection after the event.
type Event struct {
	Kind  EventKind
	Valid bool
}

var (
	ErrNotReady        = errors.New("merge: both sides need an image")
	ErrMergeInProgress = errors.New("merge: already in progress")
	ErrNotMerging      = errors.New("merge: no merge in progress")
)

// Transition is the only place state changes are decided.
func Transition(s State, e Event) (State, error) {
	switch e.Kind {
	case EventSelect:
		if s == StateMerging {
			return StateMerging, nil
		}
		return readiness(e.Valid), nil
	case EventMergeStart:
		switch s {
		case StateReady:
			return StateMerging, nil
		case StateMerging:
			return s, ErrMergeInProgress
		default:
			return s, ErrNotReady
		}
	case EventMergeDone:
		if s != StateMerging {
			return s, ErrNotMerging
		}
		return readiness(e.Valid), nil
	default:
		return s, fmt.Errorf("merge: unknown event %d", int(e.Kind))
	}
}

func readiness(valid bool) State {
	if valid {
		return StateReady
	}
	return StateIdle
}
