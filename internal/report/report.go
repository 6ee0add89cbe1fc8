// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package report implements the two-step flow used to report a post or a comment.

The flow is a small state machine:

	selecting --Next--> confirming --Confirm--> done
	    ^                   |
	    +-------Back--------+

Every transition is a pure function returning a new [State]; the page layer
round-trips the state through hidden form fields.
*/
package report

import (
	"errors"
	"slices"
)

// # Errors

var (
	// ErrInvalidTransition is returned when an action is not allowed in the current phase.
	ErrInvalidTransition = errors.New("report: invalid transition")

	// ErrReasonRequired is returned by [State.Next] when no reason is selected.
	ErrReasonRequired = errors.New("report: reason required")

	// ErrUnknownReason is returned by [State.Select] for a reason outside [Reasons].
	ErrUnknownReason = errors.New("report: unknown reason")
)

// # Phases

// Phase is a step of the report flow.
type Phase string

const (
	PhaseSelecting  Phase = "selecting"
	PhaseConfirming Phase = "confirming"
	PhaseDone       Phase = "done"
)

// # Reasons

// Reason is why content is reported.
type Reason string

const (
	ReasonSpam    Reason = "spam"
	ReasonAbuse   Reason = "abuse"
	ReasonObscene Reason = "obscene"
	ReasonIllegal Reason = "illegal"
	ReasonOther   Reason = "other"
)

// Reasons lists every selectable reason, in display order.
var Reasons = []Reason{ReasonSpam, ReasonAbuse, ReasonObscene, ReasonIllegal, ReasonOther}

// Label returns the text shown next to the reason.
func (reason Reason) Label() string {
	switch reason {
	case ReasonSpam:
		return "Spam or advertising"
	case ReasonAbuse:
		return "Abusive or hateful language"
	case ReasonObscene:
		return "Obscene content"
	case ReasonIllegal:
		return "Illegal content"
	case ReasonOther:
		return "Other"
	default:
		return string(reason)
	}
}

// Valid reports whether reason is one of [Reasons].
func (reason Reason) Valid() bool {
	return slices.Contains(Reasons, reason)
}

// # State

// State is a snapshot of the flow.
type State struct {
	Phase  Phase
	Reason Reason
}

// Start returns the initial state.
func Start() State {
	return State{Phase: PhaseSelecting}
}

// Restore rebuilds a state from untrusted form values. Unknown phases and
// reasons fall back to the initial state.
func Restore(phase, reason string) State {
	state := State{Phase: Phase(phase), Reason: Reason(reason)}

	switch state.Phase {
	case PhaseSelecting:
		if state.Reason != "" && !state.Reason.Valid() {
			state.Reason = ""
		}
		return state
	case PhaseConfirming, PhaseDone:
		if state.Reason.Valid() {
			return state
		}
	}

	return Start()
}

// Select picks a reason. Allowed only while selecting.
func (state State) Select(reason Reason) (State, error) {
	if state.Phase != PhaseSelecting {
		return state, ErrInvalidTransition
	}
	if !reason.Valid() {
		return state, ErrUnknownReason
	}

	state.Reason = reason
	return state, nil
}

// Next moves from selecting to confirming.
func (state State) Next() (State, error) {
	if state.Phase != PhaseSelecting {
		return state, ErrInvalidTransition
	}
	if state.Reason == "" {
		return state, ErrReasonRequired
	}

	state.Phase = PhaseConfirming
	return state, nil
}

// Back returns from confirming to selecting, keeping the reason.
func (state State) Back() (State, error) {
	if state.Phase != PhaseConfirming {
		return state, ErrInvalidTransition
	}

	state.Phase = PhaseSelecting
	return state, nil
}

// Confirm finishes the flow. The caller submits the report to the backend
// before rendering the done phase.
func (state State) Confirm() (State, error) {
	if state.Phase != PhaseConfirming {
		return state, ErrInvalidTransition
	}

	state.Phase = PhaseDone
	return state, nil
}

// Apply performs the named action, as posted by the report form.
func (state State) Apply(action string, reason Reason) (State, error) {
	switch action {
	case "select":
		return state.Select(reason)
	case "next":
		if reason != "" {
			selected, err := state.Select(reason)
			if err != nil {
				return state, err
			}
			state = selected
		}
		return state.Next()
	case "back":
		return state.Back()
	case "confirm":
		return state.Confirm()
	default:
		return state, ErrInvalidTransition
	}
}
