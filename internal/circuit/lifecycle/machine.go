package lifecycle

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned for transitions outside the table.
var ErrInvalidTransition = errors.New("invalid state transition")

// State is a phase of the puzzle lifecycle.
type State int

const (
	StateInit State = iota
	StateLoading
	StatePlaying
	StateVictory
	StatePaused
	StateExiting
	StateTimeUp // the time limit ran out before the circuit closed
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateLoading:
		return "loading"
	case StatePlaying:
		return "playing"
	case StateVictory:
		return "victory"
	case StatePaused:
		return "paused"
	case StateExiting:
		return "exiting"
	case StateTimeUp:
		return "time-up"
	default:
		return "unknown"
	}
}

// transitions lists the allowed targets per state. Exiting is terminal.
var transitions = map[State][]State{
	StateInit:    {StateLoading},
	StateLoading: {StatePlaying},
	StatePlaying: {StateVictory, StatePaused, StateTimeUp, StateExiting},
	StateVictory: {StateLoading, StateExiting},
	StatePaused:  {StatePlaying, StateExiting},
	StateTimeUp:  {StatePlaying, StateLoading, StateExiting},
}

// TransitionError reports a rejected transition.
type TransitionError struct {
	From State
	To   State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot go from %s to %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// Event describes a completed transition.
type Event struct {
	From State
	To   State
}

// Machine is the finite-state controller for the puzzle lifecycle.
type Machine struct {
	state     State
	previous  State
	listeners []func(Event)
}

// NewMachine returns a machine in StateInit.
func NewMachine() *Machine {
	return &Machine{state: StateInit, previous: StateInit}
}

// State returns the current state.
func (m *Machine) State() State {
	return m.state
}

// Previous returns the state before the last transition.
func (m *Machine) Previous() State {
	return m.previous
}

// CanTransition reports whether to is reachable from the current state.
func (m *Machine) CanTransition(to State) bool {
	for _, s := range transitions[m.state] {
		if s == to {
			return true
		}
	}
	return false
}

// Transition moves to the given state. Invalid transitions leave the state
// unchanged and return a *TransitionError.
func (m *Machine) Transition(to State) error {
	if !m.CanTransition(to) {
		return &TransitionError{From: m.state, To: to}
	}
	ev := Event{From: m.state, To: to}
	m.previous = m.state
	m.state = to
	for _, fn := range m.listeners {
		fn(ev)
	}
	return nil
}

// OnTransition registers a callback run after every successful transition.
func (m *Machine) OnTransition(fn func(Event)) {
	m.listeners = append(m.listeners, fn)
}

// Reset returns the machine to StateInit without notifying listeners.
func (m *Machine) Reset() {
	m.state = StateInit
	m.previous = StateInit
}
