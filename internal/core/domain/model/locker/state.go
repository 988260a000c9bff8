package locker

import (
	"fmt"

	"lockers/internal/pkg/errs"
)

// State represents the lifecycle state of a locker compartment.
// It implements a state machine with defined transitions; a locker cycles
// indefinitely and has no terminal state.
//
// State transitions:
//
//	Available ──> Reserved ──> Open ──> Available
//	    ^             │
//	    └─────────────┘
//	  (administrative release of an expired reservation)
//
// State is a value object that validates state transitions and provides
// string representations for persistence and display.
type State int

const (
	// StateUnknown represents an invalid or undefined state.
	// This value (0) helps catch uninitialized State values.
	StateUnknown State = iota

	// StateAvailable means the compartment is free and can be reserved.
	StateAvailable

	// StateReserved means the compartment is bound to an order and waits
	// for the correct access code.
	StateReserved

	// StateOpen means the compartment door is unlocked for the physical
	// deposit or retrieval interaction.
	StateOpen
)

// getStateStrings returns a map of State values to their string representations.
// All states are included for string conversion.
func getStateStrings() map[State]string {
	return map[State]string{
		StateUnknown:   "Unknown",
		StateAvailable: "Available",
		StateReserved:  "Reserved",
		StateOpen:      "Open",
	}
}

// getValidStateStrings returns a map of only valid State values.
// Only valid states are included to support validation.
func getValidStateStrings() map[State]string {
	//nolint:exhaustive // StateUnknown is intentionally excluded as it's invalid
	return map[State]string{
		StateAvailable: "Available",
		StateReserved:  "Reserved",
		StateOpen:      "Open",
	}
}

// Validate checks if the State value is valid.
//
// Valid states are: StateAvailable, StateReserved, StateOpen.
// StateUnknown (0) and any other values are invalid.
func (s State) Validate() error {
	if _, ok := getValidStateStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"state is invalid",
			fmt.Errorf("%d is not a valid state", s),
		)
	}
	return nil
}

// String returns the human-readable name of the state.
// Implements fmt.Stringer and is safe to call on any value.
func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// HoldsOrder reports whether a locker in this state must have an order
// bound to it. The binding invariant is: bound order set iff the state is
// Reserved or Open.
func (s State) HoldsOrder() bool {
	return s == StateReserved || s == StateOpen
}

// Reserve transitions the state to Reserved.
//
// Valid transitions:
//   - Available -> Reserved
//
// Any other source state means the compartment is already taken and the
// transition fails with ErrLockerUnavailable.
func (s State) Reserve() (State, error) {
	if s != StateAvailable {
		return 0, ErrLockerUnavailable
	}

	return StateReserved, nil
}

// Open transitions the state to Open.
//
// Valid transitions:
//   - Reserved -> Open
//
// Any other source state fails with ErrUnexpectedState: an available
// compartment has nothing to open and an open one cannot be opened again.
func (s State) Open() (State, error) {
	if s != StateReserved {
		return 0, fmt.Errorf("%w: cannot open locker in state %s", ErrUnexpectedState, s)
	}

	return StateOpen, nil
}

// Close transitions the state back to Available.
//
// Valid transitions:
//   - Open -> Available
//
// Any other source state fails with ErrUnexpectedState.
func (s State) Close() (State, error) {
	if s != StateOpen {
		return 0, fmt.Errorf("%w: cannot close locker in state %s", ErrUnexpectedState, s)
	}

	return StateAvailable, nil
}

// Release transitions a reservation back to Available without the open/close
// cycle. Used to reclaim compartments whose reservation deadline passed.
//
// Valid transitions:
//   - Reserved -> Available
//
// Any other source state fails with ErrUnexpectedState.
func (s State) Release() (State, error) {
	if s != StateReserved {
		return 0, fmt.Errorf("%w: cannot release locker in state %s", ErrUnexpectedState, s)
	}

	return StateAvailable, nil
}
