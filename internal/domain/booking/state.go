package booking

import "fmt"

// State represents the persisted lifecycle state of a booking.
//
// Listing selectors such as "all" or "current" are a separate type (Filter)
// and never reach storage.
type State string

const (
	StateWaiting  State = "waiting"
	StateApproved State = "approved"
	StateRejected State = "rejected"
	StateCanceled State = "canceled"
)

// validTransitions defines the state machine for booking lifecycle transitions.
var validTransitions = map[State][]State{
	StateWaiting:  {StateApproved, StateRejected, StateCanceled},
	StateApproved: {StateCanceled},
	StateRejected: {},
	StateCanceled: {},
}

// IsValid returns true if the state is a recognized persisted state.
func (s State) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// CanTransitionTo returns true if a transition from this state to the target is allowed.
func (s State) CanTransitionTo(target State) bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible from this state.
func (s State) IsTerminal() bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return true
	}
	return len(allowed) == 0
}

// String returns the string representation of the state.
func (s State) String() string {
	return string(s)
}

// ParseState converts a string to a State, returning an error if invalid.
func ParseState(s string) (State, error) {
	state := State(s)
	if !state.IsValid() {
		return "", fmt.Errorf("invalid booking state: %s", s)
	}
	return state, nil
}
