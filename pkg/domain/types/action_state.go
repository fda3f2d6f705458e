package types

import "fmt"

// ActionState represents the lifecycle state of an action
type ActionState string

const (
	ActionStateNew      ActionState = "NEW"
	ActionStateSent     ActionState = "SENT"
	ActionStateReplied  ActionState = "REPLIED"
	ActionStateSnoozed  ActionState = "SNOOZED"
	ActionStateDone     ActionState = "DONE"
	ActionStateArchived ActionState = "ARCHIVED"
)

// AllActionStates returns all valid action states
func AllActionStates() []ActionState {
	return []ActionState{
		ActionStateNew,
		ActionStateSent,
		ActionStateReplied,
		ActionStateSnoozed,
		ActionStateDone,
		ActionStateArchived,
	}
}

// IsValid checks if the action state is valid
func (s ActionState) IsValid() bool {
	switch s {
	case ActionStateNew,
		ActionStateSent,
		ActionStateReplied,
		ActionStateSnoozed,
		ActionStateDone,
		ActionStateArchived:
		return true
	default:
		return false
	}
}

// IsOpen reports whether an action in this state still needs attention.
// SENT counts as open: the action sits in a lane awaiting a reply, but it
// does not consume daily plan capacity.
func (s ActionState) IsOpen() bool {
	switch s {
	case ActionStateDone, ActionStateArchived:
		return false
	default:
		return true
	}
}

// IsCompleted reports whether the state carries a completion timestamp
func (s ActionState) IsCompleted() bool {
	switch s {
	case ActionStateDone, ActionStateSent, ActionStateReplied:
		return true
	default:
		return false
	}
}

// String returns the string representation of the action state
func (s ActionState) String() string {
	return string(s)
}

// ParseActionState parses a string into an ActionState
func ParseActionState(s string) (ActionState, error) {
	state := ActionState(s)
	if !state.IsValid() {
		return "", fmt.Errorf("invalid action state: %s", s)
	}
	return state, nil
}
