package types

import "fmt"

// ActionType represents the kind of outreach work an action captures
type ActionType string

const (
	ActionTypeOutreach ActionType = "OUTREACH"
	ActionTypeFollowUp ActionType = "FOLLOW_UP"
	ActionTypeNurture  ActionType = "NURTURE"
	ActionTypeCallPrep ActionType = "CALL_PREP"
	ActionTypePostCall ActionType = "POST_CALL"
	ActionTypeContent  ActionType = "CONTENT"
	ActionTypeFastWin  ActionType = "FAST_WIN"
)

// AllActionTypes returns all valid action types
func AllActionTypes() []ActionType {
	return []ActionType{
		ActionTypeOutreach,
		ActionTypeFollowUp,
		ActionTypeNurture,
		ActionTypeCallPrep,
		ActionTypePostCall,
		ActionTypeContent,
		ActionTypeFastWin,
	}
}

// IsValid checks if the action type is valid
func (t ActionType) IsValid() bool {
	switch t {
	case ActionTypeOutreach,
		ActionTypeFollowUp,
		ActionTypeNurture,
		ActionTypeCallPrep,
		ActionTypePostCall,
		ActionTypeContent,
		ActionTypeFastWin:
		return true
	default:
		return false
	}
}

// String returns the string representation of the action type
func (t ActionType) String() string {
	return string(t)
}

// ParseActionType parses a string into an ActionType
func ParseActionType(s string) (ActionType, error) {
	typ := ActionType(s)
	if !typ.IsValid() {
		return "", fmt.Errorf("invalid action type: %s", s)
	}
	return typ, nil
}
