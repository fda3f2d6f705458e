package types

import "fmt"

// Lane represents the surfacing bucket an open action is assigned to
type Lane string

const (
	LanePriority Lane = "priority"
	LaneInMotion Lane = "in_motion"
	LaneOnDeck   Lane = "on_deck"
)

// AllLanes returns all lanes in surfacing order
func AllLanes() []Lane {
	return []Lane{
		LanePriority,
		LaneInMotion,
		LaneOnDeck,
	}
}

// IsValid checks if the lane is valid
func (l Lane) IsValid() bool {
	switch l {
	case LanePriority, LaneInMotion, LaneOnDeck:
		return true
	default:
		return false
	}
}

// Rank returns the fill order of the lane when building a plan
// (priority first).
func (l Lane) Rank() int {
	switch l {
	case LanePriority:
		return 0
	case LaneInMotion:
		return 1
	case LaneOnDeck:
		return 2
	default:
		return 3
	}
}

// String returns the string representation of the lane
func (l Lane) String() string {
	return string(l)
}

// ParseLane parses a string into a Lane
func ParseLane(s string) (Lane, error) {
	lane := Lane(s)
	if !lane.IsValid() {
		return "", fmt.Errorf("invalid lane: %s", s)
	}
	return lane, nil
}
