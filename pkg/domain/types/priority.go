package types

import "fmt"

// PriorityLevel represents the urgency classification of a single action
type PriorityLevel string

const (
	PriorityHigh   PriorityLevel = "HIGH"
	PriorityMedium PriorityLevel = "MEDIUM"
	PriorityLow    PriorityLevel = "LOW"
)

// AllPriorityLevels returns all valid priority levels
func AllPriorityLevels() []PriorityLevel {
	return []PriorityLevel{
		PriorityHigh,
		PriorityMedium,
		PriorityLow,
	}
}

// IsValid checks if the priority level is valid
func (p PriorityLevel) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// Score returns the numeric weight used as the primary key of the
// next-move score (High=3, Medium=2, Low=1).
func (p PriorityLevel) Score() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// String returns the string representation of the priority level
func (p PriorityLevel) String() string {
	return string(p)
}

// ParsePriorityLevel parses a string into a PriorityLevel
func ParsePriorityLevel(s string) (PriorityLevel, error) {
	level := PriorityLevel(s)
	if !level.IsValid() {
		return "", fmt.Errorf("invalid priority level: %s", s)
	}
	return level, nil
}
