package types

import "fmt"

// CapacityTier represents a coarse sizing of how many actions a daily
// plan should contain
type CapacityTier string

const (
	TierMicro    CapacityTier = "micro"
	TierLight    CapacityTier = "light"
	TierStandard CapacityTier = "standard"
	TierHeavy    CapacityTier = "heavy"
)

// AllCapacityTiers returns all valid capacity tiers, smallest first
func AllCapacityTiers() []CapacityTier {
	return []CapacityTier{
		TierMicro,
		TierLight,
		TierStandard,
		TierHeavy,
	}
}

// IsValid checks if the capacity tier is valid
func (t CapacityTier) IsValid() bool {
	switch t {
	case TierMicro, TierLight, TierStandard, TierHeavy:
		return true
	default:
		return false
	}
}

// String returns the string representation of the capacity tier
func (t CapacityTier) String() string {
	return string(t)
}

// ParseCapacityTier parses a string into a CapacityTier
func ParseCapacityTier(s string) (CapacityTier, error) {
	tier := CapacityTier(s)
	if !tier.IsValid() {
		return "", fmt.Errorf("invalid capacity tier: %s", s)
	}
	return tier, nil
}

// TierSource records how a plan's capacity tier was decided. The
// distinction matters for messaging: a user-chosen light day and an
// automatic recovery day read very differently.
type TierSource string

const (
	TierSourceOverride TierSource = "override"
	TierSourceRecovery TierSource = "recovery"
	TierSourceCalendar TierSource = "calendar"
)

// IsValid checks if the tier source is valid
func (s TierSource) IsValid() bool {
	switch s {
	case TierSourceOverride, TierSourceRecovery, TierSourceCalendar:
		return true
	default:
		return false
	}
}

// String returns the string representation of the tier source
func (s TierSource) String() string {
	return string(s)
}
