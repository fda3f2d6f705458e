package model

import (
	"time"

	"github.com/cadencehq/cadence/pkg/domain/types"
)

// DailyPlan is the bounded set of actions selected for one user on one
// date. Regeneration fully replaces any earlier plan for the same date.
type DailyPlan struct {
	ID     string
	UserID string
	// Date is the plan's calendar date at local midnight.
	Date time.Time

	Tier       types.CapacityTier
	TierSource types.TierSource
	// OverrideReason is set only when TierSource is override.
	OverrideReason string
	MaxActions     int

	// FastWinID is the single quick-completion action, counted toward
	// MaxActions. Empty when no action qualified.
	FastWinID string
	// ActionIDs is the ordered selection, fast win first when present.
	ActionIDs []string

	GeneratedAt time.Time
}

// Contains reports whether the plan selected the given action
func (p *DailyPlan) Contains(actionID string) bool {
	for _, id := range p.ActionIDs {
		if id == actionID {
			return true
		}
	}
	return false
}

// CapacityOverride is a user-chosen tier for a specific date
type CapacityOverride struct {
	Tier   types.CapacityTier
	Reason string
}

// PlanOutcome records whether the user completed their plan on a given
// date. The capacity planner reads the most recent outcomes to decide
// adaptive recovery.
type PlanOutcome struct {
	UserID string
	// Date is the plan's calendar date at local midnight.
	Date      time.Time
	Completed bool
	// Recovery marks outcomes of plans that were themselves recovery
	// days, so consecutive recovery days can step micro -> light.
	Recovery  bool
	CreatedAt time.Time
}

// UserSettings holds per-user planning defaults supplied by the caller
type UserSettings struct {
	UserID string
	// DefaultTier is the user's stored baseline tier; distinguishes an
	// adaptive recovery day from the user simply preferring small days.
	DefaultTier types.CapacityTier
	// WorkEndTime is "HH:MM"; malformed values fall back per component.
	WorkEndTime string
	// DefaultFreeMinutes is used when no calendar signal is available;
	// 0 = use the policy default.
	DefaultFreeMinutes int

	UpdatedAt time.Time
}
