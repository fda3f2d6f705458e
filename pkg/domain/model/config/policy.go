package config

import (
	"github.com/cadencehq/cadence/pkg/domain/types"
)

// TierCapacity maps a capacity tier to its maximum action count
type TierCapacity struct {
	Tier       types.CapacityTier
	MaxActions int
}

// MinuteBand maps available free minutes to a capacity tier. A band
// matches when free minutes are strictly below UpToMinutes; the last
// band should use UpToMinutes = 0 meaning "everything above".
type MinuteBand struct {
	UpToMinutes int
	Tier        types.CapacityTier
}

// StallDefault is the fallback stall threshold for a channel, used when
// a lead has no explicit cadence.
type StallDefault struct {
	Channel     types.Channel
	DefaultDays int
}

// EscalationPath maps a lead's current preferred channel to the channel
// a stall nudge should suggest moving to.
type EscalationPath struct {
	From types.Channel
	To   types.Channel
}

// PlanningPolicy holds every numeric boundary and lookup table the
// planning engine consults. The numbers are product policy, not
// engineering fact: they are injected here rather than hard-coded so a
// policy change never touches algorithm code.
type PlanningPolicy struct {
	TierCapacities []TierCapacity
	MinuteBands    []MinuteBand
	StallDefaults  []StallDefault
	Escalations    []EscalationPath

	// InMotionWindowDays bounds how recent a lead interaction must be
	// for its actions to ride the in_motion lane.
	InMotionWindowDays int
	// FastWinMaxMinutes is the estimate ceiling for fast-win selection.
	FastWinMaxMinutes int
	// DefaultFreeMinutes is assumed when no calendar signal exists and
	// the user has no stored default.
	DefaultFreeMinutes int
	// WorkEndTime is the fallback "HH:MM" used for promise deadlines.
	WorkEndTime string
}

// DefaultPlanningPolicy returns the stock policy. Boundaries mirror the
// product defaults: micro <30min/1 action, light <90min/3, standard
// <240min/5, heavy otherwise/8.
func DefaultPlanningPolicy() *PlanningPolicy {
	return &PlanningPolicy{
		TierCapacities: []TierCapacity{
			{Tier: types.TierMicro, MaxActions: 1},
			{Tier: types.TierLight, MaxActions: 3},
			{Tier: types.TierStandard, MaxActions: 5},
			{Tier: types.TierHeavy, MaxActions: 8},
		},
		MinuteBands: []MinuteBand{
			{UpToMinutes: 30, Tier: types.TierMicro},
			{UpToMinutes: 90, Tier: types.TierLight},
			{UpToMinutes: 240, Tier: types.TierStandard},
			{UpToMinutes: 0, Tier: types.TierHeavy},
		},
		StallDefaults: []StallDefault{
			{Channel: types.ChannelLinkedIn, DefaultDays: 7},
			{Channel: types.ChannelEmail, DefaultDays: 7},
			{Channel: types.ChannelText, DefaultDays: 3},
			{Channel: types.ChannelOther, DefaultDays: 7},
		},
		Escalations: []EscalationPath{
			{From: types.ChannelLinkedIn, To: types.ChannelEmail},
			{From: types.ChannelEmail, To: types.ChannelText},
			{From: types.ChannelText, To: types.ChannelEmail},
			{From: types.ChannelOther, To: types.ChannelEmail},
		},
		InMotionWindowDays: 14,
		FastWinMaxMinutes:  5,
		DefaultFreeMinutes: 120,
		WorkEndTime:        "17:00",
	}
}

// MaxActionsFor returns the action cap for a tier, falling back to 1
// for an unknown tier so a plan is never unbounded.
func (p *PlanningPolicy) MaxActionsFor(tier types.CapacityTier) int {
	for _, tc := range p.TierCapacities {
		if tc.Tier == tier {
			return tc.MaxActions
		}
	}
	return 1
}

// TierForMinutes resolves free minutes to a capacity tier via the
// minute bands.
func (p *PlanningPolicy) TierForMinutes(minutes int) types.CapacityTier {
	for _, band := range p.MinuteBands {
		if band.UpToMinutes == 0 {
			continue
		}
		if minutes < band.UpToMinutes {
			return band.Tier
		}
	}
	for _, band := range p.MinuteBands {
		if band.UpToMinutes == 0 {
			return band.Tier
		}
	}
	return types.TierMicro
}

// StallThresholdFor returns the default stall threshold for a channel;
// 0 means no default is configured and no nudge should fire.
func (p *PlanningPolicy) StallThresholdFor(channel types.Channel) int {
	for _, d := range p.StallDefaults {
		if d.Channel == channel {
			return d.DefaultDays
		}
	}
	return 0
}

// EscalationFor returns the suggested escalation target for a channel;
// empty when no path is configured.
func (p *PlanningPolicy) EscalationFor(channel types.Channel) types.Channel {
	for _, e := range p.Escalations {
		if e.From == channel {
			return e.To
		}
	}
	return ""
}
