package model

import (
	"github.com/cadencehq/cadence/pkg/domain/types"
)

// PriorityResult is the classification of one action at evaluation time.
// It is derived, never persisted.
type PriorityResult struct {
	Level  types.PriorityLevel
	Reason string
}

// LaneAssignment places one open action into exactly one lane with a
// continuous score for cross-lane ranking.
type LaneAssignment struct {
	Lane types.Lane
	// NextMoveScore sorts descending: priority level first, then days
	// overdue, then shorter estimates.
	NextMoveScore float64
	// Promise is the commitment deadline rendered relative to evaluation
	// time ("today", "overdue by 2 days"); empty when none exists.
	Promise string
}

// StallNudge recommends escalating a stalled conversation to another
// channel. At most one nudge per lead per evaluation; re-derived each
// time rather than persisted.
type StallNudge struct {
	LeadID                   string
	NudgeType                string
	Suggestion               string
	DaysSinceLastInteraction int
}

// NudgeTypeChannelEscalation is the only nudge type emitted today
const NudgeTypeChannelEscalation = "channel_escalation"
