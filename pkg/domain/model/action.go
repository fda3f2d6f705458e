package model

import (
	"time"

	"github.com/cadencehq/cadence/pkg/domain/types"
)

// Action represents a single unit of outreach work tracked from creation
// to completion or archival.
type Action struct {
	ID     string
	UserID string
	LeadID string // Optional: empty means a general business action
	Type   types.ActionType
	State  types.ActionState
	Title  string
	Note   string

	// DueDate is a calendar date; only its year/month/day are meaningful.
	DueDate time.Time
	// SnoozeUntil is set iff State == SNOOZED.
	SnoozeUntil *time.Time
	// PromisedDueAt is an explicit commitment deadline, independent of DueDate.
	PromisedDueAt    *time.Time
	EstimatedMinutes int // 0 = no estimate
	AutoCreated      bool

	CreatedAt time.Time
	UpdatedAt time.Time
	// CompletedAt is non-nil iff State is DONE, SENT or REPLIED.
	CompletedAt *time.Time
}

// IsOpen reports whether the action still needs attention
func (a *Action) IsOpen() bool {
	return a.State.IsOpen()
}

// ConsumesCapacity reports whether the action can take a daily plan slot.
// SENT actions stay in lanes awaiting a reply but are not plannable work.
func (a *Action) ConsumesCapacity() bool {
	return a.IsOpen() && a.State != types.ActionStateSent
}
