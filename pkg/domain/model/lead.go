package model

import (
	"time"

	"github.com/cadencehq/cadence/pkg/domain/types"
)

// Lead represents a tracked person with communication preferences and
// interaction history. A lead may be referenced by any number of actions;
// actions do not own leads.
type Lead struct {
	ID     string
	UserID string
	Name   string

	// PreferredChannel is empty when no preference is recorded.
	PreferredChannel types.Channel
	// CadenceDays is the expected touch frequency in days; 0 = not set.
	CadenceDays       int
	LastInteractionAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasRecentInteraction reports whether the lead was touched within the
// given window ending at now. Used to decide the in_motion lane.
func (l *Lead) HasRecentInteraction(now time.Time, windowDays int) bool {
	if l == nil || l.LastInteractionAt == nil {
		return false
	}
	return now.Sub(*l.LastInteractionAt) <= time.Duration(windowDays)*24*time.Hour
}
