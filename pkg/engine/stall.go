package engine

import (
	"fmt"
	"time"

	"github.com/cadencehq/cadence/pkg/domain/model"
	"github.com/cadencehq/cadence/pkg/domain/model/config"
)

// DetectStall inspects one lead and the count of its actions awaiting a
// reply, and recommends a channel escalation when the conversation has
// gone quiet past the lead's cadence. Returns nil when the lead has no
// recorded channel or interaction history, or when nothing is pending.
// The result is re-derived on every call, never persisted.
func DetectStall(lead *model.Lead, pendingSent int, policy *config.PlanningPolicy, now time.Time) *model.StallNudge {
	if lead == nil || !lead.PreferredChannel.IsValid() || lead.LastInteractionAt == nil {
		return nil
	}
	if pendingSent < 1 {
		return nil
	}

	threshold := lead.CadenceDays
	if threshold <= 0 {
		threshold = policy.StallThresholdFor(lead.PreferredChannel)
	}
	if threshold <= 0 {
		return nil
	}

	daysSince := WholeDays(now.Sub(*lead.LastInteractionAt))
	if daysSince < threshold {
		return nil
	}

	target := policy.EscalationFor(lead.PreferredChannel)
	if target == "" {
		return nil
	}

	return &model.StallNudge{
		LeadID:                   lead.ID,
		NudgeType:                model.NudgeTypeChannelEscalation,
		Suggestion:               fmt.Sprintf("Try moving this to %s", target),
		DaysSinceLastInteraction: daysSince,
	}
}
