package engine

import (
	"fmt"
	"time"

	"github.com/cadencehq/cadence/pkg/domain/model"
	"github.com/cadencehq/cadence/pkg/domain/model/config"
	"github.com/cadencehq/cadence/pkg/domain/types"
)

// recoveryMissThreshold triggers adaptive recovery when the user missed
// at least this many of the last recoveryWindow eligible days.
const (
	recoveryMissThreshold = 2
	recoveryWindow        = 3
)

// PlanInput is the full snapshot the capacity planner consumes. All
// fields are read-only; BuildDailyPlan performs no I/O.
type PlanInput struct {
	UserID string
	// Date is the plan's target calendar date.
	Date time.Time
	// Actions is the user's open actions (SENT included; it is excluded
	// from capacity fill but stays visible in lanes).
	Actions []*model.Action
	Leads   []*model.Lead
	// FreeMinutes is the calendar-derived availability; negative means
	// the signal was unavailable and defaults apply.
	FreeMinutes int
	// Override is the user's manual tier choice for this date, if any.
	Override *model.CapacityOverride
	// RecentOutcomes is the user's plan completion history, newest
	// first. Only days with a recorded outcome are eligible for the
	// adaptive recovery window.
	RecentOutcomes []*model.PlanOutcome
	// Settings may be nil; policy defaults then apply.
	Settings *model.UserSettings
	Policy   *config.PlanningPolicy
	Now      time.Time
}

// BuildDailyPlan derives one daily plan from the snapshot. It is
// deterministic: identical inputs (including Now) produce an identical
// plan, and regenerating for a date replaces the earlier selection.
// Zero open actions yields an empty plan, not an error.
func BuildDailyPlan(in PlanInput) *model.DailyPlan {
	policy := in.Policy
	if policy == nil {
		policy = config.DefaultPlanningPolicy()
	}

	date := DateOf(in.Date)
	plan := &model.DailyPlan{
		ID:          planID(in.UserID, date),
		UserID:      in.UserID,
		Date:        date,
		GeneratedAt: in.Now,
	}

	plan.Tier, plan.TierSource, plan.OverrideReason = resolveTier(in, policy)
	plan.MaxActions = policy.MaxActionsFor(plan.Tier)

	leads := make(map[string]*model.Lead, len(in.Leads))
	for _, lead := range in.Leads {
		leads[lead.ID] = lead
	}
	assignments := AssignLanes(in.Actions, leads, policy, in.Now)

	byID := make(map[string]*model.Action, len(in.Actions))
	candidates := make([]string, 0, len(in.Actions))
	for _, action := range in.Actions {
		if _, ok := assignments[action.ID]; !ok {
			continue
		}
		if !action.ConsumesCapacity() {
			continue
		}
		byID[action.ID] = action
		candidates = append(candidates, action.ID)
	}

	plan.FastWinID = selectFastWin(candidates, byID, assignments, policy)

	remaining := plan.MaxActions
	if plan.FastWinID != "" {
		plan.ActionIDs = append(plan.ActionIDs, plan.FastWinID)
		remaining--
	}

	for _, id := range laneOrdered(candidates, byID, assignments) {
		if remaining <= 0 {
			break
		}
		if id == plan.FastWinID {
			continue
		}
		plan.ActionIDs = append(plan.ActionIDs, id)
		remaining--
	}

	return plan
}

// planID is deterministic per (user, date) so regenerating a plan
// overwrites the stored one instead of accumulating versions.
func planID(userID string, date time.Time) string {
	return fmt.Sprintf("%s_%s", userID, date.Format("2006-01-02"))
}

// resolveTier applies the tier decision ladder: manual override, then
// adaptive recovery, then calendar minute bands.
func resolveTier(in PlanInput, policy *config.PlanningPolicy) (types.CapacityTier, types.TierSource, string) {
	if in.Override != nil && in.Override.Tier.IsValid() {
		return in.Override.Tier, types.TierSourceOverride, in.Override.Reason
	}

	if tier, ok := recoveryTier(in.RecentOutcomes); ok {
		return tier, types.TierSourceRecovery, ""
	}

	minutes := in.FreeMinutes
	if minutes < 0 {
		minutes = defaultFreeMinutes(in.Settings, policy)
	}
	return policy.TierForMinutes(minutes), types.TierSourceCalendar, ""
}

// recoveryTier checks the last eligible days for a missed-plan pattern.
// The first recovery day is micro; once the streak rebuilding has begun
// (the newest outcome is itself a recovery day) later days step to
// light.
func recoveryTier(outcomes []*model.PlanOutcome) (types.CapacityTier, bool) {
	window := outcomes
	if len(window) > recoveryWindow {
		window = window[:recoveryWindow]
	}

	missed := 0
	for _, outcome := range window {
		if !outcome.Completed {
			missed++
		}
	}
	if missed < recoveryMissThreshold {
		return "", false
	}

	if len(outcomes) > 0 && outcomes[0].Recovery {
		return types.TierLight, true
	}
	return types.TierMicro, true
}

func defaultFreeMinutes(settings *model.UserSettings, policy *config.PlanningPolicy) int {
	if settings != nil && settings.DefaultFreeMinutes > 0 {
		return settings.DefaultFreeMinutes
	}
	return policy.DefaultFreeMinutes
}

// selectFastWin picks the highest-scoring candidate that qualifies as a
// quick completion: an explicit FAST_WIN action, or anything estimated
// at or under the policy ceiling. Returns "" when nothing qualifies.
// REPLIED actions stay eligible for the regular fill but are never the
// fast win; they already carry a completion timestamp.
func selectFastWin(candidates []string, byID map[string]*model.Action, assignments map[string]model.LaneAssignment, policy *config.PlanningPolicy) string {
	quick := make([]string, 0, len(candidates))
	for _, id := range candidates {
		action := byID[id]
		if action.State.IsCompleted() {
			continue
		}
		isQuick := action.Type == types.ActionTypeFastWin ||
			(action.EstimatedMinutes > 0 && action.EstimatedMinutes <= policy.FastWinMaxMinutes)
		if isQuick {
			quick = append(quick, id)
		}
	}
	if len(quick) == 0 {
		return ""
	}

	SortByScore(quick, byID, assignments)
	return quick[0]
}

// laneOrdered walks the priority lane first, then in_motion, then
// on_deck, each lane sorted by next-move score descending.
func laneOrdered(candidates []string, byID map[string]*model.Action, assignments map[string]model.LaneAssignment) []string {
	ordered := make([]string, 0, len(candidates))
	for _, lane := range types.AllLanes() {
		laneIDs := make([]string, 0, len(candidates))
		for _, id := range candidates {
			if assignments[id].Lane == lane {
				laneIDs = append(laneIDs, id)
			}
		}
		SortByScore(laneIDs, byID, assignments)
		ordered = append(ordered, laneIDs...)
	}
	return ordered
}
