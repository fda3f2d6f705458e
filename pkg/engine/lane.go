package engine

import (
	"sort"
	"time"

	"github.com/cadencehq/cadence/pkg/domain/model"
	"github.com/cadencehq/cadence/pkg/domain/model/config"
	"github.com/cadencehq/cadence/pkg/domain/types"
)

// Next-move score composition. The steps keep the three keys strictly
// layered: priority level always dominates days overdue, which always
// dominates the shortness bonus.
const (
	levelStep      = 1000.0
	overdueStep    = 10.0
	maxOverdueDays = 30
	shortnessCeil  = 60
	shortnessScale = 10.0
)

// AssignLanes buckets every open action into exactly one lane and
// computes its next-move score. leads maps lead ID to lead; actions
// without a lead (general business work) never ride in_motion.
func AssignLanes(actions []*model.Action, leads map[string]*model.Lead, policy *config.PlanningPolicy, now time.Time) map[string]model.LaneAssignment {
	assignments := make(map[string]model.LaneAssignment, len(actions))

	for _, action := range actions {
		if !action.IsOpen() {
			continue
		}

		priority := ClassifyPriority(action, now)
		overdue := DaysOverdue(action, now)

		lane := types.LaneOnDeck
		switch {
		case priority.Level == types.PriorityHigh || overdue > 0:
			lane = types.LanePriority
		case leads[action.LeadID].HasRecentInteraction(now, policy.InMotionWindowDays):
			lane = types.LaneInMotion
		}

		assignment := model.LaneAssignment{
			Lane:          lane,
			NextMoveScore: nextMoveScore(priority.Level, overdue, action.EstimatedMinutes),
		}
		if action.PromisedDueAt != nil {
			assignment.Promise = FormatPromise(*action.PromisedDueAt, now)
		}
		assignments[action.ID] = assignment
	}

	return assignments
}

// nextMoveScore combines priority level (primary), days overdue
// (secondary, clamped) and estimated minutes (tertiary, shorter wins).
func nextMoveScore(level types.PriorityLevel, overdue, estimatedMinutes int) float64 {
	score := float64(level.Score()) * levelStep

	if overdue > 0 {
		if overdue > maxOverdueDays {
			overdue = maxOverdueDays
		}
		score += float64(overdue) * overdueStep
	}

	if estimatedMinutes > 0 && estimatedMinutes < shortnessCeil {
		score += float64(shortnessCeil-estimatedMinutes) / shortnessScale
	}

	return score
}

// SortByScore orders action IDs by next-move score descending, breaking
// ties by due date ascending and then by ID, so the ordering is stable
// and fully deterministic.
func SortByScore(ids []string, actions map[string]*model.Action, assignments map[string]model.LaneAssignment) {
	sort.SliceStable(ids, func(i, j int) bool {
		a, b := ids[i], ids[j]
		sa, sb := assignments[a].NextMoveScore, assignments[b].NextMoveScore
		if sa != sb {
			return sa > sb
		}
		da, db := actions[a].DueDate, actions[b].DueDate
		if !da.Equal(db) {
			return da.Before(db)
		}
		return a < b
	})
}

// BestAction returns the single highest-scoring action across the
// priority and in_motion lanes, or "" when neither lane has actions.
func BestAction(actions []*model.Action, assignments map[string]model.LaneAssignment) string {
	byID := make(map[string]*model.Action, len(actions))
	candidates := make([]string, 0, len(assignments))

	for _, action := range actions {
		assignment, ok := assignments[action.ID]
		if !ok {
			continue
		}
		if assignment.Lane != types.LanePriority && assignment.Lane != types.LaneInMotion {
			continue
		}
		byID[action.ID] = action
		candidates = append(candidates, action.ID)
	}

	if len(candidates) == 0 {
		return ""
	}

	SortByScore(candidates, byID, assignments)
	return candidates[0]
}
