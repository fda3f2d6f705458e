package engine

import (
	"fmt"
	"time"

	"github.com/cadencehq/cadence/pkg/domain/model"
	"github.com/cadencehq/cadence/pkg/domain/types"
)

// ClassifyPriority scores one action at the given instant. It is a pure
// function of the action and now; rules are evaluated in order and the
// first match wins.
func ClassifyPriority(action *model.Action, now time.Time) model.PriorityResult {
	if action.State == types.ActionStateReplied {
		return model.PriorityResult{
			Level:  types.PriorityHigh,
			Reason: "reply received, respond while fresh",
		}
	}

	if action.State == types.ActionStateSnoozed && action.SnoozeUntil != nil {
		if !DateOf(*action.SnoozeUntil).After(DateOf(now)) {
			return model.PriorityResult{
				Level:  types.PriorityHigh,
				Reason: "snooze expired",
			}
		}
	}

	overdue := DaysOverdue(action, now)

	if action.Type == types.ActionTypeFollowUp {
		switch {
		case overdue == 0:
			return model.PriorityResult{Level: types.PriorityHigh, Reason: "due today"}
		case overdue > 0 && overdue <= 3:
			return model.PriorityResult{Level: types.PriorityHigh, Reason: "overdue, stay on track"}
		case overdue > 3:
			return model.PriorityResult{Level: types.PriorityMedium, Reason: "overdue, less urgent"}
		}
		// Future follow-ups fall through to the type defaults.
	}

	switch action.Type {
	case types.ActionTypePostCall, types.ActionTypeCallPrep:
		if overdue == 0 {
			return model.PriorityResult{Level: types.PriorityHigh, Reason: "call work due today"}
		}
		return model.PriorityResult{Level: types.PriorityMedium, Reason: "call work"}
	case types.ActionTypeOutreach:
		return model.PriorityResult{Level: types.PriorityMedium, Reason: "new outreach"}
	case types.ActionTypeNurture, types.ActionTypeContent:
		return model.PriorityResult{Level: types.PriorityLow, Reason: "low-pressure touch"}
	default:
		return model.PriorityResult{Level: types.PriorityMedium, Reason: "standard priority"}
	}
}

// DaysOverdue returns how many calendar days past due the action is:
// positive = overdue, 0 = due today, negative = due in the future.
func DaysOverdue(action *model.Action, now time.Time) int {
	return DaysBetween(action.DueDate, now)
}

// UrgencyLabel derives the display label from the due date alone,
// independent of the priority level. Empty string means no label.
func UrgencyLabel(action *model.Action, now time.Time) string {
	overdue := DaysOverdue(action, now)
	switch {
	case overdue == 0:
		return "due today"
	case overdue == 1:
		return "overdue 1 day"
	case overdue > 1:
		return fmt.Sprintf("overdue %d days", overdue)
	case overdue == -1:
		return "due tomorrow"
	default:
		return ""
	}
}
