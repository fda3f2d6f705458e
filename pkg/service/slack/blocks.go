package slack

import (
	"fmt"
	"strings"

	"github.com/slack-go/slack"

	"github.com/cadencehq/cadence/pkg/domain/model"
	"github.com/cadencehq/cadence/pkg/domain/types"
	"github.com/cadencehq/cadence/pkg/engine"
)

// DigestBlocks renders a daily plan as Block Kit blocks. Actions missing
// from the lookup map are shown by ID only.
func DigestBlocks(plan *model.DailyPlan, actions map[string]*model.Action) []slack.Block {
	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType,
			fmt.Sprintf("Today's plan · %s", plan.Date.Format("Mon, Jan 2")), false, false)),
		slack.NewContextBlock("",
			slack.NewTextBlockObject(slack.MarkdownType, tierLine(plan), false, false)),
	}

	if len(plan.ActionIDs) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, "Nothing queued today. Enjoy the slack.", false, false),
			nil, nil))
		return blocks
	}

	var sb strings.Builder
	for i, id := range plan.ActionIDs {
		line := id
		if action, ok := actions[id]; ok {
			line = action.Title
			if action.EstimatedMinutes > 0 {
				line += fmt.Sprintf(" _(%dm)_", action.EstimatedMinutes)
			}
			if action.PromisedDueAt != nil {
				line += fmt.Sprintf(" · promised %s", engine.FormatPromise(*action.PromisedDueAt, plan.GeneratedAt))
			}
		}
		if id == plan.FastWinID {
			line = ":zap: " + line
		}
		fmt.Fprintf(&sb, "%d. %s\n", i+1, line)
	}

	blocks = append(blocks, slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, sb.String(), false, false),
		nil, nil))
	return blocks
}

func tierLine(plan *model.DailyPlan) string {
	switch plan.TierSource {
	case types.TierSourceOverride:
		if plan.OverrideReason != "" {
			return fmt.Sprintf("*%s* day (your call: %s)", plan.Tier, plan.OverrideReason)
		}
		return fmt.Sprintf("*%s* day (your call)", plan.Tier)
	case types.TierSourceRecovery:
		return fmt.Sprintf("*%s* day (easing back in after a rough patch)", plan.Tier)
	default:
		return fmt.Sprintf("*%s* day", plan.Tier)
	}
}

// NudgeBlocks renders stall nudges as Block Kit blocks, one line per
// stalled lead.
func NudgeBlocks(nudges []*model.StallNudge, leads map[string]*model.Lead) []slack.Block {
	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType,
			"Stalled conversations", false, false)),
	}

	var sb strings.Builder
	for _, nudge := range nudges {
		name := nudge.LeadID
		if lead, ok := leads[nudge.LeadID]; ok && lead.Name != "" {
			name = lead.Name
		}
		fmt.Fprintf(&sb, "• *%s*: quiet for %d days. %s\n",
			name, nudge.DaysSinceLastInteraction, nudge.Suggestion)
	}

	blocks = append(blocks, slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, sb.String(), false, false),
		nil, nil))
	return blocks
}
