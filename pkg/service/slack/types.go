package slack

import (
	"context"

	"github.com/cadencehq/cadence/pkg/domain/model"
)

// Service provides the Slack surface used for daily digests and stall
// nudges. Implementations must be safe for concurrent use.
type Service interface {
	// PostPlanDigest posts a Block Kit summary of the generated plan.
	// actions resolves the plan's action IDs to full records.
	PostPlanDigest(ctx context.Context, plan *model.DailyPlan, actions map[string]*model.Action) error

	// PostStallNudges posts one message covering all stall nudges found
	// for a user. Silently skips when nudges is empty.
	PostStallNudges(ctx context.Context, userID string, nudges []*model.StallNudge, leads map[string]*model.Lead) error
}
