package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/cadencehq/cadence/pkg/domain/interfaces"
	"github.com/cadencehq/cadence/pkg/domain/model"
	"github.com/cadencehq/cadence/pkg/domain/model/config"
	"github.com/cadencehq/cadence/pkg/domain/types"
	"github.com/cadencehq/cadence/pkg/engine"
	"github.com/cadencehq/cadence/pkg/service/slack"
	"github.com/cadencehq/cadence/pkg/utils/errutil"
)

// evaluateConcurrency caps parallel per-user evaluations in the fan-out
const evaluateConcurrency = 4

type NudgeUseCase struct {
	repo   interfaces.Repository
	slack  slack.Service
	policy *config.PlanningPolicy
	now    func() time.Time
}

func NewNudgeUseCase(repo interfaces.Repository, svc slack.Service, policy *config.PlanningPolicy, now func() time.Time) *NudgeUseCase {
	return &NudgeUseCase{
		repo:   repo,
		slack:  svc,
		policy: policy,
		now:    now,
	}
}

// EvaluateNudges scans a user's leads for stalled conversations: leads
// with sent-but-unanswered actions whose quiet period exceeds their
// cadence. At most one nudge per lead. Results are re-derived each call,
// never persisted.
func (uc *NudgeUseCase) EvaluateNudges(ctx context.Context, userID string) ([]*model.StallNudge, error) {
	leads, err := uc.repo.Lead().ListByUser(ctx, userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load leads", goerr.V(UserIDKey, userID))
	}

	now := uc.now()
	nudges := make([]*model.StallNudge, 0)
	for _, lead := range leads {
		pending, err := uc.repo.Action().CountByLeadAndState(ctx, userID, lead.ID, types.ActionStateSent)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to count pending sends",
				goerr.V(UserIDKey, userID), goerr.V(LeadIDKey, lead.ID))
		}

		if nudge := engine.DetectStall(lead, pending, uc.policy, now); nudge != nil {
			nudges = append(nudges, nudge)
		}
	}

	return nudges, nil
}

// Notify posts the given nudges to Slack. No-op without a Slack service
// or with zero nudges.
func (uc *NudgeUseCase) Notify(ctx context.Context, userID string, nudges []*model.StallNudge) error {
	if uc.slack == nil || len(nudges) == 0 {
		return nil
	}

	leads, err := uc.repo.Lead().ListByUser(ctx, userID)
	if err != nil {
		return goerr.Wrap(err, "failed to load leads", goerr.V(UserIDKey, userID))
	}
	leadMap := make(map[string]*model.Lead, len(leads))
	for _, lead := range leads {
		leadMap[lead.ID] = lead
	}

	if err := uc.slack.PostStallNudges(ctx, userID, nudges, leadMap); err != nil {
		return goerr.Wrap(err, "failed to notify nudges", goerr.V(UserIDKey, userID))
	}
	return nil
}

// EvaluateAllUsers fans the stall scan out over every known user. Users
// are drawn from both the settings and lead stores; a user who tracks
// leads without ever saving settings still gets scanned. One user's
// failure is logged and does not stop the others.
func (uc *NudgeUseCase) EvaluateAllUsers(ctx context.Context) error {
	settingsUsers, err := uc.repo.Settings().ListUserIDs(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to list users with settings")
	}
	leadUsers, err := uc.repo.Lead().ListUserIDs(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to list users with leads")
	}

	seen := make(map[string]bool, len(settingsUsers)+len(leadUsers))
	userIDs := make([]string, 0, len(settingsUsers)+len(leadUsers))
	for _, id := range append(settingsUsers, leadUsers...) {
		if seen[id] {
			continue
		}
		seen[id] = true
		userIDs = append(userIDs, id)
	}
	sort.Strings(userIDs)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(evaluateConcurrency)

	for _, userID := range userIDs {
		g.Go(func() error {
			nudges, err := uc.EvaluateNudges(ctx, userID)
			if err != nil {
				_ = errutil.Handle(ctx, err, "stall evaluation failed")
				return nil
			}
			if err := uc.Notify(ctx, userID, nudges); err != nil {
				_ = errutil.Handle(ctx, err, "stall notification failed")
			}
			return nil
		})
	}

	return g.Wait()
}
