package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/cadencehq/cadence/pkg/domain/interfaces"
	"github.com/cadencehq/cadence/pkg/domain/model"
	"github.com/cadencehq/cadence/pkg/domain/model/config"
	"github.com/cadencehq/cadence/pkg/domain/types"
	"github.com/cadencehq/cadence/pkg/engine"
	"github.com/cadencehq/cadence/pkg/service/slack"
	"github.com/cadencehq/cadence/pkg/utils/async"
)

// outcomeHistoryLimit bounds how much completion history the planner
// loads. The recovery window is smaller; the margin covers days without
// recorded outcomes.
const outcomeHistoryLimit = 7

type PlanUseCase struct {
	repo   interfaces.Repository
	slack  slack.Service
	policy *config.PlanningPolicy
	now    func() time.Time
}

func NewPlanUseCase(repo interfaces.Repository, svc slack.Service, policy *config.PlanningPolicy, now func() time.Time) *PlanUseCase {
	return &PlanUseCase{
		repo:   repo,
		slack:  svc,
		policy: policy,
		now:    now,
	}
}

// GeneratePlan builds and persists the daily plan for one user and date.
// freeMinutes < 0 means no calendar signal. Regenerating for the same
// date replaces the stored plan. The Slack digest is posted best-effort
// and never fails the call.
func (uc *PlanUseCase) GeneratePlan(ctx context.Context, userID string, date time.Time, freeMinutes int, override *model.CapacityOverride) (*model.DailyPlan, error) {
	if userID == "" {
		return nil, goerr.New("user ID is required")
	}
	if override != nil && !override.Tier.IsValid() {
		return nil, goerr.New("invalid override tier", goerr.V("tier", override.Tier))
	}

	actions, err := uc.repo.Action().ListOpenByUser(ctx, userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load open actions", goerr.V(UserIDKey, userID))
	}
	leads, err := uc.repo.Lead().ListByUser(ctx, userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load leads", goerr.V(UserIDKey, userID))
	}
	outcomes, err := uc.repo.Outcome().ListRecent(ctx, userID, outcomeHistoryLimit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load outcome history", goerr.V(UserIDKey, userID))
	}

	// Missing settings are fine; policy defaults apply. A backend
	// failure is not absence and must surface.
	settings, err := uc.repo.Settings().Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(err, "failed to load settings", goerr.V(UserIDKey, userID))
		}
		settings = nil
	}

	plan := engine.BuildDailyPlan(engine.PlanInput{
		UserID:         userID,
		Date:           date,
		Actions:        actions,
		Leads:          leads,
		FreeMinutes:    freeMinutes,
		Override:       override,
		RecentOutcomes: outcomes,
		Settings:       settings,
		Policy:         uc.policy,
		Now:            uc.now(),
	})

	stored, err := uc.repo.Plan().Put(ctx, plan)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store plan",
			goerr.V(UserIDKey, userID), goerr.V("date", plan.Date.Format("2006-01-02")))
	}

	if uc.slack != nil {
		byID := make(map[string]*model.Action, len(actions))
		for _, action := range actions {
			byID[action.ID] = action
		}
		async.Dispatch(ctx, func(ctx context.Context) error {
			return uc.slack.PostPlanDigest(ctx, stored, byID)
		})
	}

	return stored, nil
}

func (uc *PlanUseCase) GetPlan(ctx context.Context, userID string, date time.Time) (*model.DailyPlan, error) {
	plan, err := uc.repo.Plan().Get(ctx, userID, date)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrPlanNotFound, "plan not found",
				goerr.V(UserIDKey, userID), goerr.V("date", date.Format("2006-01-02")))
		}
		return nil, goerr.Wrap(err, "failed to load plan",
			goerr.V(UserIDKey, userID), goerr.V("date", date.Format("2006-01-02")))
	}
	return plan, nil
}

// RecordOutcome stores whether the user completed their plan for a date.
// The outcome inherits the plan's recovery flag so consecutive recovery
// days can be told apart later.
func (uc *PlanUseCase) RecordOutcome(ctx context.Context, userID string, date time.Time, completed bool) (*model.PlanOutcome, error) {
	plan, err := uc.repo.Plan().Get(ctx, userID, date)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrPlanNotFound, "no plan for this date",
				goerr.V(UserIDKey, userID), goerr.V("date", date.Format("2006-01-02")))
		}
		return nil, goerr.Wrap(err, "failed to load plan",
			goerr.V(UserIDKey, userID), goerr.V("date", date.Format("2006-01-02")))
	}

	outcome := &model.PlanOutcome{
		UserID:    userID,
		Date:      plan.Date,
		Completed: completed,
		Recovery:  plan.TierSource == types.TierSourceRecovery,
	}
	if err := uc.repo.Outcome().Put(ctx, outcome); err != nil {
		return nil, goerr.Wrap(err, "failed to store outcome",
			goerr.V(UserIDKey, userID), goerr.V("date", date.Format("2006-01-02")))
	}
	return outcome, nil
}

// SaveSettings stores a user's planning defaults
func (uc *PlanUseCase) SaveSettings(ctx context.Context, settings *model.UserSettings) error {
	if settings.UserID == "" {
		return goerr.New("user ID is required")
	}
	if settings.DefaultTier != "" && !settings.DefaultTier.IsValid() {
		return goerr.New("invalid default tier", goerr.V("tier", settings.DefaultTier))
	}
	if settings.DefaultFreeMinutes < 0 {
		return goerr.New("default free minutes cannot be negative",
			goerr.V("default_free_minutes", settings.DefaultFreeMinutes))
	}

	if err := uc.repo.Settings().Put(ctx, settings); err != nil {
		return goerr.Wrap(err, "failed to store settings", goerr.V(UserIDKey, settings.UserID))
	}
	return nil
}

// GetSettings returns the user's stored defaults, or nil when none exist
func (uc *PlanUseCase) GetSettings(ctx context.Context, userID string) (*model.UserSettings, error) {
	settings, err := uc.repo.Settings().Get(ctx, userID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to load settings", goerr.V(UserIDKey, userID))
	}
	return settings, nil
}

// Lanes classifies the user's open actions and returns them with their
// lane assignments for surfacing.
func (uc *PlanUseCase) Lanes(ctx context.Context, userID string) ([]*model.Action, map[string]model.LaneAssignment, error) {
	actions, err := uc.repo.Action().ListOpenByUser(ctx, userID)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to load open actions", goerr.V(UserIDKey, userID))
	}
	leads, err := uc.repo.Lead().ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to load leads", goerr.V(UserIDKey, userID))
	}

	leadMap := make(map[string]*model.Lead, len(leads))
	for _, lead := range leads {
		leadMap[lead.ID] = lead
	}

	assignments := engine.AssignLanes(actions, leadMap, uc.policy, uc.now())
	return actions, assignments, nil
}

// BestAction answers "what is the single next thing to do". Returns nil
// when no action qualifies.
func (uc *PlanUseCase) BestAction(ctx context.Context, userID string) (*model.Action, error) {
	actions, assignments, err := uc.Lanes(ctx, userID)
	if err != nil {
		return nil, err
	}

	id := engine.BestAction(actions, assignments)
	if id == "" {
		return nil, nil
	}
	for _, action := range actions {
		if action.ID == id {
			return action, nil
		}
	}
	return nil, nil
}
