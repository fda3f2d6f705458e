package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/cadencehq/cadence/pkg/domain/model"
)

type planKey struct {
	userID string
	date   string
}

func newPlanKey(userID string, date time.Time) planKey {
	return planKey{userID: userID, date: date.Format("2006-01-02")}
}

// planRepository serializes writes per (user, date) behind a single
// mutex; a regenerated plan fully replaces the stored one.
type planRepository struct {
	mu    sync.RWMutex
	plans map[planKey]*model.DailyPlan
}

func newPlanRepository() *planRepository {
	return &planRepository{
		plans: make(map[planKey]*model.DailyPlan),
	}
}

func copyPlan(p *model.DailyPlan) *model.DailyPlan {
	copied := *p
	copied.ActionIDs = append([]string{}, p.ActionIDs...)
	return &copied
}

func (r *planRepository) Put(ctx context.Context, plan *model.DailyPlan) (*model.DailyPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := copyPlan(plan)
	r.plans[newPlanKey(plan.UserID, plan.Date)] = stored
	return copyPlan(stored), nil
}

func (r *planRepository) Get(ctx context.Context, userID string, date time.Time) (*model.DailyPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plan, exists := r.plans[newPlanKey(userID, date)]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "plan not found",
			goerr.V("user_id", userID), goerr.V("date", date.Format("2006-01-02")))
	}
	return copyPlan(plan), nil
}

func (r *planRepository) Delete(ctx context.Context, userID string, date time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := newPlanKey(userID, date)
	if _, exists := r.plans[key]; !exists {
		return goerr.Wrap(ErrNotFound, "plan not found",
			goerr.V("user_id", userID), goerr.V("date", date.Format("2006-01-02")))
	}
	delete(r.plans, key)
	return nil
}

type outcomeRepository struct {
	mu       sync.RWMutex
	outcomes map[planKey]*model.PlanOutcome
}

func newOutcomeRepository() *outcomeRepository {
	return &outcomeRepository{
		outcomes: make(map[planKey]*model.PlanOutcome),
	}
}

func (r *outcomeRepository) Put(ctx context.Context, outcome *model.PlanOutcome) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *outcome
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	r.outcomes[newPlanKey(outcome.UserID, outcome.Date)] = &stored
	return nil
}

func (r *outcomeRepository) ListRecent(ctx context.Context, userID string, limit int) ([]*model.PlanOutcome, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	outcomes := make([]*model.PlanOutcome, 0)
	for key, outcome := range r.outcomes {
		if key.userID == userID {
			copied := *outcome
			outcomes = append(outcomes, &copied)
		}
	}

	sort.Slice(outcomes, func(i, j int) bool {
		return outcomes[i].Date.After(outcomes[j].Date)
	})

	if limit > 0 && len(outcomes) > limit {
		outcomes = outcomes[:limit]
	}
	return outcomes, nil
}

type settingsRepository struct {
	mu       sync.RWMutex
	settings map[string]*model.UserSettings
}

func newSettingsRepository() *settingsRepository {
	return &settingsRepository{
		settings: make(map[string]*model.UserSettings),
	}
}

func (r *settingsRepository) Put(ctx context.Context, settings *model.UserSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *settings
	stored.UpdatedAt = time.Now().UTC()
	r.settings[settings.UserID] = &stored
	return nil
}

func (r *settingsRepository) Get(ctx context.Context, userID string) (*model.UserSettings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	settings, exists := r.settings[userID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "settings not found", goerr.V("user_id", userID))
	}
	copied := *settings
	return &copied, nil
}

func (r *settingsRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.settings))
	for id := range r.settings {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
