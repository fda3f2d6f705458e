package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/cadencehq/cadence/pkg/domain/interfaces"
	"github.com/cadencehq/cadence/pkg/domain/model"
	"github.com/cadencehq/cadence/pkg/domain/types"
	"github.com/cadencehq/cadence/pkg/repository/memory"
	"github.com/cadencehq/cadence/pkg/usecase"
)

func TestPlanUseCase_GeneratePlan(t *testing.T) {
	t.Run("generate and fetch", func(t *testing.T) {
		uc := newUseCases()
		ctx := context.Background()

		for _, title := range []string{"Follow up A", "Follow up B"} {
			_, err := uc.Action.Create(ctx, &model.Action{
				UserID:  testUserID,
				Type:    types.ActionTypeFollowUp,
				Title:   title,
				DueDate: testClock,
			})
			gt.NoError(t, err).Required()
		}

		plan, err := uc.Plan.GeneratePlan(ctx, testUserID, testClock, 120, nil)
		gt.NoError(t, err).Required()
		gt.Value(t, plan.Tier).Equal(types.TierStandard)
		gt.Value(t, plan.TierSource).Equal(types.TierSourceCalendar)
		gt.Array(t, plan.ActionIDs).Length(2)

		fetched, err := uc.Plan.GetPlan(ctx, testUserID, testClock)
		gt.NoError(t, err).Required()
		gt.Value(t, fetched.ID).Equal(plan.ID)
	})

	t.Run("regeneration replaces the stored plan", func(t *testing.T) {
		uc := newUseCases()
		ctx := context.Background()

		created, err := uc.Action.Create(ctx, &model.Action{
			UserID:  testUserID,
			Type:    types.ActionTypeFollowUp,
			Title:   "Follow up",
			DueDate: testClock,
		})
		gt.NoError(t, err).Required()

		first, err := uc.Plan.GeneratePlan(ctx, testUserID, testClock, 120, nil)
		gt.NoError(t, err).Required()
		gt.Array(t, first.ActionIDs).Length(1)

		_, err = uc.Action.Complete(ctx, testUserID, created.ID)
		gt.NoError(t, err).Required()

		second, err := uc.Plan.GeneratePlan(ctx, testUserID, testClock, 120, nil)
		gt.NoError(t, err).Required()
		gt.Value(t, second.ID).Equal(first.ID)
		gt.Array(t, second.ActionIDs).Length(0)

		fetched, err := uc.Plan.GetPlan(ctx, testUserID, testClock)
		gt.NoError(t, err).Required()
		gt.Array(t, fetched.ActionIDs).Length(0)
	})

	t.Run("manual override wins", func(t *testing.T) {
		uc := newUseCases()
		ctx := context.Background()

		plan, err := uc.Plan.GeneratePlan(ctx, testUserID, testClock, 300, &model.CapacityOverride{
			Tier:   types.TierMicro,
			Reason: "kid is sick",
		})
		gt.NoError(t, err).Required()
		gt.Value(t, plan.Tier).Equal(types.TierMicro)
		gt.Value(t, plan.TierSource).Equal(types.TierSourceOverride)
		gt.Value(t, plan.OverrideReason).Equal("kid is sick")
	})

	t.Run("invalid override tier fails", func(t *testing.T) {
		uc := newUseCases()

		_, err := uc.Plan.GeneratePlan(context.Background(), testUserID, testClock, 120, &model.CapacityOverride{
			Tier: "gigantic",
		})
		gt.Value(t, err).NotNil()
	})

	t.Run("get missing plan fails", func(t *testing.T) {
		uc := newUseCases()

		_, err := uc.Plan.GetPlan(context.Background(), testUserID, testClock)
		gt.Value(t, err).NotNil()
		gt.Error(t, err).Is(usecase.ErrPlanNotFound)
	})
}

func TestPlanUseCase_RecordOutcome(t *testing.T) {
	t.Run("outcome inherits the recovery flag", func(t *testing.T) {
		uc := newUseCases()
		ctx := context.Background()

		// Two missed days in the window trigger a recovery plan
		for daysAgo := 1; daysAgo <= 2; daysAgo++ {
			date := testClock.AddDate(0, 0, -daysAgo)
			_, err := uc.Plan.GeneratePlan(ctx, testUserID, date, 120, nil)
			gt.NoError(t, err).Required()
			_, err = uc.Plan.RecordOutcome(ctx, testUserID, date, false)
			gt.NoError(t, err).Required()
		}

		plan, err := uc.Plan.GeneratePlan(ctx, testUserID, testClock, 300, nil)
		gt.NoError(t, err).Required()
		gt.Value(t, plan.Tier).Equal(types.TierMicro)
		gt.Value(t, plan.TierSource).Equal(types.TierSourceRecovery)

		outcome, err := uc.Plan.RecordOutcome(ctx, testUserID, testClock, true)
		gt.NoError(t, err).Required()
		gt.Bool(t, outcome.Recovery).True()
		gt.Bool(t, outcome.Completed).True()
	})

	t.Run("outcome without a plan fails", func(t *testing.T) {
		uc := newUseCases()

		_, err := uc.Plan.RecordOutcome(context.Background(), testUserID, testClock, true)
		gt.Value(t, err).NotNil()
		gt.Error(t, err).Is(usecase.ErrPlanNotFound)
	})
}

func TestPlanUseCase_Lanes(t *testing.T) {
	uc := newUseCases()
	ctx := context.Background()

	lead, err := uc.Lead.Create(ctx, &model.Lead{
		UserID: testUserID,
		Name:   "Jordan Reyes",
	})
	gt.NoError(t, err).Required()
	_, err = uc.Lead.RecordInteraction(ctx, testUserID, lead.ID, testClock.AddDate(0, 0, -2))
	gt.NoError(t, err).Required()

	overdue, err := uc.Action.Create(ctx, &model.Action{
		UserID:  testUserID,
		Type:    types.ActionTypeFollowUp,
		Title:   "Overdue follow up",
		DueDate: testClock.AddDate(0, 0, -1),
	})
	gt.NoError(t, err).Required()

	warm, err := uc.Action.Create(ctx, &model.Action{
		UserID:  testUserID,
		LeadID:  lead.ID,
		Type:    types.ActionTypeNurture,
		Title:   "Share article",
		DueDate: testClock.AddDate(0, 0, 3),
	})
	gt.NoError(t, err).Required()

	actions, assignments, err := uc.Plan.Lanes(ctx, testUserID)
	gt.NoError(t, err).Required()
	gt.Array(t, actions).Length(2)
	gt.Value(t, assignments[overdue.ID].Lane).Equal(types.LanePriority)
	gt.Value(t, assignments[warm.ID].Lane).Equal(types.LaneInMotion)

	best, err := uc.Plan.BestAction(ctx, testUserID)
	gt.NoError(t, err).Required()
	gt.Value(t, best).NotNil()
	gt.Value(t, best.ID).Equal(overdue.ID)
}

func TestPlanUseCase_BestActionEmpty(t *testing.T) {
	uc := newUseCases()

	best, err := uc.Plan.BestAction(context.Background(), testUserID)
	gt.NoError(t, err).Required()
	gt.Value(t, best).Nil()
}

// settingsDown wraps the settings store with a Get that always fails,
// standing in for a backend outage.
type settingsDown struct {
	interfaces.SettingsRepository
}

func (settingsDown) Get(ctx context.Context, userID string) (*model.UserSettings, error) {
	return nil, goerr.New("backend unavailable")
}

type settingsDownRepo struct {
	interfaces.Repository
}

func (r settingsDownRepo) Settings() interfaces.SettingsRepository {
	return settingsDown{r.Repository.Settings()}
}

func TestPlanUseCase_SettingsBackendFailure(t *testing.T) {
	uc := usecase.New(settingsDownRepo{memory.New()}, usecase.WithClock(func() time.Time {
		return testClock
	}))
	ctx := context.Background()

	// An I/O failure must surface, not degrade to policy defaults
	_, err := uc.Plan.GeneratePlan(ctx, testUserID, testClock, 120, nil)
	gt.Value(t, err).NotNil()

	_, err = uc.Plan.GetSettings(ctx, testUserID)
	gt.Value(t, err).NotNil()
}

func TestPlanUseCase_GetSettingsMissing(t *testing.T) {
	uc := newUseCases()

	settings, err := uc.Plan.GetSettings(context.Background(), testUserID)
	gt.NoError(t, err).Required()
	gt.Value(t, settings).Nil()
}
