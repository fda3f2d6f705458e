package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/cadencehq/cadence/pkg/domain/interfaces"
	"github.com/cadencehq/cadence/pkg/domain/model"
	"github.com/cadencehq/cadence/pkg/domain/types"
	"github.com/cadencehq/cadence/pkg/repository/memory"
)

func runPlanRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	const userID = "test-user"
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("Put and Get", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		plan := &model.DailyPlan{
			ID:          "test-user_2026-03-10",
			UserID:      userID,
			Date:        date,
			Tier:        types.TierStandard,
			TierSource:  types.TierSourceCalendar,
			MaxActions:  5,
			FastWinID:   "a1",
			ActionIDs:   []string{"a1", "a2", "a3"},
			GeneratedAt: time.Date(2026, 3, 10, 7, 0, 0, 0, time.UTC),
		}

		stored, err := repo.Plan().Put(ctx, plan)
		gt.NoError(t, err).Required()
		gt.Value(t, stored.ID).Equal(plan.ID)

		retrieved, err := repo.Plan().Get(ctx, userID, date)
		gt.NoError(t, err).Required()
		gt.Value(t, retrieved.Tier).Equal(types.TierStandard)
		gt.Array(t, retrieved.ActionIDs).Equal([]string{"a1", "a2", "a3"})
	})

	t.Run("Put replaces the plan for the same day", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		first := &model.DailyPlan{
			ID:         "test-user_2026-03-10",
			UserID:     userID,
			Date:       date,
			Tier:       types.TierHeavy,
			TierSource: types.TierSourceCalendar,
			MaxActions: 8,
			ActionIDs:  []string{"a1", "a2"},
		}
		_, err := repo.Plan().Put(ctx, first)
		gt.NoError(t, err).Required()

		second := &model.DailyPlan{
			ID:         "test-user_2026-03-10",
			UserID:     userID,
			Date:       date,
			Tier:       types.TierMicro,
			TierSource: types.TierSourceOverride,
			MaxActions: 1,
			ActionIDs:  []string{"a9"},
		}
		_, err = repo.Plan().Put(ctx, second)
		gt.NoError(t, err).Required()

		retrieved, err := repo.Plan().Get(ctx, userID, date)
		gt.NoError(t, err).Required()
		gt.Value(t, retrieved.Tier).Equal(types.TierMicro)
		gt.Array(t, retrieved.ActionIDs).Equal([]string{"a9"})
	})

	t.Run("Get missing plan fails", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Plan().Get(ctx, userID, date)
		gt.Error(t, err)
	})

	t.Run("Delete removes plan", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Plan().Put(ctx, &model.DailyPlan{
			ID:     "test-user_2026-03-10",
			UserID: userID,
			Date:   date,
			Tier:   types.TierLight,
		})
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Plan().Delete(ctx, userID, date))
		_, err = repo.Plan().Get(ctx, userID, date)
		gt.Error(t, err)
	})
}

func runOutcomeRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	const userID = "test-user"

	t.Run("ListRecent returns newest first", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		dates := []time.Time{
			time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		}
		for _, d := range dates {
			err := repo.Outcome().Put(ctx, &model.PlanOutcome{
				UserID:    userID,
				Date:      d,
				Completed: true,
			})
			gt.NoError(t, err).Required()
		}

		outcomes, err := repo.Outcome().ListRecent(ctx, userID, 2)
		gt.NoError(t, err).Required()
		gt.Array(t, outcomes).Length(2)
		gt.Value(t, outcomes[0].Date.Format("2006-01-02")).Equal("2026-03-10")
		gt.Value(t, outcomes[1].Date.Format("2006-01-02")).Equal("2026-03-09")
	})

	t.Run("Put replaces outcome for the same day", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
		gt.NoError(t, repo.Outcome().Put(ctx, &model.PlanOutcome{UserID: userID, Date: date, Completed: false}))
		gt.NoError(t, repo.Outcome().Put(ctx, &model.PlanOutcome{UserID: userID, Date: date, Completed: true}))

		outcomes, err := repo.Outcome().ListRecent(ctx, userID, 10)
		gt.NoError(t, err).Required()
		gt.Array(t, outcomes).Length(1)
		gt.Bool(t, outcomes[0].Completed).True()
	})
}

func runSettingsRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Put and Get", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		err := repo.Settings().Put(ctx, &model.UserSettings{
			UserID:             "u1",
			DefaultTier:        types.TierStandard,
			WorkEndTime:        "18:30",
			DefaultFreeMinutes: 90,
		})
		gt.NoError(t, err).Required()

		settings, err := repo.Settings().Get(ctx, "u1")
		gt.NoError(t, err).Required()
		gt.Value(t, settings.WorkEndTime).Equal("18:30")
		gt.Value(t, settings.DefaultFreeMinutes).Equal(90)
		gt.Bool(t, settings.UpdatedAt.IsZero()).False()
	})

	t.Run("Get missing settings fails", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Settings().Get(ctx, "nobody")
		gt.Error(t, err)
	})

	t.Run("ListUserIDs covers all stored users", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for _, id := range []string{"u2", "u1"} {
			err := repo.Settings().Put(ctx, &model.UserSettings{
				UserID:      id,
				DefaultTier: types.TierLight,
			})
			gt.NoError(t, err).Required()
		}

		ids, err := repo.Settings().ListUserIDs(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, ids).Equal([]string{"u1", "u2"})
	})
}

func TestPlanRepository_Memory(t *testing.T) {
	runPlanRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestPlanRepository_Firestore(t *testing.T) {
	runPlanRepositoryTest(t, newFirestoreRepo)
}

func TestOutcomeRepository_Memory(t *testing.T) {
	runOutcomeRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestOutcomeRepository_Firestore(t *testing.T) {
	runOutcomeRepositoryTest(t, newFirestoreRepo)
}

func TestSettingsRepository_Memory(t *testing.T) {
	runSettingsRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestSettingsRepository_Firestore(t *testing.T) {
	runSettingsRepositoryTest(t, newFirestoreRepo)
}
