package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/cadencehq/cadence/pkg/domain/interfaces"
	"github.com/cadencehq/cadence/pkg/domain/model"
	"github.com/cadencehq/cadence/pkg/domain/types"
	"github.com/cadencehq/cadence/pkg/repository/firestore"
	"github.com/cadencehq/cadence/pkg/repository/memory"
)

func newFirestoreRepo(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("FIRESTORE_PROJECT_ID not set")
	}

	repo, err := firestore.New(context.Background(), projectID, os.Getenv("FIRESTORE_DATABASE_ID"),
		firestore.WithCollectionPrefix(fmt.Sprintf("test_%d", time.Now().UnixNano())))
	gt.NoError(t, err).Required()
	t.Cleanup(func() {
		gt.NoError(t, repo.Close())
	})
	return repo
}

func runActionRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	const userID = "test-user"

	t.Run("Create assigns ID and timestamps", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		action := &model.Action{
			UserID:  userID,
			Type:    types.ActionTypeFollowUp,
			State:   types.ActionStateNew,
			Title:   "Check in after demo",
			DueDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		}

		created, err := repo.Action().Create(ctx, action)
		gt.NoError(t, err).Required()

		gt.Value(t, created.ID).NotEqual("")
		gt.Value(t, created.Title).Equal(action.Title)
		gt.Bool(t, created.CreatedAt.IsZero()).False()
		gt.Bool(t, created.UpdatedAt.IsZero()).False()

		second, err := repo.Action().Create(ctx, &model.Action{
			UserID:  userID,
			Type:    types.ActionTypeOutreach,
			State:   types.ActionStateNew,
			Title:   "Intro message",
			DueDate: time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
		})
		gt.NoError(t, err).Required()
		gt.Value(t, second.ID).NotEqual(created.ID)
	})

	t.Run("Get retrieves existing action", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Action().Create(ctx, &model.Action{
			UserID:  userID,
			Type:    types.ActionTypeCallPrep,
			State:   types.ActionStateNew,
			Title:   "Prep discovery call",
			DueDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		})
		gt.NoError(t, err).Required()

		retrieved, err := repo.Action().Get(ctx, userID, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, retrieved.ID).Equal(created.ID)
		gt.Value(t, retrieved.Type).Equal(types.ActionTypeCallPrep)
	})

	t.Run("Get unknown action fails", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Action().Get(ctx, userID, "no-such-id")
		gt.Error(t, err)
	})

	t.Run("Get scoped to owner", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Action().Create(ctx, &model.Action{
			UserID:  userID,
			Type:    types.ActionTypeNurture,
			State:   types.ActionStateNew,
			Title:   "Share article",
			DueDate: time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		})
		gt.NoError(t, err).Required()

		_, err = repo.Action().Get(ctx, "someone-else", created.ID)
		gt.Error(t, err)
	})

	t.Run("ListOpenByUser excludes closed actions", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for _, state := range []types.ActionState{
			types.ActionStateNew,
			types.ActionStateSent,
			types.ActionStateDone,
			types.ActionStateArchived,
		} {
			_, err := repo.Action().Create(ctx, &model.Action{
				UserID:  userID,
				Type:    types.ActionTypeOutreach,
				State:   state,
				Title:   "Action in " + state.String(),
				DueDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			})
			gt.NoError(t, err).Required()
		}

		open, err := repo.Action().ListOpenByUser(ctx, userID)
		gt.NoError(t, err).Required()
		gt.Array(t, open).Length(2)
		for _, action := range open {
			gt.Bool(t, action.State.IsOpen()).True()
		}
	})

	t.Run("CountByLeadAndState counts pending sends", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for i := 0; i < 2; i++ {
			_, err := repo.Action().Create(ctx, &model.Action{
				UserID:  userID,
				LeadID:  "lead-1",
				Type:    types.ActionTypeOutreach,
				State:   types.ActionStateSent,
				Title:   "Sent message",
				DueDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
			})
			gt.NoError(t, err).Required()
		}
		_, err := repo.Action().Create(ctx, &model.Action{
			UserID:  userID,
			LeadID:  "lead-1",
			Type:    types.ActionTypeFollowUp,
			State:   types.ActionStateNew,
			Title:   "Still new",
			DueDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		})
		gt.NoError(t, err).Required()

		count, err := repo.Action().CountByLeadAndState(ctx, userID, "lead-1", types.ActionStateSent)
		gt.NoError(t, err).Required()
		gt.Value(t, count).Equal(2)
	})

	t.Run("Update preserves creation time", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Action().Create(ctx, &model.Action{
			UserID:  userID,
			Type:    types.ActionTypeFollowUp,
			State:   types.ActionStateNew,
			Title:   "Before update",
			DueDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		})
		gt.NoError(t, err).Required()

		created.State = types.ActionStateSnoozed
		snooze := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
		created.SnoozeUntil = &snooze

		updated, err := repo.Action().Update(ctx, created)
		gt.NoError(t, err).Required()
		gt.Value(t, updated.State).Equal(types.ActionStateSnoozed)
		gt.Value(t, updated.CreatedAt.Unix()).Equal(created.CreatedAt.Unix())

		retrieved, err := repo.Action().Get(ctx, userID, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, retrieved.State).Equal(types.ActionStateSnoozed)
		gt.Bool(t, retrieved.SnoozeUntil == nil).False()
	})

	t.Run("Delete removes action", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Action().Create(ctx, &model.Action{
			UserID:  userID,
			Type:    types.ActionTypeContent,
			State:   types.ActionStateNew,
			Title:   "Draft post",
			DueDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		})
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Action().Delete(ctx, userID, created.ID))
		_, err = repo.Action().Get(ctx, userID, created.ID)
		gt.Error(t, err)
	})
}

func TestActionRepository_Memory(t *testing.T) {
	runActionRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestActionRepository_Firestore(t *testing.T) {
	runActionRepositoryTest(t, newFirestoreRepo)
}
