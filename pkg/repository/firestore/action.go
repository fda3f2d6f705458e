package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/cadencehq/cadence/pkg/domain/model"
	"github.com/cadencehq/cadence/pkg/domain/types"
)

type actionRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newActionRepository(client *firestore.Client) *actionRepository {
	return &actionRepository{client: client}
}

func (r *actionRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_actions"
	}
	return "actions"
}

func (r *actionRepository) Create(ctx context.Context, action *model.Action) (*model.Action, error) {
	now := time.Now().UTC()
	created := *action
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	if _, err := r.client.Collection(r.collection()).Doc(created.ID).Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create action", goerr.V("id", created.ID))
	}
	return &created, nil
}

func (r *actionRepository) Get(ctx context.Context, userID, id string) (*model.Action, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "action not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get action", goerr.V("id", id))
	}

	var action model.Action
	if err := docSnap.DataTo(&action); err != nil {
		return nil, goerr.Wrap(err, "failed to decode action", goerr.V("id", id))
	}
	if action.UserID != userID {
		return nil, goerr.Wrap(ErrNotFound, "action not found", goerr.V("id", id))
	}
	return &action, nil
}

func (r *actionRepository) list(ctx context.Context, query firestore.Query) ([]*model.Action, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	actions := []*model.Action{}
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate actions")
		}

		var action model.Action
		if err := docSnap.DataTo(&action); err != nil {
			return nil, goerr.Wrap(err, "failed to decode action")
		}
		actions = append(actions, &action)
	}
	return actions, nil
}

func (r *actionRepository) ListByUser(ctx context.Context, userID string) ([]*model.Action, error) {
	return r.list(ctx, r.client.Collection(r.collection()).Where("UserID", "==", userID))
}

func (r *actionRepository) ListOpenByUser(ctx context.Context, userID string) ([]*model.Action, error) {
	openStates := []string{}
	for _, state := range types.AllActionStates() {
		if state.IsOpen() {
			openStates = append(openStates, state.String())
		}
	}
	return r.list(ctx, r.client.Collection(r.collection()).
		Where("UserID", "==", userID).
		Where("State", "in", openStates))
}

func (r *actionRepository) ListByLead(ctx context.Context, userID, leadID string) ([]*model.Action, error) {
	return r.list(ctx, r.client.Collection(r.collection()).
		Where("UserID", "==", userID).
		Where("LeadID", "==", leadID))
}

func (r *actionRepository) CountByLeadAndState(ctx context.Context, userID, leadID string, state types.ActionState) (int, error) {
	actions, err := r.list(ctx, r.client.Collection(r.collection()).
		Where("UserID", "==", userID).
		Where("LeadID", "==", leadID).
		Where("State", "==", state.String()))
	if err != nil {
		return 0, err
	}
	return len(actions), nil
}

func (r *actionRepository) Update(ctx context.Context, action *model.Action) (*model.Action, error) {
	existing, err := r.Get(ctx, action.UserID, action.ID)
	if err != nil {
		return nil, err
	}

	updated := *action
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := r.client.Collection(r.collection()).Doc(updated.ID).Set(ctx, &updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update action", goerr.V("id", updated.ID))
	}
	return &updated, nil
}

func (r *actionRepository) Delete(ctx context.Context, userID, id string) error {
	if _, err := r.Get(ctx, userID, id); err != nil {
		return err
	}
	if _, err := r.client.Collection(r.collection()).Doc(id).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete action", goerr.V("id", id))
	}
	return nil
}
