package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/cadencehq/cadence/pkg/domain/model"
	"github.com/cadencehq/cadence/pkg/domain/types"
)

type actionRepository struct {
	mu      sync.RWMutex
	actions map[string]map[string]*model.Action
}

func newActionRepository() *actionRepository {
	return &actionRepository{
		actions: make(map[string]map[string]*model.Action),
	}
}

func (r *actionRepository) ensureUser(userID string) {
	if _, exists := r.actions[userID]; !exists {
		r.actions[userID] = make(map[string]*model.Action)
	}
}

// copyAction creates a deep copy of an action
func copyAction(a *model.Action) *model.Action {
	copied := *a
	if a.SnoozeUntil != nil {
		t := *a.SnoozeUntil
		copied.SnoozeUntil = &t
	}
	if a.PromisedDueAt != nil {
		t := *a.PromisedDueAt
		copied.PromisedDueAt = &t
	}
	if a.CompletedAt != nil {
		t := *a.CompletedAt
		copied.CompletedAt = &t
	}
	return &copied
}

func (r *actionRepository) Create(ctx context.Context, action *model.Action) (*model.Action, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ensureUser(action.UserID)

	now := time.Now().UTC()
	created := copyAction(action)
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	r.actions[action.UserID][created.ID] = created
	return copyAction(created), nil
}

func (r *actionRepository) Get(ctx context.Context, userID, id string) (*model.Action, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.actions[userID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "action not found", goerr.V("id", id))
	}

	action, exists := user[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "action not found", goerr.V("id", id))
	}

	return copyAction(action), nil
}

func (r *actionRepository) ListByUser(ctx context.Context, userID string) ([]*model.Action, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.actions[userID]
	if !exists {
		return []*model.Action{}, nil
	}

	actions := make([]*model.Action, 0, len(user))
	for _, action := range user {
		actions = append(actions, copyAction(action))
	}
	return actions, nil
}

func (r *actionRepository) ListOpenByUser(ctx context.Context, userID string) ([]*model.Action, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.actions[userID]
	if !exists {
		return []*model.Action{}, nil
	}

	actions := make([]*model.Action, 0, len(user))
	for _, action := range user {
		if action.State.IsOpen() {
			actions = append(actions, copyAction(action))
		}
	}
	return actions, nil
}

func (r *actionRepository) ListByLead(ctx context.Context, userID, leadID string) ([]*model.Action, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.actions[userID]
	if !exists {
		return []*model.Action{}, nil
	}

	actions := make([]*model.Action, 0)
	for _, action := range user {
		if action.LeadID == leadID {
			actions = append(actions, copyAction(action))
		}
	}
	return actions, nil
}

func (r *actionRepository) CountByLeadAndState(ctx context.Context, userID, leadID string, state types.ActionState) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, action := range r.actions[userID] {
		if action.LeadID == leadID && action.State == state {
			count++
		}
	}
	return count, nil
}

func (r *actionRepository) Update(ctx context.Context, action *model.Action) (*model.Action, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.actions[action.UserID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "action not found", goerr.V("id", action.ID))
	}
	existing, exists := user[action.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "action not found", goerr.V("id", action.ID))
	}

	updated := copyAction(action)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	user[action.ID] = updated
	return copyAction(updated), nil
}

func (r *actionRepository) Delete(ctx context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.actions[userID]
	if !exists {
		return goerr.Wrap(ErrNotFound, "action not found", goerr.V("id", id))
	}
	if _, exists := user[id]; !exists {
		return goerr.Wrap(ErrNotFound, "action not found", goerr.V("id", id))
	}

	delete(user, id)
	return nil
}
