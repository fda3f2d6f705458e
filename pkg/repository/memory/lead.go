package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/cadencehq/cadence/pkg/domain/model"
)

type leadRepository struct {
	mu    sync.RWMutex
	leads map[string]map[string]*model.Lead
}

func newLeadRepository() *leadRepository {
	return &leadRepository{
		leads: make(map[string]map[string]*model.Lead),
	}
}

func copyLead(l *model.Lead) *model.Lead {
	copied := *l
	if l.LastInteractionAt != nil {
		t := *l.LastInteractionAt
		copied.LastInteractionAt = &t
	}
	return &copied
}

func (r *leadRepository) Create(ctx context.Context, lead *model.Lead) (*model.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.leads[lead.UserID]; !exists {
		r.leads[lead.UserID] = make(map[string]*model.Lead)
	}

	now := time.Now().UTC()
	created := copyLead(lead)
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	r.leads[lead.UserID][created.ID] = created
	return copyLead(created), nil
}

func (r *leadRepository) Get(ctx context.Context, userID, id string) (*model.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.leads[userID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "lead not found", goerr.V("id", id))
	}
	lead, exists := user[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "lead not found", goerr.V("id", id))
	}

	return copyLead(lead), nil
}

func (r *leadRepository) ListByUser(ctx context.Context, userID string) ([]*model.Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.leads[userID]
	if !exists {
		return []*model.Lead{}, nil
	}

	leads := make([]*model.Lead, 0, len(user))
	for _, lead := range user {
		leads = append(leads, copyLead(lead))
	}
	return leads, nil
}

func (r *leadRepository) Update(ctx context.Context, lead *model.Lead) (*model.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.leads[lead.UserID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "lead not found", goerr.V("id", lead.ID))
	}
	existing, exists := user[lead.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "lead not found", goerr.V("id", lead.ID))
	}

	updated := copyLead(lead)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	user[lead.ID] = updated
	return copyLead(updated), nil
}

func (r *leadRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.leads))
	for id, leads := range r.leads {
		if len(leads) == 0 {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *leadRepository) Delete(ctx context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.leads[userID]
	if !exists {
		return goerr.Wrap(ErrNotFound, "lead not found", goerr.V("id", id))
	}
	if _, exists := user[id]; !exists {
		return goerr.Wrap(ErrNotFound, "lead not found", goerr.V("id", id))
	}

	delete(user, id)
	return nil
}
