package firestore

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/cadencehq/cadence/pkg/domain/model"
)

type leadRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newLeadRepository(client *firestore.Client) *leadRepository {
	return &leadRepository{client: client}
}

func (r *leadRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_leads"
	}
	return "leads"
}

func (r *leadRepository) Create(ctx context.Context, lead *model.Lead) (*model.Lead, error) {
	now := time.Now().UTC()
	created := *lead
	if created.ID == "" {
		created.ID = uuid.NewString()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	if _, err := r.client.Collection(r.collection()).Doc(created.ID).Set(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create lead", goerr.V("id", created.ID))
	}
	return &created, nil
}

func (r *leadRepository) Get(ctx context.Context, userID, id string) (*model.Lead, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "lead not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get lead", goerr.V("id", id))
	}

	var lead model.Lead
	if err := docSnap.DataTo(&lead); err != nil {
		return nil, goerr.Wrap(err, "failed to decode lead", goerr.V("id", id))
	}
	if lead.UserID != userID {
		return nil, goerr.Wrap(ErrNotFound, "lead not found", goerr.V("id", id))
	}
	return &lead, nil
}

func (r *leadRepository) ListByUser(ctx context.Context, userID string) ([]*model.Lead, error) {
	iter := r.client.Collection(r.collection()).Where("UserID", "==", userID).Documents(ctx)
	defer iter.Stop()

	leads := []*model.Lead{}
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate leads")
		}

		var lead model.Lead
		if err := docSnap.DataTo(&lead); err != nil {
			return nil, goerr.Wrap(err, "failed to decode lead")
		}
		leads = append(leads, &lead)
	}
	return leads, nil
}

func (r *leadRepository) Update(ctx context.Context, lead *model.Lead) (*model.Lead, error) {
	existing, err := r.Get(ctx, lead.UserID, lead.ID)
	if err != nil {
		return nil, err
	}

	updated := *lead
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := r.client.Collection(r.collection()).Doc(updated.ID).Set(ctx, &updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update lead", goerr.V("id", updated.ID))
	}
	return &updated, nil
}

func (r *leadRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	iter := r.client.Collection(r.collection()).Select("UserID").Documents(ctx)
	defer iter.Stop()

	seen := map[string]bool{}
	ids := []string{}
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate leads")
		}

		var lead model.Lead
		if err := docSnap.DataTo(&lead); err != nil {
			return nil, goerr.Wrap(err, "failed to decode lead")
		}
		if lead.UserID == "" || seen[lead.UserID] {
			continue
		}
		seen[lead.UserID] = true
		ids = append(ids, lead.UserID)
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *leadRepository) Delete(ctx context.Context, userID, id string) error {
	if _, err := r.Get(ctx, userID, id); err != nil {
		return err
	}
	if _, err := r.client.Collection(r.collection()).Doc(id).Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete lead", goerr.V("id", id))
	}
	return nil
}
