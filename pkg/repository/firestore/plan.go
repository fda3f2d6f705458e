package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/cadencehq/cadence/pkg/domain/model"
)

func planDocID(userID string, date time.Time) string {
	return fmt.Sprintf("%s_%s", userID, date.Format("2006-01-02"))
}

// planRepository stores one document per (user, date). The doc ID is
// deterministic so concurrent regenerations collapse to last-write-wins
// on a single document rather than diverging plans.
type planRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newPlanRepository(client *firestore.Client) *planRepository {
	return &planRepository{client: client}
}

func (r *planRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_plans"
	}
	return "plans"
}

func (r *planRepository) Put(ctx context.Context, plan *model.DailyPlan) (*model.DailyPlan, error) {
	stored := *plan
	stored.ActionIDs = append([]string{}, plan.ActionIDs...)

	docID := planDocID(plan.UserID, plan.Date)
	if _, err := r.client.Collection(r.collection()).Doc(docID).Set(ctx, &stored); err != nil {
		return nil, goerr.Wrap(err, "failed to put plan", goerr.V("doc_id", docID))
	}
	return &stored, nil
}

func (r *planRepository) Get(ctx context.Context, userID string, date time.Time) (*model.DailyPlan, error) {
	docID := planDocID(userID, date)
	docSnap, err := r.client.Collection(r.collection()).Doc(docID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "plan not found", goerr.V("doc_id", docID))
		}
		return nil, goerr.Wrap(err, "failed to get plan", goerr.V("doc_id", docID))
	}

	var plan model.DailyPlan
	if err := docSnap.DataTo(&plan); err != nil {
		return nil, goerr.Wrap(err, "failed to decode plan", goerr.V("doc_id", docID))
	}
	return &plan, nil
}

func (r *planRepository) Delete(ctx context.Context, userID string, date time.Time) error {
	docID := planDocID(userID, date)
	docSnap, err := r.client.Collection(r.collection()).Doc(docID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "plan not found", goerr.V("doc_id", docID))
		}
		return goerr.Wrap(err, "failed to get plan", goerr.V("doc_id", docID))
	}
	if _, err := docSnap.Ref.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete plan", goerr.V("doc_id", docID))
	}
	return nil
}

type outcomeRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newOutcomeRepository(client *firestore.Client) *outcomeRepository {
	return &outcomeRepository{client: client}
}

func (r *outcomeRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_outcomes"
	}
	return "outcomes"
}

func (r *outcomeRepository) Put(ctx context.Context, outcome *model.PlanOutcome) error {
	stored := *outcome
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}

	docID := planDocID(outcome.UserID, outcome.Date)
	if _, err := r.client.Collection(r.collection()).Doc(docID).Set(ctx, &stored); err != nil {
		return goerr.Wrap(err, "failed to put outcome", goerr.V("doc_id", docID))
	}
	return nil
}

func (r *outcomeRepository) ListRecent(ctx context.Context, userID string, limit int) ([]*model.PlanOutcome, error) {
	query := r.client.Collection(r.collection()).
		Where("UserID", "==", userID).
		OrderBy("Date", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	outcomes := []*model.PlanOutcome{}
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate outcomes")
		}

		var outcome model.PlanOutcome
		if err := docSnap.DataTo(&outcome); err != nil {
			return nil, goerr.Wrap(err, "failed to decode outcome")
		}
		outcomes = append(outcomes, &outcome)
	}
	return outcomes, nil
}

type settingsRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newSettingsRepository(client *firestore.Client) *settingsRepository {
	return &settingsRepository{client: client}
}

func (r *settingsRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_settings"
	}
	return "settings"
}

func (r *settingsRepository) Put(ctx context.Context, settings *model.UserSettings) error {
	stored := *settings
	stored.UpdatedAt = time.Now().UTC()

	if _, err := r.client.Collection(r.collection()).Doc(settings.UserID).Set(ctx, &stored); err != nil {
		return goerr.Wrap(err, "failed to put settings", goerr.V("user_id", settings.UserID))
	}
	return nil
}

func (r *settingsRepository) Get(ctx context.Context, userID string) (*model.UserSettings, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "settings not found", goerr.V("user_id", userID))
		}
		return nil, goerr.Wrap(err, "failed to get settings", goerr.V("user_id", userID))
	}

	var settings model.UserSettings
	if err := docSnap.DataTo(&settings); err != nil {
		return nil, goerr.Wrap(err, "failed to decode settings", goerr.V("user_id", userID))
	}
	return &settings, nil
}

func (r *settingsRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	iter := r.client.Collection(r.collection()).Documents(ctx)
	defer iter.Stop()

	ids := []string{}
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate settings")
		}
		ids = append(ids, docSnap.Ref.ID)
	}
	return ids, nil
}
