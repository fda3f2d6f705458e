package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"

	"github.com/cadencehq/cadence/pkg/domain/interfaces"
)

// ErrNotFound is the shared not-found sentinel, re-exported for callers
// that only import this package
var ErrNotFound = interfaces.ErrNotFound

// Firestore is the production repository backed by Cloud Firestore
type Firestore struct {
	client   *firestore.Client
	action   *actionRepository
	lead     *leadRepository
	plan     *planRepository
	outcome  *outcomeRepository
	settings *settingsRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix namespaces every collection, used to isolate
// test runs against a shared project.
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.action.collectionPrefix = prefix
		f.lead.collectionPrefix = prefix
		f.plan.collectionPrefix = prefix
		f.outcome.collectionPrefix = prefix
		f.settings.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client", goerr.V("projectID", projectID))
	}

	f := &Firestore{
		client:   client,
		action:   newActionRepository(client),
		lead:     newLeadRepository(client),
		plan:     newPlanRepository(client),
		outcome:  newOutcomeRepository(client),
		settings: newSettingsRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Action() interfaces.ActionRepository {
	return f.action
}

func (f *Firestore) Lead() interfaces.LeadRepository {
	return f.lead
}

func (f *Firestore) Plan() interfaces.PlanRepository {
	return f.plan
}

func (f *Firestore) Outcome() interfaces.OutcomeRepository {
	return f.outcome
}

func (f *Firestore) Settings() interfaces.SettingsRepository {
	return f.settings
}

func (f *Firestore) Close() error {
	return f.client.Close()
}
