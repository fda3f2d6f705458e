package interfaces

import (
	"context"

	"github.com/cadencehq/cadence/pkg/domain/model"
)

// LeadRepository defines the interface for Lead data access
type LeadRepository interface {
	// Create creates a new lead with a generated ID
	Create(ctx context.Context, lead *model.Lead) (*model.Lead, error)

	// Get retrieves a lead by ID
	Get(ctx context.Context, userID, id string) (*model.Lead, error)

	// ListByUser retrieves all leads belonging to a user
	ListByUser(ctx context.Context, userID string) ([]*model.Lead, error)

	// Update updates an existing lead
	Update(ctx context.Context, lead *model.Lead) (*model.Lead, error)

	// Delete deletes a lead by ID
	Delete(ctx context.Context, userID, id string) error

	// ListUserIDs returns every user that owns at least one lead; the
	// nudge worker scans these even when the user never saved settings
	ListUserIDs(ctx context.Context) ([]string, error)
}
