package interfaces

import (
	"context"

	"github.com/cadencehq/cadence/pkg/domain/model"
	"github.com/cadencehq/cadence/pkg/domain/types"
)

// ActionRepository defines the interface for Action data access
type ActionRepository interface {
	// Create creates a new action with a generated ID
	Create(ctx context.Context, action *model.Action) (*model.Action, error)

	// Get retrieves an action by ID
	Get(ctx context.Context, userID, id string) (*model.Action, error)

	// ListByUser retrieves all actions belonging to a user
	ListByUser(ctx context.Context, userID string) ([]*model.Action, error)

	// ListOpenByUser retrieves the user's actions whose state is still open
	ListOpenByUser(ctx context.Context, userID string) ([]*model.Action, error)

	// ListByLead retrieves all actions referencing a lead
	ListByLead(ctx context.Context, userID, leadID string) ([]*model.Action, error)

	// CountByLeadAndState counts a lead's actions currently in the given state
	CountByLeadAndState(ctx context.Context, userID, leadID string, state types.ActionState) (int, error)

	// Update updates an existing action
	Update(ctx context.Context, action *model.Action) (*model.Action, error)

	// Delete deletes an action by ID
	Delete(ctx context.Context, userID, id string) error
}
