package interfaces

import (
	"context"
	"time"

	"github.com/cadencehq/cadence/pkg/domain/model"
)

// PlanRepository defines the interface for DailyPlan persistence.
// Put must replace any existing plan for the same (user, date) pair and
// serialize concurrent writes to that key.
type PlanRepository interface {
	// Put stores a plan, replacing any prior plan for the same user and date
	Put(ctx context.Context, plan *model.DailyPlan) (*model.DailyPlan, error)

	// Get retrieves the plan for a user and date
	Get(ctx context.Context, userID string, date time.Time) (*model.DailyPlan, error)

	// Delete removes the plan for a user and date
	Delete(ctx context.Context, userID string, date time.Time) error
}

// OutcomeRepository defines the interface for plan completion history
type OutcomeRepository interface {
	// Put stores an outcome, replacing any prior record for the same user and date
	Put(ctx context.Context, outcome *model.PlanOutcome) error

	// ListRecent retrieves up to limit outcomes for a user, newest first
	ListRecent(ctx context.Context, userID string, limit int) ([]*model.PlanOutcome, error)
}

// SettingsRepository defines the interface for per-user planning defaults
type SettingsRepository interface {
	// Put stores a user's settings
	Put(ctx context.Context, settings *model.UserSettings) error

	// Get retrieves a user's settings; implementations return ErrNotFound
	// sentinel wrapped errors when no settings are stored
	Get(ctx context.Context, userID string) (*model.UserSettings, error)

	// ListUserIDs returns every user with stored settings; the nudge
	// worker uses it to fan out evaluations
	ListUserIDs(ctx context.Context) ([]string, error)
}
