package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/cadencehq/cadence/pkg/domain/interfaces"
	"github.com/cadencehq/cadence/pkg/domain/model"
	"github.com/cadencehq/cadence/pkg/domain/model/config"
	"github.com/cadencehq/cadence/pkg/domain/types"
	"github.com/cadencehq/cadence/pkg/engine"
)

// Promise deadline choices accepted by SetPromise
const (
	PromiseEndOfDay  = "eod"
	PromiseEndOfWeek = "eow"
	PromiseCustom    = "custom"
	PromiseClear     = "clear"
)

type ActionUseCase struct {
	repo   interfaces.Repository
	policy *config.PlanningPolicy
	now    func() time.Time
}

func NewActionUseCase(repo interfaces.Repository, policy *config.PlanningPolicy, now func() time.Time) *ActionUseCase {
	return &ActionUseCase{
		repo:   repo,
		policy: policy,
		now:    now,
	}
}

func (uc *ActionUseCase) Create(ctx context.Context, action *model.Action) (*model.Action, error) {
	if action.UserID == "" {
		return nil, goerr.New("action user ID is required")
	}
	if action.Title == "" {
		return nil, goerr.New("action title is required")
	}
	if !action.Type.IsValid() {
		return nil, goerr.New("invalid action type", goerr.V("type", action.Type))
	}

	// Default state to NEW if not provided
	if action.State == "" {
		action.State = types.ActionStateNew
	}
	if !action.State.IsValid() {
		return nil, goerr.New("invalid action state", goerr.V("state", action.State))
	}

	if action.DueDate.IsZero() {
		action.DueDate = uc.now()
	}
	if action.EstimatedMinutes < 0 {
		return nil, goerr.New("estimated minutes cannot be negative",
			goerr.V("estimated_minutes", action.EstimatedMinutes))
	}

	if err := normalizeStateFields(action, uc.now); err != nil {
		return nil, err
	}

	created, err := uc.repo.Action().Create(ctx, action)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create action")
	}
	return created, nil
}

func (uc *ActionUseCase) Get(ctx context.Context, userID, id string) (*model.Action, error) {
	action, err := uc.repo.Action().Get(ctx, userID, id)
	if err != nil {
		return nil, wrapActionLookup(err, id)
	}
	return action, nil
}

func (uc *ActionUseCase) List(ctx context.Context, userID string) ([]*model.Action, error) {
	actions, err := uc.repo.Action().ListByUser(ctx, userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list actions", goerr.V(UserIDKey, userID))
	}
	return actions, nil
}

func (uc *ActionUseCase) ListOpen(ctx context.Context, userID string) ([]*model.Action, error) {
	actions, err := uc.repo.Action().ListOpenByUser(ctx, userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list open actions", goerr.V(UserIDKey, userID))
	}
	return actions, nil
}

func (uc *ActionUseCase) Update(ctx context.Context, action *model.Action) (*model.Action, error) {
	if action.Title == "" {
		return nil, goerr.New("action title is required")
	}
	if !action.State.IsValid() {
		return nil, goerr.New("invalid action state", goerr.V("state", action.State))
	}

	existing, err := uc.repo.Action().Get(ctx, action.UserID, action.ID)
	if err != nil {
		return nil, wrapActionLookup(err, action.ID)
	}

	// Keep the first completion timestamp across edits
	if action.CompletedAt == nil && existing.CompletedAt != nil && action.State.IsCompleted() {
		action.CompletedAt = existing.CompletedAt
	}

	if err := normalizeStateFields(action, uc.now); err != nil {
		return nil, err
	}

	updated, err := uc.repo.Action().Update(ctx, action)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update action", goerr.V(ActionIDKey, action.ID))
	}
	return updated, nil
}

// Transition moves an action to a new state, maintaining the completion
// timestamp and snooze invariants. SNOOZED is rejected here; use Snooze,
// which requires an explicit wake date.
func (uc *ActionUseCase) Transition(ctx context.Context, userID, id string, state types.ActionState) (*model.Action, error) {
	if !state.IsValid() {
		return nil, goerr.New("invalid action state", goerr.V("state", state))
	}
	if state == types.ActionStateSnoozed {
		return nil, goerr.Wrap(ErrInvalidTransition, "snooze requires a wake date",
			goerr.V(ActionIDKey, id))
	}

	action, err := uc.repo.Action().Get(ctx, userID, id)
	if err != nil {
		return nil, wrapActionLookup(err, id)
	}

	action.State = state
	if err := normalizeStateFields(action, uc.now); err != nil {
		return nil, err
	}

	updated, err := uc.repo.Action().Update(ctx, action)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to transition action", goerr.V(ActionIDKey, id))
	}
	return updated, nil
}

// Complete marks the action DONE and stamps its completion time
func (uc *ActionUseCase) Complete(ctx context.Context, userID, id string) (*model.Action, error) {
	return uc.Transition(ctx, userID, id, types.ActionStateDone)
}

// Snooze hides the action until the given date. Closed actions cannot be
// snoozed.
func (uc *ActionUseCase) Snooze(ctx context.Context, userID, id string, until time.Time) (*model.Action, error) {
	if until.IsZero() {
		return nil, goerr.New("snooze date is required", goerr.V(ActionIDKey, id))
	}

	action, err := uc.repo.Action().Get(ctx, userID, id)
	if err != nil {
		return nil, wrapActionLookup(err, id)
	}
	if !action.State.IsOpen() {
		return nil, goerr.Wrap(ErrActionClosed, "cannot snooze a closed action",
			goerr.V(ActionIDKey, id), goerr.V("state", action.State))
	}

	action.State = types.ActionStateSnoozed
	action.SnoozeUntil = &until
	action.CompletedAt = nil

	updated, err := uc.repo.Action().Update(ctx, action)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to snooze action", goerr.V(ActionIDKey, id))
	}
	return updated, nil
}

// Wake returns a snoozed action to NEW ahead of its snooze date
func (uc *ActionUseCase) Wake(ctx context.Context, userID, id string) (*model.Action, error) {
	action, err := uc.repo.Action().Get(ctx, userID, id)
	if err != nil {
		return nil, wrapActionLookup(err, id)
	}
	if action.State != types.ActionStateSnoozed {
		return nil, goerr.Wrap(ErrInvalidTransition, "only snoozed actions can be woken",
			goerr.V(ActionIDKey, id), goerr.V("state", action.State))
	}

	action.State = types.ActionStateNew
	action.SnoozeUntil = nil

	updated, err := uc.repo.Action().Update(ctx, action)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to wake action", goerr.V(ActionIDKey, id))
	}
	return updated, nil
}

// SetPromise records a commitment deadline on an open action. deadline
// is "eod" or "eow" (resolved against the user's work-end time),
// "custom" (requires at) or "clear".
func (uc *ActionUseCase) SetPromise(ctx context.Context, userID, id, deadline string, at *time.Time) (*model.Action, error) {
	action, err := uc.repo.Action().Get(ctx, userID, id)
	if err != nil {
		return nil, wrapActionLookup(err, id)
	}
	if !action.State.IsOpen() {
		return nil, goerr.Wrap(ErrActionClosed, "cannot promise a closed action",
			goerr.V(ActionIDKey, id), goerr.V("state", action.State))
	}

	switch deadline {
	case PromiseEndOfDay:
		workEnd, err := uc.workEnd(ctx, userID)
		if err != nil {
			return nil, err
		}
		t := engine.EndOfDay(workEnd, uc.now())
		action.PromisedDueAt = &t
	case PromiseEndOfWeek:
		workEnd, err := uc.workEnd(ctx, userID)
		if err != nil {
			return nil, err
		}
		t := engine.EndOfWeek(workEnd, uc.now())
		action.PromisedDueAt = &t
	case PromiseCustom:
		if at == nil || at.IsZero() {
			return nil, goerr.New("custom promise requires a time", goerr.V(ActionIDKey, id))
		}
		action.PromisedDueAt = at
	case PromiseClear:
		action.PromisedDueAt = nil
	default:
		return nil, goerr.New("invalid promise deadline", goerr.V("deadline", deadline))
	}

	updated, err := uc.repo.Action().Update(ctx, action)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to set promise", goerr.V(ActionIDKey, id))
	}
	return updated, nil
}

// workEnd resolves the user's work-end time, falling back to the policy
// default when no settings are stored.
func (uc *ActionUseCase) workEnd(ctx context.Context, userID string) (string, error) {
	settings, err := uc.repo.Settings().Get(ctx, userID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return uc.policy.WorkEndTime, nil
		}
		return "", goerr.Wrap(err, "failed to load settings", goerr.V(UserIDKey, userID))
	}
	if settings.WorkEndTime != "" {
		return settings.WorkEndTime, nil
	}
	return uc.policy.WorkEndTime, nil
}

func (uc *ActionUseCase) Delete(ctx context.Context, userID, id string) error {
	if err := uc.repo.Action().Delete(ctx, userID, id); err != nil {
		return wrapActionLookup(err, id)
	}
	return nil
}

// normalizeStateFields enforces the cross-field invariants: CompletedAt
// is set exactly for completed states, SnoozeUntil exactly for SNOOZED.
func normalizeStateFields(action *model.Action, now func() time.Time) error {
	if action.State.IsCompleted() {
		if action.CompletedAt == nil {
			t := now()
			action.CompletedAt = &t
		}
	} else {
		action.CompletedAt = nil
	}

	if action.State == types.ActionStateSnoozed {
		if action.SnoozeUntil == nil {
			return goerr.Wrap(ErrInvalidTransition, "snoozed action needs a wake date",
				goerr.V(ActionIDKey, action.ID))
		}
	} else {
		action.SnoozeUntil = nil
	}

	return nil
}
