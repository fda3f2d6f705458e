package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/cadencehq/cadence/pkg/domain/interfaces"
	"github.com/cadencehq/cadence/pkg/domain/model"
)

type LeadUseCase struct {
	repo interfaces.Repository
	now  func() time.Time
}

func NewLeadUseCase(repo interfaces.Repository, now func() time.Time) *LeadUseCase {
	return &LeadUseCase{
		repo: repo,
		now:  now,
	}
}

func (uc *LeadUseCase) Create(ctx context.Context, lead *model.Lead) (*model.Lead, error) {
	if lead.UserID == "" {
		return nil, goerr.New("lead user ID is required")
	}
	if lead.Name == "" {
		return nil, goerr.New("lead name is required")
	}
	if lead.PreferredChannel != "" && !lead.PreferredChannel.IsValid() {
		return nil, goerr.New("invalid preferred channel", goerr.V("channel", lead.PreferredChannel))
	}
	if lead.CadenceDays < 0 {
		return nil, goerr.New("cadence days cannot be negative", goerr.V("cadence_days", lead.CadenceDays))
	}

	created, err := uc.repo.Lead().Create(ctx, lead)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create lead")
	}
	return created, nil
}

func (uc *LeadUseCase) Get(ctx context.Context, userID, id string) (*model.Lead, error) {
	lead, err := uc.repo.Lead().Get(ctx, userID, id)
	if err != nil {
		return nil, wrapLeadLookup(err, id)
	}
	return lead, nil
}

func (uc *LeadUseCase) List(ctx context.Context, userID string) ([]*model.Lead, error) {
	leads, err := uc.repo.Lead().ListByUser(ctx, userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list leads", goerr.V(UserIDKey, userID))
	}
	return leads, nil
}

func (uc *LeadUseCase) Update(ctx context.Context, lead *model.Lead) (*model.Lead, error) {
	if lead.Name == "" {
		return nil, goerr.New("lead name is required")
	}
	if lead.PreferredChannel != "" && !lead.PreferredChannel.IsValid() {
		return nil, goerr.New("invalid preferred channel", goerr.V("channel", lead.PreferredChannel))
	}

	if _, err := uc.repo.Lead().Get(ctx, lead.UserID, lead.ID); err != nil {
		return nil, wrapLeadLookup(err, lead.ID)
	}

	updated, err := uc.repo.Lead().Update(ctx, lead)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update lead", goerr.V(LeadIDKey, lead.ID))
	}
	return updated, nil
}

// RecordInteraction bumps the lead's last-touch time. A zero at means
// now. Timestamps never move backwards; a stale at is ignored.
func (uc *LeadUseCase) RecordInteraction(ctx context.Context, userID, id string, at time.Time) (*model.Lead, error) {
	lead, err := uc.repo.Lead().Get(ctx, userID, id)
	if err != nil {
		return nil, wrapLeadLookup(err, id)
	}

	if at.IsZero() {
		at = uc.now()
	}
	if lead.LastInteractionAt != nil && !at.After(*lead.LastInteractionAt) {
		return lead, nil
	}

	lead.LastInteractionAt = &at
	updated, err := uc.repo.Lead().Update(ctx, lead)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to record interaction", goerr.V(LeadIDKey, id))
	}
	return updated, nil
}

func (uc *LeadUseCase) Delete(ctx context.Context, userID, id string) error {
	if err := uc.repo.Lead().Delete(ctx, userID, id); err != nil {
		return wrapLeadLookup(err, id)
	}
	return nil
}
