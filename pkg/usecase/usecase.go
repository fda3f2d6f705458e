package usecase

import (
	"time"

	"github.com/cadencehq/cadence/pkg/domain/interfaces"
	"github.com/cadencehq/cadence/pkg/domain/model/config"
	"github.com/cadencehq/cadence/pkg/service/slack"
)

type UseCases struct {
	repo   interfaces.Repository
	slack  slack.Service
	policy *config.PlanningPolicy
	now    func() time.Time

	Action *ActionUseCase
	Lead   *LeadUseCase
	Plan   *PlanUseCase
	Nudge  *NudgeUseCase
}

type Option func(*UseCases)

// WithSlack enables digest and nudge notifications. Without it the
// usecases run silently.
func WithSlack(svc slack.Service) Option {
	return func(uc *UseCases) {
		uc.slack = svc
	}
}

func WithPolicy(policy *config.PlanningPolicy) Option {
	return func(uc *UseCases) {
		uc.policy = policy
	}
}

// WithClock replaces the wall clock, used by tests
func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:   repo,
		policy: config.DefaultPlanningPolicy(),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Action = NewActionUseCase(repo, uc.policy, uc.now)
	uc.Lead = NewLeadUseCase(repo, uc.now)
	uc.Plan = NewPlanUseCase(repo, uc.slack, uc.policy, uc.now)
	uc.Nudge = NewNudgeUseCase(repo, uc.slack, uc.policy, uc.now)

	return uc
}
