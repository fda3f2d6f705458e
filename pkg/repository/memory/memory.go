package memory

import (
	"github.com/cadencehq/cadence/pkg/domain/interfaces"
)

// ErrNotFound is the shared not-found sentinel, re-exported for callers
// that only import this package
var ErrNotFound = interfaces.ErrNotFound

// Memory is the in-memory repository used for development and tests
type Memory struct {
	action   *actionRepository
	lead     *leadRepository
	plan     *planRepository
	outcome  *outcomeRepository
	settings *settingsRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		action:   newActionRepository(),
		lead:     newLeadRepository(),
		plan:     newPlanRepository(),
		outcome:  newOutcomeRepository(),
		settings: newSettingsRepository(),
	}
}

func (m *Memory) Action() interfaces.ActionRepository {
	return m.action
}

func (m *Memory) Lead() interfaces.LeadRepository {
	return m.lead
}

func (m *Memory) Plan() interfaces.PlanRepository {
	return m.plan
}

func (m *Memory) Outcome() interfaces.OutcomeRepository {
	return m.outcome
}

func (m *Memory) Settings() interfaces.SettingsRepository {
	return m.settings
}

func (m *Memory) Close() error {
	return nil
}
