package interfaces

import "errors"

// ErrNotFound is the sentinel every repository implementation wraps when
// a record does not exist. Callers branch with errors.Is so a backend
// I/O failure is never mistaken for absence.
var ErrNotFound = errors.New("record not found")

// Repository defines the interface for data persistence
type Repository interface {
	Action() ActionRepository
	Lead() LeadRepository
	Plan() PlanRepository
	Outcome() OutcomeRepository
	Settings() SettingsRepository

	// Close releases any backend connections
	Close() error
}
