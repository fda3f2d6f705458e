package usecase

import (
	"errors"

	"github.com/m-mizutani/goerr/v2"

	"github.com/cadencehq/cadence/pkg/domain/interfaces"
)

// Sentinel errors for use case layer
var (
	// Not found errors
	ErrActionNotFound = errors.New("action not found")
	ErrLeadNotFound   = errors.New("lead not found")
	ErrPlanNotFound   = errors.New("plan not found")

	// State errors
	ErrActionClosed      = errors.New("action is already closed")
	ErrInvalidTransition = errors.New("invalid state transition")
)

// Context keys for error values
const (
	ActionIDKey = "action_id"
	LeadIDKey   = "lead_id"
	UserIDKey   = "user_id"
)

// wrapActionLookup maps repository absence to the ErrActionNotFound
// sentinel; any other failure propagates as-is so I/O errors are never
// reported as missing records.
func wrapActionLookup(err error, id string) error {
	if errors.Is(err, interfaces.ErrNotFound) {
		return goerr.Wrap(ErrActionNotFound, "action not found", goerr.V(ActionIDKey, id))
	}
	return goerr.Wrap(err, "failed to load action", goerr.V(ActionIDKey, id))
}

// wrapLeadLookup is the lead counterpart of wrapActionLookup
func wrapLeadLookup(err error, id string) error {
	if errors.Is(err, interfaces.ErrNotFound) {
		return goerr.Wrap(ErrLeadNotFound, "lead not found", goerr.V(LeadIDKey, id))
	}
	return goerr.Wrap(err, "failed to load lead", goerr.V(LeadIDKey, id))
}
