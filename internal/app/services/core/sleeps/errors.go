package sleeps

import (
	"errors"

	"carelog-service/internal/pkg/constvars"
	"carelog-service/internal/pkg/exceptions"
)

// Precondition failures detected before any call to the records API.
var (
	ErrNoResidentSelected = errors.New("no resident selected")
	ErrNoStatusChosen     = errors.New("no sleep status chosen")
	ErrInvalidStatus      = errors.New("unknown sleep status")
	ErrEmptySelection     = errors.New("no slots selected")
	ErrInvalidTimeRange   = errors.New("time range references an unknown slot")
	ErrNoDateSelected     = errors.New("no date selected")
	ErrSlotAlreadyFilled  = errors.New("slot already has a recorded entry")
	ErrSlotInFlight       = errors.New("slot submission already in flight")
	ErrSlotNotEligible    = errors.New("slot is not a missing past slot")
)

// toCustomError converts a precondition failure into the error returned to
// HTTP clients. Other errors pass through unchanged.
func toCustomError(err error) error {
	switch {
	case errors.Is(err, ErrNoResidentSelected):
		return exceptions.ErrSleepPrecondition(err, constvars.ErrClientNoResidentSelected)
	case errors.Is(err, ErrNoStatusChosen), errors.Is(err, ErrInvalidStatus):
		return exceptions.ErrSleepPrecondition(err, constvars.ErrClientNoStatusChosen)
	case errors.Is(err, ErrEmptySelection):
		return exceptions.ErrSleepPrecondition(err, constvars.ErrClientEmptySelection)
	case errors.Is(err, ErrInvalidTimeRange):
		return exceptions.ErrSleepSelection(err, constvars.ErrClientInvalidTimeRange)
	case errors.Is(err, ErrNoDateSelected):
		return exceptions.ErrSleepSelection(err, constvars.ErrClientNoDateSelected)
	case errors.Is(err, ErrSlotNotEligible):
		return exceptions.ErrSleepSelection(err, constvars.ErrClientSlotNotEligible)
	case errors.Is(err, ErrSlotAlreadyFilled):
		return exceptions.ErrSleepConflict(err, constvars.ErrClientSlotAlreadyFilled)
	case errors.Is(err, ErrSlotInFlight):
		return exceptions.ErrSleepConflict(err, constvars.ErrClientSlotInFlight)
	default:
		return err
	}
}
