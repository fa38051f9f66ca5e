package calculator

import "errors"

var (
	// ErrInvariantViolation signals an accumulation bug: balances that do not
	// sum to zero, or a netting pass that leaves one side unmatched.
	ErrInvariantViolation = errors.New("settlement invariant violated")

	// ErrEmptyJourneyName is returned when archiving without a name.
	ErrEmptyJourneyName = errors.New("journey name is required")
)
