package spaced_repetition

import "errors"

// Sentinel errors, check with errors.Is
var (
	ErrInvalidHorizon = errors.New("spaced_repetition: horizon must be at least one day")
	ErrInvalidDay     = errors.New("spaced_repetition: invalid day index")
	ErrInvalidQuota   = errors.New("spaced_repetition: invalid daily quota")
	ErrInvalidParams  = errors.New("spaced_repetition: invalid curve parameters")
)
