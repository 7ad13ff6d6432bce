package review

import "errors"

var (
	// ErrUnknownWord is returned when an answer refers to a word that is not the active task
	ErrUnknownWord = errors.New("review: word is not the active task")
	// ErrEmptyQueueAdvance is returned when an answer is submitted with no active task
	ErrEmptyQueueAdvance = errors.New("review: no active task")
	// ErrInvalidTransition is returned for panel actions that are not allowed in the current state
	ErrInvalidTransition = errors.New("review: transition not allowed in current state")
	// ErrInvalidMode is returned for an unknown study mode
	ErrInvalidMode = errors.New("review: invalid study mode")
	// ErrInvalidReviewMode is returned for an unknown review mode
	ErrInvalidReviewMode = errors.New("review: invalid review mode")
)
