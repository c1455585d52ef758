package reactive

import "github.com/cockroachdb/errors"

var (
	// ErrNoValue is returned when an async state has neither a value nor an error yet.
	ErrNoValue = errors.New("reactive: no value yet")
	// ErrLifetimeClosed is the cancellation cause of a closed lifetime's context.
	ErrLifetimeClosed = errors.New("reactive: lifetime closed")
	// ErrTaskCancelled is the error left behind when the current async task is cancelled.
	ErrTaskCancelled = errors.New("reactive: task cancelled")
	// ErrComputationPanicked wraps a panic recovered from an async computation.
	ErrComputationPanicked = errors.New("reactive: computation panicked")
)
