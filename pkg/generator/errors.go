package generator

import (
	"errors"
	"fmt"
)

// ErrGenerationExhausted is returned only when every attempt failed to
// construct a batch at all. A below-threshold batch is not an error; the
// best-scoring attempt is returned instead.
var ErrGenerationExhausted = errors.New("generation exhausted: no attempt produced a batch")

// ValidationError marks malformed reference data. It is fatal before any
// attempt starts.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid reference data: %v", e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// AttemptError wraps a selector or orchestrator failure inside one attempt.
// The controller logs it and moves on to the next attempt.
type AttemptError struct {
	Attempt int
	Err     error
}

func (e *AttemptError) Error() string {
	return fmt.Sprintf("attempt %d failed: %v", e.Attempt, e.Err)
}

func (e *AttemptError) Unwrap() error { return e.Err }
