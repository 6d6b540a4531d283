package framework

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch is returned when an objective vector or a preference
	// point does not have the length the problem requires.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrInsufficientPool is returned when the replacement pool is smaller than
	// the population it must produce.
	ErrInsufficientPool = errors.New("insufficient pool")

	// ErrEvaluation matches every *EvaluationError with errors.Is.
	ErrEvaluation = errors.New("evaluation failed")
)

// EvaluationError reports the failure of an objective computation.
type EvaluationError struct {
	// Index is the position of the failing solution in the submitted batch.
	Index int
	// Objective is the index of the failing objective function, -1 if unknown.
	Objective int
	Err       error
}

func (e *EvaluationError) Error() string {
	if e.Objective < 0 {
		return fmt.Sprintf("evaluating solution %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("evaluating objective %d of solution %d: %v", e.Objective, e.Index, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}

func (e *EvaluationError) Is(target error) bool {
	return target == ErrEvaluation
}

// DimensionError wraps ErrDimensionMismatch with the lengths involved.
func DimensionError(what string, got, want int) error {
	return fmt.Errorf("%w: %s has %d components, want %d", ErrDimensionMismatch, what, got, want)
}
