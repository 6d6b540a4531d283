// Package evaluator provides the framework.Evaluator implementations used by
// the generational algorithms.
package evaluator

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"

	"sigs.k8s.io/multiobjective/pkg/multiobjective/framework"
)

// Sequential evaluates the solutions of a batch one after the other.
type Sequential struct{}

var _ framework.Evaluator = Sequential{}

// NewSequential returns an evaluator running on the caller's goroutine.
func NewSequential() Sequential {
	return Sequential{}
}

func (Sequential) Evaluate(ctx context.Context, solutions []*framework.Solution, problem framework.Problem) ([]*framework.Solution, error) {
	funcs := problem.ObjectiveFuncs()
	for i, sol := range solutions {
		if err := evaluate(sol, i, funcs); err != nil {
			return nil, err
		}
	}
	if err := checkDimensions(solutions, problem); err != nil {
		return nil, err
	}
	return solutions, nil
}

// Parallel evaluates a batch on a bounded pool of goroutines. The call
// returns only after every worker finished.
type Parallel struct {
	Workers int
}

var _ framework.Evaluator = &Parallel{}

// NewParallel creates a parallel evaluator; workers <= 0 means one goroutine
// per solution.
func NewParallel(workers int) *Parallel {
	return &Parallel{Workers: workers}
}

func (p *Parallel) Evaluate(ctx context.Context, solutions []*framework.Solution, problem framework.Problem) ([]*framework.Solution, error) {
	logger := klog.FromContext(ctx)
	logger.V(5).Info("evaluating batch", "size", len(solutions), "workers", p.Workers)

	funcs := problem.ObjectiveFuncs()
	g, gctx := errgroup.WithContext(ctx)
	if p.Workers > 0 {
		g.SetLimit(p.Workers)
	}

	for i, sol := range solutions {
		g.Go(func() error {
			// Skip pending work once a sibling failed.
			if err := gctx.Err(); err != nil {
				return err
			}
			return evaluate(sol, i, funcs)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := checkDimensions(solutions, problem); err != nil {
		return nil, err
	}
	return solutions, nil
}

// evaluate fills the objective vector of sol. Objectives are only assigned
// once every objective function succeeded.
func evaluate(sol *framework.Solution, index int, funcs []framework.ObjectiveFunc) error {
	objs := make([]float64, len(funcs))
	for j, objFunc := range funcs {
		v, err := objFunc(sol.Variables)
		if err != nil {
			return &framework.EvaluationError{Index: index, Objective: j, Err: err}
		}
		objs[j] = v
	}
	sol.Objectives = objs
	return nil
}

// checkDimensions verifies every objective vector has the problem's length.
func checkDimensions(solutions []*framework.Solution, problem framework.Problem) error {
	for i, sol := range solutions {
		if len(sol.Objectives) != problem.NumObjectives() {
			return &framework.EvaluationError{
				Index:     i,
				Objective: -1,
				Err:       fmt.Errorf("%w: got %d objectives, want %d", framework.ErrDimensionMismatch, len(sol.Objectives), problem.NumObjectives()),
			}
		}
	}
	return nil
}
