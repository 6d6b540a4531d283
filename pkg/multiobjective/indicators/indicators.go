// Package indicators computes quality indicators of an approximation front
// against a reference set of points in objective space. All indicators assume
// minimization.
package indicators

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"

	"sigs.k8s.io/multiobjective/pkg/multiobjective/framework"
)

// ErrEmptyReference is returned when an indicator has no reference points.
var ErrEmptyReference = errors.New("reference set is empty")

// Indicator measures the quality of a front.
type Indicator interface {
	Name() string
	Evaluate(front []framework.ObjectiveSpacePoint) (float64, error)
}

func validate(front, reference []framework.ObjectiveSpacePoint) error {
	if len(reference) == 0 {
		return ErrEmptyReference
	}
	m := len(reference[0])
	for _, set := range [][]framework.ObjectiveSpacePoint{reference, front} {
		for _, p := range set {
			if len(p) != m {
				return framework.DimensionError("point", len(p), m)
			}
		}
	}
	return nil
}

// Epsilon is the additive epsilon indicator: the smallest value that, added to
// every point of the front, makes it weakly dominate the whole reference set.
// Lower is better; zero or negative means the reference set is covered.
type Epsilon struct {
	reference []framework.ObjectiveSpacePoint
}

var _ Indicator = &Epsilon{}

func NewEpsilon(reference []framework.ObjectiveSpacePoint) *Epsilon {
	return &Epsilon{reference: reference}
}

func (e *Epsilon) Name() string { return "epsilon" }

func (e *Epsilon) Evaluate(front []framework.ObjectiveSpacePoint) (float64, error) {
	if err := validate(front, e.reference); err != nil {
		return 0, err
	}
	if len(front) == 0 {
		return math.Inf(1), nil
	}

	eps := math.Inf(-1)
	diff := make([]float64, len(e.reference[0]))
	for _, r := range e.reference {
		best := math.Inf(1)
		for _, a := range front {
			floats.SubTo(diff, a, r)
			best = math.Min(best, floats.Max(diff))
		}
		eps = math.Max(eps, best)
	}
	return eps, nil
}

// InvertedGenerationalDistance is the mean Euclidean distance from every
// reference point to its closest point of the front.
type InvertedGenerationalDistance struct {
	reference []framework.ObjectiveSpacePoint
}

var _ Indicator = &InvertedGenerationalDistance{}

func NewInvertedGenerationalDistance(reference []framework.ObjectiveSpacePoint) *InvertedGenerationalDistance {
	return &InvertedGenerationalDistance{reference: reference}
}

func (g *InvertedGenerationalDistance) Name() string { return "IGD" }

func (g *InvertedGenerationalDistance) Evaluate(front []framework.ObjectiveSpacePoint) (float64, error) {
	if err := validate(front, g.reference); err != nil {
		return 0, err
	}
	if len(front) == 0 {
		return math.Inf(1), nil
	}

	sum := 0.0
	for _, r := range g.reference {
		best := math.Inf(1)
		for _, a := range front {
			best = math.Min(best, floats.Distance(r, a, 2))
		}
		sum += best
	}
	return sum / float64(len(g.reference)), nil
}
