package algorithms

import (
	"math/rand/v2"

	"k8s.io/utils/clock"

	"sigs.k8s.io/multiobjective/pkg/multiobjective/framework"
)

// Option overrides one strategy or collaborator of a GenerationalAlgorithm.
// Strategies not set by an option get the algorithm's defaults.
type Option func(*GenerationalAlgorithm)

func WithEvaluator(e framework.Evaluator) Option {
	return func(a *GenerationalAlgorithm) { a.evaluator = e }
}

func WithInitializer(i framework.Initializer) Option {
	return func(a *GenerationalAlgorithm) { a.initializer = i }
}

func WithSelection(s framework.SelectionOperator) Option {
	return func(a *GenerationalAlgorithm) { a.selection = s }
}

func WithVariation(v Variation) Option {
	return func(a *GenerationalAlgorithm) { a.variation = v }
}

func WithReplacement(r framework.Replacement) Option {
	return func(a *GenerationalAlgorithm) { a.replacement = r }
}

func WithStoppingCondition(s StoppingCondition) Option {
	return func(a *GenerationalAlgorithm) { a.stopping = s }
}

// WithReferenceFront enables hypervolume, IGD and epsilon against front.
func WithReferenceFront(front []framework.ObjectiveSpacePoint) Option {
	return func(a *GenerationalAlgorithm) { a.referenceFront = front }
}

// WithClock sets the clock of the execution time measure.
func WithClock(c clock.PassiveClock) Option {
	return func(a *GenerationalAlgorithm) { a.clock = c }
}

func WithComparator(cmp *framework.Comparator) Option {
	return func(a *GenerationalAlgorithm) { a.cmp = cmp }
}

// WithRand seeds the default operators from r.
func WithRand(r *rand.Rand) Option {
	return func(a *GenerationalAlgorithm) { a.rnd = r }
}
