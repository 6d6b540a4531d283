package algorithms

import (
	"fmt"

	"k8s.io/utils/clock"

	"sigs.k8s.io/multiobjective/pkg/multiobjective/evaluator"
	"sigs.k8s.io/multiobjective/pkg/multiobjective/framework"
	"sigs.k8s.io/multiobjective/pkg/multiobjective/operators"
	"sigs.k8s.io/multiobjective/pkg/multiobjective/preference"
	"sigs.k8s.io/multiobjective/pkg/multiobjective/replacement"
)

const (
	NSGAIIName        = "NSGAII"
	NSGAIIDescription = "Nondominated Sorting Genetic Algorithm version II"

	RNSGAIIName        = "RNSGAII"
	RNSGAIIDescription = "Reference Point Based Nondominated Sorting Genetic Algorithm version II"
)

// NewNSGAII assembles the classic NSGA-II: binary tournament on rank and
// crowding distance, SBX crossover, polynomial mutation and ranking and
// crowding replacement.
func NewNSGAII(cfg Config, problem framework.Problem, opts ...Option) (*GenerationalAlgorithm, error) {
	a, err := newAlgorithm(NSGAIIName, NSGAIIDescription, cfg, problem, opts)
	if err != nil {
		return nil, err
	}
	if a.selection == nil {
		a.selection = operators.NewBinaryTournament(operators.RankAndCrowding, a.rnd)
	}
	if a.replacement == nil {
		a.replacement = replacement.NewRankingAndCrowding(a.cmp)
	}
	return a, nil
}

// NewRNSGAII assembles R-NSGA-II. Survivors of the overflowing front are the
// ones closest to the points of interest in cfg, which can be replaced while
// the algorithm runs with UpdatePointOfInterest.
func NewRNSGAII(cfg Config, problem framework.Problem, opts ...Option) (*GenerationalAlgorithm, error) {
	a, err := newAlgorithm(RNSGAIIName, RNSGAIIDescription, cfg, problem, opts)
	if err != nil {
		return nil, err
	}

	if rp, ok := a.replacement.(*replacement.RankingAndPreference); ok {
		a.points = rp.Points()
	} else {
		a.points, err = preference.NewPointOfInterest(problem.NumObjectives(), a.cfg.InterestPoints...)
		if err != nil {
			return nil, fmt.Errorf("points of interest: %w", err)
		}
	}
	if a.replacement == nil {
		a.replacement, err = replacement.NewRankingAndPreference(a.cmp, a.points, a.cfg.Epsilon, a.cfg.Weights)
		if err != nil {
			return nil, err
		}
	}
	if a.selection == nil {
		scored := preferenceScored(a.replacement, a.points)
		a.selection = operators.NewBinaryTournament(rankAndPreference(scored), a.rnd)
	}
	return a, nil
}

// preferenceScored tells whether the Distance values of the current population
// are preference distances. A RankingAndPreference replacement records the
// score it annotated; for any other replacement the live point set decides.
func preferenceScored(r framework.Replacement, points *preference.PointOfInterest) func() bool {
	if rp, ok := r.(*replacement.RankingAndPreference); ok {
		return rp.PreferenceScored
	}
	return func() bool { return !points.Empty() }
}

// rankAndPreference compares by preference distance when the population was
// scored against points of interest and by crowding distance otherwise. The
// mode follows the last replacement, not the live cell, so a preference
// update between replacement and selection cannot flip the tie-breaking.
func rankAndPreference(scored func() bool) operators.CompareFunc {
	return func(x, y *framework.Solution) int {
		if scored() {
			return operators.RankAndPreference(x, y)
		}
		return operators.RankAndCrowding(x, y)
	}
}

func newAlgorithm(name, description string, cfg Config, problem framework.Problem, opts []Option) (*GenerationalAlgorithm, error) {
	if problem == nil {
		return nil, fmt.Errorf("%s: problem must not be nil", name)
	}
	if err := cfg.complete(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	a := &GenerationalAlgorithm{
		name:        name,
		description: description,
		problem:     problem,
		cfg:         cfg,
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.cmp == nil {
		a.cmp = framework.ComparatorFor(problem)
	}
	if a.clock == nil {
		a.clock = clock.RealClock{}
	}
	if a.evaluator == nil {
		a.evaluator = evaluator.NewSequential()
	}
	if a.initializer == nil {
		a.initializer = operators.NewRandomInitializer(a.rnd)
	}
	if a.variation == nil {
		bounds := problem.Bounds()
		a.variation = NewCrossoverAndMutation(
			operators.NewSBXCrossover(operators.DefaultCrossoverProbability, operators.DefaultDistributionIndex, bounds, a.rnd),
			operators.NewPolynomialMutation(0, operators.DefaultDistributionIndex, bounds, a.rnd),
		)
	}
	if a.stopping == nil {
		a.stopping = MaxEvaluations(a.cfg.MaxEvaluations)
	}
	for i, p := range a.referenceFront {
		if len(p) != problem.NumObjectives() {
			return nil, fmt.Errorf("%s: reference point %d: %w", name,
				i, framework.DimensionError("point", len(p), problem.NumObjectives()))
		}
	}

	a.measures = newMeasures(a.clock)
	a.state.Store(int32(Created))
	return a, nil
}
