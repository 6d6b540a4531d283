// Package algorithms implements the generational evolutionary loop and the
// NSGA-II family of algorithms assembled from it.
package algorithms

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"

	"github.com/dustin/go-humanize"
	"github.com/go-logr/logr"
	"k8s.io/klog/v2"
	"k8s.io/utils/clock"

	"sigs.k8s.io/multiobjective/pkg/multiobjective/framework"
	"sigs.k8s.io/multiobjective/pkg/multiobjective/indicators"
	"sigs.k8s.io/multiobjective/pkg/multiobjective/measure"
	"sigs.k8s.io/multiobjective/pkg/multiobjective/preference"
)

var (
	// ErrAlreadyStarted is returned when Run is called more than once.
	ErrAlreadyStarted = errors.New("algorithm already started")

	// ErrNoPreference is returned by UpdatePointOfInterest on algorithms
	// that do not read a preference.
	ErrNoPreference = errors.New("algorithm has no point of interest")
)

// State is the lifecycle stage of a GenerationalAlgorithm.
type State int32

const (
	Created State = iota
	Initialized
	Running
	Terminated
)

// initializing guards a run whose initial population is still being built.
// It is reported as Created.
const initializing State = -1

func (s State) String() string {
	switch s {
	case Created:
		return "Created"
	case Initialized:
		return "Initialized"
	case Running:
		return "Running"
	case Terminated:
		return "Terminated"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// Config sizes a generational run.
type Config struct {
	PopulationSize int
	// MatingPoolSize defaults to PopulationSize.
	MatingPoolSize int
	// OffspringPopulationSize defaults to PopulationSize.
	OffspringPopulationSize int
	MaxEvaluations          int

	// Preference settings, read by R-NSGA-II only.
	InterestPoints []framework.ObjectiveSpacePoint
	Epsilon        float64
	// Weights defaults to 1/M for every objective.
	Weights []float64
}

func (c *Config) complete() error {
	if c.PopulationSize <= 0 {
		return fmt.Errorf("population size must be positive, got %d", c.PopulationSize)
	}
	if c.MatingPoolSize == 0 {
		c.MatingPoolSize = c.PopulationSize
	}
	if c.OffspringPopulationSize == 0 {
		c.OffspringPopulationSize = c.PopulationSize
	}
	if c.MatingPoolSize < 0 || c.OffspringPopulationSize < 0 {
		return fmt.Errorf("mating pool size %d and offspring size %d must not be negative",
			c.MatingPoolSize, c.OffspringPopulationSize)
	}
	if c.MaxEvaluations < 0 {
		return fmt.Errorf("max evaluations must not be negative, got %d", c.MaxEvaluations)
	}
	return nil
}

// GenerationalAlgorithm is an evolutionary loop composed of pluggable
// strategies. It runs once: Created, Initialized, Running, Terminated.
type GenerationalAlgorithm struct {
	name        string
	description string

	problem framework.Problem
	cfg     Config
	cmp     *framework.Comparator

	initializer framework.Initializer
	evaluator   framework.Evaluator
	selection   framework.SelectionOperator
	variation   Variation
	replacement framework.Replacement
	stopping    StoppingCondition

	referenceFront []framework.ObjectiveSpacePoint
	points         *preference.PointOfInterest
	clock          clock.PassiveClock
	rnd            *rand.Rand

	measures *measures

	state   atomic.Int32
	stopped atomic.Bool

	mu         sync.RWMutex
	population []*framework.Solution
	generation int
}

var _ framework.Algorithm = &GenerationalAlgorithm{}

func (a *GenerationalAlgorithm) Name() string        { return a.name }
func (a *GenerationalAlgorithm) Description() string { return a.description }

// Problem returns the problem being optimized.
func (a *GenerationalAlgorithm) Problem() framework.Problem { return a.problem }

// Config returns the completed run configuration.
func (a *GenerationalAlgorithm) Config() Config { return a.cfg }

func (a *GenerationalAlgorithm) State() State {
	if s := State(a.state.Load()); s != initializing {
		return s
	}
	return Created
}

// Evaluations returns the value of the evaluation counter.
func (a *GenerationalAlgorithm) Evaluations() int {
	return a.measures.evaluations.Count()
}

// Generation returns the number of completed generations.
func (a *GenerationalAlgorithm) Generation() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.generation
}

// MeasureManager exposes the run's pull and push measures.
func (a *GenerationalAlgorithm) MeasureManager() *measure.Manager {
	return a.measures.manager
}

// Stop asks the loop to terminate. It is honored at the next generation
// boundary; the generation in progress completes.
func (a *GenerationalAlgorithm) Stop() {
	a.stopped.Store(true)
}

// UpdatePointOfInterest replaces the preference with a single point. An empty
// point clears the preference.
func (a *GenerationalAlgorithm) UpdatePointOfInterest(point []float64) error {
	if a.points == nil {
		return ErrNoPreference
	}
	return a.points.Update(point)
}

// UpdatePointsOfInterest replaces the preference with several regions.
func (a *GenerationalAlgorithm) UpdatePointsOfInterest(points []framework.ObjectiveSpacePoint) error {
	if a.points == nil {
		return ErrNoPreference
	}
	return a.points.UpdatePoints(points)
}

// PointsOfInterest returns the current preference snapshot.
func (a *GenerationalAlgorithm) PointsOfInterest() []framework.ObjectiveSpacePoint {
	if a.points == nil {
		return nil
	}
	return a.points.Snapshot()
}

// Population returns a deep copy of the committed population.
func (a *GenerationalAlgorithm) Population() []*framework.Solution {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return framework.ClonePopulation(a.population)
}

// Result returns deep copies of the non-dominated solutions of the committed
// population. It does not modify any state and may be called during a run.
func (a *GenerationalAlgorithm) Result() []*framework.Solution {
	population := a.Population()
	front, err := framework.NonDominated(population, a.cmp)
	if err != nil {
		// The evaluator guarantees consistent objective vectors.
		klog.Background().Error(err, "Computing result front", "algorithm", a.name)
		return nil
	}
	return front
}

// Run executes the algorithm until the stopping condition holds, Stop is
// called or a step fails. A failed step leaves the last committed population
// untouched.
func (a *GenerationalAlgorithm) Run(ctx context.Context) error {
	if !a.state.CompareAndSwap(int32(Created), int32(initializing)) {
		return fmt.Errorf("%w: state is %s", ErrAlreadyStarted, a.State())
	}

	logger := klog.FromContext(ctx).WithValues("algorithm", a.name, "problem", a.problem.Name())
	ctx = klog.NewContext(ctx, logger)

	a.measures.duration.Reset()
	a.measures.duration.Start()
	defer func() {
		a.measures.duration.Stop()
		a.state.Store(int32(Terminated))
	}()

	if err := a.initialize(ctx); err != nil {
		return fmt.Errorf("initializing %s: %w", a.name, err)
	}
	a.state.Store(int32(Initialized))
	logger.V(2).Info("Initialized population", "size", a.cfg.PopulationSize)

	a.state.Store(int32(Running))
	for !a.done() {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s interrupted after %s evaluations: %w",
				a.name, humanize.Comma(int64(a.Evaluations())), err)
		}
		if err := a.step(ctx, logger); err != nil {
			return fmt.Errorf("generation %d of %s: %w", a.Generation()+1, a.name, err)
		}
	}

	logger.V(2).Info("Finished",
		"generations", a.Generation(),
		"evaluations", humanize.Comma(int64(a.Evaluations())),
		"elapsed", a.measures.duration.Get(),
		"stopped", a.stopped.Load())
	return nil
}

func (a *GenerationalAlgorithm) done() bool {
	return a.stopped.Load() || a.stopping.Reached(a.Evaluations())
}

func (a *GenerationalAlgorithm) initialize(ctx context.Context) error {
	population, err := a.initializer.Initialize(a.problem, a.cfg.PopulationSize)
	if err != nil {
		return err
	}
	population, err = a.evaluator.Evaluate(ctx, population, a.problem)
	if err != nil {
		return fmt.Errorf("evaluating initial population: %w", err)
	}
	// Replacing with the pool size keeps everyone and annotates rank and
	// distance for the first selection.
	population, err = a.replacement.Replace(ctx, population, len(population))
	if err != nil {
		return fmt.Errorf("ranking initial population: %w", err)
	}

	a.mu.Lock()
	a.population = population
	a.generation = 0
	a.mu.Unlock()

	a.measures.evaluations.Reset(0)
	return nil
}

// step runs one generation and commits it only if every stage succeeds.
func (a *GenerationalAlgorithm) step(ctx context.Context, logger logr.Logger) error {
	// Work on copies: replacement re-annotates rank and distance, and
	// readers of the committed population must not observe that.
	population := a.Population()

	matingPool, err := a.selection.Select(population, a.cfg.MatingPoolSize)
	if err != nil {
		return fmt.Errorf("selection: %w", err)
	}
	offspring, err := a.variation.Variate(matingPool, a.cfg.OffspringPopulationSize)
	if err != nil {
		return fmt.Errorf("variation: %w", err)
	}
	offspring, err = a.evaluator.Evaluate(ctx, offspring, a.problem)
	if err != nil {
		return fmt.Errorf("evaluating offspring: %w", err)
	}

	pool := make([]*framework.Solution, 0, len(population)+len(offspring))
	pool = append(pool, population...)
	pool = append(pool, offspring...)
	next, err := a.replacement.Replace(ctx, pool, a.cfg.PopulationSize)
	if err != nil {
		return fmt.Errorf("replacement: %w", err)
	}

	a.mu.Lock()
	a.population = next
	a.generation++
	generation := a.generation
	a.mu.Unlock()

	evaluations := a.measures.evaluations.Increment(a.cfg.PopulationSize)
	a.measures.population.Push(framework.ClonePopulation(next))
	a.updateIndicators(logger, next)

	logger.V(4).Info("Generation completed", "generation", generation, "evaluations", evaluations)
	return nil
}

// updateIndicators refreshes hypervolume, IGD and epsilon. With a reference
// front they are measured against it; otherwise epsilon measures the gap
// between the front and the current points of interest.
func (a *GenerationalAlgorithm) updateIndicators(logger logr.Logger, population []*framework.Solution) {
	front, err := framework.NonDominated(population, a.cmp)
	if err != nil {
		logger.Error(err, "Extracting front for indicators")
		return
	}
	points := framework.Points(front)

	if len(a.referenceFront) > 0 {
		a.push(logger, a.measures.hypervolume, indicators.NewHypervolume(a.referenceFront), points)
		a.push(logger, a.measures.igd, indicators.NewInvertedGenerationalDistance(a.referenceFront), points)
		a.push(logger, a.measures.epsilon, indicators.NewEpsilon(a.referenceFront), points)
		return
	}
	if interest := a.PointsOfInterest(); len(interest) > 0 {
		a.push(logger, a.measures.epsilon, indicators.NewEpsilon(interest), points)
	}
}

func (a *GenerationalAlgorithm) push(logger logr.Logger, m *measure.Measure[float64], ind indicators.Indicator, front []framework.ObjectiveSpacePoint) {
	v, err := ind.Evaluate(front)
	if err != nil {
		logger.Error(err, "Computing indicator", "indicator", ind.Name())
		return
	}
	m.Push(v)
}
