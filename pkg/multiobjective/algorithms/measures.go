package algorithms

import (
	"k8s.io/utils/clock"

	"sigs.k8s.io/multiobjective/pkg/multiobjective/framework"
	"sigs.k8s.io/multiobjective/pkg/multiobjective/measure"
)

// Keys under which a GenerationalAlgorithm registers its measures.
const (
	CurrentExecutionTimeKey = "currentExecutionTime"
	CurrentEvaluationKey    = "currentEvaluation"
	CurrentPopulationKey    = "currentPopulation"
	HypervolumeKey          = "hypervolume"
	EpsilonKey              = "epsilon"
	IGDKey                  = "IGD"
)

type measures struct {
	manager *measure.Manager

	duration    *measure.Duration
	evaluations *measure.Counter
	population  *measure.Measure[[]*framework.Solution]
	hypervolume *measure.Measure[float64]
	epsilon     *measure.Measure[float64]
	igd         *measure.Measure[float64]
}

func newMeasures(c clock.PassiveClock) *measures {
	m := &measures{
		manager:     measure.NewManager(),
		duration:    measure.NewDuration(CurrentExecutionTimeKey, "Wall time of the current run", c),
		evaluations: measure.NewCounter(CurrentEvaluationKey, "Number of evaluations performed"),
		population:  measure.New[[]*framework.Solution](CurrentPopulationKey, "Population at the end of the last generation"),
		hypervolume: measure.New[float64](HypervolumeKey, "Hypervolume of the current front"),
		epsilon:     measure.New[float64](EpsilonKey, "Additive epsilon of the current front"),
		igd:         measure.New[float64](IGDKey, "Inverted generational distance of the current front"),
	}

	m.manager.SetPullMeasure(CurrentExecutionTimeKey, m.duration)
	m.manager.SetPullMeasure(CurrentEvaluationKey, m.evaluations)
	m.manager.SetPullMeasure(HypervolumeKey, m.hypervolume)
	m.manager.SetPullMeasure(EpsilonKey, m.epsilon)
	m.manager.SetPullMeasure(IGDKey, m.igd)

	m.manager.SetPushMeasure(CurrentPopulationKey, m.population)
	m.manager.SetPushMeasure(CurrentEvaluationKey, m.evaluations)
	m.manager.SetPushMeasure(HypervolumeKey, m.hypervolume)
	m.manager.SetPushMeasure(EpsilonKey, m.epsilon)
	m.manager.SetPushMeasure(IGDKey, m.igd)
	return m
}
