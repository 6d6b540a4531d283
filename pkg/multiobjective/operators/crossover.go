package operators

import (
	"math"
	"math/rand/v2"

	"sigs.k8s.io/multiobjective/pkg/multiobjective/framework"
)

const (
	DefaultCrossoverProbability = 0.9
	DefaultDistributionIndex    = 20.0
)

// SBXCrossover performs SBX (Simulated Binary Crossover) on real variables.
type SBXCrossover struct {
	Probability       float64
	DistributionIndex float64
	Bounds            []framework.Bounds

	rnd source
}

var _ framework.CrossoverOperator = &SBXCrossover{}

// NewSBXCrossover creates an SBX operator; r may be nil to use the global generator.
func NewSBXCrossover(probability, distributionIndex float64, bounds []framework.Bounds, r *rand.Rand) *SBXCrossover {
	return &SBXCrossover{
		Probability:       probability,
		DistributionIndex: distributionIndex,
		Bounds:            bounds,
		rnd:               source{r},
	}
}

func (c *SBXCrossover) Crossover(parent1, parent2 *framework.Solution) (*framework.Solution, *framework.Solution) {
	child1 := framework.NewSolution(make([]float64, len(parent1.Variables)))
	child2 := framework.NewSolution(make([]float64, len(parent2.Variables)))

	if c.rnd.Float64() >= c.Probability {
		copy(child1.Variables, parent1.Variables)
		copy(child2.Variables, parent2.Variables)
		return child1, child2
	}

	exp := 1.0 / (c.DistributionIndex + 1.0)
	for i := range parent1.Variables {
		beta := 0.0
		if u := c.rnd.Float64(); u <= 0.5 {
			beta = math.Pow(2*u, exp)
		} else {
			beta = math.Pow(1.0/(2*(1.0-u)), exp)
		}

		child1.Variables[i] = 0.5 * ((1+beta)*parent1.Variables[i] + (1-beta)*parent2.Variables[i])
		child2.Variables[i] = 0.5 * ((1-beta)*parent1.Variables[i] + (1+beta)*parent2.Variables[i])

		// Bound checking
		if i < len(c.Bounds) {
			child1.Variables[i] = c.Bounds[i].Clamp(child1.Variables[i])
			child2.Variables[i] = c.Bounds[i].Clamp(child2.Variables[i])
		}
	}

	return child1, child2
}
