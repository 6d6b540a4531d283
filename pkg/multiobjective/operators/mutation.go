package operators

import (
	"math"
	"math/rand/v2"

	"sigs.k8s.io/multiobjective/pkg/multiobjective/framework"
)

// PolynomialMutation performs polynomial mutation, perturbing each variable
// with the given probability and clamping it back into its bounds.
type PolynomialMutation struct {
	Probability       float64
	DistributionIndex float64
	Bounds            []framework.Bounds

	rnd source
}

var _ framework.MutationOperator = &PolynomialMutation{}

// NewPolynomialMutation creates a mutation operator; r may be nil to use the
// global generator. A non-positive probability selects 1/len(bounds).
func NewPolynomialMutation(probability, distributionIndex float64, bounds []framework.Bounds, r *rand.Rand) *PolynomialMutation {
	if probability <= 0 && len(bounds) > 0 {
		probability = 1.0 / float64(len(bounds))
	}
	return &PolynomialMutation{
		Probability:       probability,
		DistributionIndex: distributionIndex,
		Bounds:            bounds,
		rnd:               source{r},
	}
}

func (m *PolynomialMutation) Mutate(sol *framework.Solution) {
	exp := 1.0 / (m.DistributionIndex + 1.0)
	for i := range sol.Variables {
		if i >= len(m.Bounds) || m.rnd.Float64() >= m.Probability {
			continue
		}

		delta := 0.0
		if u := m.rnd.Float64(); u < 0.5 {
			delta = math.Pow(2*u, exp) - 1
		} else {
			delta = 1 - math.Pow(2*(1-u), exp)
		}

		b := m.Bounds[i]
		sol.Variables[i] = b.Clamp(sol.Variables[i] + delta*(b.H-b.L))
	}
	// Objectives no longer describe the variables.
	sol.Objectives = nil
}
