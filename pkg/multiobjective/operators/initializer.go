package operators

import (
	"fmt"
	"math/rand/v2"

	"sigs.k8s.io/multiobjective/pkg/multiobjective/framework"
)

// RandomInitializer samples every variable uniformly inside its bounds.
type RandomInitializer struct {
	rnd source
}

var _ framework.Initializer = &RandomInitializer{}

func NewRandomInitializer(r *rand.Rand) *RandomInitializer {
	return &RandomInitializer{rnd: source{r}}
}

// Initialize creates an initial random population of individuals
func (ri *RandomInitializer) Initialize(problem framework.Problem, size int) ([]*framework.Solution, error) {
	b := problem.Bounds()
	if len(b) != problem.NumVariables() {
		return nil, fmt.Errorf("%w: problem %s declares %d variables but %d bounds",
			framework.ErrDimensionMismatch, problem.Name(), problem.NumVariables(), len(b))
	}

	population := make([]*framework.Solution, size)
	for i := 0; i < size; i++ {
		vars := make([]float64, len(b))
		for j := range vars {
			vars[j] = b[j].L + ri.rnd.Float64()*(b[j].H-b[j].L)
		}
		population[i] = framework.NewSolution(vars)
	}
	return population, nil
}
