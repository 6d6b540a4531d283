package benchmarks

import (
	"math"

	"sigs.k8s.io/multiobjective/pkg/multiobjective/framework"
)

const (
	DTLZ2Name = "DTLZ2"

	// dtlz2K is the recommended size of the distance variable group.
	dtlz2K = 10
)

// DTLZ2 has a spherical Pareto front: sum(f_i^2) = 1 with f_i >= 0.
// It scales to any number of objectives.
type DTLZ2 struct {
	numVars       int
	numObjectives int
}

var _ framework.Problem = &DTLZ2{}

// NewDTLZ2 creates the problem. The usual choice is numVars = numObjectives + 9.
func NewDTLZ2(numVars, numObjectives int) *DTLZ2 {
	return &DTLZ2{
		numVars:       numVars,
		numObjectives: numObjectives,
	}
}

func (p *DTLZ2) Name() string       { return DTLZ2Name }
func (p *DTLZ2) NumVariables() int  { return p.numVars }
func (p *DTLZ2) NumObjectives() int { return p.numObjectives }

func (p *DTLZ2) Bounds() []framework.Bounds {
	return unitBounds(p.numVars)
}

func (p *DTLZ2) ObjectiveFuncs() []framework.ObjectiveFunc {
	funcs := make([]framework.ObjectiveFunc, p.numObjectives)
	for i := range funcs {
		funcs[i] = func(x []float64) (float64, error) {
			if err := checkVariables(x, p.numVars); err != nil {
				return 0, err
			}
			return p.objective(x, i), nil
		}
	}
	return funcs
}

func (p *DTLZ2) g(x []float64) float64 {
	sum := 0.0
	for i := p.numObjectives - 1; i < p.numVars; i++ {
		d := x[i] - 0.5
		sum += d * d
	}
	return sum
}

func (p *DTLZ2) objective(x []float64, objIdx int) float64 {
	f := 1 + p.g(x)
	for i := 0; i < p.numObjectives-objIdx-1; i++ {
		f *= math.Cos(x[i] * math.Pi / 2)
	}
	if objIdx > 0 {
		f *= math.Sin(x[p.numObjectives-objIdx-1] * math.Pi / 2)
	}
	return f
}

// TrueParetoFront samples the positive orthant of the unit sphere. For more
// than two objectives about numPoints points are returned on a regular grid
// of angles.
func (p *DTLZ2) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	if numPoints < 2 || p.numObjectives < 2 {
		return nil
	}
	m := p.numObjectives
	perAxis := int(math.Round(math.Pow(float64(numPoints), 1/float64(m-1))))
	if perAxis < 2 {
		perAxis = 2
	}

	var points []framework.ObjectiveSpacePoint
	angles := make([]float64, m-1)
	var walk func(depth int)
	walk = func(depth int) {
		if depth == m-1 {
			points = append(points, sphericalPoint(angles))
			return
		}
		for i := 0; i < perAxis; i++ {
			angles[depth] = (math.Pi / 2) * float64(i) / float64(perAxis-1)
			walk(depth + 1)
		}
	}
	walk(0)
	return points
}

// sphericalPoint maps m-1 angles to a point on the unit sphere using the same
// parametrization as the objective functions.
func sphericalPoint(angles []float64) framework.ObjectiveSpacePoint {
	m := len(angles) + 1
	p := make(framework.ObjectiveSpacePoint, m)
	for k := 0; k < m; k++ {
		f := 1.0
		for i := 0; i < m-k-1; i++ {
			f *= math.Cos(angles[i])
		}
		if k > 0 {
			f *= math.Sin(angles[m-k-1])
		}
		p[k] = f
	}
	return p
}
