package benchmarks

import (
	"math"

	"sigs.k8s.io/multiobjective/pkg/multiobjective/framework"
)

const ZDT1Name = "ZDT1"

// ZDT1 is a benchmark function used to test the correctness
// of multi-objective algorithms. Its Pareto front is convex. For more details, check the article below:
// https://datacrayon.com/practical-evolutionary-algorithms/synthetic-objective-functions-and-zdt1/
type ZDT1 struct {
	numVars int
}

var _ framework.Problem = &ZDT1{}

func NewZDT1(numVars int) *ZDT1 {
	return &ZDT1{numVars: numVars}
}

func (p *ZDT1) Name() string       { return ZDT1Name }
func (p *ZDT1) NumVariables() int  { return p.numVars }
func (p *ZDT1) NumObjectives() int { return 2 }

func (p *ZDT1) Bounds() []framework.Bounds {
	return unitBounds(p.numVars)
}

func (p *ZDT1) ObjectiveFuncs() []framework.ObjectiveFunc {
	return []framework.ObjectiveFunc{p.f1, p.f2}
}

func (p *ZDT1) f1(x []float64) (float64, error) {
	if err := checkVariables(x, p.numVars); err != nil {
		return 0, err
	}
	return x[0], nil
}

func (p *ZDT1) f2(x []float64) (float64, error) {
	if err := checkVariables(x, p.numVars); err != nil {
		return 0, err
	}
	g := zdtG(x)
	return g * (1.0 - math.Sqrt(x[0]/g)), nil
}

// TrueParetoFront generates numPoints points on the true Pareto front for ZDT1
func (p *ZDT1) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	return zdtFront(numPoints, func(x float64) float64 { return 1.0 - math.Sqrt(x) })
}

func zdtFront(numPoints int, f2 func(float64) float64) []framework.ObjectiveSpacePoint {
	if numPoints < 2 {
		return nil
	}
	points := make([]framework.ObjectiveSpacePoint, numPoints)
	for i := range points {
		x := float64(i) / float64(numPoints-1)
		points[i] = framework.ObjectiveSpacePoint{x, f2(x)}
	}
	return points
}
