package benchmarks

import (
	"sigs.k8s.io/multiobjective/pkg/multiobjective/framework"
)

const ZDT2Name = "ZDT2"

// ZDT2 has a non-convex Pareto front
type ZDT2 struct {
	numVars int
}

var _ framework.Problem = &ZDT2{}

func NewZDT2(numVars int) *ZDT2 {
	return &ZDT2{numVars: numVars}
}

func (p *ZDT2) Name() string       { return ZDT2Name }
func (p *ZDT2) NumVariables() int  { return p.numVars }
func (p *ZDT2) NumObjectives() int { return 2 }

func (p *ZDT2) Bounds() []framework.Bounds {
	return unitBounds(p.numVars)
}

func (p *ZDT2) ObjectiveFuncs() []framework.ObjectiveFunc {
	return []framework.ObjectiveFunc{p.f1, p.f2}
}

func (p *ZDT2) f1(x []float64) (float64, error) {
	if err := checkVariables(x, p.numVars); err != nil {
		return 0, err
	}
	return x[0], nil
}

func (p *ZDT2) f2(x []float64) (float64, error) {
	if err := checkVariables(x, p.numVars); err != nil {
		return 0, err
	}
	g := zdtG(x)
	r := x[0] / g
	return g * (1.0 - r*r), nil
}

func (p *ZDT2) TrueParetoFront(numPoints int) []framework.ObjectiveSpacePoint {
	return zdtFront(numPoints, func(x float64) float64 { return 1.0 - x*x })
}
