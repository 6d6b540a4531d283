package framework

// Solution represents an individual in the population.
//
// Rank and Distance are owned by the replacement step and recomputed every
// generation. Distance holds the secondary score of the active strategy:
// crowding distance (larger is better) or preference distance (smaller is better).
type Solution struct {
	Variables  []float64
	Objectives []float64

	Rank     int
	Distance float64
}

// NewSolution creates an unevaluated solution that owns vars.
func NewSolution(vars []float64) *Solution {
	return &Solution{
		Variables: vars,
	}
}

// Evaluated reports whether the objective vector has been computed.
func (s *Solution) Evaluated() bool {
	return s.Objectives != nil
}

// Clone returns a deep copy of the solution.
func (s *Solution) Clone() *Solution {
	c := &Solution{
		Rank:     s.Rank,
		Distance: s.Distance,
	}
	if s.Variables != nil {
		c.Variables = make([]float64, len(s.Variables))
		copy(c.Variables, s.Variables)
	}
	if s.Objectives != nil {
		c.Objectives = make([]float64, len(s.Objectives))
		copy(c.Objectives, s.Objectives)
	}
	return c
}

// Point returns the objective vector as an ObjectiveSpacePoint.
func (s *Solution) Point() ObjectiveSpacePoint {
	return ObjectiveSpacePoint(s.Objectives)
}

// ClonePopulation deep-copies every solution of the population.
func ClonePopulation(population []*Solution) []*Solution {
	out := make([]*Solution, len(population))
	for i, s := range population {
		out[i] = s.Clone()
	}
	return out
}

// Points extracts the objective vectors of the population.
func Points(population []*Solution) []ObjectiveSpacePoint {
	points := make([]ObjectiveSpacePoint, len(population))
	for i, s := range population {
		points[i] = s.Point()
	}
	return points
}

// ObjectiveFunc computes a single objective for a variable vector.
type ObjectiveFunc func([]float64) (float64, error)

// ObjectiveSpacePoint represents an N-dimensional point in the objective space.
// As an example, for a problem with 2 objective functions f1 and f2, a point
// in the objective space could be [f1(x'), f2(x')], for the input of x'.
type ObjectiveSpacePoint []float64

// Clone returns a copy of the point.
func (p ObjectiveSpacePoint) Clone() ObjectiveSpacePoint {
	if p == nil {
		return nil
	}
	c := make(ObjectiveSpacePoint, len(p))
	copy(c, p)
	return c
}

// Bounds is the closed interval a decision variable lives in.
type Bounds struct {
	L float64
	H float64
}

// Clamp restricts v to the interval.
func (b Bounds) Clamp(v float64) float64 {
	if v < b.L {
		return b.L
	}
	if v > b.H {
		return b.H
	}
	return v
}

// Problem describes the contract a specific multi-objective problem needs to implement.
type Problem interface {
	Name() string

	NumVariables() int
	NumObjectives() int
	Bounds() []Bounds

	ObjectiveFuncs() []ObjectiveFunc

	// TrueParetoFront is optional due to the difficulty of finding the true front
	// in some types of problems. When there isn't a way to find the true front,
	// just return nil.
	TrueParetoFront(int) []ObjectiveSpacePoint
}

// Sense is the optimization direction of one objective.
type Sense int

const (
	Minimize Sense = iota
	Maximize
)

func (s Sense) String() string {
	if s == Maximize {
		return "maximize"
	}
	return "minimize"
}

// SensedProblem is implemented by problems that maximize at least one objective.
type SensedProblem interface {
	Problem
	Senses() []Sense
}

// Algorithm describes the contract that a MOO algorithm needs to implement.
type Algorithm interface {
	Name() string
	Description() string
}
