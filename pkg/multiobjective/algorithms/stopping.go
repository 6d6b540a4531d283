package algorithms

// StoppingCondition decides, at every generation boundary, whether the loop
// ends.
type StoppingCondition interface {
	Reached(evaluations int) bool
}

// StoppingFunc adapts a plain function to StoppingCondition.
type StoppingFunc func(evaluations int) bool

func (f StoppingFunc) Reached(evaluations int) bool { return f(evaluations) }

// MaxEvaluations stops once the evaluation counter reaches the limit.
type MaxEvaluations int

func (m MaxEvaluations) Reached(evaluations int) bool {
	return evaluations >= int(m)
}
