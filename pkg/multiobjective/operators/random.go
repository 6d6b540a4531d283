// Package operators contains the variation, selection and initialization
// operators plugged into the generational algorithms.
package operators

import "math/rand/v2"

// source draws from r, or from the global generator when r is nil.
type source struct {
	r *rand.Rand
}

func (s source) Float64() float64 {
	if s.r == nil {
		return rand.Float64()
	}
	return s.r.Float64()
}

func (s source) IntN(n int) int {
	if s.r == nil {
		return rand.IntN(n)
	}
	return s.r.IntN(n)
}
