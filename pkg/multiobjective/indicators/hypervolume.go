package indicators

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"sigs.k8s.io/multiobjective/pkg/multiobjective/framework"
)

// Hypervolume measures the volume dominated by the front. Fronts are first
// normalized with the bounds of the reference front, so the result lies in
// [0, 1] and the reference point is (1, ..., 1). Higher is better.
type Hypervolume struct {
	reference []framework.ObjectiveSpacePoint
}

var _ Indicator = &Hypervolume{}

func NewHypervolume(reference []framework.ObjectiveSpacePoint) *Hypervolume {
	return &Hypervolume{reference: reference}
}

func (h *Hypervolume) Name() string { return "hypervolume" }

func (h *Hypervolume) Evaluate(front []framework.ObjectiveSpacePoint) (float64, error) {
	if err := validate(front, h.reference); err != nil {
		return 0, err
	}
	m := len(h.reference[0])

	lower := make([]float64, m)
	upper := make([]float64, m)
	column := make([]float64, len(h.reference))
	for k := 0; k < m; k++ {
		for i, r := range h.reference {
			column[i] = r[k]
		}
		lower[k] = floats.Min(column)
		upper[k] = floats.Max(column)
	}

	normalized := make([][]float64, 0, len(front))
	for _, p := range front {
		q := make([]float64, m)
		for k := range q {
			if r := upper[k] - lower[k]; r > 0 {
				q[k] = (p[k] - lower[k]) / r
			} else {
				q[k] = p[k] - lower[k]
			}
		}
		normalized = append(normalized, q)
	}

	ref := make([]float64, m)
	for k := range ref {
		ref[k] = 1
	}
	return volume(normalized, ref), nil
}

// volume computes the hypervolume dominated by points and bounded by ref by
// slicing along the last objective.
func volume(points [][]float64, ref []float64) float64 {
	m := len(ref)
	inside := points[:0:0]
	for _, p := range points {
		dominatesRef := true
		for k := 0; k < m; k++ {
			if p[k] >= ref[k] {
				dominatesRef = false
				break
			}
		}
		if dominatesRef {
			inside = append(inside, p)
		}
	}
	if len(inside) == 0 {
		return 0
	}

	switch m {
	case 1:
		best := math.Inf(1)
		for _, p := range inside {
			best = math.Min(best, p[0])
		}
		return ref[0] - best
	case 2:
		sort.Slice(inside, func(i, j int) bool {
			if inside[i][0] != inside[j][0] {
				return inside[i][0] < inside[j][0]
			}
			return inside[i][1] < inside[j][1]
		})
		area, prevY := 0.0, ref[1]
		for _, p := range inside {
			if p[1] < prevY {
				area += (ref[0] - p[0]) * (prevY - p[1])
				prevY = p[1]
			}
		}
		return area
	}

	sort.Slice(inside, func(i, j int) bool {
		return inside[i][m-1] < inside[j][m-1]
	})
	total := 0.0
	for i := range inside {
		top := ref[m-1]
		if i+1 < len(inside) {
			top = inside[i+1][m-1]
		}
		depth := top - inside[i][m-1]
		if depth <= 0 {
			continue
		}
		slice := make([][]float64, i+1)
		for j := 0; j <= i; j++ {
			slice[j] = inside[j][:m-1]
		}
		total += depth * volume(slice, ref[:m-1])
	}
	return total
}
