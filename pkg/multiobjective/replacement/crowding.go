package replacement

import (
	"math"
	"sort"

	"sigs.k8s.io/multiobjective/pkg/multiobjective/framework"
)

// CrowdingDistance calculates crowding distance for individuals in a front
// and stores it in their Distance field.
func CrowdingDistance(front []*framework.Solution) {
	for i, d := range crowdingDistances(front) {
		front[i].Distance = d
	}
}

// crowdingDistances returns the crowding distance of every member of front,
// aligned with the front order. The front itself is not reordered.
func crowdingDistances(front []*framework.Solution) []float64 {
	distances := make([]float64, len(front))
	if len(front) <= 2 {
		for i := range distances {
			distances[i] = math.Inf(1)
		}
		return distances
	}

	order := make([]int, len(front))
	numObjectives := len(front[0].Objectives)
	for m := 0; m < numObjectives; m++ {
		for i := range order {
			order[i] = i
		}
		// Sort by each objective
		sort.SliceStable(order, func(i, j int) bool {
			return front[order[i]].Objectives[m] < front[order[j]].Objectives[m]
		})

		// Set boundary points to infinity
		first, last := order[0], order[len(order)-1]
		distances[first] = math.Inf(1)
		distances[last] = math.Inf(1)

		objectiveRange := front[last].Objectives[m] - front[first].Objectives[m]
		if objectiveRange == 0 {
			continue
		}

		// Calculate distance for intermediate points
		for i := 1; i < len(order)-1; i++ {
			gap := front[order[i+1]].Objectives[m] - front[order[i-1]].Objectives[m]
			distances[order[i]] += gap / objectiveRange
		}
	}
	return distances
}

// crowdingSelector keeps the most isolated solutions of the overflowing front.
type crowdingSelector struct{}

func (crowdingSelector) annotate(front []*framework.Solution) {
	CrowdingDistance(front)
}

func (crowdingSelector) truncate(front []*framework.Solution, n int) []*framework.Solution {
	CrowdingDistance(front)

	sorted := make([]*framework.Solution, len(front))
	copy(sorted, front)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Distance > sorted[j].Distance
	})
	return sorted[:n]
}
