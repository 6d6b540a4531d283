package replacement

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync/atomic"

	"gonum.org/v1/gonum/floats"
	"k8s.io/klog/v2"

	"sigs.k8s.io/multiobjective/pkg/multiobjective/framework"
	"sigs.k8s.io/multiobjective/pkg/multiobjective/preference"
)

// RankingAndPreference is the R-NSGA-II replacement. Inside the overflowing
// front, solutions closer to the preference points win; solutions whose
// distance is within epsilon of the best one are equally preferred and
// ordered among themselves by crowding distance.
//
// With an empty preference set it behaves exactly like RankingAndCrowding.
type RankingAndPreference struct {
	cmp     *framework.Comparator
	points  *preference.PointOfInterest
	epsilon float64
	weights []float64

	// preferenceScored is set when the last Replace annotated preference
	// distances and cleared when it fell back to crowding.
	preferenceScored atomic.Bool

	// snapshotHook, when set, observes the point set read by Replace.
	snapshotHook func([]framework.ObjectiveSpacePoint)
}

var _ framework.Replacement = &RankingAndPreference{}

// NewRankingAndPreference creates the replacement. Nil weights weigh every
// objective with 1/M.
func NewRankingAndPreference(cmp *framework.Comparator, points *preference.PointOfInterest, epsilon float64, weights []float64) (*RankingAndPreference, error) {
	if points == nil {
		return nil, fmt.Errorf("preference points must not be nil")
	}
	if epsilon < 0 || math.IsNaN(epsilon) {
		return nil, fmt.Errorf("epsilon must be non-negative, got %v", epsilon)
	}

	m := points.NumObjectives()
	if weights == nil {
		weights = make([]float64, m)
		for i := range weights {
			weights[i] = 1.0 / float64(m)
		}
	}
	if len(weights) != m {
		return nil, framework.DimensionError("weight vector", len(weights), m)
	}
	for _, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("weights must be non-negative, got %v", weights)
		}
	}

	return &RankingAndPreference{
		cmp:     cmp,
		points:  points,
		epsilon: epsilon,
		weights: weights,
	}, nil
}

// Points returns the live preference cell this replacement reads.
func (r *RankingAndPreference) Points() *preference.PointOfInterest {
	return r.points
}

// PreferenceScored reports whether the Distance values written by the last
// Replace are preference distances (smaller is better) rather than crowding
// distances (larger is better).
func (r *RankingAndPreference) PreferenceScored() bool {
	return r.preferenceScored.Load()
}

// Epsilon returns the neighborhood radius.
func (r *RankingAndPreference) Epsilon() float64 {
	return r.epsilon
}

func (r *RankingAndPreference) Replace(ctx context.Context, pool []*framework.Solution, size int) ([]*framework.Solution, error) {
	// The point set is read once so that the whole step sees one snapshot.
	points := r.points.Snapshot()
	if r.snapshotHook != nil {
		r.snapshotHook(points)
	}

	if len(points) == 0 {
		survivors, err := selectByRank(ctx, pool, size, r.cmp, crowdingSelector{})
		if err == nil {
			r.preferenceScored.Store(false)
		}
		return survivors, err
	}

	for i, s := range pool {
		if len(s.Objectives) != len(r.weights) {
			return nil, fmt.Errorf("solution %d: %w", i, framework.DimensionError("objective vector", len(s.Objectives), len(r.weights)))
		}
	}

	lower, upper := objectiveRanges(pool, len(r.weights))
	klog.FromContext(ctx).V(5).Info("preference replacement", "points", len(points), "epsilon", r.epsilon)

	sel := &preferenceSelector{
		points:  points,
		weights: r.weights,
		lower:   lower,
		upper:   upper,
		epsilon: r.epsilon,
	}
	survivors, err := selectByRank(ctx, pool, size, r.cmp, sel)
	if err == nil {
		r.preferenceScored.Store(true)
	}
	return survivors, err
}

// objectiveRanges returns the per objective minimum and maximum over the pool.
func objectiveRanges(pool []*framework.Solution, numObjectives int) (lower, upper []float64) {
	lower = make([]float64, numObjectives)
	upper = make([]float64, numObjectives)
	if len(pool) == 0 {
		return lower, upper
	}

	column := make([]float64, len(pool))
	for m := 0; m < numObjectives; m++ {
		for i, s := range pool {
			column[i] = s.Objectives[m]
		}
		lower[m] = floats.Min(column)
		upper[m] = floats.Max(column)
	}
	return lower, upper
}

// PreferenceDistance is the normalized weighted Euclidean distance between an
// objective vector and a reference point. Each objective is scaled by the
// range [lower, upper]; degenerate ranges are left unscaled.
func PreferenceDistance(objectives, point, weights, lower, upper []float64) float64 {
	diff := make([]float64, len(objectives))
	floats.SubTo(diff, objectives, point)
	for k := range diff {
		if r := upper[k] - lower[k]; r > 0 {
			diff[k] /= r
		}
	}
	floats.Mul(diff, diff)
	return math.Sqrt(floats.Dot(weights, diff))
}

type preferenceSelector struct {
	points  []framework.ObjectiveSpacePoint
	weights []float64
	lower   []float64
	upper   []float64
	epsilon float64
}

// score is the minimum distance of s to any preference point.
func (p *preferenceSelector) score(s *framework.Solution) float64 {
	best := math.Inf(1)
	for _, pt := range p.points {
		if d := PreferenceDistance(s.Objectives, pt, p.weights, p.lower, p.upper); d < best {
			best = d
		}
	}
	return best
}

func (p *preferenceSelector) annotate(front []*framework.Solution) {
	for _, s := range front {
		s.Distance = p.score(s)
	}
}

func (p *preferenceSelector) truncate(front []*framework.Solution, n int) []*framework.Solution {
	p.annotate(front)

	best := math.Inf(1)
	for _, s := range front {
		best = math.Min(best, s.Distance)
	}

	// Solutions within epsilon of the best score are equally preferred and
	// spread out by the crowding distance computed among themselves only.
	var group []*framework.Solution
	inGroup := make(map[*framework.Solution]bool)
	for _, s := range front {
		if s.Distance <= best+p.epsilon {
			group = append(group, s)
			inGroup[s] = true
		}
	}
	crowding := make(map[*framework.Solution]float64, len(group))
	for i, d := range crowdingDistances(group) {
		crowding[group[i]] = d
	}

	sorted := make([]*framework.Solution, len(front))
	copy(sorted, front)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if inGroup[a] != inGroup[b] {
			return inGroup[a]
		}
		if inGroup[a] && crowding[a] != crowding[b] {
			return crowding[a] > crowding[b]
		}
		return a.Distance < b.Distance
	})
	return sorted[:n]
}
