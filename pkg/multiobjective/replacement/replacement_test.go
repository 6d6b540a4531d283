package replacement

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sigs.k8s.io/multiobjective/pkg/multiobjective/framework"
	"sigs.k8s.io/multiobjective/pkg/multiobjective/preference"
)

func fivePointFront() []*framework.Solution {
	return []*framework.Solution{
		{Objectives: []float64{0, 5}},
		{Objectives: []float64{1, 3}},
		{Objectives: []float64{2, 2}},
		{Objectives: []float64{3, 1}},
		{Objectives: []float64{5, 0}},
	}
}

func objectives(pop []*framework.Solution) [][]float64 {
	out := make([][]float64, len(pop))
	for i, s := range pop {
		out[i] = s.Objectives
	}
	return out
}

func randomPool(r *rand.Rand, n int) []*framework.Solution {
	pool := make([]*framework.Solution, n)
	for i := range pool {
		pool[i] = &framework.Solution{Objectives: []float64{r.Float64(), r.Float64()}}
	}
	return pool
}

func newPreference(t *testing.T, eps float64, points ...framework.ObjectiveSpacePoint) *RankingAndPreference {
	t.Helper()
	cell, err := preference.NewPointOfInterest(2, points...)
	require.NoError(t, err)
	r, err := NewRankingAndPreference(framework.NewComparator(), cell, eps, nil)
	require.NoError(t, err)
	return r
}

func TestCrowdingDistance(t *testing.T) {
	front := fivePointFront()
	CrowdingDistance(front)

	assert.True(t, math.IsInf(front[0].Distance, 1))
	assert.True(t, math.IsInf(front[4].Distance, 1))
	assert.InDelta(t, 1.0, front[1].Distance, 1e-9)
	assert.InDelta(t, 0.8, front[2].Distance, 1e-9)
	assert.InDelta(t, 1.0, front[3].Distance, 1e-9)

	small := fivePointFront()[:2]
	CrowdingDistance(small)
	assert.True(t, math.IsInf(small[0].Distance, 1))
	assert.True(t, math.IsInf(small[1].Distance, 1))
}

func TestRankingAndCrowdingKeepsBoundaries(t *testing.T) {
	survivors, err := NewRankingAndCrowding(framework.NewComparator()).Replace(context.Background(), fivePointFront(), 3)
	require.NoError(t, err)
	require.Len(t, survivors, 3)

	got := objectives(survivors)
	assert.Contains(t, got, []float64{0, 5})
	assert.Contains(t, got, []float64{5, 0})
	assert.NotContains(t, got, []float64{2, 2}, "the middle point has the smallest normalized gap")
	for _, s := range survivors {
		assert.Equal(t, 0, s.Rank)
	}
}

func TestRankingAndPreferenceScenario(t *testing.T) {
	r := newPreference(t, 0, framework.ObjectiveSpacePoint{2, 2})
	survivors, err := r.Replace(context.Background(), fivePointFront(), 3)
	require.NoError(t, err)
	require.Len(t, survivors, 3)

	assert.Equal(t, []float64{2, 2}, survivors[0].Objectives)
	assert.Zero(t, survivors[0].Distance)
	assert.ElementsMatch(t, [][]float64{{1, 3}, {3, 1}}, objectives(survivors[1:]))
	for i := 1; i < len(survivors); i++ {
		assert.GreaterOrEqual(t, survivors[i].Distance, survivors[i-1].Distance)
	}
	assert.InDelta(t, 0.2, survivors[1].Distance, 1e-9)
}

func TestRankingAndPreferenceOrdersByDistance(t *testing.T) {
	r := newPreference(t, 0, framework.ObjectiveSpacePoint{2, 2})
	survivors, err := r.Replace(context.Background(), fivePointFront(), 5)
	require.NoError(t, err)

	// Whole front survives and every member is annotated.
	for _, s := range survivors {
		assert.False(t, math.IsInf(s.Distance, 0))
	}

	pruned, err := r.Replace(context.Background(), fivePointFront(), 4)
	require.NoError(t, err)
	got := objectives(pruned)
	assert.Equal(t, []float64{2, 2}, got[0])
	assert.Len(t, got, 4)
	assert.True(t, pruned[3].Distance > pruned[1].Distance)
}

func TestRankingAndPreferenceEpsilonGroup(t *testing.T) {
	// A wide epsilon makes the whole front equally preferred, so the
	// crowding distance decides and the boundaries survive.
	r := newPreference(t, 10, framework.ObjectiveSpacePoint{2, 2})
	survivors, err := r.Replace(context.Background(), fivePointFront(), 2)
	require.NoError(t, err)
	assert.ElementsMatch(t, [][]float64{{0, 5}, {5, 0}}, objectives(survivors))
}

func TestRankingAndPreferenceMultiplePoints(t *testing.T) {
	r := newPreference(t, 0, framework.ObjectiveSpacePoint{0, 5}, framework.ObjectiveSpacePoint{5, 0})
	survivors, err := r.Replace(context.Background(), fivePointFront(), 2)
	require.NoError(t, err)
	assert.ElementsMatch(t, [][]float64{{0, 5}, {5, 0}}, objectives(survivors))
}

func TestEmptyPreferenceMatchesCrowding(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for trial := 0; trial < 20; trial++ {
		pool := randomPool(r, 40)
		clone := framework.ClonePopulation(pool)

		pref := newPreference(t, 0.1, framework.ObjectiveSpacePoint{0.5, 0.5})
		require.NoError(t, pref.Points().Update(nil))

		want, err := NewRankingAndCrowding(framework.NewComparator()).Replace(context.Background(), pool, 20)
		require.NoError(t, err)
		got, err := pref.Replace(context.Background(), clone, 20)
		require.NoError(t, err)

		assert.Equal(t, objectives(want), objectives(got))
	}
}

func TestPreferenceScoredFollowsReplace(t *testing.T) {
	r := newPreference(t, 0, framework.ObjectiveSpacePoint{2, 2})
	assert.False(t, r.PreferenceScored())

	_, err := r.Replace(context.Background(), fivePointFront(), 3)
	require.NoError(t, err)
	assert.True(t, r.PreferenceScored())

	require.NoError(t, r.Points().Update(nil))
	assert.True(t, r.PreferenceScored())

	_, err = r.Replace(context.Background(), fivePointFront(), 3)
	require.NoError(t, err)
	assert.False(t, r.PreferenceScored())

	require.NoError(t, r.Points().Update([]float64{2, 2}))
	_, err = r.Replace(context.Background(), fivePointFront(), 6)
	assert.ErrorIs(t, err, framework.ErrInsufficientPool)
	assert.False(t, r.PreferenceScored(), "a failed replacement keeps the previous mode")
}

func TestReplacementSurvivorProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 5))
	replacements := map[string]framework.Replacement{
		"crowding":   NewRankingAndCrowding(framework.NewComparator()),
		"preference": newPreference(t, 0.01, framework.ObjectiveSpacePoint{0.2, 0.8}),
	}

	for name, rep := range replacements {
		t.Run(name, func(t *testing.T) {
			for trial := 0; trial < 30; trial++ {
				pool := randomPool(r, 10+r.IntN(50))
				size := 1 + r.IntN(len(pool))

				nonDominated, err := framework.NonDominated(pool, framework.NewComparator())
				require.NoError(t, err)

				survivors, err := rep.Replace(context.Background(), pool, size)
				require.NoError(t, err)
				require.Len(t, survivors, size)

				if len(nonDominated) <= size {
					for _, s := range nonDominated {
						assert.Contains(t, survivors, s, "non-dominated solution dropped")
					}
				}
				for _, s := range survivors {
					if s.Rank == 0 {
						assert.Contains(t, nonDominated, s)
					}
				}
			}
		})
	}
}

func TestInsufficientPool(t *testing.T) {
	_, err := NewRankingAndCrowding(framework.NewComparator()).Replace(context.Background(), fivePointFront(), 6)
	assert.ErrorIs(t, err, framework.ErrInsufficientPool)

	_, err = newPreference(t, 0, framework.ObjectiveSpacePoint{1, 1}).Replace(context.Background(), fivePointFront(), 6)
	assert.ErrorIs(t, err, framework.ErrInsufficientPool)
}

func TestUnevaluatedPool(t *testing.T) {
	pool := append(fivePointFront(), framework.NewSolution([]float64{1}))
	_, err := NewRankingAndCrowding(framework.NewComparator()).Replace(context.Background(), pool, 3)
	assert.Error(t, err)
}

func TestNewRankingAndPreferenceValidation(t *testing.T) {
	cell, err := preference.NewPointOfInterest(2)
	require.NoError(t, err)

	_, err = NewRankingAndPreference(framework.NewComparator(), cell, -1, nil)
	assert.Error(t, err)
	_, err = NewRankingAndPreference(framework.NewComparator(), cell, 0, []float64{1})
	assert.ErrorIs(t, err, framework.ErrDimensionMismatch)
	_, err = NewRankingAndPreference(framework.NewComparator(), nil, 0, nil)
	assert.Error(t, err)

	r, err := NewRankingAndPreference(framework.NewComparator(), cell, 0.5, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.5, r.Epsilon())
	assert.Equal(t, []float64{0.5, 0.5}, r.weights)
}

func TestPreferenceDistance(t *testing.T) {
	d := PreferenceDistance([]float64{1, 3}, []float64{2, 2}, []float64{0.5, 0.5}, []float64{0, 0}, []float64{5, 5})
	assert.InDelta(t, 0.2, d, 1e-12)

	// Degenerate ranges are not scaled.
	d = PreferenceDistance([]float64{3, 1}, []float64{1, 1}, []float64{1, 1}, []float64{2, 1}, []float64{2, 1})
	assert.InDelta(t, 2.0, d, 1e-12)
}

func TestConcurrentUpdateDuringReplacement(t *testing.T) {
	cell, err := preference.NewPointOfInterest(2, framework.ObjectiveSpacePoint{0, 0})
	require.NoError(t, err)
	r, err := NewRankingAndPreference(framework.NewComparator(), cell, 0, nil)
	require.NoError(t, err)

	var (
		mu       sync.Mutex
		observed [][]framework.ObjectiveSpacePoint
	)
	r.snapshotHook = func(points []framework.ObjectiveSpacePoint) {
		// Widen the window in which an update can interleave with the step.
		time.Sleep(50 * time.Microsecond)
		mu.Lock()
		observed = append(observed, points)
		mu.Unlock()
	}

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			v := float64(i%100) / 100
			_ = cell.Update([]float64{v, v})
		}
	}()

	rnd := rand.New(rand.NewPCG(1, 1))
	for i := 0; i < 200; i++ {
		pool := randomPool(rnd, 30)
		survivors, err := r.Replace(context.Background(), pool, 10)
		require.NoError(t, err)
		require.Len(t, survivors, 10)

		mu.Lock()
		snap := observed[len(observed)-1]
		mu.Unlock()
		require.Len(t, snap, 1)
		require.Equal(t, snap[0][0], snap[0][1], "torn preference vector %v", snap[0])

		// The scores of the survivors were computed against that snapshot.
		lower, upper := objectiveRanges(pool, 2)
		for _, s := range survivors {
			want := PreferenceDistance(s.Objectives, snap[0], r.weights, lower, upper)
			assert.InDelta(t, want, s.Distance, 1e-12)
		}
	}
	close(stop)
	wg.Wait()
}
