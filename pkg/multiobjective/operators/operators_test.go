package operators

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sigs.k8s.io/multiobjective/pkg/multiobjective/framework"
)

func unitBounds(n int) []framework.Bounds {
	b := make([]framework.Bounds, n)
	for i := range b {
		b[i] = framework.Bounds{L: 0, H: 1}
	}
	return b
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func within(t *testing.T, sol *framework.Solution, bounds []framework.Bounds) {
	t.Helper()
	for i, v := range sol.Variables {
		assert.GreaterOrEqual(t, v, bounds[i].L)
		assert.LessOrEqual(t, v, bounds[i].H)
	}
}

func TestSBXCrossoverStaysInBounds(t *testing.T) {
	bounds := unitBounds(10)
	x := NewSBXCrossover(1.0, DefaultDistributionIndex, bounds, newRand())
	init := NewRandomInitializer(newRand())

	for i := 0; i < 200; i++ {
		parents, err := init.Initialize(fakeProblem{bounds}, 2)
		require.NoError(t, err)

		c1, c2 := x.Crossover(parents[0], parents[1])
		within(t, c1, bounds)
		within(t, c2, bounds)
		assert.False(t, c1.Evaluated())
		assert.False(t, c2.Evaluated())
	}
}

func TestSBXCrossoverCopiesWithoutProbability(t *testing.T) {
	bounds := unitBounds(3)
	x := NewSBXCrossover(0, DefaultDistributionIndex, bounds, newRand())
	p1 := &framework.Solution{Variables: []float64{0.1, 0.2, 0.3}, Objectives: []float64{1}}
	p2 := &framework.Solution{Variables: []float64{0.7, 0.8, 0.9}, Objectives: []float64{2}}

	c1, c2 := x.Crossover(p1, p2)
	assert.Equal(t, p1.Variables, c1.Variables)
	assert.Equal(t, p2.Variables, c2.Variables)

	c1.Variables[0] = 0.5
	assert.Equal(t, 0.1, p1.Variables[0], "children must not share variables with parents")
}

func TestPolynomialMutation(t *testing.T) {
	bounds := unitBounds(5)
	m := NewPolynomialMutation(1.0, DefaultDistributionIndex, bounds, newRand())

	sol := &framework.Solution{Variables: []float64{0, 0.25, 0.5, 0.75, 1}, Objectives: []float64{1, 1}}
	before := append([]float64(nil), sol.Variables...)
	m.Mutate(sol)

	within(t, sol, bounds)
	assert.NotEqual(t, before, sol.Variables)
	assert.False(t, sol.Evaluated())
}

func TestPolynomialMutationDefaultProbability(t *testing.T) {
	m := NewPolynomialMutation(0, DefaultDistributionIndex, unitBounds(4), nil)
	assert.Equal(t, 0.25, m.Probability)
}

func TestBinaryTournament(t *testing.T) {
	pop := []*framework.Solution{
		{Rank: 0, Distance: 1},
		{Rank: 1, Distance: 5},
		{Rank: 2, Distance: 9},
	}

	sel := NewBinaryTournament(RankAndCrowding, newRand())
	pool, err := sel.Select(pop, 300)
	require.NoError(t, err)
	require.Len(t, pool, 300)

	counts := map[*framework.Solution]int{}
	for _, s := range pool {
		counts[s]++
	}
	assert.Greater(t, counts[pop[0]], counts[pop[2]], "better solutions should win more tournaments")

	_, err = sel.Select(nil, 2)
	assert.Error(t, err)
}

func TestCompareFuncs(t *testing.T) {
	a := &framework.Solution{Rank: 0, Distance: 0.1}
	b := &framework.Solution{Rank: 0, Distance: 0.5}
	c := &framework.Solution{Rank: 1, Distance: 0}

	assert.Positive(t, RankAndCrowding(a, b))
	assert.Negative(t, RankAndPreference(a, b))
	assert.Negative(t, RankAndCrowding(b, c))
	assert.Negative(t, RankAndPreference(b, c))
	assert.Zero(t, RankAndPreference(a, a))
}

func TestRandomInitializer(t *testing.T) {
	bounds := []framework.Bounds{{L: -5, H: 5}, {L: 10, H: 11}}
	pop, err := NewRandomInitializer(newRand()).Initialize(fakeProblem{bounds}, 50)
	require.NoError(t, err)
	require.Len(t, pop, 50)
	for _, s := range pop {
		within(t, s, bounds)
		assert.False(t, s.Evaluated())
	}
}

type fakeProblem struct {
	bounds []framework.Bounds
}

func (p fakeProblem) Name() string                               { return "fake" }
func (p fakeProblem) NumVariables() int                          { return len(p.bounds) }
func (p fakeProblem) NumObjectives() int                         { return 1 }
func (p fakeProblem) Bounds() []framework.Bounds                 { return p.bounds }
func (p fakeProblem) ObjectiveFuncs() []framework.ObjectiveFunc { return nil }
func (p fakeProblem) TrueParetoFront(int) []framework.ObjectiveSpacePoint {
	return nil
}
