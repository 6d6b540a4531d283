package operators

import (
	"fmt"
	"math/rand/v2"

	"sigs.k8s.io/multiobjective/pkg/multiobjective/framework"
)

// CompareFunc returns a negative number when a is better than b, a positive
// number when b is better and zero when they tie.
type CompareFunc func(a, b *framework.Solution) int

// RankAndCrowding prefers lower rank, then larger crowding distance.
func RankAndCrowding(a, b *framework.Solution) int {
	if a.Rank != b.Rank {
		return a.Rank - b.Rank
	}
	switch {
	case a.Distance > b.Distance:
		return -1
	case a.Distance < b.Distance:
		return 1
	}
	return 0
}

// RankAndPreference prefers lower rank, then smaller preference distance.
func RankAndPreference(a, b *framework.Solution) int {
	if a.Rank != b.Rank {
		return a.Rank - b.Rank
	}
	switch {
	case a.Distance < b.Distance:
		return -1
	case a.Distance > b.Distance:
		return 1
	}
	return 0
}

// Tournament selection
type Tournament struct {
	Size    int
	Compare CompareFunc

	rnd source
}

var _ framework.SelectionOperator = &Tournament{}

// NewBinaryTournament returns a tournament of size 2; r may be nil.
func NewBinaryTournament(compare CompareFunc, r *rand.Rand) *Tournament {
	return &Tournament{
		Size:    2,
		Compare: compare,
		rnd:     source{r},
	}
}

// Select runs size independent tournaments over the population.
func (t *Tournament) Select(population []*framework.Solution, size int) ([]*framework.Solution, error) {
	if len(population) == 0 {
		return nil, fmt.Errorf("tournament selection over an empty population")
	}

	k := t.Size
	if k < 1 {
		k = 2
	}

	pool := make([]*framework.Solution, size)
	for n := range pool {
		best := population[t.rnd.IntN(len(population))]
		for i := 1; i < k; i++ {
			contestant := population[t.rnd.IntN(len(population))]
			if t.Compare(contestant, best) < 0 {
				best = contestant
			}
		}
		pool[n] = best
	}
	return pool, nil
}
