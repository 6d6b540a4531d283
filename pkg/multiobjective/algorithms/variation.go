package algorithms

import (
	"fmt"

	"sigs.k8s.io/multiobjective/pkg/multiobjective/framework"
)

// Variation turns a mating pool into offspring with unset objectives.
type Variation interface {
	Variate(matingPool []*framework.Solution, size int) ([]*framework.Solution, error)
}

// CrossoverAndMutation walks the mating pool in pairs, recombines each pair
// and mutates both children until size offspring exist.
type CrossoverAndMutation struct {
	Crossover framework.CrossoverOperator
	Mutation  framework.MutationOperator
}

var _ Variation = &CrossoverAndMutation{}

func NewCrossoverAndMutation(crossover framework.CrossoverOperator, mutation framework.MutationOperator) *CrossoverAndMutation {
	return &CrossoverAndMutation{Crossover: crossover, Mutation: mutation}
}

func (v *CrossoverAndMutation) Variate(matingPool []*framework.Solution, size int) ([]*framework.Solution, error) {
	if len(matingPool) < 2 {
		return nil, fmt.Errorf("mating pool needs at least 2 parents, got %d", len(matingPool))
	}

	offspring := make([]*framework.Solution, 0, size+1)
	for i := 0; len(offspring) < size; i += 2 {
		parent1 := matingPool[i%len(matingPool)]
		parent2 := matingPool[(i+1)%len(matingPool)]

		child1, child2 := v.Crossover.Crossover(parent1, parent2)
		v.Mutation.Mutate(child1)
		v.Mutation.Mutate(child2)
		child1.Objectives, child2.Objectives = nil, nil

		offspring = append(offspring, child1, child2)
	}
	return offspring[:size], nil
}
