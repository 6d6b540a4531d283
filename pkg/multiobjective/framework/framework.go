package framework

import "context"

// Evaluator computes the objective vectors of a batch of solutions. The call
// blocks until every solution of the batch has been evaluated or one failed.
type Evaluator interface {
	Evaluate(ctx context.Context, solutions []*Solution, problem Problem) ([]*Solution, error)
}

// Initializer builds the first population of a run.
type Initializer interface {
	Initialize(problem Problem, size int) ([]*Solution, error)
}

// SelectionOperator picks the mating pool from the current population.
type SelectionOperator interface {
	Select(population []*Solution, size int) ([]*Solution, error)
}

// CrossoverOperator recombines two parents into two children with unset objectives.
type CrossoverOperator interface {
	Crossover(parent1, parent2 *Solution) (*Solution, *Solution)
}

// MutationOperator perturbs the variables of a solution in place.
type MutationOperator interface {
	Mutate(*Solution)
}

// Replacement reduces the combined parent and offspring pool to the next population.
type Replacement interface {
	Replace(ctx context.Context, pool []*Solution, size int) ([]*Solution, error)
}
