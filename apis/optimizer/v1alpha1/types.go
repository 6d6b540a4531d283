/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// RNSGAIIArgs holds the arguments used to configure an optimization run.
type RNSGAIIArgs struct {
	metav1.TypeMeta `json:",inline"`

	// Algorithm is RNSGAII (default) or NSGAII.
	Algorithm string `json:"algorithm,omitempty"`

	// Problem selects the benchmark to optimize.
	Problem ProblemArgs `json:"problem"`

	// PopulationSize is the number of solutions kept between generations.
	PopulationSize *int32 `json:"populationSize,omitempty"`
	// MatingPoolSize is the number of parents selected per generation.
	// Defaults to PopulationSize.
	MatingPoolSize *int32 `json:"matingPoolSize,omitempty"`
	// OffspringPopulationSize is the number of children created per
	// generation. Defaults to PopulationSize.
	OffspringPopulationSize *int32 `json:"offspringPopulationSize,omitempty"`
	// MaxEvaluations stops the run once reached.
	MaxEvaluations *int32 `json:"maxEvaluations,omitempty"`

	Crossover *CrossoverArgs `json:"crossover,omitempty"`
	Mutation  *MutationArgs  `json:"mutation,omitempty"`

	// InterestPoints are reference points in objective space the search is
	// biased towards. Empty means no preference.
	InterestPoints [][]float64 `json:"interestPoints,omitempty"`
	// Epsilon is the radius of the neighborhood of equally preferred solutions.
	Epsilon *float64 `json:"epsilon,omitempty"`
	// Weights of the objectives in the preference distance. Defaults to 1/M each.
	Weights []float64 `json:"weights,omitempty"`

	Evaluator *EvaluatorArgs `json:"evaluator,omitempty"`

	// ReferenceFrontSize is the number of true Pareto front samples the
	// quality indicators are measured against. 0 disables them.
	ReferenceFrontSize *int32 `json:"referenceFrontSize,omitempty"`

	// Seed makes the run reproducible when set.
	Seed *uint64 `json:"seed,omitempty"`
}

// ProblemArgs selects a benchmark problem. Zero sizes use the benchmark defaults.
type ProblemArgs struct {
	Name       string `json:"name"`
	Variables  int32  `json:"variables,omitempty"`
	Objectives int32  `json:"objectives,omitempty"`
}

// CrossoverArgs configures SBX crossover.
type CrossoverArgs struct {
	Probability       *float64 `json:"probability,omitempty"`
	DistributionIndex *float64 `json:"distributionIndex,omitempty"`
}

// MutationArgs configures polynomial mutation.
type MutationArgs struct {
	// Probability of mutating each variable. Unset means 1/number of variables.
	Probability       *float64 `json:"probability,omitempty"`
	DistributionIndex *float64 `json:"distributionIndex,omitempty"`
}

// EvaluatorArgs configures how objective vectors are computed.
type EvaluatorArgs struct {
	// Workers bounds the goroutines evaluating a batch. 0 evaluates sequentially.
	Workers *int32 `json:"workers,omitempty"`
	// CacheTTL memoizes objective vectors of identical variable vectors when set.
	CacheTTL *metav1.Duration `json:"cacheTTL,omitempty"`
}

// OptimizationResult is the document written at the end of a run.
type OptimizationResult struct {
	metav1.TypeMeta `json:",inline"`

	Algorithm     string          `json:"algorithm"`
	Problem       string          `json:"problem"`
	Evaluations   int64           `json:"evaluations"`
	Generations   int64           `json:"generations"`
	ExecutionTime metav1.Duration `json:"executionTime"`
	GeneratedAt   metav1.Time     `json:"generatedAt"`

	// InterestPoints in effect when the run finished.
	InterestPoints [][]float64 `json:"interestPoints,omitempty"`

	// Indicators holds the final quality indicators, keyed by measure name.
	Indicators map[string]float64 `json:"indicators,omitempty"`

	// Solutions contains the non-dominated solutions found.
	Solutions []OptimizationSolution `json:"solutions"`
}

// OptimizationSolution represents a single solution from multi-objective optimization
type OptimizationSolution struct {
	// Rank is the solution rank in Pareto front (0 = best)
	Rank int `json:"rank"`

	// Variables is the decision vector.
	Variables []float64 `json:"variables"`

	// Objectives contains the individual objective values
	Objectives []float64 `json:"objectives"`
}
