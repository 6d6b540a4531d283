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
	"k8s.io/utils/ptr"
)

var (
	DefaultAlgorithm            = "RNSGAII"
	DefaultProblem              = "ZDT1"
	DefaultPopulationSize       = int32(100)
	DefaultMaxEvaluations       = int32(25000)
	DefaultCrossoverProbability = 0.9
	DefaultDistributionIndex    = 20.0
	DefaultEpsilon              = 0.0045
	DefaultEvaluatorWorkers     = int32(0)
	DefaultReferenceFrontSize   = int32(100)
)

// SetDefaults_RNSGAIIArgs sets the default parameters for an optimization run.
func SetDefaults_RNSGAIIArgs(obj *RNSGAIIArgs) {
	if obj.APIVersion == "" {
		obj.APIVersion = SchemeGroupVersion.String()
	}
	if obj.Kind == "" {
		obj.Kind = RNSGAIIArgsKind
	}
	if obj.Algorithm == "" {
		obj.Algorithm = DefaultAlgorithm
	}
	if obj.Problem.Name == "" {
		obj.Problem.Name = DefaultProblem
	}

	if obj.PopulationSize == nil {
		obj.PopulationSize = ptr.To(DefaultPopulationSize)
	}
	if obj.MatingPoolSize == nil {
		obj.MatingPoolSize = ptr.To(*obj.PopulationSize)
	}
	if obj.OffspringPopulationSize == nil {
		obj.OffspringPopulationSize = ptr.To(*obj.PopulationSize)
	}
	if obj.MaxEvaluations == nil {
		obj.MaxEvaluations = ptr.To(DefaultMaxEvaluations)
	}

	if obj.Crossover == nil {
		obj.Crossover = &CrossoverArgs{}
	}
	if obj.Crossover.Probability == nil {
		obj.Crossover.Probability = ptr.To(DefaultCrossoverProbability)
	}
	if obj.Crossover.DistributionIndex == nil {
		obj.Crossover.DistributionIndex = ptr.To(DefaultDistributionIndex)
	}

	if obj.Mutation == nil {
		obj.Mutation = &MutationArgs{}
	}
	if obj.Mutation.Probability == nil && obj.Problem.Variables > 0 {
		obj.Mutation.Probability = ptr.To(1.0 / float64(obj.Problem.Variables))
	}
	if obj.Mutation.DistributionIndex == nil {
		obj.Mutation.DistributionIndex = ptr.To(DefaultDistributionIndex)
	}

	if obj.Epsilon == nil {
		obj.Epsilon = ptr.To(DefaultEpsilon)
	}
	if obj.Evaluator == nil {
		obj.Evaluator = &EvaluatorArgs{}
	}
	if obj.Evaluator.Workers == nil {
		obj.Evaluator.Workers = ptr.To(DefaultEvaluatorWorkers)
	}
	if obj.ReferenceFrontSize == nil {
		obj.ReferenceFrontSize = ptr.To(DefaultReferenceFrontSize)
	}
}
