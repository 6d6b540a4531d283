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
	"fmt"
	"math"

	"k8s.io/apimachinery/pkg/util/validation/field"
)

var validAlgorithms = []string{"RNSGAII", "NSGAII"}

// ValidateRNSGAIIArgs validates defaulted arguments and returns every
// violation found as a single aggregate error.
func ValidateRNSGAIIArgs(path *field.Path, args *RNSGAIIArgs) error {
	var allErrs field.ErrorList

	if !contains(validAlgorithms, args.Algorithm) {
		allErrs = append(allErrs, field.NotSupported(path.Child("algorithm"), args.Algorithm, validAlgorithms))
	}

	problemPath := path.Child("problem")
	if args.Problem.Name == "" {
		allErrs = append(allErrs, field.Required(problemPath.Child("name"), ""))
	}
	if args.Problem.Variables < 0 {
		allErrs = append(allErrs, field.Invalid(problemPath.Child("variables"), args.Problem.Variables, "must not be negative"))
	}
	if args.Problem.Objectives < 0 {
		allErrs = append(allErrs, field.Invalid(problemPath.Child("objectives"), args.Problem.Objectives, "must not be negative"))
	}

	allErrs = append(allErrs, validateMinimum(path.Child("populationSize"), args.PopulationSize, 1)...)
	allErrs = append(allErrs, validateMinimum(path.Child("matingPoolSize"), args.MatingPoolSize, 2)...)
	allErrs = append(allErrs, validateMinimum(path.Child("offspringPopulationSize"), args.OffspringPopulationSize, 1)...)
	allErrs = append(allErrs, validateMinimum(path.Child("maxEvaluations"), args.MaxEvaluations, 0)...)
	allErrs = append(allErrs, validateMinimum(path.Child("referenceFrontSize"), args.ReferenceFrontSize, 0)...)

	if c := args.Crossover; c != nil {
		allErrs = append(allErrs, validateProbability(path.Child("crossover", "probability"), c.Probability)...)
		allErrs = append(allErrs, validateNonNegative(path.Child("crossover", "distributionIndex"), c.DistributionIndex)...)
	}
	if m := args.Mutation; m != nil {
		allErrs = append(allErrs, validateProbability(path.Child("mutation", "probability"), m.Probability)...)
		allErrs = append(allErrs, validateNonNegative(path.Child("mutation", "distributionIndex"), m.DistributionIndex)...)
	}

	allErrs = append(allErrs, validateNonNegative(path.Child("epsilon"), args.Epsilon)...)
	allErrs = append(allErrs, validatePreference(path, args)...)

	if e := args.Evaluator; e != nil {
		allErrs = append(allErrs, validateMinimum(path.Child("evaluator", "workers"), e.Workers, 0)...)
		if e.CacheTTL != nil && e.CacheTTL.Duration <= 0 {
			allErrs = append(allErrs, field.Invalid(path.Child("evaluator", "cacheTTL"), e.CacheTTL.Duration.String(), "must be positive"))
		}
	}

	return allErrs.ToAggregate()
}

// validatePreference checks that interest points and weights agree with each
// other and with the number of objectives, when it is known.
func validatePreference(path *field.Path, args *RNSGAIIArgs) field.ErrorList {
	var allErrs field.ErrorList

	want := int(args.Problem.Objectives)
	pointsPath := path.Child("interestPoints")
	for i, p := range args.InterestPoints {
		if want == 0 {
			want = len(p)
		}
		if len(p) != want {
			allErrs = append(allErrs, field.Invalid(pointsPath.Index(i), p, "all interest points must have one value per objective"))
		}
		for _, v := range p {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				allErrs = append(allErrs, field.Invalid(pointsPath.Index(i), p, "must be finite"))
				break
			}
		}
	}

	weightsPath := path.Child("weights")
	if len(args.Weights) > 0 && want > 0 && len(args.Weights) != want {
		allErrs = append(allErrs, field.Invalid(weightsPath, args.Weights, "must have one weight per objective"))
	}
	for i, w := range args.Weights {
		if w < 0 || math.IsNaN(w) {
			allErrs = append(allErrs, field.Invalid(weightsPath.Index(i), w, "must not be negative"))
		}
	}
	return allErrs
}

func validateMinimum(path *field.Path, v *int32, minimum int32) field.ErrorList {
	if v == nil {
		return field.ErrorList{field.Required(path, "")}
	}
	if *v < minimum {
		return field.ErrorList{field.Invalid(path, *v, fmt.Sprintf("must be greater than or equal to %d", minimum))}
	}
	return nil
}

func validateProbability(path *field.Path, v *float64) field.ErrorList {
	if v != nil && (*v < 0 || *v > 1 || math.IsNaN(*v)) {
		return field.ErrorList{field.Invalid(path, *v, "must be in the range [0, 1]")}
	}
	return nil
}

func validateNonNegative(path *field.Path, v *float64) field.ErrorList {
	if v != nil && (*v < 0 || math.IsNaN(*v)) {
		return field.ErrorList{field.Invalid(path, *v, "must not be negative")}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
