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
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"
)

func defaulted(mutate func(*RNSGAIIArgs)) *RNSGAIIArgs {
	args := &RNSGAIIArgs{}
	mutate(args)
	SetDefaults_RNSGAIIArgs(args)
	return args
}

func TestValidateRNSGAIIArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    *RNSGAIIArgs
		wantErr []string
	}{
		{
			name: "defaults are valid",
			args: defaulted(func(*RNSGAIIArgs) {}),
		},
		{
			name: "interest points and weights",
			args: defaulted(func(a *RNSGAIIArgs) {
				a.InterestPoints = [][]float64{{0.2, 0.4}, {0.8, 0.1}}
				a.Weights = []float64{0.7, 0.3}
			}),
		},
		{
			name: "unknown algorithm",
			args: defaulted(func(a *RNSGAIIArgs) { a.Algorithm = "MOEAD" }),
			wantErr: []string{`algorithm: Unsupported value: "MOEAD"`},
		},
		{
			name: "sizes",
			args: defaulted(func(a *RNSGAIIArgs) {
				a.PopulationSize = ptr.To[int32](0)
				a.MatingPoolSize = ptr.To[int32](1)
				a.MaxEvaluations = ptr.To[int32](-1)
			}),
			wantErr: []string{"populationSize: Invalid value: 0", "matingPoolSize: Invalid value: 1", "maxEvaluations: Invalid value: -1"},
		},
		{
			name: "probabilities",
			args: defaulted(func(a *RNSGAIIArgs) {
				a.Crossover = &CrossoverArgs{Probability: ptr.To(1.5)}
				a.Mutation = &MutationArgs{Probability: ptr.To(-0.1), DistributionIndex: ptr.To(-1.0)}
			}),
			wantErr: []string{"crossover.probability", "mutation.probability", "mutation.distributionIndex"},
		},
		{
			name: "inconsistent interest points",
			args: defaulted(func(a *RNSGAIIArgs) {
				a.InterestPoints = [][]float64{{0.2, 0.4}, {0.1, 0.1, 0.1}}
				a.Weights = []float64{1, 1, -1}
				a.Epsilon = ptr.To(-0.5)
			}),
			wantErr: []string{"interestPoints[1]", "weights: Invalid value", "weights[2]", "epsilon"},
		},
		{
			name: "interest points against declared objectives",
			args: defaulted(func(a *RNSGAIIArgs) {
				a.Problem.Objectives = 3
				a.InterestPoints = [][]float64{{0.2, 0.4}}
			}),
			wantErr: []string{"interestPoints[0]"},
		},
		{
			name: "evaluator",
			args: defaulted(func(a *RNSGAIIArgs) {
				a.Evaluator = &EvaluatorArgs{Workers: ptr.To[int32](-2), CacheTTL: &metav1.Duration{}}
			}),
			wantErr: []string{"evaluator.workers", "evaluator.cacheTTL"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateRNSGAIIArgs(nil, tc.args)
			if len(tc.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, want := range tc.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}

func TestLoadRNSGAIIArgs(t *testing.T) {
	doc := `
apiVersion: optimizer.multiobjective.x-k8s.io/v1alpha1
kind: RNSGAIIArgs
problem:
  name: ZDT2
  variables: 10
populationSize: 50
maxEvaluations: 5000
interestPoints:
- [0.2, 0.4]
epsilon: 0.01
evaluator:
  workers: 4
  cacheTTL: 5m
seed: 42
`
	args, err := LoadRNSGAIIArgs([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "ZDT2", args.Problem.Name)
	assert.Equal(t, int32(50), *args.PopulationSize)
	assert.Equal(t, int32(50), *args.MatingPoolSize)
	assert.Equal(t, [][]float64{{0.2, 0.4}}, args.InterestPoints)
	assert.Equal(t, 0.1, *args.Mutation.Probability)
	assert.Equal(t, 5*time.Minute, args.Evaluator.CacheTTL.Duration)
	assert.Equal(t, uint64(42), *args.Seed)

	_, err = LoadRNSGAIIArgs([]byte("populationSize: 10\nunknownField: 1\n"))
	assert.Error(t, err)

	_, err = LoadRNSGAIIArgs([]byte("kind: SchedulingHint\n"))
	assert.ErrorContains(t, err, "unsupported kind")

	_, err = LoadRNSGAIIArgs([]byte("apiVersion: v1\n"))
	assert.ErrorContains(t, err, "unsupported apiVersion")

	_, err = LoadRNSGAIIArgs([]byte("populationSize: -3\n"))
	assert.ErrorContains(t, err, "populationSize")
}

func TestLoadRNSGAIIArgsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "args.yaml")
	require.NoError(t, os.WriteFile(path, []byte("algorithm: NSGAII\n"), 0o600))

	args, err := LoadRNSGAIIArgsFile(path)
	require.NoError(t, err)
	assert.Equal(t, "NSGAII", args.Algorithm)

	_, err = LoadRNSGAIIArgsFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestMarshalResult(t *testing.T) {
	result := NewOptimizationResult()
	result.Algorithm = "RNSGAII"
	result.Problem = "ZDT1"
	result.Evaluations = 25000
	result.ExecutionTime = metav1.Duration{Duration: 1500 * time.Millisecond}
	result.Indicators = map[string]float64{"epsilon": 0.01}
	result.Solutions = []OptimizationSolution{{Rank: 0, Variables: []float64{0.5}, Objectives: []float64{0.5, 0.29}}}

	out, err := MarshalResult(result)
	require.NoError(t, err)
	s := string(out)
	for _, want := range []string{
		"apiVersion: optimizer.multiobjective.x-k8s.io/v1alpha1",
		"kind: OptimizationResult",
		"executionTime: 1.5s",
		"evaluations: 25000",
		"epsilon: 0.01",
	} {
		assert.True(t, strings.Contains(s, want), "missing %q in\n%s", want, s)
	}
}
