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
	"os"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/yaml"
)

// DecodeRNSGAIIArgs decodes a YAML or JSON document without defaulting it.
// Unknown fields are rejected.
func DecodeRNSGAIIArgs(data []byte) (*RNSGAIIArgs, error) {
	args := &RNSGAIIArgs{}
	if err := yaml.UnmarshalStrict(data, args); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", RNSGAIIArgsKind, err)
	}
	if args.APIVersion != "" && args.APIVersion != SchemeGroupVersion.String() {
		return nil, fmt.Errorf("unsupported apiVersion %q, want %q", args.APIVersion, SchemeGroupVersion.String())
	}
	if args.Kind != "" && args.Kind != RNSGAIIArgsKind {
		return nil, fmt.Errorf("unsupported kind %q, want %q", args.Kind, RNSGAIIArgsKind)
	}
	return args, nil
}

// LoadRNSGAIIArgs decodes, defaults and validates a YAML or JSON document.
func LoadRNSGAIIArgs(data []byte) (*RNSGAIIArgs, error) {
	args, err := DecodeRNSGAIIArgs(data)
	if err != nil {
		return nil, err
	}
	SetDefaults_RNSGAIIArgs(args)
	if err := ValidateRNSGAIIArgs(nil, args); err != nil {
		return nil, err
	}
	return args, nil
}

// LoadRNSGAIIArgsFile reads the arguments from path.
func LoadRNSGAIIArgsFile(path string) (*RNSGAIIArgs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	args, err := LoadRNSGAIIArgs(data)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return args, nil
}

// NewOptimizationResult returns an empty result document with its type set.
func NewOptimizationResult() *OptimizationResult {
	return &OptimizationResult{
		TypeMeta: metav1.TypeMeta{
			APIVersion: SchemeGroupVersion.String(),
			Kind:       OptimizationResultKind,
		},
	}
}

// MarshalResult encodes the result as YAML.
func MarshalResult(result *OptimizationResult) ([]byte, error) {
	return yaml.Marshal(result)
}
