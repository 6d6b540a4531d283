// Package benchmarks contains synthetic multi-objective problems with known
// Pareto fronts, used to exercise and compare the algorithms.
package benchmarks

import (
	"fmt"
	"sort"
	"strings"

	"sigs.k8s.io/multiobjective/pkg/multiobjective/framework"
)

const defaultZDTVariables = 30

type constructor func(numVars, numObjectives int) (framework.Problem, error)

var registry = map[string]constructor{
	ZDT1Name: func(numVars, numObjectives int) (framework.Problem, error) {
		if err := twoObjectives(ZDT1Name, numObjectives); err != nil {
			return nil, err
		}
		return NewZDT1(orDefault(numVars, defaultZDTVariables)), nil
	},
	ZDT2Name: func(numVars, numObjectives int) (framework.Problem, error) {
		if err := twoObjectives(ZDT2Name, numObjectives); err != nil {
			return nil, err
		}
		return NewZDT2(orDefault(numVars, defaultZDTVariables)), nil
	},
	DTLZ2Name: func(numVars, numObjectives int) (framework.Problem, error) {
		m := orDefault(numObjectives, 3)
		if m < 2 {
			return nil, fmt.Errorf("%s needs at least 2 objectives, got %d", DTLZ2Name, m)
		}
		n := orDefault(numVars, m+dtlz2K-1)
		if n < m {
			return nil, fmt.Errorf("%s needs at least %d variables, got %d", DTLZ2Name, m, n)
		}
		return NewDTLZ2(n, m), nil
	},
}

// New builds the benchmark registered under name, case insensitively. Zero
// sizes select the benchmark defaults.
func New(name string, numVars, numObjectives int) (framework.Problem, error) {
	if numVars < 0 || numObjectives < 0 {
		return nil, fmt.Errorf("benchmark sizes must not be negative")
	}
	c, ok := registry[strings.ToUpper(name)]
	if !ok {
		return nil, fmt.Errorf("unknown benchmark %q, known: %s", name, strings.Join(Names(), ", "))
	}
	return c(numVars, numObjectives)
}

// Names lists the registered benchmarks.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func twoObjectives(name string, m int) error {
	if m != 0 && m != 2 {
		return fmt.Errorf("%s has 2 objectives, got %d", name, m)
	}
	return nil
}

func unitBounds(n int) []framework.Bounds {
	b := make([]framework.Bounds, n)
	for i := range n {
		b[i] = framework.Bounds{L: 0.0, H: 1.0}
	}
	return b
}

func checkVariables(x []float64, n int) error {
	if len(x) != n {
		return framework.DimensionError("variable vector", len(x), n)
	}
	return nil
}

// zdtG is the distance function shared by the ZDT problems.
func zdtG(x []float64) float64 {
	g := 1.0
	for i := 1; i < len(x); i++ {
		g += 9.0 * x[i] / float64(len(x)-1)
	}
	return g
}
