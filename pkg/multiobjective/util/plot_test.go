package util

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sigs.k8s.io/multiobjective/pkg/multiobjective/benchmarks"
	"sigs.k8s.io/multiobjective/pkg/multiobjective/framework"
)

func TestPlotResults(t *testing.T) {
	zdt1 := benchmarks.NewZDT1(5)
	path := filepath.Join(t.TempDir(), "zdt1.html")

	err := PlotResults(path, Plot{
		Problem:        zdt1,
		AlgorithmName:  "RNSGAII",
		Results:        []framework.ObjectiveSpacePoint{{0.1, 0.7}, {0.3, 0.5}},
		InterestPoints: []framework.ObjectiveSpacePoint{{0.2, 0.4}},
	})
	require.NoError(t, err)

	html, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(html), "RNSGAII Results for ZDT1 Benchmark")
	assert.Contains(t, string(html), "Points of Interest")
	assert.Contains(t, string(html), "True Pareto Front")
}

func TestRenderRejectsInvalidInput(t *testing.T) {
	zdt1 := benchmarks.NewZDT1(5)
	var buf bytes.Buffer

	assert.Error(t, Render(&buf, Plot{Problem: zdt1, AlgorithmName: "NSGAII"}))
	assert.Error(t, Render(&buf, Plot{
		Problem:       benchmarks.NewDTLZ2(12, 3),
		AlgorithmName: "NSGAII",
		Results:       []framework.ObjectiveSpacePoint{{0.1, 0.2, 0.3}},
	}))
	assert.Error(t, Render(&buf, Plot{
		Problem:        zdt1,
		AlgorithmName:  "NSGAII",
		Results:        []framework.ObjectiveSpacePoint{{0.1, 0.2}},
		InterestPoints: []framework.ObjectiveSpacePoint{{0.1}},
	}))
}
