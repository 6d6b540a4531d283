// Package util holds reporting helpers for optimization results.
package util

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"sigs.k8s.io/multiobjective/pkg/multiobjective/framework"
)

// frontSamples is the number of true Pareto front points drawn.
const frontSamples = 100

// Plot describes a scatter plot of a two objective result.
type Plot struct {
	Problem       framework.Problem
	AlgorithmName string
	Results       []framework.ObjectiveSpacePoint
	// InterestPoints are drawn as distinct markers when set.
	InterestPoints []framework.ObjectiveSpacePoint
}

// PlotResults creates a scatter plot comparing the true Pareto front of the
// problem, when known, with the solutions found by the algorithm and the
// points of interest, and writes it as HTML to path.
func PlotResults(path string, p Plot) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Render(f, p); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Render writes the HTML scatter plot to w.
func Render(w io.Writer, p Plot) error {
	if len(p.Results) == 0 {
		return fmt.Errorf("results are empty for %s Benchmark", p.Problem.Name())
	}
	for _, set := range [][]framework.ObjectiveSpacePoint{p.Results, p.InterestPoints} {
		for _, pt := range set {
			if len(pt) != 2 {
				return fmt.Errorf("can only plot 2D for %s Benchmark, got %d objectives", p.Problem.Name(), len(pt))
			}
		}
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("%s Results for %s Benchmark", p.AlgorithmName, p.Problem.Name()),
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:      "f1(x)",
			SplitLine: &opts.SplitLine{Show: opts.Bool(true)},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:      "f2(x)",
			SplitLine: &opts.SplitLine{Show: opts.Bool(true)},
		}))

	if front := p.Problem.TrueParetoFront(frontSamples); len(front) > 0 && len(front[0]) == 2 {
		scatter.AddSeries("True Pareto Front", scatterData(front, "circle", 6))
	}
	scatter.AddSeries(fmt.Sprintf("%s Solutions", p.AlgorithmName), scatterData(p.Results, "triangle", 10))
	if len(p.InterestPoints) > 0 {
		scatter.AddSeries("Points of Interest", scatterData(p.InterestPoints, "diamond", 16))
	}
	scatter.SetSeriesOptions(
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}),
		charts.WithEmphasisOpts(opts.Emphasis{}),
	)

	return scatter.Render(w)
}

func scatterData(points []framework.ObjectiveSpacePoint, symbol string, size int) []opts.ScatterData {
	data := make([]opts.ScatterData, len(points))
	for i, pt := range points {
		data[i] = opts.ScatterData{
			Value:      []float64{pt[0], pt[1]},
			Symbol:     symbol,
			SymbolSize: size,
		}
	}
	return data
}
