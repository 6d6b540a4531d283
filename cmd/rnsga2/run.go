package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/klog/v2"

	"sigs.k8s.io/multiobjective/apis/optimizer/v1alpha1"
	"sigs.k8s.io/multiobjective/pkg/multiobjective/algorithms"
	"sigs.k8s.io/multiobjective/pkg/multiobjective/benchmarks"
	"sigs.k8s.io/multiobjective/pkg/multiobjective/evaluator"
	"sigs.k8s.io/multiobjective/pkg/multiobjective/framework"
	"sigs.k8s.io/multiobjective/pkg/multiobjective/measure"
	"sigs.k8s.io/multiobjective/pkg/multiobjective/operators"
	"sigs.k8s.io/multiobjective/pkg/multiobjective/util"
)

const metricsNamespace = "rnsga2"

// buildAlgorithm assembles the algorithm described by args.
func buildAlgorithm(args *v1alpha1.RNSGAIIArgs) (*algorithms.GenerationalAlgorithm, error) {
	problem, err := benchmarks.New(args.Problem.Name, int(args.Problem.Variables), int(args.Problem.Objectives))
	if err != nil {
		return nil, err
	}

	var rnd *rand.Rand
	if args.Seed != nil {
		rnd = rand.New(rand.NewPCG(*args.Seed, *args.Seed))
	}

	var eval framework.Evaluator = evaluator.NewSequential()
	if args.Evaluator != nil {
		if w := args.Evaluator.Workers; w != nil && *w > 0 {
			eval = evaluator.NewParallel(int(*w))
		}
		if ttl := args.Evaluator.CacheTTL; ttl != nil {
			eval = evaluator.NewCached(eval, ttl.Duration)
		}
	}

	bounds := problem.Bounds()
	mutationProbability := 0.0
	if args.Mutation.Probability != nil {
		mutationProbability = *args.Mutation.Probability
	}
	variation := algorithms.NewCrossoverAndMutation(
		operators.NewSBXCrossover(*args.Crossover.Probability, *args.Crossover.DistributionIndex, bounds, rnd),
		operators.NewPolynomialMutation(mutationProbability, *args.Mutation.DistributionIndex, bounds, rnd),
	)

	opts := []algorithms.Option{
		algorithms.WithEvaluator(eval),
		algorithms.WithVariation(variation),
		algorithms.WithRand(rnd),
	}
	if n := int(*args.ReferenceFrontSize); n > 0 {
		if front := problem.TrueParetoFront(n); len(front) > 0 {
			opts = append(opts, algorithms.WithReferenceFront(front))
		}
	}

	cfg := algorithms.Config{
		PopulationSize:          int(*args.PopulationSize),
		MatingPoolSize:          int(*args.MatingPoolSize),
		OffspringPopulationSize: int(*args.OffspringPopulationSize),
		MaxEvaluations:          int(*args.MaxEvaluations),
		Epsilon:                 *args.Epsilon,
		Weights:                 args.Weights,
	}
	for _, p := range args.InterestPoints {
		cfg.InterestPoints = append(cfg.InterestPoints, framework.ObjectiveSpacePoint(p))
	}

	if args.Algorithm == algorithms.NSGAIIName {
		return algorithms.NewNSGAII(cfg, problem, opts...)
	}
	return algorithms.NewRNSGAII(cfg, problem, opts...)
}

// run executes one optimization and writes its outputs. A canceled ctx stops
// the algorithm at the next generation boundary; the result found so far is
// still written.
func run(ctx context.Context, args *v1alpha1.RNSGAIIArgs, o *options, stdin io.Reader, stdout io.Writer) error {
	logger := klog.FromContext(ctx)

	alg, err := buildAlgorithm(args)
	if err != nil {
		return err
	}

	if o.metricsBindAddress != "" {
		server := &http.Server{Addr: o.metricsBindAddress, Handler: metricsHandler(alg)}
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error(err, "Serving metrics", "address", o.metricsBindAddress)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(shutdownCtx)
		}()
	}

	progress := make(chan int, 1)
	if err := measure.Subscribe(alg.MeasureManager(), algorithms.CurrentEvaluationKey, "progress", progress); err != nil {
		return err
	}
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				logger.Info("Stopping at the end of the current generation")
				alg.Stop()
				return
			case n := <-progress:
				logger.V(3).Info("Progress", "evaluations", humanize.Comma(int64(n)))
			}
		}
	}()

	if o.interactive {
		go readInterestPoints(klog.NewContext(context.Background(), logger), stdin, alg)
	}

	logger.Info("Starting optimization",
		"algorithm", alg.Name(),
		"problem", alg.Problem().Name(),
		"populationSize", *args.PopulationSize,
		"maxEvaluations", humanize.Comma(int64(*args.MaxEvaluations)),
		"interestPoints", len(args.InterestPoints))

	if ctx.Err() != nil {
		alg.Stop()
	}
	if err := alg.Run(context.WithoutCancel(ctx)); err != nil {
		return err
	}

	result := buildResult(alg, time.Now())
	logger.Info("Optimization finished",
		"evaluations", humanize.Comma(result.Evaluations),
		"generations", result.Generations,
		"solutions", len(result.Solutions),
		"elapsed", result.ExecutionTime.Duration)

	if err := writeResult(o.output, result, stdout); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}
	if o.plot != "" {
		if err := plotResult(o.plot, alg); err != nil {
			return fmt.Errorf("plotting result: %w", err)
		}
		logger.V(2).Info("Wrote plot", "path", o.plot)
	}
	return nil
}

// interestPointUpdater is the part of the algorithm fed from stdin.
type interestPointUpdater interface {
	UpdatePointOfInterest(point []float64) error
	Stop()
}

// readInterestPoints applies one point of interest per input line until r is
// exhausted or a "stop" line is read. Invalid lines are logged and skipped.
func readInterestPoints(ctx context.Context, r io.Reader, alg interestPointUpdater) {
	logger := klog.FromContext(ctx)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "stop" {
			alg.Stop()
			return
		}
		point, err := parsePoint(line)
		if err == nil {
			err = alg.UpdatePointOfInterest(point)
		}
		if err != nil {
			logger.Error(err, "Ignoring point of interest", "input", line)
			continue
		}
		logger.Info("Updated point of interest", "point", point)
	}
	if err := scanner.Err(); err != nil {
		logger.Error(err, "Reading points of interest")
	}
}

func metricsHandler(alg *algorithms.GenerationalAlgorithm) http.Handler {
	registry := prometheus.NewRegistry()
	registry.MustRegister(measure.NewCollector(alg.MeasureManager(), metricsNamespace))
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	return mux
}

func buildResult(alg *algorithms.GenerationalAlgorithm, now time.Time) *v1alpha1.OptimizationResult {
	result := v1alpha1.NewOptimizationResult()
	result.Algorithm = alg.Name()
	result.Problem = alg.Problem().Name()
	result.Evaluations = int64(alg.Evaluations())
	result.Generations = int64(alg.Generation())
	result.GeneratedAt = metav1.NewTime(now)

	manager := alg.MeasureManager()
	if elapsed, ok, err := measure.Pull[time.Duration](manager, algorithms.CurrentExecutionTimeKey); err == nil && ok {
		result.ExecutionTime = metav1.Duration{Duration: elapsed}
	}
	for _, key := range []string{algorithms.HypervolumeKey, algorithms.IGDKey, algorithms.EpsilonKey} {
		v, ok, err := measure.Pull[float64](manager, key)
		if err != nil || !ok || math.IsInf(v, 0) || math.IsNaN(v) {
			continue
		}
		if result.Indicators == nil {
			result.Indicators = make(map[string]float64)
		}
		result.Indicators[key] = v
	}
	for _, p := range alg.PointsOfInterest() {
		result.InterestPoints = append(result.InterestPoints, p.Clone())
	}

	front := alg.Result()
	sort.Slice(front, func(i, j int) bool {
		return front[i].Objectives[0] < front[j].Objectives[0]
	})
	result.Solutions = make([]v1alpha1.OptimizationSolution, len(front))
	for i, s := range front {
		result.Solutions[i] = v1alpha1.OptimizationSolution{
			Rank:       s.Rank,
			Variables:  s.Variables,
			Objectives: s.Objectives,
		}
	}
	return result
}

func writeResult(path string, result *v1alpha1.OptimizationResult, stdout io.Writer) error {
	data, err := v1alpha1.MarshalResult(result)
	if err != nil {
		return err
	}
	if path == "" || path == "-" {
		_, err = stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func plotResult(path string, alg *algorithms.GenerationalAlgorithm) error {
	if n := alg.Problem().NumObjectives(); n != 2 {
		return fmt.Errorf("%s has %d objectives, plots need 2", alg.Problem().Name(), n)
	}
	return util.PlotResults(path, util.Plot{
		Problem:        alg.Problem(),
		AlgorithmName:  alg.Name(),
		Results:        framework.Points(alg.Result()),
		InterestPoints: alg.PointsOfInterest(),
	})
}
