package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"

	"sigs.k8s.io/multiobjective/apis/optimizer/v1alpha1"
)

// options holds the command line flags. Flags that are set override the
// values of the configuration file.
type options struct {
	configFile string

	algorithm      string
	problem        string
	variables      int32
	objectives     int32
	populationSize int32
	maxEvaluations int32
	interestPoints []string
	epsilon        float64
	workers        int32
	cacheTTL       time.Duration
	seed           uint64

	output             string
	plot               string
	interactive        bool
	metricsBindAddress string
}

func newOptions() *options {
	return &options{output: "-"}
}

func (o *options) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.configFile, "config", o.configFile, "Path to an RNSGAIIArgs configuration file.")
	fs.StringVar(&o.algorithm, "algorithm", o.algorithm, "Algorithm to run: RNSGAII or NSGAII.")
	fs.StringVar(&o.problem, "problem", o.problem, "Benchmark problem: ZDT1, ZDT2 or DTLZ2.")
	fs.Int32Var(&o.variables, "variables", o.variables, "Number of decision variables, 0 for the benchmark default.")
	fs.Int32Var(&o.objectives, "objectives", o.objectives, "Number of objectives, 0 for the benchmark default.")
	fs.Int32Var(&o.populationSize, "population-size", o.populationSize, "Number of solutions per generation.")
	fs.Int32Var(&o.maxEvaluations, "max-evaluations", o.maxEvaluations, "Evaluation budget of the run.")
	fs.StringArrayVar(&o.interestPoints, "interest-point", o.interestPoints, "Comma separated point of interest in objective space. Repeat for several regions.")
	fs.Float64Var(&o.epsilon, "epsilon", o.epsilon, "Radius of the neighborhood of equally preferred solutions.")
	fs.Int32Var(&o.workers, "workers", o.workers, "Goroutines evaluating a batch, 0 evaluates sequentially.")
	fs.DurationVar(&o.cacheTTL, "cache-ttl", o.cacheTTL, "Memoize objective vectors for this long, 0 disables the cache.")
	fs.Uint64Var(&o.seed, "seed", o.seed, "Random seed for a reproducible run.")
	fs.StringVarP(&o.output, "output", "o", o.output, "File the result document is written to, - for stdout.")
	fs.StringVar(&o.plot, "plot", o.plot, "Write an HTML scatter plot of the result to this file (two objectives only).")
	fs.BoolVar(&o.interactive, "interactive", o.interactive, "Read points of interest from stdin while running, one per line. An empty line clears the preference, \"stop\" ends the run.")
	fs.StringVar(&o.metricsBindAddress, "metrics-bind-address", o.metricsBindAddress, "Serve Prometheus metrics on this address, e.g. :8080. Empty disables it.")
}

// args builds the defaulted and validated run arguments.
func (o *options) args(fs *pflag.FlagSet) (*v1alpha1.RNSGAIIArgs, error) {
	args := &v1alpha1.RNSGAIIArgs{}
	if o.configFile != "" {
		data, err := os.ReadFile(o.configFile)
		if err != nil {
			return nil, err
		}
		if args, err = v1alpha1.DecodeRNSGAIIArgs(data); err != nil {
			return nil, fmt.Errorf("loading %s: %w", o.configFile, err)
		}
	}

	if fs.Changed("algorithm") {
		args.Algorithm = o.algorithm
	}
	if fs.Changed("problem") {
		args.Problem.Name = o.problem
	}
	if fs.Changed("variables") {
		args.Problem.Variables = o.variables
	}
	if fs.Changed("objectives") {
		args.Problem.Objectives = o.objectives
	}
	if fs.Changed("population-size") {
		args.PopulationSize = ptr.To(o.populationSize)
	}
	if fs.Changed("max-evaluations") {
		args.MaxEvaluations = ptr.To(o.maxEvaluations)
	}
	if fs.Changed("interest-point") {
		args.InterestPoints = nil
		for _, s := range o.interestPoints {
			p, err := parsePoint(s)
			if err != nil {
				return nil, fmt.Errorf("--interest-point %q: %w", s, err)
			}
			if len(p) > 0 {
				args.InterestPoints = append(args.InterestPoints, p)
			}
		}
	}
	if fs.Changed("epsilon") {
		args.Epsilon = ptr.To(o.epsilon)
	}
	if fs.Changed("workers") || fs.Changed("cache-ttl") {
		if args.Evaluator == nil {
			args.Evaluator = &v1alpha1.EvaluatorArgs{}
		}
		if fs.Changed("workers") {
			args.Evaluator.Workers = ptr.To(o.workers)
		}
		if fs.Changed("cache-ttl") {
			args.Evaluator.CacheTTL = nil
			if o.cacheTTL > 0 {
				args.Evaluator.CacheTTL = &metav1.Duration{Duration: o.cacheTTL}
			}
		}
	}
	if fs.Changed("seed") {
		args.Seed = ptr.To(o.seed)
	}

	v1alpha1.SetDefaults_RNSGAIIArgs(args)
	if err := v1alpha1.ValidateRNSGAIIArgs(nil, args); err != nil {
		return nil, err
	}
	return args, nil
}

// parsePoint parses "0.2,0.4" into a point. A blank string is an empty point.
func parsePoint(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	point := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, err
		}
		point[i] = v
	}
	return point, nil
}
