package evaluator

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"k8s.io/klog/v2"

	"sigs.k8s.io/multiobjective/pkg/multiobjective/framework"
)

const (
	defaultExpiration = 10 * time.Minute
	cleanupInterval   = 5 * time.Minute
)

// Cached memoizes objective vectors by variable vector. Offspring that are
// exact copies of an already evaluated solution (no crossover, no mutation)
// are served from the cache instead of recomputing the objectives.
type Cached struct {
	next  framework.Evaluator
	cache *gocache.Cache
}

var _ framework.Evaluator = &Cached{}

// NewCached wraps next with an in-memory cache whose entries expire after ttl.
// A zero ttl selects the default expiration.
func NewCached(next framework.Evaluator, ttl time.Duration) *Cached {
	if ttl == 0 {
		ttl = defaultExpiration
	}
	return &Cached{
		next:  next,
		cache: gocache.New(ttl, cleanupInterval),
	}
}

// Len returns the number of cached objective vectors.
func (c *Cached) Len() int {
	return c.cache.ItemCount()
}

func (c *Cached) Evaluate(ctx context.Context, solutions []*framework.Solution, problem framework.Problem) ([]*framework.Solution, error) {
	var (
		misses    []*framework.Solution
		missIndex []int
	)
	for i, sol := range solutions {
		if objs, ok := c.cache.Get(key(problem, sol.Variables)); ok {
			cached := objs.([]float64)
			sol.Objectives = make([]float64, len(cached))
			copy(sol.Objectives, cached)
			continue
		}
		misses = append(misses, sol)
		missIndex = append(missIndex, i)
	}

	klog.FromContext(ctx).V(5).Info("evaluation cache lookup", "hits", len(solutions)-len(misses), "misses", len(misses))
	if len(misses) == 0 {
		return solutions, nil
	}

	evaluated, err := c.next.Evaluate(ctx, misses, problem)
	if err != nil {
		var evalErr *framework.EvaluationError
		if errors.As(err, &evalErr) && evalErr.Index >= 0 && evalErr.Index < len(missIndex) {
			evalErr.Index = missIndex[evalErr.Index]
		}
		return nil, err
	}
	if len(evaluated) != len(misses) {
		return nil, fmt.Errorf("wrapped evaluator returned %d solutions for %d inputs", len(evaluated), len(misses))
	}

	result := make([]*framework.Solution, len(solutions))
	copy(result, solutions)
	for k, sol := range evaluated {
		result[missIndex[k]] = sol
		objs := make([]float64, len(sol.Objectives))
		copy(objs, sol.Objectives)
		c.cache.SetDefault(key(problem, sol.Variables), objs)
	}
	return result, nil
}

func key(problem framework.Problem, vars []float64) string {
	buf := make([]byte, 0, len(problem.Name())+8*len(vars))
	buf = append(buf, problem.Name()...)
	for _, v := range vars {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
	}
	return string(buf)
}
