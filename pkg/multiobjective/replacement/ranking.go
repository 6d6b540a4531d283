// Package replacement implements the environmental selection that reduces the
// combined parent and offspring pool to the next generation: solutions are
// ranked by non-dominated sorting and the last front that does not fit is
// truncated by a secondary criterion.
package replacement

import (
	"context"
	"fmt"

	"k8s.io/klog/v2"

	"sigs.k8s.io/multiobjective/pkg/multiobjective/framework"
)

// frontSelector scores whole fronts and truncates the overflowing one.
type frontSelector interface {
	// annotate sets the secondary score of a front that survives entirely.
	annotate(front []*framework.Solution)
	// truncate returns the n preferred members of front, n < len(front).
	truncate(front []*framework.Solution, n int) []*framework.Solution
}

// selectByRank accumulates whole fronts in ascending rank order and lets sel
// pick the survivors of the first front that overflows size.
func selectByRank(ctx context.Context, pool []*framework.Solution, size int, cmp *framework.Comparator, sel frontSelector) ([]*framework.Solution, error) {
	if len(pool) < size {
		return nil, fmt.Errorf("%w: pool has %d solutions, population needs %d", framework.ErrInsufficientPool, len(pool), size)
	}
	for i, s := range pool {
		if !s.Evaluated() {
			return nil, fmt.Errorf("solution %d of the pool has not been evaluated", i)
		}
	}

	fronts, err := framework.NonDominatedSort(pool, cmp)
	if err != nil {
		return nil, fmt.Errorf("ranking pool: %w", err)
	}

	logger := klog.FromContext(ctx)
	survivors := make([]*framework.Solution, 0, size)
	for rank, front := range fronts {
		if len(survivors)+len(front) <= size {
			sel.annotate(front)
			survivors = append(survivors, front...)
			if len(survivors) == size {
				break
			}
			continue
		}

		remaining := size - len(survivors)
		logger.V(5).Info("truncating front", "rank", rank, "frontSize", len(front), "keep", remaining)
		survivors = append(survivors, sel.truncate(front, remaining)...)
		break
	}

	return survivors, nil
}

// RankingAndCrowding is the classic NSGA-II replacement.
type RankingAndCrowding struct {
	cmp *framework.Comparator
}

var _ framework.Replacement = &RankingAndCrowding{}

func NewRankingAndCrowding(cmp *framework.Comparator) *RankingAndCrowding {
	return &RankingAndCrowding{cmp: cmp}
}

func (r *RankingAndCrowding) Replace(ctx context.Context, pool []*framework.Solution, size int) ([]*framework.Solution, error) {
	return selectByRank(ctx, pool, size, r.cmp, crowdingSelector{})
}
