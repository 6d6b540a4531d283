package framework

// Dominance is the outcome of comparing two objective vectors.
type Dominance int

const (
	// Incomparable means neither vector dominates the other.
	Incomparable Dominance = iota
	FirstDominates
	SecondDominates
)

func (d Dominance) String() string {
	switch d {
	case FirstDominates:
		return "first dominates"
	case SecondDominates:
		return "second dominates"
	default:
		return "non-dominated"
	}
}

// Comparator checks Pareto dominance honoring the optimization sense of every
// objective. The zero value minimizes all objectives of any length.
type Comparator struct {
	senses []Sense
}

// NewComparator returns a comparator for the given senses. With no senses
// every objective is minimized.
func NewComparator(senses ...Sense) *Comparator {
	return &Comparator{senses: senses}
}

// ComparatorFor builds the comparator matching the problem senses.
func ComparatorFor(problem Problem) *Comparator {
	if sp, ok := problem.(SensedProblem); ok {
		return NewComparator(sp.Senses()...)
	}
	return NewComparator()
}

// Compare returns whether a dominates b, b dominates a, or neither.
func (c *Comparator) Compare(a, b []float64) (Dominance, error) {
	if len(a) != len(b) {
		return Incomparable, DimensionError("objective vector", len(b), len(a))
	}
	if c != nil && len(c.senses) > 0 && len(c.senses) != len(a) {
		return Incomparable, DimensionError("objective vector", len(a), len(c.senses))
	}

	aBetter, bBetter := false, false
	for i := range a {
		x, y := a[i], b[i]
		if c != nil && len(c.senses) > 0 && c.senses[i] == Maximize {
			x, y = -x, -y
		}
		if x < y {
			aBetter = true
		} else if y < x {
			bBetter = true
		}
		if aBetter && bBetter {
			return Incomparable, nil
		}
	}

	switch {
	case aBetter:
		return FirstDominates, nil
	case bBetter:
		return SecondDominates, nil
	default:
		return Incomparable, nil
	}
}

// Dominates reports whether solution a dominates solution b.
func (c *Comparator) Dominates(a, b *Solution) (bool, error) {
	d, err := c.Compare(a.Objectives, b.Objectives)
	if err != nil {
		return false, err
	}
	return d == FirstDominates, nil
}

// NonDominatedSort performs non-dominated sorting on the population and sets
// the Rank of every solution. Fronts are returned in ascending rank order.
func NonDominatedSort(population []*Solution, cmp *Comparator) ([][]*Solution, error) {
	if len(population) == 0 {
		return nil, nil
	}

	dominated := make([][]int, len(population))
	domCount := make([]int, len(population))

	// Calculate domination for each pair once
	for i := 0; i < len(population); i++ {
		for j := i + 1; j < len(population); j++ {
			d, err := cmp.Compare(population[i].Objectives, population[j].Objectives)
			if err != nil {
				return nil, err
			}
			switch d {
			case FirstDominates:
				dominated[i] = append(dominated[i], j)
				domCount[j]++
			case SecondDominates:
				dominated[j] = append(dominated[j], i)
				domCount[i]++
			}
		}
	}

	// Find first front
	var currentFront []int
	for i := range population {
		if domCount[i] == 0 {
			currentFront = append(currentFront, i)
		}
	}

	var fronts [][]*Solution
	for rank := 0; len(currentFront) > 0; rank++ {
		front := make([]*Solution, len(currentFront))
		var nextFront []int
		for k, idx := range currentFront {
			population[idx].Rank = rank
			front[k] = population[idx]
			for _, dominatedIdx := range dominated[idx] {
				domCount[dominatedIdx]--
				if domCount[dominatedIdx] == 0 {
					nextFront = append(nextFront, dominatedIdx)
				}
			}
		}
		fronts = append(fronts, front)
		currentFront = nextFront
	}

	return fronts, nil
}

// NonDominated returns the members of the population no other member dominates.
// Ranks are not modified.
func NonDominated(population []*Solution, cmp *Comparator) ([]*Solution, error) {
	var result []*Solution
	for i, candidate := range population {
		dominated := false
		for j, other := range population {
			if i == j {
				continue
			}
			d, err := cmp.Dominates(other, candidate)
			if err != nil {
				return nil, err
			}
			if d {
				dominated = true
				break
			}
		}
		if !dominated {
			result = append(result, candidate)
		}
	}
	return result, nil
}
