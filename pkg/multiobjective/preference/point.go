// Package preference holds the region of interest a preference-based
// replacement steers the search toward.
//
// The point set can be replaced at any time by a caller running concurrently
// with the algorithm. Every update stores a freshly allocated, immutable copy
// behind an atomic pointer, so a reader always sees one complete point set:
// either the one before the update or the one after it.
package preference

import (
	"sync/atomic"

	"sigs.k8s.io/multiobjective/pkg/multiobjective/framework"
)

type pointSet struct {
	points  []framework.ObjectiveSpacePoint
	version uint64
}

// PointOfInterest is a synchronized cell with the current preference points.
type PointOfInterest struct {
	numObjectives int
	current       atomic.Pointer[pointSet]
}

// NewPointOfInterest creates a cell for problems with numObjectives objectives,
// seeded with the given points.
func NewPointOfInterest(numObjectives int, points ...framework.ObjectiveSpacePoint) (*PointOfInterest, error) {
	p := &PointOfInterest{numObjectives: numObjectives}
	p.current.Store(&pointSet{})
	if err := p.UpdatePoints(points); err != nil {
		return nil, err
	}
	return p, nil
}

// NumObjectives is the length every point must have.
func (p *PointOfInterest) NumObjectives() int {
	return p.numObjectives
}

// Update replaces the preference set with a single point. An empty point
// clears the preference.
func (p *PointOfInterest) Update(point []float64) error {
	if len(point) == 0 {
		return p.UpdatePoints(nil)
	}
	return p.UpdatePoints([]framework.ObjectiveSpacePoint{point})
}

// UpdatePoints replaces the whole preference set. The update is rejected,
// leaving the current set untouched, if any point has the wrong length.
func (p *PointOfInterest) UpdatePoints(points []framework.ObjectiveSpacePoint) error {
	next := &pointSet{points: make([]framework.ObjectiveSpacePoint, 0, len(points))}
	for _, pt := range points {
		if len(pt) != p.numObjectives {
			return framework.DimensionError("preference point", len(pt), p.numObjectives)
		}
		next.points = append(next.points, pt.Clone())
	}

	for {
		prev := p.current.Load()
		next.version = prev.version + 1
		if p.current.CompareAndSwap(prev, next) {
			return nil
		}
	}
}

// Snapshot returns the current point set. The returned slices are shared and
// must not be modified.
func (p *PointOfInterest) Snapshot() []framework.ObjectiveSpacePoint {
	return p.current.Load().points
}

// Version counts the updates applied so far.
func (p *PointOfInterest) Version() uint64 {
	return p.current.Load().version
}

// Empty reports whether no preference is set.
func (p *PointOfInterest) Empty() bool {
	return len(p.Snapshot()) == 0
}
