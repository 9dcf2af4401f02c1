package flock

import "github.com/lao-tseu-is-alive/go-flock-octree/pkg/geometry"

// Avoidance is the separation result for one boid: the average of the
// normalized repulsion directions from its crowding neighbours.
type Avoidance struct {
	Impulse    geometry.Vector3D
	Neighbours int
}

// NeighborQuery answers the separation of a boid, identified by its index in
// the flock. Both strategies of the flock implement it.
type NeighborQuery interface {
	Avoidance(target int) Avoidance
}

var (
	_ NeighborQuery = (*BruteForce)(nil)
	_ NeighborQuery = (*HitTable)(nil)
)

// average divides the accumulated impulse by the neighbour count,
// leaving zero components as they are.
func average(sum geometry.Vector3D, neighbours int) Avoidance {
	if neighbours == 0 {
		return Avoidance{}
	}
	return Avoidance{Impulse: sum.DivNonZero(float64(neighbours)), Neighbours: neighbours}
}

// BruteForce checks a boid against every other boid of the slice from
// index first on. Positions are read when Avoidance is called, so boids
// already moved during the current step are seen at their new position.
type BruteForce struct {
	boids []Boid
	first int
}

// NewBruteForce creates a pairwise query over boids. The slice is not copied.
func NewBruteForce(boids []Boid) *BruteForce {
	return &BruteForce{boids: boids}
}

// NewBruteForceFrom creates a pairwise query whose neighbours are
// boids[first:]. Any boid may still be a target.
func NewBruteForceFrom(boids []Boid, first int) *BruteForce {
	return &BruteForce{boids: boids, first: max(first, 0)}
}

// Avoidance is O(n) per boid.
func (q *BruteForce) Avoidance(target int) Avoidance {
	b := &q.boids[target]
	var sum geometry.Vector3D
	neighbours := 0
	for i := q.first; i < len(q.boids); i++ {
		if i == target {
			continue
		}
		f := b.Position.Sub(q.boids[i].Position)
		if f.Len() < b.minimumSeparation {
			sum = sum.Add(f.Normalize())
			neighbours++
		}
	}
	return average(sum, neighbours)
}

// Hits returns every ordered pair of neighbours closer than the target's
// separation.
func (q *BruteForce) Hits() []Hit {
	var hits []Hit
	for t := q.first; t < len(q.boids); t++ {
		tb := &q.boids[t]
		for n := q.first; n < len(q.boids); n++ {
			if n == t {
				continue
			}
			f := tb.Position.Sub(q.boids[n].Position)
			if f.Len() < tb.minimumSeparation {
				hits = append(hits, Hit{Target: t, Neighbour: n, Force: f})
			}
		}
	}
	return hits
}

// HitTable aggregates a list of hits into one Avoidance per boid.
// It is built fresh from each query, nothing carries over between steps.
type HitTable struct {
	entries []Avoidance
}

// NewHitTable folds hits over a flock of size boids.
func NewHitTable(hits []Hit, size int) *HitTable {
	sums := make([]geometry.Vector3D, size)
	entries := make([]Avoidance, size)
	for _, h := range hits {
		sums[h.Target] = sums[h.Target].Add(h.Force.Normalize())
		entries[h.Target].Neighbours++
	}
	for i := range entries {
		entries[i] = average(sums[i], entries[i].Neighbours)
	}
	return &HitTable{entries: entries}
}

// Avoidance returns the aggregated result for target, zero when out of range.
func (h *HitTable) Avoidance(target int) Avoidance {
	if target < 0 || target >= len(h.entries) {
		return Avoidance{}
	}
	return h.entries[target]
}

// Each calls fn for every boid with at least one neighbour, in index order.
func (h *HitTable) Each(fn func(target int, a Avoidance)) {
	for i, a := range h.entries {
		if a.Neighbours > 0 {
			fn(i, a)
		}
	}
}
