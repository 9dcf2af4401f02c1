// Package flock implements a leader-follower boids flock in three dimensions,
// with separation computed either by pairwise checks or through an octree
// rebuilt after every step.
package flock

import (
	"io"
	"math/rand/v2"

	"github.com/sirupsen/logrus"

	"github.com/lao-tseu-is-alive/go-flock-octree/pkg/geometry"
)

// rebuild statistics are logged once every statsInterval steps
const statsInterval = 100

// Flock owns the boids, the pursuit tree linking them and the octree built
// over the followers. Index 0 is the leader; it pursues the destination and
// every other boid pursues its parent in the pursuit tree. The leader is
// never a neighbour: followers do not avoid it, and only the brute-force
// path makes it avoid them.
//
// A Flock is not safe for concurrent use.
type Flock struct {
	settings    Settings
	rng         *rand.Rand
	log         logrus.FieldLogger
	boids       []Boid
	followers   []int // 1..n-1, the octree members
	pursuit     *PursuitTree
	octree      *Octree
	brute       *BruteForce
	destination geometry.Vector3D
	step        uint64
}

// New creates a flock of settings.NumBoids boids. The leader starts at
// settings.LeaderStart, followers on random integer coordinates in
// [0, SpawnExtent) per axis. rng drives the spawn positions, the pursuit tree
// shape and the destination re-rolls; a nil rng uses a fixed seed.
// A nil logger discards everything.
func New(settings Settings, rng *rand.Rand, logger logrus.FieldLogger) *Flock {
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 2))
	}
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	n := max(settings.NumBoids, 0)
	f := &Flock{
		settings:    settings,
		rng:         rng,
		log:         logger.WithField("component", "flock"),
		boids:       make([]Boid, 0, n),
		pursuit:     NewPursuitTree(n),
		destination: settings.InitialDestination,
	}
	if n > 0 {
		f.boids = append(f.boids, NewBoid(settings.LeaderStart, settings.MinimumSeparation))
	}
	extent := max(settings.SpawnExtent, 1)
	for i := 1; i < n; i++ {
		p := geometry.NewVector(
			float64(rng.IntN(extent)),
			float64(rng.IntN(extent)),
			float64(rng.IntN(extent)),
		)
		f.boids = append(f.boids, NewBoid(p, settings.MinimumSeparation))
		f.followers = append(f.followers, i)
		f.pursuit.Insert(i, rng)
	}
	f.brute = NewBruteForceFrom(f.boids, 1)
	f.rebuild()

	f.log.WithFields(logrus.Fields{
		"boids":       len(f.boids),
		"destination": f.destination.String(),
		"nodes":       f.octree.NodeCount(),
	}).Debug("flock created")
	return f
}

// Update advances the flock by one step. With useSpatialIndex the separation
// comes from the octree built at the end of the previous step and is added
// straight to the follower velocities before they steer; otherwise every boid
// checks the followers while it steers. Either way every speed is within
// MaxSpeed when Update returns.
func (f *Flock) Update(useSpatialIndex bool) {
	if len(f.boids) == 0 {
		return
	}

	leader := &f.boids[0]
	leader.Destination = f.destination
	f.steer(0, useSpatialIndex)
	if leader.Position.DistanceTo(f.destination) < f.settings.ArrivalRadius {
		f.destination = f.randomDestination()
		f.log.WithFields(logrus.Fields{
			"step":        f.step,
			"destination": f.destination.String(),
		}).Debug("destination reached, new one drawn")
	}

	if useSpatialIndex {
		table := NewHitTable(f.octree.FindCollisions(), len(f.boids))
		w := f.settings.IndexSeparationWeight
		table.Each(func(i int, a Avoidance) {
			f.boids[i].Velocity = f.boids[i].Velocity.Add(a.Impulse.Mul(w))
		})
	}

	for _, i := range f.pursuit.Order() {
		f.boids[i].Destination = f.boids[f.pursuit.Parent(i)].Position
		f.steer(i, useSpatialIndex)
	}

	f.rebuild()
	f.step++
	if f.step%statsInterval == 0 {
		f.log.WithFields(logrus.Fields{
			"step":   f.step,
			"nodes":  f.octree.NodeCount(),
			"depth":  f.octree.Depth(),
			"leaves": f.octree.Leaves(),
		}).Debug("octree rebuilt")
	}
}

func (f *Flock) steer(i int, useSpatialIndex bool) {
	b := &f.boids[i]
	force := b.Align().Mul(f.settings.AlignWeight)
	if !useSpatialIndex {
		force = force.Add(f.brute.Avoidance(i).Impulse.Mul(f.settings.BruteSeparationWeight))
	}
	b.integrate(force, f.settings.MaxSpeed)
}

func (f *Flock) rebuild() {
	f.octree = BuildOctreeOf(f.settings.Region, f.boids, f.followers, f.settings.LeafCapacity, f.settings.MinOctantSize)
}

// randomDestination draws a point uniformly inside DestinationBounds.
func (f *Flock) randomDestination() geometry.Vector3D {
	return f.settings.DestinationBounds.At(f.rng.Float64(), f.rng.Float64(), f.rng.Float64())
}

// SetDestination overrides the leader's target from the next Update on.
func (f *Flock) SetDestination(p geometry.Vector3D) {
	f.destination = p
}

// Destination returns the current leader target.
func (f *Flock) Destination() geometry.Vector3D {
	return f.destination
}

// Len returns the number of boids, leader included.
func (f *Flock) Len() int {
	return len(f.boids)
}

// Boid returns a copy of boid i. It panics when i is out of range.
func (f *Flock) Boid(i int) Boid {
	return f.boids[i]
}

// Boids returns a copy of every boid, the leader first.
func (f *Flock) Boids() []Boid {
	out := make([]Boid, len(f.boids))
	copy(out, f.boids)
	return out
}

// Leader returns a copy of the leader, false for an empty flock.
func (f *Flock) Leader() (Boid, bool) {
	if len(f.boids) == 0 {
		return Boid{}, false
	}
	return f.boids[0], true
}

// Step returns the number of completed updates.
func (f *Flock) Step() uint64 {
	return f.step
}

// Parent returns the index of the boid pursued by i, NoNode for the leader.
func (f *Flock) Parent(i int) int {
	return f.pursuit.Parent(i)
}

// WalkPursuit visits the pursuit tree depth first from the leader.
func (f *Flock) WalkPursuit(fn func(node, depth int)) {
	f.pursuit.Walk(fn)
}

// WalkOctree visits the octree built over the followers at the end of the
// last step.
func (f *Flock) WalkOctree(fn func(NodeInfo) bool) {
	f.octree.Walk(fn)
}

// Octree returns the current spatial index. It is replaced on every Update
// and must not be kept across steps.
func (f *Flock) Octree() *Octree {
	return f.octree
}

// Settings returns the parameters in effect.
func (f *Flock) Settings() Settings {
	return f.settings
}

// Tuning returns the runtime-tunable parameters in effect.
func (f *Flock) Tuning() Tuning {
	return f.settings.Tuning()
}

// SetTuning replaces the runtime-tunable parameters; it applies from the
// next Update on.
func (f *Flock) SetTuning(t Tuning) {
	f.settings.applyTuning(t)
	f.log.WithFields(logrus.Fields{
		"maxSpeed":    t.MaxSpeed,
		"alignWeight": t.AlignWeight,
	}).Debug("tuning changed")
}
