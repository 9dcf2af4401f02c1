package flock

import (
	"github.com/lao-tseu-is-alive/go-flock-octree/pkg/geometry"
)

// Boid represents a single agent of the flock.
// Boids is an artificial life program, developed by Craig Reynolds in 1986,
// which simulates the flocking behaviour of birds. The name "boid" is a
// shortened version of "bird-oid object". https://en.wikipedia.org/wiki/Boids
//
// Position, Velocity and Destination are exported so renderers can read them.
// The pursuit links live in the Flock's PursuitTree, not on the boid.
type Boid struct {
	Position    geometry.Vector3D
	Velocity    geometry.Vector3D
	Destination geometry.Vector3D

	minimumSeparation float64
}

// NewBoid creates a still boid at position with a fixed avoidance radius.
func NewBoid(position geometry.Vector3D, minimumSeparation float64) Boid {
	return Boid{
		Position:          position,
		Destination:       position,
		minimumSeparation: minimumSeparation,
	}
}

// MinimumSeparation is the radius under which another boid counts as crowding.
// It is fixed when the boid is created.
func (b *Boid) MinimumSeparation() float64 {
	return b.minimumSeparation
}

// Speed returns the magnitude of the velocity.
func (b *Boid) Speed() float64 {
	return b.Velocity.Len()
}

// Heading returns the unit velocity, or the zero vector for a still boid.
func (b *Boid) Heading() geometry.Vector3D {
	return b.Velocity.Normalize()
}

// Align returns the unit vector pulling the boid toward its destination,
// or the zero vector when it already stands on it.
func (b *Boid) Align() geometry.Vector3D {
	return b.Position.DirectionTo(b.Destination)
}

// integrate clamps the velocity to maxSpeed and moves the boid.
func (b *Boid) integrate(force geometry.Vector3D, maxSpeed float64) {
	b.Velocity = b.Velocity.Add(force).ClampLen(maxSpeed)
	b.Position = b.Position.Add(b.Velocity)
}
