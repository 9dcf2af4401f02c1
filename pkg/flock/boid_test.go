package flock

import (
	"math"
	"testing"

	"github.com/lao-tseu-is-alive/go-flock-octree/pkg/geometry"
)

func TestBoidAlign(t *testing.T) {
	tests := []struct {
		name        string
		position    geometry.Vector3D
		destination geometry.Vector3D
		want        geometry.Vector3D
	}{
		{"on destination", geometry.NewVector(3, 4, 5), geometry.NewVector(3, 4, 5), geometry.Zero},
		{"along x", geometry.Zero, geometry.NewVector(7, 0, 0), geometry.NewVector(1, 0, 0)},
		{"backward z", geometry.NewVector(0, 0, 2), geometry.NewVector(0, 0, -9), geometry.NewVector(0, 0, -1)},
		{"diagonal", geometry.Zero, geometry.NewVector(15, 15, 15), geometry.NewVector(1, 1, 1).Normalize()},
		{"a hair away", geometry.Zero, geometry.NewVector(1e-10, 0, 0), geometry.NewVector(1, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoid(tt.position, DefaultMinimumSeparation)
			b.Destination = tt.destination
			got := b.Align()
			if !got.Eq(tt.want) {
				t.Errorf("Align() = %v, want %v", got, tt.want)
			}
			if tt.position != tt.destination && math.Abs(got.Len()-1) > 1e-9 {
				t.Errorf("Align() length = %f, want 1", got.Len())
			}
		})
	}
}

func TestNewBoid(t *testing.T) {
	p := geometry.NewVector(1, 2, 3)
	b := NewBoid(p, 0.5)
	if b.MinimumSeparation() != 0.5 {
		t.Errorf("MinimumSeparation() = %f, want 0.5", b.MinimumSeparation())
	}
	if !b.Destination.Eq(p) {
		t.Errorf("Destination = %v, want %v", b.Destination, p)
	}
	if b.Speed() != 0 || !b.Heading().IsZero() {
		t.Errorf("new boid should be still, speed %f heading %v", b.Speed(), b.Heading())
	}
}

func TestBoidIntegrateClampsVelocity(t *testing.T) {
	forces := []geometry.Vector3D{
		geometry.NewVector(0.01, 0, 0),
		geometry.NewVector(1e6, -1e6, 3),
		geometry.NewVector(-50, 0, 0),
		geometry.NewVector(0, 0.19, 0.05),
	}
	for _, force := range forces {
		t.Run(force.String(), func(t *testing.T) {
			b := NewBoid(geometry.Zero, DefaultMinimumSeparation)
			b.Velocity = geometry.NewVector(0.1, 0.1, 0)
			before := b.Position
			b.integrate(force, DefaultMaxSpeed)
			if b.Speed() > DefaultMaxSpeed+1e-12 {
				t.Errorf("speed %f exceeds %f", b.Speed(), DefaultMaxSpeed)
			}
			if !b.Position.Eq(before.Add(b.Velocity)) {
				t.Errorf("position %v, want %v", b.Position, before.Add(b.Velocity))
			}
		})
	}
}
