package flock

import "github.com/lao-tseu-is-alive/go-flock-octree/pkg/geometry"

// Default tuning constants of the steering model.
const (
	DefaultNumBoids          = 200
	DefaultMinimumSeparation = 0.7
	DefaultMaxSpeed          = 0.2
	DefaultAlignWeight       = 0.015
	DefaultArrivalRadius     = 5.0
	DefaultSpawnExtent       = 10
	DefaultLeafCapacity      = 4
	DefaultMinOctantSize     = 2.0
)

// Settings controls the construction and the physics constants of a Flock.
// Fields tagged "tunable" may be changed between steps with Flock.SetTuning.
type Settings struct {
	NumBoids          int     // leader included
	MinimumSeparation float64 // per-boid avoidance radius
	SpawnExtent       int     // followers spawn on integer coordinates in [0, SpawnExtent)

	MaxSpeed              float64 // tunable
	AlignWeight           float64 // tunable, weight of the pull toward the destination
	BruteSeparationWeight float64 // tunable, brute-force impulse added to the steering term
	IndexSeparationWeight float64 // tunable, octree impulse added straight to velocity
	ArrivalRadius         float64 // tunable, leader distance triggering a destination re-roll

	LeaderStart        geometry.Vector3D
	InitialDestination geometry.Vector3D
	DestinationBounds  geometry.Box // re-roll volume, a zero size on an axis pins it

	Region        geometry.Box // octree root region
	LeafCapacity  int
	MinOctantSize float64
}

// Tuning is the subset of Settings that may change while the flock runs.
type Tuning struct {
	MaxSpeed              float64
	AlignWeight           float64
	BruteSeparationWeight float64
	IndexSeparationWeight float64
	ArrivalRadius         float64
}

// DefaultSettings returns the reference parameters of the simulation.
func DefaultSettings() Settings {
	return Settings{
		NumBoids:              DefaultNumBoids,
		MinimumSeparation:     DefaultMinimumSeparation,
		SpawnExtent:           DefaultSpawnExtent,
		MaxSpeed:              DefaultMaxSpeed,
		AlignWeight:           DefaultAlignWeight,
		BruteSeparationWeight: 1.0,
		IndexSeparationWeight: 1.0,
		ArrivalRadius:         DefaultArrivalRadius,
		LeaderStart:           geometry.Zero,
		InitialDestination:    geometry.Vector3D{15, 15, 15},
		DestinationBounds:     geometry.NewBox(geometry.Vector3D{-20, 12, -20}, geometry.Vector3D{40, 0, 40}),
		Region:                geometry.NewBox(geometry.Vector3D{-50, -50, -50}, geometry.Vector3D{100, 100, 100}),
		LeafCapacity:          DefaultLeafCapacity,
		MinOctantSize:         DefaultMinOctantSize,
	}
}

// Tuning extracts the runtime-tunable parameters.
func (s Settings) Tuning() Tuning {
	return Tuning{
		MaxSpeed:              s.MaxSpeed,
		AlignWeight:           s.AlignWeight,
		BruteSeparationWeight: s.BruteSeparationWeight,
		IndexSeparationWeight: s.IndexSeparationWeight,
		ArrivalRadius:         s.ArrivalRadius,
	}
}

func (s *Settings) applyTuning(t Tuning) {
	s.MaxSpeed = t.MaxSpeed
	s.AlignWeight = t.AlignWeight
	s.BruteSeparationWeight = t.BruteSeparationWeight
	s.IndexSeparationWeight = t.IndexSeparationWeight
	s.ArrivalRadius = t.ArrivalRadius
}
