package simulation

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/lao-tseu-is-alive/go-flock-octree/pkg/flock"
	"github.com/lao-tseu-is-alive/go-flock-octree/pkg/geometry"
)

// Snapshot is a copy of the flock state after one step, safe to read from
// another goroutine.
type Snapshot struct {
	Step        uint64
	Boids       []flock.Boid
	Parents     []int // pursued boid per index, flock.NoNode for the leader
	Destination geometry.Vector3D
	Regions     []geometry.Box // octree node regions, pre-order
	UsedIndex   bool
}

// FlockActor owns one Flock and advances it on demand. Messages are protobuf
// well-known types:
//
//	*wrapperspb.BoolValue  one step, the value selects the octree path
//	*structpb.ListValue    new destination, three numbers
//	*structpb.Struct       tuning change, see tuningFromStruct
//	*emptypb.Empty         status request, answered with a *structpb.Struct
type FlockActor struct {
	cfg        *Config
	seed       uint64
	logger     logrus.FieldLogger
	snapshotCh chan<- *Snapshot
	flock      *flock.Flock

	// --- Benchmark Stats ---
	stepCount   int
	lastLogTime time.Time
}

// NewFlockActor creates the actor; the flock itself is built in PreStart.
func NewFlockActor(cfg *Config, seed uint64, logger logrus.FieldLogger, snapshotCh chan<- *Snapshot) *FlockActor {
	return &FlockActor{
		cfg:         cfg,
		seed:        seed,
		logger:      logger,
		snapshotCh:  snapshotCh,
		lastLogTime: time.Now(),
	}
}

func (a *FlockActor) PreStart(ctx *actor.Context) error {
	rng := rand.New(rand.NewPCG(a.seed, a.seed^0x9e3779b97f4a7c15))
	a.flock = flock.New(a.cfg.Settings(), rng, a.logger)
	ctx.ActorSystem().Logger().Infof("flock of %d boids built with seed %d", a.flock.Len(), a.seed)
	return nil
}

func (a *FlockActor) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {
	case *goaktpb.PostStart:
		ctx.Logger().Info("flock actor started")

	case *wrapperspb.BoolValue:
		a.flock.Update(msg.GetValue())
		a.stepCount++
		a.logBenchmarks(ctx)
		a.pushSnapshot(msg.GetValue())

	case *structpb.ListValue:
		p, err := vectorFromList(msg)
		if err != nil {
			ctx.Logger().Warnf("destination ignored: %v", err)
			return
		}
		a.flock.SetDestination(p)

	case *structpb.Struct:
		a.flock.SetTuning(tuningFromStruct(a.flock.Tuning(), msg))

	case *emptypb.Empty:
		ctx.Response(a.status())

	default:
		ctx.Unhandled()
	}
}

func (a *FlockActor) PostStop(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Infof("flock actor stopped after %d steps", a.flock.Step())
	return nil
}

func (a *FlockActor) logBenchmarks(ctx *actor.ReceiveContext) {
	if time.Since(a.lastLogTime) >= time.Second {
		ctx.Logger().Infof("📊 STEP RATE: %d/sec | Boids: %d | Octree nodes: %d",
			a.stepCount, a.flock.Len(), a.flock.Octree().NodeCount())
		a.stepCount = 0
		a.lastLogTime = time.Now()
	}
}

func (a *FlockActor) pushSnapshot(usedIndex bool) {
	if a.snapshotCh == nil {
		return
	}
	select {
	case a.snapshotCh <- a.buildSnapshot(usedIndex):
	default:
		// viewer busy, skip frame
	}
}

func (a *FlockActor) buildSnapshot(usedIndex bool) *Snapshot {
	s := &Snapshot{
		Step:        a.flock.Step(),
		Boids:       a.flock.Boids(),
		Parents:     make([]int, a.flock.Len()),
		Destination: a.flock.Destination(),
		Regions:     make([]geometry.Box, 0, a.flock.Octree().NodeCount()),
		UsedIndex:   usedIndex,
	}
	for i := range s.Parents {
		s.Parents[i] = a.flock.Parent(i)
	}
	a.flock.WalkOctree(func(n flock.NodeInfo) bool {
		s.Regions = append(s.Regions, n.Region)
		return true
	})
	return s
}

func (a *FlockActor) status() *structpb.Struct {
	fields := map[string]*structpb.Value{
		"step":        structpb.NewNumberValue(float64(a.flock.Step())),
		"boids":       structpb.NewNumberValue(float64(a.flock.Len())),
		"destination": structpb.NewListValue(VectorList(a.flock.Destination())),
		"nodes":       structpb.NewNumberValue(float64(a.flock.Octree().NodeCount())),
		"depth":       structpb.NewNumberValue(float64(a.flock.Octree().Depth())),
	}
	if leader, ok := a.flock.Leader(); ok {
		fields["leader"] = structpb.NewListValue(VectorList(leader.Position))
	}
	return &structpb.Struct{Fields: fields}
}

// VectorList encodes p as the three-number list understood by FlockActor.
func VectorList(p geometry.Vector3D) *structpb.ListValue {
	return &structpb.ListValue{Values: []*structpb.Value{
		structpb.NewNumberValue(p.X()),
		structpb.NewNumberValue(p.Y()),
		structpb.NewNumberValue(p.Z()),
	}}
}

func vectorFromList(l *structpb.ListValue) (geometry.Vector3D, error) {
	values := l.GetValues()
	if len(values) != 3 {
		return geometry.Zero, fmt.Errorf("want 3 coordinates, got %d", len(values))
	}
	var p geometry.Vector3D
	for i, v := range values {
		n, ok := v.GetKind().(*structpb.Value_NumberValue)
		if !ok {
			return geometry.Zero, fmt.Errorf("coordinate %d is not a number", i)
		}
		p[i] = n.NumberValue
	}
	return p, nil
}

// TuningStruct encodes t under the same keys as the configuration file.
func TuningStruct(t flock.Tuning) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"maxSpeed":              structpb.NewNumberValue(t.MaxSpeed),
		"alignWeight":           structpb.NewNumberValue(t.AlignWeight),
		"bruteSeparationWeight": structpb.NewNumberValue(t.BruteSeparationWeight),
		"indexSeparationWeight": structpb.NewNumberValue(t.IndexSeparationWeight),
		"arrivalRadius":         structpb.NewNumberValue(t.ArrivalRadius),
	}}
}

// tuningFromStruct overrides the fields of t present in s as numbers.
// Unknown keys and non-numeric or negative values are ignored.
func tuningFromStruct(t flock.Tuning, s *structpb.Struct) flock.Tuning {
	targets := map[string]*float64{
		"maxSpeed":              &t.MaxSpeed,
		"alignWeight":           &t.AlignWeight,
		"bruteSeparationWeight": &t.BruteSeparationWeight,
		"indexSeparationWeight": &t.IndexSeparationWeight,
		"arrivalRadius":         &t.ArrivalRadius,
	}
	for key, v := range s.GetFields() {
		dst, ok := targets[key]
		if !ok {
			continue
		}
		n, ok := v.GetKind().(*structpb.Value_NumberValue)
		if !ok || n.NumberValue < 0 {
			continue
		}
		*dst = n.NumberValue
	}
	return t
}
