package simulation

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/sirupsen/logrus"
	"github.com/tochemey/goakt/v3/actor"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/lao-tseu-is-alive/go-flock-octree/pkg/flock"
	"github.com/lao-tseu-is-alive/go-flock-octree/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-flock-octree/pkg/ui"
)

const (
	panelWidth = 260.0
	yawSpeed   = 0.02
)

var (
	backgroundColor  = color.RGBA{R: 10, G: 10, B: 30, A: 255}
	octreeColor      = color.RGBA{R: 60, G: 160, B: 90, A: 90}
	leaderColor      = color.RGBA{R: 255, G: 80, B: 60, A: 255}
	followerColor    = color.RGBA{R: 100, G: 200, B: 255, A: 255}
	destinationColor = color.RGBA{R: 255, G: 220, B: 0, A: 255}
	pursuitColor     = color.RGBA{R: 100, G: 200, B: 255, A: 40}
)

// Game is the ebiten window of the flock. It never touches the Flock: it
// sends messages to the FlockActor and draws the snapshots coming back.
type Game struct {
	ctx        context.Context
	System     actor.ActorSystem
	flockPID   *actor.PID
	snapshotCh chan *Snapshot
	lastState  *Snapshot
	camera     Camera
	cfg        *Config

	panel             *ui.Panel
	widgetUseIndex    *ui.Checkbox
	widgetShowOctree  *ui.Checkbox
	widgetShowPursuit *ui.Checkbox
	widgetPause       *ui.Checkbox
	widgetMaxSpeed    *ui.Slider
	widgetAlign       *ui.Slider
	widgetBruteWeight *ui.Slider
	widgetIndexWeight *ui.Slider
	stepOnce          bool

	// Timing instrumentation
	updateAvg float64 // Rolling average in ms
	drawAvg   float64 // Rolling average in ms
}

// NewGame spawns the FlockActor in system and builds the viewer around it.
func NewGame(ctx context.Context, cfg *Config, seed uint64, system actor.ActorSystem, logger logrus.FieldLogger) (*Game, error) {
	snapshotCh := make(chan *Snapshot, 2)
	flockPID, err := system.Spawn(ctx, "flock", NewFlockActor(cfg, seed, logger, snapshotCh))
	if err != nil {
		return nil, fmt.Errorf("failed to spawn flock actor: %w", err)
	}

	g := &Game{
		ctx:        ctx,
		System:     system,
		flockPID:   flockPID,
		snapshotCh: snapshotCh,
		lastState:  &Snapshot{},
		cfg:        cfg,
		camera: Camera{
			CenterX: panelWidth + (float64(cfg.ScreenWidth)-panelWidth)/2,
			CenterY: float64(cfg.ScreenHeight) / 2,
			Scale:   cfg.Scale,
			Yaw:     math.Pi / 6,
			Pitch:   0.6,
		},
	}

	tuning := cfg.Settings().Tuning()
	g.panel = ui.NewPanel(10, 10, panelWidth-20, float64(cfg.ScreenHeight)-20, "Flock")
	g.panel.AddSection("Neighbours")
	g.widgetUseIndex = g.panel.AddCheckbox("Use Octree (o)", cfg.UseSpatialIndex)
	g.widgetShowOctree = g.panel.AddCheckbox("Show Octree (t)", cfg.ShowOctree)
	g.widgetShowPursuit = g.panel.AddCheckbox("Show Pursuit", false)
	g.panel.AddSection("Run")
	g.widgetPause = g.panel.AddCheckbox("Pause (space)", false)
	g.panel.AddButton("Step (n)", func() { g.stepOnce = true })
	g.panel.AddSection("Steering")
	g.widgetMaxSpeed = g.panel.AddSlider("Max Speed", 0.01, 1, tuning.MaxSpeed)
	g.widgetAlign = g.panel.AddSlider("Align Weight", 0, 0.1, tuning.AlignWeight)
	g.widgetBruteWeight = g.panel.AddSlider("Brute Separation", 0, 2, tuning.BruteSeparationWeight)
	g.widgetIndexWeight = g.panel.AddSlider("Octree Separation", 0, 2, tuning.IndexSeparationWeight)
	return g, nil
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		g.updateAvg = g.updateAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	g.panel.Update()
	g.handleKeys()
	g.handleSceneClick()

	select {
	case snap := <-g.snapshotCh:
		g.lastState = snap
	default:
		// keep the previous state
	}

	if g.tuningChanged() {
		tuning := flock.Tuning{
			MaxSpeed:              g.widgetMaxSpeed.Value,
			AlignWeight:           g.widgetAlign.Value,
			BruteSeparationWeight: g.widgetBruteWeight.Value,
			IndexSeparationWeight: g.widgetIndexWeight.Value,
			ArrivalRadius:         g.cfg.ArrivalRadius,
		}
		if err := actor.Tell(g.ctx, g.flockPID, TuningStruct(tuning)); err != nil {
			return fmt.Errorf("failed to send tuning: %w", err)
		}
	}

	if !g.widgetPause.Value || g.stepOnce {
		g.stepOnce = false
		if err := actor.Tell(g.ctx, g.flockPID, wrapperspb.Bool(g.widgetUseIndex.Value)); err != nil {
			return fmt.Errorf("failed to send tick: %w", err)
		}
	}
	return nil
}

func (g *Game) tuningChanged() bool {
	return g.widgetMaxSpeed.Changed() || g.widgetAlign.Changed() ||
		g.widgetBruteWeight.Changed() || g.widgetIndexWeight.Changed()
}

func (g *Game) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		g.widgetUseIndex.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.widgetShowOctree.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.widgetPause.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.stepOnce = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyLeft) {
		g.camera.Yaw -= yawSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) {
		g.camera.Yaw += yawSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) {
		g.camera.Pitch = min(math.Pi/2, g.camera.Pitch+yawSpeed)
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) {
		g.camera.Pitch = max(0.1, g.camera.Pitch-yawSpeed)
	}
}

// handleSceneClick moves the destination to the clicked point of the plane
// where destinations are drawn.
func (g *Game) handleSceneClick() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if g.panel.Contains(float64(mx), float64(my)) {
		return
	}
	p, ok := g.camera.Unproject(float64(mx), float64(my), g.cfg.DestinationBounds.Origin.Y())
	if !ok {
		return
	}
	_ = actor.Tell(g.ctx, g.flockPID, VectorList(p))
}

func (g *Game) line(screen *ebiten.Image, a, b geometry.Vector3D, clr color.Color) {
	x0, y0 := g.camera.Project(a)
	x1, y1 := g.camera.Project(b)
	vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, clr, true)
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.drawAvg = g.drawAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	screen.Fill(backgroundColor)
	state := g.lastState

	if g.widgetShowOctree.Value {
		for _, region := range state.Regions {
			for _, e := range region.Edges() {
				g.line(screen, e[0], e[1], octreeColor)
			}
		}
	}

	if g.widgetShowPursuit.Value {
		for i, parent := range state.Parents {
			if parent != flock.NoNode {
				g.line(screen, state.Boids[i].Position, state.Boids[parent].Position, pursuitColor)
			}
		}
	}

	for i := len(state.Boids) - 1; i >= 0; i-- {
		b := &state.Boids[i]
		x, y := g.camera.Project(b.Position)
		if i == 0 {
			vector.FillCircle(screen, float32(x), float32(y), 5, leaderColor, true)
			continue
		}
		// short tail along the heading
		tail := b.Position.Sub(b.Heading().Mul(1.5))
		g.line(screen, tail, b.Position, followerColor)
		vector.FillCircle(screen, float32(x), float32(y), 2, followerColor, true)
	}

	dx, dy := g.camera.Project(state.Destination)
	vector.StrokeCircle(screen, float32(dx), float32(dy), 8, 2, destinationColor, true)

	g.panel.Draw(screen)

	mode := "brute force"
	if state.UsedIndex {
		mode = "octree"
	}
	msg := fmt.Sprintf("Step: %d\nBoids: %d\nMode: %s\nNodes: %d\nTarget: %s\n\nFPS: %.2f\nTPS: %.2f\nUpdate: %.2fms\nDraw:   %.2fms",
		state.Step,
		len(state.Boids),
		mode,
		len(state.Regions),
		state.Destination,
		ebiten.ActualFPS(),
		ebiten.ActualTPS(),
		g.updateAvg,
		g.drawAvg)
	ebitenutil.DebugPrintAt(screen, msg, g.cfg.ScreenWidth-200, 10)
}

func (g *Game) Layout(w, h int) (int, int) { return g.cfg.ScreenWidth, g.cfg.ScreenHeight }
