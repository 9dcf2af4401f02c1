package main

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lao-tseu-is-alive/go-flock-octree/pkg/flock"
	"github.com/lao-tseu-is-alive/go-flock-octree/pkg/geometry"
)

func newTestScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	screen.SetSize(80, 25)
	t.Cleanup(screen.Fini)
	return screen
}

func newTestApp(t *testing.T, n int) *app {
	t.Helper()
	s := flock.DefaultSettings()
	s.NumBoids = n
	return &app{
		flock:        flock.New(s, rand.New(rand.NewPCG(3, 4)), nil),
		picker:       rand.New(rand.NewPCG(5, 6)),
		view:         &view{screen: newTestScreen(t), region: s.Region},
		destinations: s.DestinationBounds,
	}
}

func TestViewCell(t *testing.T) {
	v := &view{screen: newTestScreen(t), region: flock.DefaultSettings().Region}
	tests := []struct {
		name  string
		p     geometry.Vector3D
		wantX int
		wantY int
	}{
		{"origin corner", geometry.Vector3D{-50, 0, -50}, 0, 0},
		{"centre", geometry.Vector3D{0, 0, 0}, 40, 12},
		{"height is ignored", geometry.Vector3D{0, 49, 0}, 40, 12},
		{"far corner clamps", geometry.Vector3D{50, 0, 50}, 79, 23},
		{"outside clamps low", geometry.Vector3D{-500, 0, -500}, 0, 0},
		{"outside clamps high", geometry.Vector3D{500, 0, 500}, 79, 23},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := v.cell(tt.p)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("cell(%s) = (%d, %d), want (%d, %d)", tt.p, x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestViewCellEmptyRegion(t *testing.T) {
	v := &view{screen: newTestScreen(t)}
	if x, y := v.cell(geometry.Vector3D{3, 3, 3}); x != 0 || y != 0 {
		t.Errorf("cell in an empty region = (%d, %d), want (0, 0)", x, y)
	}
}

func TestViewDraw(t *testing.T) {
	a := newTestApp(t, 20)
	screen := a.view.screen.(tcell.SimulationScreen)

	a.view.draw(a.flock, false, false)

	if r, _, _, _ := screen.GetContent(40, 12); r != '@' {
		t.Errorf("leader cell holds %q, want '@'", r)
	}
	dx, dy := a.view.cell(a.flock.Destination())
	if r, _, _, _ := screen.GetContent(dx, dy); r != 'X' {
		t.Errorf("destination cell holds %q, want 'X'", r)
	}
	if r, _, _, _ := screen.GetContent(0, 0); r == '·' {
		t.Error("octree drawn while the overlay is off")
	}

	var status strings.Builder
	for x := 0; x < 80; x++ {
		r, _, _, _ := screen.GetContent(x, 24)
		status.WriteRune(r)
	}
	if !strings.Contains(status.String(), "step 0") || !strings.Contains(status.String(), "20 boids") {
		t.Errorf("status line = %q", status.String())
	}

	a.view.showOctree = true
	a.view.draw(a.flock, false, false)
	if r, _, _, _ := screen.GetContent(0, 0); r != '·' {
		t.Errorf("root region corner holds %q, want '·'", r)
	}
}

func TestStatusLine(t *testing.T) {
	f := flock.New(flock.DefaultSettings(), nil, nil)
	tests := []struct {
		name     string
		useIndex bool
		paused   bool
		want     []string
		notWant  string
	}{
		{"brute running", false, false, []string{"brute", "200 boids"}, "PAUSED"},
		{"octree paused", true, true, []string{"octree", "PAUSED"}, "brute"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := statusLine(f, tt.useIndex, tt.paused)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("statusLine() = %q, missing %q", got, w)
				}
			}
			if strings.Contains(got, tt.notWant) {
				t.Errorf("statusLine() = %q, should not contain %q", got, tt.notWant)
			}
		})
	}
}

func TestHandleKey(t *testing.T) {
	tests := []struct {
		name     string
		ev       *tcell.EventKey
		wantQuit bool
		check    func(*app) bool
	}{
		{"escape quits", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), true, nil},
		{"q quits", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), true, nil},
		{"o toggles the index", tcell.NewEventKey(tcell.KeyRune, 'o', tcell.ModNone), false,
			func(a *app) bool { return a.useIndex }},
		{"t toggles the overlay", tcell.NewEventKey(tcell.KeyRune, 't', tcell.ModNone), false,
			func(a *app) bool { return a.view.showOctree }},
		{"space pauses", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), false,
			func(a *app) bool { return a.paused }},
		{"n requests a step", tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone), false,
			func(a *app) bool { return a.stepOnce }},
		{"unknown rune is ignored", tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), false,
			func(a *app) bool { return !a.useIndex && !a.paused && !a.stepOnce }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestApp(t, 5)
			if got := a.handleKey(tt.ev); got != tt.wantQuit {
				t.Errorf("handleKey() = %v, want %v", got, tt.wantQuit)
			}
			if tt.check != nil && !tt.check(a) {
				t.Error("key had no effect")
			}
		})
	}
}

func TestRandomDestinationCommand(t *testing.T) {
	a := newTestApp(t, 5)
	for i := 0; i < 20; i++ {
		if a.command('r') {
			t.Fatal("'r' must not quit")
		}
		d := a.flock.Destination()
		if d.Y() != 12 || d.X() < -20 || d.X() > 20 || d.Z() < -20 || d.Z() > 20 {
			t.Fatalf("destination %s outside the re-roll volume", d)
		}
	}
}

func TestRandomDestinationKeepsFlockStream(t *testing.T) {
	pressed := newTestApp(t, 5)
	untouched := newTestApp(t, 5)

	pressed.command('r')
	pressed.flock.SetDestination(untouched.flock.Destination())

	var a, b []geometry.Vector3D
	for range 2000 {
		pressed.flock.Update(false)
		untouched.flock.Update(false)
		if d := pressed.flock.Destination(); len(a) == 0 || d != a[len(a)-1] {
			a = append(a, d)
		}
		if d := untouched.flock.Destination(); len(b) == 0 || d != b[len(b)-1] {
			b = append(b, d)
		}
	}
	if len(b) < 2 {
		t.Fatal("no destination re-roll in 2000 steps")
	}
	if len(a) != len(b) {
		t.Fatalf("%d destinations against %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("destination %d: %v after a key press, %v without", i, a[i], b[i])
		}
	}
}

func TestTickPauseAndStep(t *testing.T) {
	a := newTestApp(t, 5)

	a.tick()
	if got := a.flock.Step(); got != 1 {
		t.Fatalf("Step() = %d after a running tick, want 1", got)
	}

	a.command(' ')
	a.tick()
	if got := a.flock.Step(); got != 1 {
		t.Fatalf("Step() = %d after a paused tick, want 1", got)
	}

	a.command('n')
	a.tick()
	a.tick()
	if got := a.flock.Step(); got != 2 {
		t.Errorf("Step() = %d after a single step, want 2", got)
	}
	if a.stepOnce {
		t.Error("single step request not consumed")
	}
}
