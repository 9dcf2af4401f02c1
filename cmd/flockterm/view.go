package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lao-tseu-is-alive/go-flock-octree/pkg/flock"
	"github.com/lao-tseu-is-alive/go-flock-octree/pkg/geometry"
)

var (
	styleStatus      = tcell.StyleDefault.Reverse(true)
	styleOctree      = tcell.StyleDefault.Foreground(tcell.ColorDarkGreen)
	styleLeader      = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleDestination = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
)

// view draws the flock from above: world x maps to columns and world z to
// rows, the last row is kept for the status line.
type view struct {
	screen     tcell.Screen
	region     geometry.Box
	showOctree bool
}

// area returns the number of columns and rows available to the scene.
func (v *view) area() (int, int) {
	w, h := v.screen.Size()
	return w, max(h-1, 0)
}

// cell returns the screen cell of p, clamped to the scene.
func (v *view) cell(p geometry.Vector3D) (int, int) {
	cols, rows := v.area()
	size := v.region.Size
	if size.X() <= 0 || size.Z() <= 0 || cols == 0 || rows == 0 {
		return 0, 0
	}
	fx := (p.X() - v.region.Origin.X()) / size.X()
	fz := (p.Z() - v.region.Origin.Z()) / size.Z()
	x := min(max(int(fx*float64(cols)), 0), cols-1)
	y := min(max(int(fz*float64(rows)), 0), rows-1)
	return x, y
}

func (v *view) visible(p geometry.Vector3D) bool {
	lo, hi := v.region.Origin, v.region.Max()
	return p.X() >= lo.X() && p.X() < hi.X() && p.Z() >= lo.Z() && p.Z() < hi.Z()
}

// heightStyle shades a boid from dark blue at the bottom of the region to
// white at the top.
func (v *view) heightStyle(y float64) tcell.Style {
	f := 0.5
	if v.region.Size.Y() > 0 {
		f = (y - v.region.Origin.Y()) / v.region.Size.Y()
	}
	f = min(max(f, 0), 1)
	c := int32(80 + f*175)
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(c, c, 255))
}

func (v *view) drawBox(b geometry.Box) {
	x0, y0 := v.cell(b.Origin)
	x1, y1 := v.cell(b.Max())
	for x := x0; x <= x1; x++ {
		v.screen.SetContent(x, y0, '·', nil, styleOctree)
		v.screen.SetContent(x, y1, '·', nil, styleOctree)
	}
	for y := y0; y <= y1; y++ {
		v.screen.SetContent(x0, y, '·', nil, styleOctree)
		v.screen.SetContent(x1, y, '·', nil, styleOctree)
	}
}

func (v *view) draw(f *flock.Flock, useIndex, paused bool) {
	v.screen.Clear()

	if v.showOctree {
		f.WalkOctree(func(n flock.NodeInfo) bool {
			v.drawBox(n.Region)
			return true
		})
	}

	boids := f.Boids()
	for i := len(boids) - 1; i >= 1; i-- {
		p := boids[i].Position
		if !v.visible(p) {
			continue
		}
		x, y := v.cell(p)
		v.screen.SetContent(x, y, 'o', nil, v.heightStyle(p.Y()))
	}
	if v.visible(f.Destination()) {
		x, y := v.cell(f.Destination())
		v.screen.SetContent(x, y, 'X', nil, styleDestination)
	}
	if leader, ok := f.Leader(); ok && v.visible(leader.Position) {
		x, y := v.cell(leader.Position)
		v.screen.SetContent(x, y, '@', nil, styleLeader)
	}

	v.drawStatus(statusLine(f, useIndex, paused))
	v.screen.Show()
}

func (v *view) drawStatus(msg string) {
	w, h := v.screen.Size()
	if h == 0 {
		return
	}
	runes := []rune(msg)
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(runes) {
			r = runes[x]
		}
		v.screen.SetContent(x, h-1, r, nil, styleStatus)
	}
}

func statusLine(f *flock.Flock, useIndex, paused bool) string {
	mode := "brute"
	if useIndex {
		mode = "octree"
	}
	state := ""
	if paused {
		state = " PAUSED"
	}
	return fmt.Sprintf(" step %d | %d boids | %s | %d nodes | target %s%s | o t space n r q",
		f.Step(), f.Len(), mode, f.Octree().NodeCount(), f.Destination(), state)
}
