// Package ui holds the small ebiten widgets of the flock viewer.
package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Widget is implemented by everything a Panel can stack.
type Widget interface {
	Update()
	Draw(screen *ebiten.Image)
	Height() float64
	// MoveTo places the top of the widget, the panel calls it when scrolling.
	MoveTo(y float64)
}

// rect is a screen area in pixels.
type rect struct {
	X, Y, W, H float64
}

func (r rect) contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

func cursor() (float64, float64) {
	mx, my := ebiten.CursorPosition()
	return float64(mx), float64(my)
}

// press tracks a mouse button so a held click fires once.
type press struct {
	down bool
}

// fire reports whether a click starts over the area this frame.
func (p *press) fire(over, pressed bool) bool {
	if over && pressed {
		if p.down {
			return false
		}
		p.down = true
		return true
	}
	p.down = false
	return false
}
