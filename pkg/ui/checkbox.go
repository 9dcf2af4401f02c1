package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Checkbox toggles a boolean option.
type Checkbox struct {
	Label string
	Value bool
	rect
	click   press
	changed bool
}

// NewCheckbox creates a checkbox of 16 pixels.
func NewCheckbox(x, y float64, label string, value bool) *Checkbox {
	return &Checkbox{
		Label: label,
		Value: value,
		rect:  rect{X: x, Y: y, W: 16, H: 16},
	}
}

// Update toggles the value on a new click over the box.
func (c *Checkbox) Update() {
	mx, my := cursor()
	c.changed = c.click.fire(c.contains(mx, my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
	if c.changed {
		c.Value = !c.Value
	}
}

// Toggle flips the value as a click would, for keyboard shortcuts.
func (c *Checkbox) Toggle() {
	c.Value = !c.Value
	c.changed = true
}

// Changed reports whether the value flipped during the last Update or Toggle.
func (c *Checkbox) Changed() bool {
	return c.changed
}

func (c *Checkbox) Draw(screen *ebiten.Image) {
	vector.StrokeRect(screen,
		float32(c.X), float32(c.Y),
		float32(c.W), float32(c.H),
		2,
		color.RGBA{R: 200, G: 200, B: 200, A: 255},
		true)

	if c.Value {
		vector.FillRect(screen,
			float32(c.X+3), float32(c.Y+3),
			float32(c.W-6), float32(c.H-6),
			color.RGBA{R: 100, G: 200, B: 100, A: 255},
			true)
	}
	ebitenutil.DebugPrintAt(screen, c.Label, int(c.X+c.W+8), int(c.Y))
}

func (c *Checkbox) Height() float64 { return c.H + 8 }

func (c *Checkbox) MoveTo(y float64) { c.Y = y }
