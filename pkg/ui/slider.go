package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Slider picks a value in [Min, Max] by dragging across its bar.
type Slider struct {
	Label    string
	Value    float64
	Min, Max float64
	rect
	changed bool
}

// NewSlider creates a slider bar of 12 pixels under its label.
func NewSlider(x, y, width float64, label string, lo, hi, value float64) *Slider {
	s := &Slider{
		Label: label,
		Min:   lo,
		Max:   hi,
		rect:  rect{X: x, Y: y, W: width, H: 12},
	}
	s.Value = s.clamp(value)
	return s
}

func (s *Slider) clamp(v float64) float64 {
	return max(s.Min, min(s.Max, v))
}

// bar is the draggable area, the label sits above it.
func (s *Slider) bar() rect {
	return rect{X: s.X, Y: s.Y + 16, W: s.W, H: s.H}
}

func (s *Slider) Update() {
	s.changed = false
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := cursor()
	if b := s.bar(); b.contains(mx, my) {
		v := s.clamp(s.Min + (mx-b.X)/b.W*(s.Max-s.Min))
		s.changed = v != s.Value
		s.Value = v
	}
}

// Changed reports whether the value moved during the last Update.
func (s *Slider) Changed() bool {
	return s.changed
}

func (s *Slider) Draw(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s: %.3f", s.Label, s.Value), int(s.X), int(s.Y))

	b := s.bar()
	vector.FillRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), color.RGBA{R: 80, G: 80, B: 80, A: 255}, true)
	ratio := 0.0
	if s.Max > s.Min {
		ratio = (s.Value - s.Min) / (s.Max - s.Min)
	}
	vector.FillRect(screen, float32(b.X), float32(b.Y), float32(b.W*ratio), float32(b.H), color.RGBA{R: 200, G: 200, B: 200, A: 255}, true)
}

func (s *Slider) Height() float64 { return 16 + s.H + 10 }

func (s *Slider) MoveTo(y float64) { s.Y = y }
