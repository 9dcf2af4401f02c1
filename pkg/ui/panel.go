package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	titleHeight   = 30.0
	sectionHeight = 25.0
)

// entry is one row of the panel: a section header or a widget.
type entry struct {
	title  string
	widget Widget
}

func (e entry) height() float64 {
	if e.widget == nil {
		return sectionHeight
	}
	return e.widget.Height()
}

// Panel stacks widgets under section headers in a scrollable column.
type Panel struct {
	Title string
	rect
	ScrollOffset float64
	entries      []entry

	BGColor     color.RGBA
	BorderColor color.RGBA
}

// NewPanel creates an empty panel.
func NewPanel(x, y, width, height float64, title string) *Panel {
	return &Panel{
		Title:       title,
		rect:        rect{X: x, Y: y, W: width, H: height},
		BGColor:     color.RGBA{R: 40, G: 40, B: 45, A: 230},
		BorderColor: color.RGBA{R: 100, G: 100, B: 110, A: 255},
	}
}

// AddSection starts a new group of widgets under a header.
func (p *Panel) AddSection(title string) {
	p.entries = append(p.entries, entry{title: title})
}

// Add appends w below the last row.
func (p *Panel) Add(w Widget) {
	w.MoveTo(p.Y + p.contentHeight() - p.ScrollOffset)
	p.entries = append(p.entries, entry{widget: w})
}

func (p *Panel) AddSlider(label string, lo, hi, value float64) *Slider {
	s := NewSlider(p.X+10, 0, p.W-20, label, lo, hi, value)
	p.Add(s)
	return s
}

func (p *Panel) AddCheckbox(label string, value bool) *Checkbox {
	c := NewCheckbox(p.X+10, 0, label, value)
	p.Add(c)
	return c
}

func (p *Panel) AddButton(label string, onClick func()) *Button {
	b := NewButton(p.X+10, 0, p.W-20, 22, label, onClick)
	p.Add(b)
	return b
}

// Contains reports whether the screen point lies on the panel, so callers can
// ignore clicks meant for the widgets.
func (p *Panel) Contains(x, y float64) bool {
	return p.contains(x, y)
}

func (p *Panel) contentHeight() float64 {
	h := titleHeight
	for _, e := range p.entries {
		h += e.height()
	}
	return h
}

// layout moves every widget to its scrolled position.
func (p *Panel) layout() {
	y := p.Y + titleHeight - p.ScrollOffset
	for _, e := range p.entries {
		if e.widget != nil {
			e.widget.MoveTo(y)
		}
		y += e.height()
	}
}

func (p *Panel) visible(y, h float64) bool {
	return y >= p.Y+titleHeight-5 && y+h <= p.Y+p.H
}

func (p *Panel) Update() {
	if _, dy := ebiten.Wheel(); dy != 0 {
		if mx, my := cursor(); p.contains(mx, my) {
			maxScroll := max(0, p.contentHeight()-p.H+10)
			p.ScrollOffset = max(0, min(maxScroll, p.ScrollOffset-dy*20))
		}
	}
	p.layout()
	y := p.Y + titleHeight - p.ScrollOffset
	for _, e := range p.entries {
		// hidden widgets must not catch clicks
		if e.widget != nil && p.visible(y, e.height()) {
			e.widget.Update()
		}
		y += e.height()
	}
}

func (p *Panel) Draw(screen *ebiten.Image) {
	vector.FillRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.W), float32(p.H),
		p.BGColor, true)
	vector.StrokeRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.W), float32(p.H),
		2, p.BorderColor, true)
	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+10), int(p.Y+5))

	y := p.Y + titleHeight - p.ScrollOffset
	for _, e := range p.entries {
		h := e.height()
		if p.visible(y, h) {
			if e.widget == nil {
				vector.FillRect(screen,
					float32(p.X+5), float32(y),
					float32(p.W-10), 20,
					color.RGBA{R: 60, G: 60, B: 70, A: 255}, true)
				ebitenutil.DebugPrintAt(screen, e.title, int(p.X+10), int(y+2))
			} else {
				e.widget.Draw(screen)
			}
		}
		y += h
	}
}
