package card

import (
	"github.com/fogleman/gg"
	"golang.org/x/image/font/sfnt"
)

// fitSize picks the largest size >= floor, stepping down from start, at
// which text measures within maxWidth. When even the floor overflows it
// returns the floor: long strings render small, never wrapped or clipped.
func (c *Compositor) fitSize(dc *gg.Context, f *sfnt.Font, text string, maxWidth, start, floor float64) float64 {
	size := start
	for size > floor {
		dc.SetFontFace(c.fonts.face(f, size))
		if w, _ := dc.MeasureString(text); w <= maxWidth {
			return size
		}
		size -= c.layout.FitStep
	}
	if size < floor {
		size = floor
	}
	return size
}

// drawFitted draws text center-anchored at (x, y) at its fitted size.
// The anchor never moves with content; only the size adapts.
func (c *Compositor) drawFitted(dc *gg.Context, f *sfnt.Font, text string, x, y, maxWidth, start, floor float64) {
	size := c.fitSize(dc, f, text, maxWidth, start, floor)
	dc.SetFontFace(c.fonts.face(f, size))
	if c.textTrace != nil {
		c.textTrace(text, x, y)
	}
	dc.DrawStringAnchored(text, x, y, 0.5, 0.5)
}
