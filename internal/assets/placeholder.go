package assets

import (
	"image"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
)

// PlaceholderSize is the side length of the generated fallback square.
const PlaceholderSize = 400

// newPlaceholder builds the "NO IMAGE" fallback: two nested flat purple
// rectangles with centered bold text. Entirely procedural so resolution
// still works with no network and no local assets.
func newPlaceholder() image.Image {
	dc := gg.NewContext(PlaceholderSize, PlaceholderSize)

	dc.SetHexColor("#2d1b4e")
	dc.Clear()
	dc.SetHexColor("#4b2a7b")
	dc.DrawRectangle(24, 24, PlaceholderSize-48, PlaceholderSize-48)
	dc.Fill()

	if f, err := opentype.Parse(gobold.TTF); err == nil {
		face, ferr := opentype.NewFace(f, &opentype.FaceOptions{
			Size:    44,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if ferr == nil {
			dc.SetFontFace(face)
			dc.SetHexColor("#e9e2f5")
			dc.DrawStringAnchored("NO IMAGE", PlaceholderSize/2, PlaceholderSize/2, 0.5, 0.5)
		}
	}
	return dc.Image()
}
