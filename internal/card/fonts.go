package card

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// fontSet holds the parsed card typefaces. Faces are cut per draw at
// whatever size the fit algorithm lands on.
type fontSet struct {
	bold    *sfnt.Font
	regular *sfnt.Font
}

func loadFonts() (fontSet, error) {
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return fontSet{}, fmt.Errorf("parsing bold font: %w", err)
	}
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return fontSet{}, fmt.Errorf("parsing regular font: %w", err)
	}
	return fontSet{bold: bold, regular: regular}, nil
}

// face cuts a face at the given point size. The fonts are embedded and
// already parsed, so face creation cannot realistically fail; a nil face
// would only follow from a corrupted build.
func (fs fontSet) face(f *sfnt.Font, size float64) font.Face {
	fc, _ := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	return fc
}
