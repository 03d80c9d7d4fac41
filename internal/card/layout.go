package card

// Layout carries every constant the compositor draws with. It is threaded
// explicitly into the Compositor so a batch renders with one immutable
// configuration and tests can substitute alternate values. The defaults are
// the load-bearing card design: change them and cards from different runs
// stop matching.
type Layout struct {
	Width  int
	Height int

	// Shield silhouette, as fractions of the canvas.
	ShieldTop      float64 // top edge y
	ShieldInset    float64 // left edge x; right edge is 1 - ShieldInset
	ShieldShoulder float64 // y where the straight sides end
	ShieldCurve    float64 // y of the quadratic control points
	ShieldApexX    float64
	ShieldApexY    float64

	// Player photo slot.
	PhotoSize  int     // logical square before scaling
	PhotoScale float64 // drawn at PhotoSize * PhotoScale
	PhotoX     float64
	PhotoY     float64
	FadeHeight float64 // bottom-of-photo fade into the background

	// Left info column.
	ColumnX      float64
	ColumnWidth  float64
	RatingY      float64
	RatingSize   float64
	RatingFloor  float64
	RoleY        float64
	RoleSize     float64
	DividerY     float64
	DividerHalf  float64 // half-length of the column divider
	BadgeSize    int     // portrait/logo diameter
	PortraitY    float64
	LogoY        float64

	// Name and stat rows.
	NameY            float64
	NameSize         float64
	NameMargin       float64 // name fits within Width - NameMargin
	StatStartY       float64
	StatSpacing      float64
	StatMargin       float64 // values fit within Width - StatMargin
	StatDividerInset float64 // row divider inset from each edge
	StatLabelSize    float64
	StatValueSize    float64

	// Adaptive text fit.
	FitStep  float64
	FitFloor float64

	// Cosmetic background texture.
	TextureLines int

	// Border strokes.
	OuterStroke float64
	InnerStroke float64
}

// DefaultLayout is the 600x850 card design every batch ships with.
func DefaultLayout() Layout {
	return Layout{
		Width:  600,
		Height: 850,

		ShieldTop:      0.10,
		ShieldInset:    0.10,
		ShieldShoulder: 0.70,
		ShieldCurve:    0.85,
		ShieldApexX:    0.50,
		ShieldApexY:    0.95,

		PhotoSize:  400,
		PhotoScale: 1.1,
		PhotoX:     130,
		PhotoY:     95,
		FadeHeight: 120,

		ColumnX:     115,
		ColumnWidth: 140,
		RatingY:     175,
		RatingSize:  64,
		RatingFloor: 20,
		RoleY:       222,
		RoleSize:    26,
		DividerY:    248,
		DividerHalf: 52,
		BadgeSize:   84,
		PortraitY:   308,
		LogoY:       408,

		NameY:            575,
		NameSize:         44,
		NameMargin:       120,
		StatStartY:       615,
		StatSpacing:      62,
		StatMargin:       160,
		StatDividerInset: 110,
		StatLabelSize:    13,
		StatValueSize:    22,

		FitStep:  2,
		FitFloor: 14,

		TextureLines: 5,

		OuterStroke: 8,
		InnerStroke: 2,
	}
}
