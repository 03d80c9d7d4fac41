package card

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/sync/errgroup"

	"github.com/vidhyutcables/player-card/internal/assets"
	"github.com/vidhyutcables/player-card/internal/roster"
)

// Card palette.
const (
	hexBackDeep = "#1d0b33" // gradient start, also the fade target
	hexBackMid  = "#3c1361"
	hexBackDark = "#0c0418"
	hexGold     = "#d4af37"
	hexPale     = "#f3e9c3"
	hexInk      = "#ffffff"
	hexMutedInk = "#efe6ff"
	hexAccent   = "#c9a227" // stat row labels
)

// Compositor renders players into cards. It is pure with respect to its
// inputs apart from the cosmetic texture lines drawn from rng.
type Compositor struct {
	resolver *assets.Resolver
	layout   Layout
	fonts    fontSet

	// rng is the only mutable state shared between Compose calls; the
	// HTTP surface composes on one Compositor from many goroutines, so
	// every sample goes through rngMu.
	rng   *rand.Rand
	rngMu sync.Mutex

	// textTrace, when set, observes every text anchor the compositor
	// draws at. Tests use it to pin the layout; production leaves it nil.
	textTrace func(text string, x, y float64)
}

// New builds a Compositor. A nil rng gets a time-seeded source; tests pass
// a fixed seed to pin the texture lines.
func New(res *assets.Resolver, layout Layout, rng *rand.Rand) (*Compositor, error) {
	fonts, err := loadFonts()
	if err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Compositor{resolver: res, layout: layout, fonts: fonts, rng: rng}, nil
}

// Compose renders one finished card for the player. The three asset loads
// run concurrently and drawing starts only once all three have resolved
// (placeholder or real). The only error it can return is a failure to
// encode the finished surface.
func (c *Compositor) Compose(ctx context.Context, p roster.Player, orgRef, logoRef string) (RenderedCard, error) {
	var photo, portrait, logo image.Image
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		photo = c.resolver.Resolve(gctx, p.EffectiveImageSource())
		return nil
	})
	g.Go(func() error {
		portrait = c.resolver.Resolve(gctx, orgRef)
		return nil
	})
	g.Go(func() error {
		logo = c.resolver.Resolve(gctx, logoRef)
		return nil
	})
	// Resolution never errors; Wait is the three-way join barrier.
	_ = g.Wait()

	l := c.layout
	w := float64(l.Width)
	h := float64(l.Height)
	dc := gg.NewContext(l.Width, l.Height)

	// Everything inside the silhouette is drawn under the shield clip.
	c.shieldPath(dc)
	dc.Clip()

	c.drawBackground(dc, w, h)
	c.drawPhoto(dc, photo)
	c.drawInfoColumn(dc, p, portrait, logo)
	c.drawName(dc, p.Name, w)
	c.drawStatRows(dc, p, w)

	// Border strokes go on top, unclipped, so nothing that bled past the
	// silhouette edge can sit over them.
	dc.ResetClip()
	c.shieldPath(dc)
	dc.SetHexColor(hexGold)
	dc.SetLineWidth(l.OuterStroke)
	dc.Stroke()
	c.shieldPath(dc)
	dc.SetHexColor(hexPale)
	dc.SetLineWidth(l.InnerStroke)
	dc.Stroke()

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return RenderedCard{}, fmt.Errorf("encoding card for %s: %w", p.ID, err)
	}
	return RenderedCard{PlayerID: p.ID, Name: p.Name, PNG: buf.Bytes()}, nil
}

// shieldPath traces the card silhouette: straight edges for the top
// two-thirds, then two quadratic curves tapering to the bottom-center apex.
// Built fresh each time since fills, clips and strokes all consume the path.
func (c *Compositor) shieldPath(dc *gg.Context) {
	l := c.layout
	w := float64(l.Width)
	h := float64(l.Height)

	left := w * l.ShieldInset
	right := w * (1 - l.ShieldInset)
	top := h * l.ShieldTop
	shoulder := h * l.ShieldShoulder
	curve := h * l.ShieldCurve
	apexX := w * l.ShieldApexX
	apexY := h * l.ShieldApexY

	dc.MoveTo(left, top)
	dc.LineTo(right, top)
	dc.LineTo(right, shoulder)
	dc.QuadraticTo(right, curve, apexX, apexY)
	dc.QuadraticTo(left, curve, left, shoulder)
	dc.ClosePath()
}

func (c *Compositor) drawBackground(dc *gg.Context, w, h float64) {
	grad := gg.NewLinearGradient(0, 0, w, h)
	grad.AddColorStop(0, hexToColor(hexBackDeep))
	grad.AddColorStop(0.5, hexToColor(hexBackMid))
	grad.AddColorStop(1, hexToColor(hexBackDark))
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()

	// Faint diagonal texture lines. Purely cosmetic: position comes from
	// the injected rng and never feeds back into layout. Sampling happens
	// up front under the lock so seeded runs stay reproducible.
	xs := make([]float64, c.layout.TextureLines)
	c.rngMu.Lock()
	for i := range xs {
		xs[i] = c.rng.Float64() * w
	}
	c.rngMu.Unlock()

	dc.SetLineWidth(2)
	for _, x := range xs {
		dc.SetRGBA(1, 1, 1, 0.05)
		dc.DrawLine(x-150, 0, x+150, h)
		dc.Stroke()
	}
}

func (c *Compositor) drawPhoto(dc *gg.Context, photo image.Image) {
	l := c.layout
	side := int(float64(l.PhotoSize) * l.PhotoScale)
	fitted := imaging.Fill(photo, side, side, imaging.Center, imaging.Lanczos)
	dc.DrawImage(fitted, int(l.PhotoX), int(l.PhotoY))

	// Fade the photo's bottom edge into the backdrop so it blends with
	// the text region beneath. Runs even when the photo is the
	// placeholder, so every card gets the same seam.
	bottom := l.PhotoY + float64(side)
	top := bottom - l.FadeHeight
	bg := hexToColor(hexBackDeep)
	fade := gg.NewLinearGradient(0, top, 0, bottom)
	fade.AddColorStop(0, color.NRGBA{R: bg.R, G: bg.G, B: bg.B, A: 0})
	fade.AddColorStop(1, bg)
	dc.SetFillStyle(fade)
	dc.DrawRectangle(0, top, float64(l.Width), l.FadeHeight)
	dc.Fill()
}

func (c *Compositor) drawInfoColumn(dc *gg.Context, p roster.Player, portrait, logo image.Image) {
	l := c.layout

	rating := fmt.Sprintf("%02d", p.FormNumber)
	dc.SetHexColor(hexGold)
	c.drawFitted(dc, c.fonts.bold, rating, l.ColumnX, l.RatingY, l.ColumnWidth, l.RatingSize, l.RatingFloor)

	dc.SetHexColor(hexMutedInk)
	dc.SetFontFace(c.fonts.face(c.fonts.bold, l.RoleSize))
	dc.DrawStringAnchored(roleAbbr(p.Role), l.ColumnX, l.RoleY, 0.5, 0.5)

	dc.SetRGBA(1, 1, 1, 0.25)
	dc.SetLineWidth(1)
	dc.DrawLine(l.ColumnX-l.DividerHalf, l.DividerY, l.ColumnX+l.DividerHalf, l.DividerY)
	dc.Stroke()

	// Org portrait inside a circle. The circle clip stacks on the shield
	// clip; gg clips only intersect, so restoring means resetting and
	// re-applying the shield before anything else draws.
	radius := float64(l.BadgeSize) / 2
	badge := imaging.Fill(portrait, l.BadgeSize, l.BadgeSize, imaging.Center, imaging.Lanczos)
	dc.DrawCircle(l.ColumnX, l.PortraitY, radius)
	dc.Clip()
	dc.DrawImageAnchored(badge, int(l.ColumnX), int(l.PortraitY), 0.5, 0.5)
	dc.ResetClip()
	c.shieldPath(dc)
	dc.Clip()

	// Gold ring stroked after the circle clip is released.
	dc.SetHexColor(hexGold)
	dc.SetLineWidth(2)
	dc.DrawCircle(l.ColumnX, l.PortraitY, radius)
	dc.Stroke()

	// Logo below at the same diameter, unclipped.
	lg := imaging.Fill(logo, l.BadgeSize, l.BadgeSize, imaging.Center, imaging.Lanczos)
	dc.DrawImageAnchored(lg, int(l.ColumnX), int(l.LogoY), 0.5, 0.5)
}

func (c *Compositor) drawName(dc *gg.Context, name string, w float64) {
	l := c.layout
	text := strings.ToUpper(name)
	size := c.fitSize(dc, c.fonts.bold, text, w-l.NameMargin, l.NameSize, l.FitFloor)
	dc.SetFontFace(c.fonts.face(c.fonts.bold, size))
	if c.textTrace != nil {
		c.textTrace(text, w/2, l.NameY)
	}

	// Drop shadow first for legibility over the photo.
	dc.SetRGBA(0, 0, 0, 0.6)
	dc.DrawStringAnchored(text, w/2+2, l.NameY+2, 0.5, 0.5)
	dc.SetHexColor(hexInk)
	dc.DrawStringAnchored(text, w/2, l.NameY, 0.5, 0.5)
}

func (c *Compositor) drawStatRows(dc *gg.Context, p roster.Player, w float64) {
	l := c.layout
	rows := []struct {
		label string
		value string
	}{
		{"ROLE", p.Role},
		{"BATTING", p.BattingStyle},
		{"BOWLING", p.BowlingStyle},
	}
	for i, row := range rows {
		y := l.StatStartY + float64(i)*l.StatSpacing

		dc.SetRGBA(1, 1, 1, 0.15)
		dc.SetLineWidth(1)
		dc.DrawLine(l.StatDividerInset, y, w-l.StatDividerInset, y)
		dc.Stroke()

		dc.SetHexColor(hexAccent)
		dc.SetFontFace(c.fonts.face(c.fonts.regular, l.StatLabelSize))
		dc.DrawStringAnchored(row.label, w/2, y+14, 0.5, 0.5)

		dc.SetHexColor(hexInk)
		c.drawFitted(dc, c.fonts.bold, strings.ToUpper(row.value), w/2, y+38, w-l.StatMargin, l.StatValueSize, l.FitFloor)
	}
}

// roleAbbr takes the first three characters of the role, upper-cased.
// A pure character slice, not word-aware: "Batsman" -> "BAT".
func roleAbbr(role string) string {
	r := []rune(strings.ToUpper(strings.TrimSpace(role)))
	if len(r) > 3 {
		r = r[:3]
	}
	return string(r)
}

// hexToColor only ever sees the palette constants above, so a parse
// failure is a programmer error, not an input error.
func hexToColor(hex string) color.NRGBA {
	var r, g, b uint8
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		panic("card: bad palette constant " + hex)
	}
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
