package card

import (
	"bytes"
	"context"
	"image/color"
	"image/png"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidhyutcables/player-card/internal/assets"
	"github.com/vidhyutcables/player-card/internal/roster"
)

func kohli() roster.Player {
	return roster.Player{
		ID:           "player-001",
		Name:         "Virat Kohli",
		Role:         "Batsman",
		BattingStyle: "Right Handed Bat",
		BowlingStyle: "Right-arm medium",
		FormNumber:   96,
		ImageSource:  "",
	}
}

func seededCompositor(t *testing.T, seed int64) *Compositor {
	t.Helper()
	c, err := New(assets.NewResolver(), DefaultLayout(), rand.New(rand.NewSource(seed)))
	require.NoError(t, err)
	return c
}

func TestComposeProducesFixedCanvasSize(t *testing.T) {
	c := seededCompositor(t, 1)

	// All three sources fall back to placeholders; the card must still
	// come out at full size.
	rc, err := c.Compose(context.Background(), kohli(), "org.png", "logo.png")
	require.NoError(t, err)
	assert.Equal(t, "player-001", rc.PlayerID)
	assert.Equal(t, "Virat Kohli", rc.Name)
	assert.Empty(t, rc.Story, "compositor never writes the narrative")

	img, err := png.Decode(bytes.NewReader(rc.PNG))
	require.NoError(t, err)
	assert.Equal(t, 600, img.Bounds().Dx())
	assert.Equal(t, 850, img.Bounds().Dy())
}

func TestComposeIsDeterministicWithFixedSeed(t *testing.T) {
	a, err := seededCompositor(t, 42).Compose(context.Background(), kohli(), "org.png", "logo.png")
	require.NoError(t, err)
	b, err := seededCompositor(t, 42).Compose(context.Background(), kohli(), "org.png", "logo.png")
	require.NoError(t, err)

	assert.Equal(t, a.PNG, b.PNG, "identical inputs and seed must be pixel-identical")
}

func TestComposeDifferentSeedsOnlyMoveTexture(t *testing.T) {
	a, err := seededCompositor(t, 1).Compose(context.Background(), kohli(), "org.png", "logo.png")
	require.NoError(t, err)
	b, err := seededCompositor(t, 2).Compose(context.Background(), kohli(), "org.png", "logo.png")
	require.NoError(t, err)

	assert.NotEqual(t, a.PNG, b.PNG, "different seeds move the texture lines")

	// Both still render at full size; only the cosmetic lines differ.
	for _, rc := range []RenderedCard{a, b} {
		img, err := png.Decode(bytes.NewReader(rc.PNG))
		require.NoError(t, err)
		assert.Equal(t, 600, img.Bounds().Dx())
		assert.Equal(t, 850, img.Bounds().Dy())
	}
}

func TestComposeExtremeFieldValues(t *testing.T) {
	c := seededCompositor(t, 7)
	p := kohli()
	p.Name = "A Very Long Name That Goes On And On Forever"
	p.Role = "X"
	p.FormNumber = 250 // out of range: renders, never fails
	p.BattingStyle = ""

	rc, err := c.Compose(context.Background(), p, "org.png", "logo.png")
	require.NoError(t, err)
	assert.NotEmpty(t, rc.PNG)
}

func TestComposeBatchOrderAndKeys(t *testing.T) {
	c := seededCompositor(t, 3)
	players := []roster.Player{kohli(), kohli(), kohli()}
	players[1].ID, players[1].Name = "player-002", "MS Dhoni"
	players[2].ID, players[2].Name = "player-003", "Jasprit Bumrah"

	var got []RenderedCard
	err := c.ComposeBatch(context.Background(), players, SharedAssets{
		OrgPortraitRef: "org.png",
		LogoRef:        "logo.png",
	}, func(rc RenderedCard, err error) error {
		require.NoError(t, err)
		got = append(got, rc)
		return nil
	})
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, "player-001", got[0].PlayerID)
	assert.Equal(t, "player-002", got[1].PlayerID)
	assert.Equal(t, "player-003", got[2].PlayerID)
}

func TestComposeBatchRejectsMissingSharedAssets(t *testing.T) {
	c := seededCompositor(t, 3)
	calls := 0
	err := c.ComposeBatch(context.Background(), []roster.Player{kohli()}, SharedAssets{}, func(RenderedCard, error) error {
		calls++
		return nil
	})
	assert.ErrorIs(t, err, ErrMissingSharedAssets)
	assert.Zero(t, calls, "no composition may start without the required assets")
}

// One Compositor serves every HTTP request, so Compose must hold up under
// concurrent callers. Run with -race.
func TestComposeConcurrentCallers(t *testing.T) {
	c := seededCompositor(t, 9)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 6; j++ {
				rc, err := c.Compose(context.Background(), kohli(), "org.png", "logo.png")
				assert.NoError(t, err)
				assert.NotEmpty(t, rc.PNG)
			}
		}()
	}
	wg.Wait()
}

func textAnchors(t *testing.T, p roster.Player) [][2]float64 {
	t.Helper()
	c := seededCompositor(t, 5)
	var anchors [][2]float64
	c.textTrace = func(_ string, x, y float64) {
		anchors = append(anchors, [2]float64{x, y})
	}
	_, err := c.Compose(context.Background(), p, "org.png", "logo.png")
	require.NoError(t, err)
	return anchors
}

func TestTextAnchorsFixedRegardlessOfContent(t *testing.T) {
	short := kohli()

	long := kohli()
	long.Name = strings.Repeat("ABCDEFGHIJ", 4)
	long.Role = "Wicket Keeper Batter"
	long.BattingStyle = strings.Repeat("Right Handed ", 5)
	long.BowlingStyle = "Slow left-arm orthodox with a mystery carrom ball"
	long.FormNumber = 8

	a := textAnchors(t, short)
	b := textAnchors(t, long)
	require.Len(t, a, 5, "rating, name and three stat values")
	assert.Equal(t, a, b, "anchors never move with content; only the font size adapts")
}

func TestDefaultLayoutConstants(t *testing.T) {
	l := DefaultLayout()
	assert.Equal(t, 600, l.Width)
	assert.Equal(t, 850, l.Height)
	assert.Equal(t, 110.0, l.StatDividerInset)
}

func TestHexToColor(t *testing.T) {
	assert.Equal(t, color.NRGBA{R: 0xd4, G: 0xaf, B: 0x37, A: 255}, hexToColor(hexGold))
	assert.Panics(t, func() { hexToColor("not-a-color") })
}

func TestComposeBatchStopsWhenCallbackErrors(t *testing.T) {
	c := seededCompositor(t, 3)
	players := []roster.Player{kohli(), kohli()}
	sentinel := assert.AnError

	calls := 0
	err := c.ComposeBatch(context.Background(), players, SharedAssets{
		OrgPortraitRef: "org.png",
		LogoRef:        "logo.png",
	}, func(RenderedCard, error) error {
		calls++
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, calls)
}
