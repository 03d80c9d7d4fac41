// Package archive packages a finished batch into a ZIP for download.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"strings"

	"github.com/vidhyutcables/player-card/internal/card"
)

// WriteZip writes one PNG per card plus a small text manifest. Card files
// are named from the player's display name; collisions get a numeric
// suffix so every card survives the archive.
func WriteZip(w io.Writer, batchName string, cards []card.RenderedCard) error {
	zw := zip.NewWriter(w)

	used := map[string]int{}
	var manifest []string
	if batchName != "" {
		manifest = append(manifest, "# "+batchName)
	}

	for _, c := range cards {
		name := SafeFileName(c.Name)
		if name == "" {
			name = c.PlayerID
		}
		used[name]++
		if n := used[name]; n > 1 {
			name = fmt.Sprintf("%s-%d", name, n)
		}

		f, err := zw.Create(name + ".png")
		if err != nil {
			return fmt.Errorf("adding %s to archive: %w", name, err)
		}
		if _, err := f.Write(c.PNG); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
		if c.Story != "" {
			sf, err := zw.Create(name + ".txt")
			if err != nil {
				return fmt.Errorf("adding story for %s: %w", name, err)
			}
			if _, err := sf.Write([]byte(c.Story)); err != nil {
				return fmt.Errorf("writing story for %s: %w", name, err)
			}
		}
		manifest = append(manifest, c.PlayerID+"\t"+c.Name)
	}

	mf, err := zw.Create("cards.txt")
	if err != nil {
		return fmt.Errorf("adding manifest: %w", err)
	}
	if _, err := mf.Write([]byte(strings.Join(manifest, "\n") + "\n")); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return zw.Close()
}

// SafeFileName strips anything that cannot sit in a zip entry name.
func SafeFileName(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "_")
}
