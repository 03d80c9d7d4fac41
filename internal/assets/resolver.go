// Package assets resolves image references (URLs, data URIs, bare filenames)
// into decoded images, substituting a generated placeholder on any failure.
package assets

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
)

// Resolver turns source references into drawable images. Resolve never
// fails: every load error collapses into the placeholder before returning,
// so no failure can escape to the caller.
type Resolver struct {
	client      *http.Client
	overrides   map[string]image.Image
	placeholder image.Image
}

func NewResolver() *Resolver {
	return &Resolver{
		client:      &http.Client{Timeout: 12 * time.Second},
		overrides:   map[string]image.Image{},
		placeholder: newPlaceholder(),
	}
}

// Placeholder returns the shared "NO IMAGE" fallback.
func (r *Resolver) Placeholder() image.Image {
	return r.placeholder
}

// AddOverride registers a locally supplied image under its filename, keyed
// both with and without the extension so either form of a bare reference
// resolves to it. The override map is read-only once a batch starts.
func (r *Resolver) AddOverride(filename string, img image.Image) {
	base := filepath.Base(filename)
	r.overrides[base] = img
	r.overrides[strings.TrimSuffix(base, filepath.Ext(base))] = img
}

// LoadOverridesDir registers every decodable image in dir (best-effort;
// non-image files are skipped).
func (r *Resolver) LoadOverridesDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		img, err := imaging.Open(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		r.AddOverride(e.Name(), img)
	}
	return nil
}

// Resolve loads the referenced image, or the placeholder when the reference
// is empty or the load fails for any reason.
func (r *Resolver) Resolve(ctx context.Context, ref string) image.Image {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return r.placeholder
	}

	img, err := r.load(ctx, ref)
	if err != nil {
		// User-supplied photo links break all the time. Absorb the
		// failure and render it visibly instead of aborting the batch.
		log.Println("assets: failed to load", ref, "->", err,
			"(likely a missing file, private share link, or malformed URL; using placeholder)")
		return r.placeholder
	}
	return img
}

func (r *Resolver) load(ctx context.Context, ref string) (image.Image, error) {
	switch {
	case strings.HasPrefix(ref, "data:"):
		return decodeDataURI(ref)
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return r.fetch(ctx, ref)
	default:
		if img, ok := r.lookupOverride(ref); ok {
			return img, nil
		}
		return nil, errors.New("no local override for filename")
	}
}

func (r *Resolver) lookupOverride(ref string) (image.Image, bool) {
	base := filepath.Base(ref)
	if img, ok := r.overrides[base]; ok {
		return img, true
	}
	img, ok := r.overrides[strings.TrimSuffix(base, filepath.Ext(base))]
	return img, ok
}

func (r *Resolver) fetch(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return imaging.Decode(resp.Body)
}

func decodeDataURI(ref string) (image.Image, error) {
	comma := strings.Index(ref, ",")
	if comma < 0 {
		return nil, errors.New("malformed data URI")
	}
	meta := ref[len("data:"):comma]
	if !strings.HasSuffix(meta, ";base64") {
		return nil, errors.New("unsupported data URI encoding")
	}
	raw, err := base64.StdEncoding.DecodeString(ref[comma+1:])
	if err != nil {
		return nil, fmt.Errorf("decoding data URI payload: %w", err)
	}
	return imaging.Decode(bytes.NewReader(raw))
}
