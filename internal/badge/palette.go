package badge

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"

	"github.com/EdlinOrg/prominentcolor"
	"github.com/nfnt/resize"
)

// thumbnailSize bounds the image handed to k-means.
const thumbnailSize = 128

// ProminentColor decodes img and returns its most vivid prominent color as
// a #rrggbb hex code.
func ProminentColor(img *Image) (string, error) {
	if img == nil || len(img.Data) == 0 {
		return "", errors.New("empty image")
	}

	decoded, _, err := image.Decode(bytes.NewReader(img.Data))
	if err != nil {
		return "", fmt.Errorf("failed to decode cover: %w", err)
	}

	thumb := resize.Thumbnail(thumbnailSize, thumbnailSize, decoded, resize.Lanczos3)

	colors, err := prominentcolor.KmeansWithAll(3, thumb, prominentcolor.ArgumentDefault, prominentcolor.DefaultSize, nil)
	if err != nil {
		return "", fmt.Errorf("failed to extract colors: %w", err)
	}
	if len(colors) == 0 {
		return "", errors.New("no colors extracted")
	}

	// Score favours saturated colors near 60% brightness.
	best := colors[0]
	bestScore := -1.0
	for _, c := range colors {
		r := float64(c.Color.R) / 255.0
		g := float64(c.Color.G) / 255.0
		b := float64(c.Color.B) / 255.0

		hi := math.Max(math.Max(r, g), b)
		lo := math.Min(math.Min(r, g), b)

		sat := 0.0
		if hi > 0 {
			sat = (hi - lo) / hi
		}

		score := sat * (1.0 - math.Abs(hi-0.6))
		if score > bestScore {
			bestScore = score
			best = c
		}
	}

	return fmt.Sprintf("#%02x%02x%02x", best.Color.R, best.Color.G, best.Color.B), nil
}
