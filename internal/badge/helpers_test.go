package badge

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// stripedPNG encodes a 60x60 PNG with one vertical stripe per color.
func stripedPNG(t *testing.T, colors ...color.RGBA) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 60, 60))
	stripe := 60 / len(colors)
	for x := 0; x < 60; x++ {
		c := colors[min(x/stripe, len(colors)-1)]
		for y := 0; y < 60; y++ {
			img.Set(x, y, c)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}
