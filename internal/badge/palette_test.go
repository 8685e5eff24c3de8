package badge

import (
	"image/color"
	"testing"
)

func TestProminentColor(t *testing.T) {
	data := stripedPNG(t,
		color.RGBA{R: 220, G: 40, B: 40, A: 255},
		color.RGBA{R: 30, G: 30, B: 30, A: 255},
		color.RGBA{R: 128, G: 128, B: 128, A: 255},
	)

	got, err := ProminentColor(&Image{MIME: "image/png", Data: data})
	if err != nil {
		t.Fatalf("ProminentColor() error: %v", err)
	}

	if _, ok := ParseColor(got); !ok {
		t.Errorf("ProminentColor() = %q is not a valid color", got)
	}
	if len(got) != 7 {
		t.Errorf("expected #rrggbb, got %q", got)
	}
}

func TestProminentColor_Invalid(t *testing.T) {
	if _, err := ProminentColor(nil); err == nil {
		t.Error("expected error for nil image")
	}
	if _, err := ProminentColor(&Image{MIME: "image/png", Data: []byte("not an image")}); err == nil {
		t.Error("expected error for undecodable image")
	}
}
