package removal

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

var defaultEngine = Engine{
	ColorThreshold:      30,
	MinTransparentRatio: 0.01,
	MaxTransparentRatio: 0.98,
}

var (
	white = color.NRGBA{255, 255, 255, 255}
	red   = color.NRGBA{255, 0, 0, 255}
	blue  = color.NRGBA{0, 0, 255, 255}
)

// squareOnBackground paints a solid centered square on a solid background.
func squareOnBackground(size, squareMin, squareMax int, bg, fg color.NRGBA) *image.NRGBA {
	img := fillImage(size, size, bg)
	for y := squareMin; y < squareMax; y++ {
		for x := squareMin; x < squareMax; x++ {
			img.SetNRGBA(x, y, fg)
		}
	}
	return img
}

func TestAttemptWhiteBackgroundRedSquare(t *testing.T) {
	img := squareOnBackground(100, 25, 75, white, red)

	got := defaultEngine.Attempt(img, white)
	if !got.Applied {
		t.Fatalf("flood fill should apply, transparent ratio %g", got.TransparentRatio)
	}

	want := 1.0 - 0.25 // 50x50 square on 100x100 canvas
	if got.TransparentRatio != want {
		t.Errorf("transparent ratio: got %g, want %g", got.TransparentRatio, want)
	}

	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			px := got.Image.NRGBAAt(x, y)
			inside := x >= 25 && x < 75 && y >= 25 && y < 75
			if inside {
				if px != red {
					t.Fatalf("foreground pixel (%d,%d) changed: %v", x, y, px)
				}
			} else if px.A != 0 {
				t.Fatalf("background pixel (%d,%d) still opaque: %v", x, y, px)
			}
		}
	}
}

func TestAttemptPreservesEnclosedBackgroundColor(t *testing.T) {
	// A white region fully enclosed by the foreground is not connected to
	// the border and must stay opaque.
	img := squareOnBackground(60, 10, 50, white, red)
	for y := 25; y < 35; y++ {
		for x := 25; x < 35; x++ {
			img.SetNRGBA(x, y, white)
		}
	}

	got := defaultEngine.Attempt(img, white)
	if !got.Applied {
		t.Fatalf("flood fill should apply, transparent ratio %g", got.TransparentRatio)
	}
	if px := got.Image.NRGBAAt(30, 30); px != white {
		t.Errorf("enclosed white region must stay opaque, got %v", px)
	}
	if px := got.Image.NRGBAAt(0, 0); px.A != 0 {
		t.Errorf("border-connected background must be transparent, got %v", px)
	}
}

func TestAttemptNoMatchingSeeds(t *testing.T) {
	img := fillImage(20, 20, red)

	// The claimed background color appears nowhere on the border.
	got := defaultEngine.Attempt(img, blue)
	if got.Applied {
		t.Error("attempt with no matching border seeds must report not applicable")
	}
	if got.Image != nil {
		t.Error("not-applicable outcome must not carry an image")
	}
}

func TestAttemptRejectsImplausiblyLargeRegion(t *testing.T) {
	// Everything matches the background: the result would be fully
	// transparent, which the guard treats as implausible.
	img := fillImage(50, 50, white)

	got := defaultEngine.Attempt(img, white)
	if got.Applied {
		t.Error("fully transparent result should be rejected by the plausibility guard")
	}
	if got.TransparentRatio != 1.0 {
		t.Errorf("transparent ratio: got %g, want 1.0", got.TransparentRatio)
	}
}

func TestAttemptRejectsImplausiblySmallRegion(t *testing.T) {
	engine := defaultEngine
	engine.MinTransparentRatio = 0.1

	// Only a single border pixel matches the background color.
	img := fillImage(50, 50, red)
	img.SetNRGBA(0, 0, white)

	got := engine.Attempt(img, white)
	if got.Applied {
		t.Errorf("tiny transparent region (%g) should be rejected", got.TransparentRatio)
	}
}

func TestAttemptIdempotent(t *testing.T) {
	img := squareOnBackground(100, 25, 75, white, red)

	first := defaultEngine.Attempt(img, white)
	if !first.Applied {
		t.Fatal("first pass should apply")
	}
	second := defaultEngine.Attempt(first.Image, white)
	if !second.Applied {
		t.Fatal("second pass should apply")
	}

	if !bytes.Equal(first.Image.Pix, second.Image.Pix) {
		t.Error("re-running the flood fill on its own output must be a no-op")
	}
}

func TestAttemptToleratesNearBackgroundNoise(t *testing.T) {
	img := squareOnBackground(50, 15, 35, white, red)
	// Slightly off-white pixels in the background region still match.
	img.SetNRGBA(1, 1, color.NRGBA{250, 252, 251, 255})
	img.SetNRGBA(40, 40, color.NRGBA{248, 249, 250, 255})

	got := defaultEngine.Attempt(img, white)
	if !got.Applied {
		t.Fatal("near-white noise should not defeat the flood fill")
	}
	if px := got.Image.NRGBAAt(1, 1); px.A != 0 {
		t.Errorf("near-white pixel should be transparent, got %v", px)
	}
}

func TestAttemptFeathering(t *testing.T) {
	engine := defaultEngine
	engine.FeatherRadius = 2

	img := squareOnBackground(60, 20, 40, white, red)
	got := engine.Attempt(img, white)
	if !got.Applied {
		t.Fatal("flood fill should apply")
	}

	// Deep background stays fully transparent, the square core stays
	// fully opaque, and the cut edge is softened.
	if a := got.Image.NRGBAAt(1, 1).A; a != 0 {
		t.Errorf("deep background alpha: got %d, want 0", a)
	}
	if a := got.Image.NRGBAAt(30, 30).A; a != 255 {
		t.Errorf("square core alpha: got %d, want 255", a)
	}
	if a := got.Image.NRGBAAt(20, 30).A; a == 0 || a == 255 {
		t.Errorf("edge alpha should be partial with feathering, got %d", a)
	}
}
