package removal

import (
	"image/color"
	"testing"
)

func TestDistanceIdentity(t *testing.T) {
	colors := []color.NRGBA{
		{0, 0, 0, 255},
		{255, 255, 255, 255},
		{128, 64, 200, 255},
		{255, 0, 0, 0},
	}
	for _, c := range colors {
		if d := Distance(c, c); d != 0 {
			t.Errorf("Distance(%v, %v) = %g, want 0", c, c, d)
		}
	}
}

func TestDistanceSymmetry(t *testing.T) {
	pairs := []struct {
		a, b color.NRGBA
	}{
		{color.NRGBA{255, 0, 0, 255}, color.NRGBA{0, 255, 0, 255}},
		{color.NRGBA{10, 20, 30, 255}, color.NRGBA{200, 100, 50, 255}},
		{color.NRGBA{0, 0, 0, 255}, color.NRGBA{255, 255, 255, 255}},
	}
	for _, p := range pairs {
		ab := Distance(p.a, p.b)
		ba := Distance(p.b, p.a)
		if ab != ba {
			t.Errorf("Distance(%v, %v) = %g but Distance(%v, %v) = %g", p.a, p.b, ab, p.b, p.a, ba)
		}
		if ab <= 0 {
			t.Errorf("Distance between distinct colors %v and %v should be positive, got %g", p.a, p.b, ab)
		}
	}
}

func TestDistanceMonotone(t *testing.T) {
	base := color.NRGBA{100, 100, 100, 255}
	prev := 0.0
	for delta := uint8(10); delta <= 100; delta += 10 {
		c := color.NRGBA{100 + delta, 100, 100, 255}
		d := Distance(base, c)
		if d <= prev {
			t.Fatalf("distance should grow with channel difference: delta %d gave %g after %g", delta, d, prev)
		}
		prev = d
	}
}

func TestDistanceIgnoresAlpha(t *testing.T) {
	a := color.NRGBA{50, 60, 70, 255}
	b := color.NRGBA{50, 60, 70, 0}
	if d := Distance(a, b); d != 0 {
		t.Errorf("alpha must not contribute to distance, got %g", d)
	}
}

func TestMedianColor(t *testing.T) {
	colors := []color.NRGBA{
		{255, 255, 255, 255},
		{255, 255, 255, 255},
		{250, 252, 248, 255},
		{0, 0, 0, 255}, // outlier
		{255, 255, 255, 255},
	}
	m := medianColor(colors)
	if m.R != 255 || m.G != 255 || m.B != 255 {
		t.Errorf("median should resist outliers, got %v", m)
	}
	if m.A != 255 {
		t.Errorf("median color should be opaque, got alpha %d", m.A)
	}
}

func TestHexString(t *testing.T) {
	tests := []struct {
		c    color.NRGBA
		want string
	}{
		{color.NRGBA{255, 255, 255, 255}, "#ffffff"},
		{color.NRGBA{0, 0, 0, 255}, "#000000"},
		{color.NRGBA{255, 128, 64, 255}, "#ff8040"},
	}
	for _, tt := range tests {
		if got := hexString(tt.c); got != tt.want {
			t.Errorf("hexString(%v) = %q, want %q", tt.c, got, tt.want)
		}
	}
}
