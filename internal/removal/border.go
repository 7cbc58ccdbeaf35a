package removal

import (
	"image"
	"image/color"
)

// BorderPixels returns the coordinates of the outer one-pixel ring of b.
// For a bounds of width W and height H (both >= 2) the ring holds exactly
// 2*W + 2*H - 4 pixels.
func BorderPixels(b image.Rectangle) []image.Point {
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil
	}

	pts := make([]image.Point, 0, 2*w+2*h-4)
	for x := b.Min.X; x < b.Max.X; x++ {
		pts = append(pts, image.Pt(x, b.Min.Y))
		if h > 1 {
			pts = append(pts, image.Pt(x, b.Max.Y-1))
		}
	}
	for y := b.Min.Y + 1; y < b.Max.Y-1; y++ {
		pts = append(pts, image.Pt(b.Min.X, y))
		if w > 1 {
			pts = append(pts, image.Pt(b.Max.X-1, y))
		}
	}
	return pts
}

// BorderAnalysis is the outcome of a border uniformity check.
type BorderAnalysis struct {
	// Uniform is true when the border is dominated by one near-constant
	// color, meaning the flood-fill path is worth attempting.
	Uniform bool

	// Background is the representative (per-channel median) border color.
	// Only meaningful when Uniform is true.
	Background color.NRGBA

	// UniformRatio is the fraction of border pixels within the color
	// threshold of the representative color.
	UniformRatio float64
}

// Analyzer classifies whether an image has a simple, near-uniform border.
type Analyzer struct {
	// ColorThreshold is the maximum redmean distance at which a border
	// pixel counts as matching the representative color.
	ColorThreshold float64

	// MinUniformRatio is the matching fraction required to classify the
	// border as uniform.
	MinUniformRatio float64
}

// Analyze samples every border pixel and reports whether the border is
// uniform. Images smaller than 2x2 carry too little border signal and are
// never classified as uniform. The analysis itself cannot fail.
func (a Analyzer) Analyze(img image.Image) BorderAnalysis {
	b := img.Bounds()
	if b.Dx() < 2 || b.Dy() < 2 {
		return BorderAnalysis{}
	}

	pts := BorderPixels(b)
	colors := make([]color.NRGBA, len(pts))
	for i, p := range pts {
		colors[i] = nrgbaAt(img, p.X, p.Y)
	}

	median := medianColor(colors)
	matching := 0
	for _, c := range colors {
		if Distance(c, median) <= a.ColorThreshold {
			matching++
		}
	}

	ratio := float64(matching) / float64(len(colors))
	return BorderAnalysis{
		Uniform:      ratio >= a.MinUniformRatio,
		Background:   median,
		UniformRatio: ratio,
	}
}
