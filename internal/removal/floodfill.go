package removal

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"
)

// Outcome is the tagged result of a flood-fill attempt, so callers cannot
// mistake "heuristic does not apply" for a failure.
type Outcome struct {
	// Applied is true when the flood fill produced a usable result.
	Applied bool

	// Image is the RGBA output with the background made transparent.
	// Nil unless Applied is true.
	Image *image.NRGBA

	// TransparentRatio is the fraction of pixels made transparent. Set
	// even when the attempt was rejected by the plausibility guard.
	TransparentRatio float64
}

// Engine performs flood-fill background removal.
type Engine struct {
	// ColorThreshold is the maximum redmean distance at which a pixel
	// counts as background.
	ColorThreshold float64

	// MinTransparentRatio and MaxTransparentRatio bound the plausible
	// transparent fraction. Results outside the band are rejected so the
	// orchestrator falls back to the ML path.
	MinTransparentRatio float64
	MaxTransparentRatio float64

	// FeatherRadius, when positive, Gaussian-blurs the transparency mask
	// to soften the cut edge. Zero keeps the fill exactly idempotent.
	FeatherRadius float64
}

// Attempt flood-fills img from every border pixel matching background,
// marking all 4-connected matching pixels transparent. It reports
// NotApplicable (Applied=false) when no border pixel matches or when the
// transparent fraction is implausible.
func (e Engine) Attempt(img image.Image, background color.NRGBA) Outcome {
	// Clone yields a zero-origin NRGBA copy owned by this request.
	out := imaging.Clone(img)
	b := out.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return Outcome{}
	}

	visited := make([]bool, w*h)
	// Opaque mask; flood-filled pixels are cleared to 0.
	mask := image.NewGray(b)
	for i := range mask.Pix {
		mask.Pix[i] = 0xFF
	}

	queue := make([]image.Point, 0, 2*(w+h))
	for _, p := range BorderPixels(b) {
		idx := p.Y*w + p.X
		if visited[idx] {
			continue
		}
		if Distance(out.NRGBAAt(p.X, p.Y), background) <= e.ColorThreshold {
			visited[idx] = true
			mask.Pix[idx] = 0
			queue = append(queue, p)
		}
	}
	if len(queue) == 0 {
		return Outcome{}
	}

	transparent := len(queue)
	dirs := [4]image.Point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range dirs {
			nx, ny := p.X+d.X, p.Y+d.Y
			if nx < 0 || ny < 0 || nx >= w || ny >= h {
				continue
			}
			idx := ny*w + nx
			if visited[idx] {
				continue
			}
			visited[idx] = true
			if Distance(out.NRGBAAt(nx, ny), background) <= e.ColorThreshold {
				mask.Pix[idx] = 0
				transparent++
				queue = append(queue, image.Pt(nx, ny))
			}
		}
	}

	ratio := float64(transparent) / float64(w*h)
	if ratio < e.MinTransparentRatio || ratio > e.MaxTransparentRatio {
		return Outcome{TransparentRatio: ratio}
	}

	alphaAt := func(x, y int) uint8 { return mask.Pix[y*w+x] }
	if e.FeatherRadius > 0 {
		soft := blur.Gaussian(mask, e.FeatherRadius)
		alphaAt = func(x, y int) uint8 { return soft.Pix[soft.PixOffset(x, y)] }
	}

	for y := 0; y < h; y++ {
		row := out.Pix[y*out.Stride : y*out.Stride+w*4]
		for x := 0; x < w; x++ {
			row[x*4+3] = alphaAt(x, y)
		}
	}

	return Outcome{Applied: true, Image: out, TransparentRatio: ratio}
}
