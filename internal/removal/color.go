package removal

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// Distance returns the redmean perceptual distance between two colors.
// Alpha is ignored. The result is 0 for identical colors, symmetric in its
// arguments, and grows with every per-channel difference.
func Distance(a, b color.NRGBA) float64 {
	r1, g1, b1 := float64(a.R), float64(a.G), float64(a.B)
	r2, g2, b2 := float64(b.R), float64(b.G), float64(b.B)

	rm := (r1 + r2) / 2
	dr := r1 - r2
	dg := g1 - g2
	db := b1 - b2

	return math.Sqrt((2+rm/256)*dr*dr + 4*dg*dg + (2+(255-rm)/256)*db*db)
}

// nrgbaAt reads the pixel at (x, y) as a non-premultiplied 8-bit color.
func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

// medianColor returns the per-channel median of colors. The median is more
// robust than the mean when a minority of border pixels belong to the
// foreground.
func medianColor(colors []color.NRGBA) color.NRGBA {
	n := len(colors)
	rs := make([]uint8, n)
	gs := make([]uint8, n)
	bs := make([]uint8, n)
	for i, c := range colors {
		rs[i], gs[i], bs[i] = c.R, c.G, c.B
	}
	return color.NRGBA{
		R: medianChannel(rs),
		G: medianChannel(gs),
		B: medianChannel(bs),
		A: 255,
	}
}

func medianChannel(vals []uint8) uint8 {
	sort.Slice(vals, func(i, j int) bool { return vals[i] < vals[j] })
	return vals[len(vals)/2]
}

// hexString renders c as "#rrggbb" for results and logs.
func hexString(c color.NRGBA) string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}
