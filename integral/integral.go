// Package integral builds summed-area tables over the CIELAB channels of an
// image so that the average color of any rectangle costs four lookups.
package integral

import (
	"recolor/lab"
	"recolor/raster"
)

// Image is a summed-area table with a zero border: entry (x, y) holds the sum
// over all pixels strictly above and to the left of it, so it has one more
// column and row than the source.
type Image struct {
	Width, Height int
	l, a, b       []float64
}

// Compute builds the table over img. The pixel at img.Rect.Min maps to (0, 0).
func Compute(img *raster.Image) *Image {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	ii := &Image{
		Width:  w,
		Height: h,
		l:      make([]float64, (w+1)*(h+1)),
		a:      make([]float64, (w+1)*(h+1)),
		b:      make([]float64, (w+1)*(h+1)),
	}

	// converting is the expensive part, and flat regions repeat colors a lot
	seen := make(map[raster.RGB]lab.Lab)
	stride := w + 1
	for y := 1; y <= h; y++ {
		var sumL, sumA, sumB float64
		for x := 1; x <= w; x++ {
			c := img.RGBAt(img.Rect.Min.X+x-1, img.Rect.Min.Y+y-1)
			lc, ok := seen[c]
			if !ok {
				lc = lab.FromRGB(c.R, c.G, c.B)
				seen[c] = lc
			}
			sumL += lc.L
			sumA += lc.A
			sumB += lc.B

			i := y*stride + x
			ii.l[i] = ii.l[i-stride] + sumL
			ii.a[i] = ii.a[i-stride] + sumA
			ii.b[i] = ii.b[i-stride] + sumB
		}
	}
	return ii
}

// Sum returns the channel sums over the inclusive pixel rectangle
// [x0, x1]x[y0, y1]. Coordinates must be inside the image.
func (ii *Image) Sum(x0, y0, x1, y1 int) lab.Lab {
	stride := ii.Width + 1
	br := (y1+1)*stride + x1 + 1
	tr := y0*stride + x1 + 1
	bl := (y1+1)*stride + x0
	tl := y0*stride + x0
	return lab.Lab{
		L: ii.l[br] - ii.l[tr] - ii.l[bl] + ii.l[tl],
		A: ii.a[br] - ii.a[tr] - ii.a[bl] + ii.a[tl],
		B: ii.b[br] - ii.b[tr] - ii.b[bl] + ii.b[tl],
	}
}

// Average returns the mean color of the square of the given radius centered
// on (x, y), clipped to the image. A radius of 0 is the pixel itself.
func (ii *Image) Average(x, y, radius int) lab.Lab {
	// any radius past the larger side already covers the whole image
	radius = min(max(radius, 0), max(ii.Width, ii.Height))
	x0 := clampInt(x-radius, 0, ii.Width-1)
	x1 := clampInt(x+radius, 0, ii.Width-1)
	y0 := clampInt(y-radius, 0, ii.Height-1)
	y1 := clampInt(y+radius, 0, ii.Height-1)

	area := float64((x1 - x0 + 1) * (y1 - y0 + 1))
	s := ii.Sum(x0, y0, x1, y1)
	return lab.Lab{L: s.L / area, A: s.A / area, B: s.B / area}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
