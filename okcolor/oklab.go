// Package okcolor implements the OKLab color space and gamut clipping on top
// of it, after Björn Ottosson:
// https://bottosson.github.io/posts/oklab/
// https://bottosson.github.io/posts/gamutclipping/
package okcolor

import "math"

// Lab is an OKLab color, L in [0, 1].
type Lab struct {
	L float64 // perceived lightness
	A float64 // how green/red the color is
	B float64 // how blue/yellow the color is
}

// LCh is the polar form of Lab, H in radians.
type LCh struct {
	L float64
	C float64 // chroma
	H float64 // hue
}

// labToLMS holds the a and b columns of the OKLab to cube root LMS matrix.
// The L column is 1 in every row.
var labToLMS = [3][2]float64{
	{+0.3963377774, +0.2158037573},
	{-0.1055613458, -0.0638541728},
	{-0.0894841775, -1.2914855480},
}

// lmsToLinear maps LMS to linear sRGB, one row per output channel.
var lmsToLinear = [3][3]float64{
	{+4.0767416621, -3.3077115913, +0.2309699292},
	{-1.2684380046, +2.6097574011, -0.3413193965},
	{-0.0041960863, -0.7034186147, +1.7076147010},
}

// OKLab converts c, in gamut or not.
func (c Linear) OKLab() Lab {
	l := math.Cbrt(0.4122214708*c.R + 0.5363325363*c.G + 0.0514459929*c.B)
	m := math.Cbrt(0.2119034982*c.R + 0.6806995451*c.G + 0.1073969566*c.B)
	s := math.Cbrt(0.0883024619*c.R + 0.2817188376*c.G + 0.6299787005*c.B)

	return Lab{
		L: 0.2104542553*l + 0.7936177850*m - 0.0040720468*s,
		A: 1.9779984951*l - 2.4285922050*m + 0.4505937099*s,
		B: 0.0259040371*l + 0.7827717662*m - 0.8086757660*s,
	}
}

// Linear converts lc without any gamut mapping.
func (lc Lab) Linear() Linear {
	var lms [3]float64
	for i, k := range labToLMS {
		v := lc.L + k[0]*lc.A + k[1]*lc.B
		lms[i] = v * v * v
	}
	return Linear{
		R: dot(lmsToLinear[0], lms),
		G: dot(lmsToLinear[1], lms),
		B: dot(lmsToLinear[2], lms),
	}
}

func (lc Lab) LCh() LCh {
	return LCh{
		L: lc.L,
		C: math.Hypot(lc.A, lc.B),
		H: math.Atan2(lc.B, lc.A),
	}
}

func (lc LCh) Lab() Lab {
	return Lab{
		L: lc.L,
		A: lc.C * math.Cos(lc.H),
		B: lc.C * math.Sin(lc.H),
	}
}

// Degrees returns the hue in [0, 360).
func (lc LCh) Degrees() float64 {
	d := lc.H * 180 / math.Pi
	if d < 0 {
		d += 360
	}
	return d
}

func dot(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}
