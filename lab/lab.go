// Package lab holds the CIELAB (D65) color type every perceptual computation in
// the pipeline runs in, with conversions to and from 8-bit sRGB.
package lab

import (
	"image/color"

	"recolor/okcolor"

	"github.com/lucasb-eyer/go-colorful"
)

// Lab is a CIELAB color on the conventional scale: L in [0, 100], a and b
// roughly in [-128, 127] for colors inside sRGB.
type Lab struct {
	L float64 // lightness
	A float64 // green/red axis
	B float64 // blue/yellow axis
}

// go-colorful works on L in [0, 1] and a, b divided by the same factor.
const scale = 100

var Model = color.ModelFunc(labConvert)

func labConvert(c color.Color) color.Color {
	if lc, ok := c.(Lab); ok {
		return lc
	}
	return FromColor(c)
}

// FromRGB converts an 8-bit sRGB triple.
func FromRGB(r, g, b uint8) Lab {
	return fromColorful(colorful.Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
	})
}

// FromColor converts any color.Color, ignoring alpha.
func FromColor(c color.Color) Lab {
	r, g, b, _ := c.RGBA()
	return fromColorful(colorful.Color{
		R: float64(r) / 65535,
		G: float64(g) / 65535,
		B: float64(b) / 65535,
	})
}

func fromColorful(c colorful.Color) Lab {
	l, a, b := c.Lab()
	return Lab{L: l * scale, A: a * scale, B: b * scale}
}

func (lc Lab) colorful() colorful.Color {
	return colorful.Lab(lc.L/scale, lc.A/scale, lc.B/scale)
}

// Linear returns the (possibly out of gamut) linear sRGB value of lc.
func (lc Lab) Linear() okcolor.Linear {
	r, g, b := lc.colorful().LinearRgb()
	return okcolor.Linear{R: r, G: g, B: b}
}

// FromLinear is the inverse of Lab.Linear.
func FromLinear(c okcolor.Linear) Lab {
	return fromColorful(colorful.LinearRgb(c.R, c.G, c.B))
}

// OKLCh returns lc in polar OKLab coordinates.
func (lc Lab) OKLCh() okcolor.LCh {
	return lc.Linear().OKLab().LCh()
}

// RGB converts lc to an 8-bit sRGB pixel. Out of gamut colors are first
// mapped back with clip; a nil clip clamps each channel.
func (lc Lab) RGB(clip okcolor.Clipper) (uint8, uint8, uint8) {
	return lc.Linear().SRGB8(clip)
}

func (lc Lab) RGBA() (uint32, uint32, uint32, uint32) {
	r, g, b := lc.RGB(okcolor.PreserveChroma)
	return uint32(r) * 0x101, uint32(g) * 0x101, uint32(b) * 0x101, 0xffff
}

// WithChroma keeps the lightness of lc and takes a and b from other.
func (lc Lab) WithChroma(other Lab) Lab {
	return Lab{L: lc.L, A: other.A, B: other.B}
}
