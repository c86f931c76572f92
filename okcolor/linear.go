package okcolor

import "math"

// Linear is a linear-light sRGB color. It is in gamut when every channel is
// within [0, 1].
type Linear struct {
	R float64
	G float64
	B float64
}

// gamutEps absorbs conversion noise on colors sitting on the gamut boundary.
const gamutEps = 1e-6

// InGamut reports whether all channels are within [0, 1].
func (c Linear) InGamut() bool {
	const lo, hi = -gamutEps, 1 + gamutEps
	return (c.R >= lo) && (c.R <= hi) && (c.G >= lo) && (c.G <= hi) && (c.B >= lo) && (c.B <= hi)
}

// SRGB8 brings c into gamut with clip (plain clamping when nil) and encodes
// it as 8-bit sRGB.
func (c Linear) SRGB8(clip Clipper) (uint8, uint8, uint8) {
	if clip != nil {
		c = clip(c)
	}
	return to8(c.R), to8(c.G), to8(c.B)
}

func to8(x float64) uint8 {
	return uint8(math.Round(encode(clamp(x, 0, 1)) * 255))
}

// encode applies the sRGB transfer function.
func encode(x float64) float64 {
	if x >= 0.0031308 {
		return 1.055*math.Pow(x, 1/2.4) - 0.055
	}
	return 12.92 * x
}
