// Package dithering perturbs quantized colors so flat palette regions do not
// band.
package dithering

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"recolor/lab"
	"recolor/okcolor"

	"github.com/makeworld-the-better-one/dither/v2"
)

// Random selects uniform noise instead of an ordered matrix. It is the only
// non-deterministic choice.
const Random = "random"

// DefaultMatrix is used when no matrix name is given.
const DefaultMatrix = "ClusteredDot4x4"

var orderedMatrices = map[string]dither.OrderedDitherMatrix{
	"ClusteredDot4x4":            dither.ClusteredDot4x4,
	"ClusteredDot6x6":            dither.ClusteredDot6x6,
	"ClusteredDot6x6_2":          dither.ClusteredDot6x6_2,
	"ClusteredDot6x6_3":          dither.ClusteredDot6x6_3,
	"ClusteredDot8x8":            dither.ClusteredDot8x8,
	"ClusteredDotDiagonal16x16":  dither.ClusteredDotDiagonal16x16,
	"ClusteredDotDiagonal6x6":    dither.ClusteredDotDiagonal6x6,
	"ClusteredDotDiagonal8x8":    dither.ClusteredDotDiagonal8x8,
	"ClusteredDotDiagonal8x8_2":  dither.ClusteredDotDiagonal8x8_2,
	"ClusteredDotDiagonal8x8_3":  dither.ClusteredDotDiagonal8x8_3,
	"ClusteredDotHorizontalLine": dither.ClusteredDotHorizontalLine,
	"ClusteredDotSpiral5x5":      dither.ClusteredDotSpiral5x5,
	"ClusteredDotVerticalLine":   dither.ClusteredDotVerticalLine,
	"Horizontal3x5":              dither.Horizontal3x5,
	"Vertical5x3":                dither.Vertical5x3,
}

// MatrixNames lists every accepted matrix name, Random included.
func MatrixNames() []string {
	return append(slices.Sorted(maps.Keys(orderedMatrices)), Random)
}

// Ditherer applies a single-color perturbation. The zero value, and any
// Ditherer with Amount 0, returns its target unchanged.
type Ditherer struct {
	Amount float64
	Mapper dither.PixelMapper
}

// New builds a Ditherer for the named matrix at the given strength. An empty
// name selects DefaultMatrix.
func New(matrix string, amount float64) (*Ditherer, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return nil, fmt.Errorf("invalid dither amount: %v", amount)
	}
	if matrix == "" {
		matrix = DefaultMatrix
	}

	d := &Ditherer{Amount: amount}
	if matrix == Random {
		if amount > 0 {
			a := float32(min(amount, 1))
			d.Mapper = dither.RandomNoiseGrayscale(-a/2, a/2)
		}
		return d, nil
	}

	odm, ok := orderedMatrices[matrix]
	if !ok {
		return nil, fmt.Errorf("unknown dither matrix %q", matrix)
	}
	if amount > 0 {
		d.Mapper = dither.PixelMapperFromMatrix(odm, float32(amount))
	}
	return d, nil
}

// Apply moves target toward current by Amount (no-op when they are equal),
// then adds the threshold of the dither pattern at (x, y). The pattern is
// evaluated in linear RGB, the space the mapper expects.
func (d *Ditherer) Apply(x, y int, current, target lab.Lab) lab.Lab {
	if d == nil || d.Amount == 0 {
		return target
	}

	res := lab.Lab{
		L: target.L + (current.L-target.L)*d.Amount,
		A: target.A + (current.A-target.A)*d.Amount,
		B: target.B + (current.B-target.B)*d.Amount,
	}
	if d.Mapper == nil {
		return res
	}

	lin := okcolor.Clamp(res.Linear())
	r, g, b := d.Mapper(x, y, to16(lin.R), to16(lin.G), to16(lin.B))
	return lab.FromLinear(okcolor.Linear{
		R: float64(r) / 0xffff,
		G: float64(g) / 0xffff,
		B: float64(b) / 0xffff,
	})
}

func to16(x float64) uint16 {
	return uint16(math.Round(x * 0xffff))
}
