package colorize

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"recolor/dithering"
	"recolor/okcolor"
	"recolor/palette"
	"recolor/progress"
)

var (
	ErrEmptyPalette   = errors.New("palette is empty")
	ErrNegativeRadius = errors.New("spatial averaging radius is negative")
	ErrInvalidBlend   = errors.New("blend factor is not a finite number")
	ErrWorkerFailed   = errors.New("worker failed")
)

// DefaultClip is the gamut clipper used when Config.Clip is empty. It keeps
// lightness and gives up chroma.
const DefaultClip = "preserve-chroma"

// Config holds everything one Colorize call needs. It is read, never
// modified.
type Config struct {
	// Palette is the set of target colors. Must not be empty.
	Palette palette.Palette
	// DitherAmount is the strength of the pass 1 perturbation, 0 disables it.
	DitherAmount float64
	// DitherMatrix names the dither pattern, see dithering.MatrixNames.
	DitherMatrix string
	// Radius of the square window pass 2 averages chroma over.
	Radius int
	// BlendFactor weighs the recolored pixel against the original one:
	// 1 is fully recolored, 0 is the original image.
	BlendFactor float64
	// Clip names the okcolor gamut clipper used when a Lab color does not fit
	// in sRGB.
	Clip string
	// ClipLightness is the OKLab lightness the "project-l0" clipper projects
	// toward, in [0, 1].
	ClipLightness float64
	// Workers is the pool size of both passes, < 1 means GOMAXPROCS.
	Workers int

	Reporter progress.Reporter
	Logger   *slog.Logger
}

// Validate reports the first configuration problem found.
func (c Config) Validate() error {
	if len(c.Palette) == 0 {
		return ErrEmptyPalette
	}
	if c.Radius < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeRadius, c.Radius)
	}
	if math.IsNaN(c.BlendFactor) || math.IsInf(c.BlendFactor, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidBlend, c.BlendFactor)
	}
	if _, err := dithering.New(c.DitherMatrix, c.DitherAmount); err != nil {
		return err
	}
	if _, err := okcolor.NewClipper(c.clip(), c.ClipLightness); err != nil {
		return err
	}
	return nil
}

func (c Config) clip() string {
	if c.Clip == "" {
		return DefaultClip
	}
	return c.Clip
}
