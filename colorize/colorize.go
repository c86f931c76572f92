// Package colorize recolors an image with a fixed palette while keeping the
// lightness of every source pixel.
//
// The work is done in two passes. The first maps each pixel to the chroma of
// its nearest palette color (CIEDE2000), keeping the pixel's own lightness, and
// dithers the result. The second averages the chroma of the first pass over a
// square window, puts the original lightness back, and blends the result with
// the original image.
package colorize

import (
	"fmt"
	"image"
	"log/slog"
	"math"
	"time"

	"recolor/dithering"
	"recolor/integral"
	"recolor/lab"
	"recolor/okcolor"
	"recolor/palette"
	"recolor/parallel"
	"recolor/progress"
	"recolor/raster"
)

const (
	mappingLabel  = "Applying Color Mapping and Dithering"
	mappingDone   = "Color mapping and dithering complete"
	transferLabel = "Applying Spatial Averaging and Luminance Transfer"
	transferDone  = "Spatial averaging and luminance transfer complete"
)

// Colorize returns img recolored with conf. The result has the size of img,
// with bounds starting at (0, 0). Nothing is returned on error: a bad
// configuration fails before any work starts, and a failing worker fails the
// whole call.
func Colorize(img image.Image, conf Config) (*raster.Image, error) {
	r, err := newRun(img, conf)
	if err != nil {
		return nil, err
	}

	mapped, err := r.mapColors()
	if err != nil {
		return nil, err
	}
	return r.transferLuminance(mapped)
}

type run struct {
	conf     Config
	src      *raster.Image
	cache    *palette.Cache
	ditherer *dithering.Ditherer
	clip     okcolor.Clipper
	reporter progress.Reporter
	logger   *slog.Logger
}

func newRun(img image.Image, conf Config) (*run, error) {
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	d, err := dithering.New(conf.DitherMatrix, conf.DitherAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	clip, err := okcolor.NewClipper(conf.clip(), conf.ClipLightness)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	r := &run{
		conf:     conf,
		src:      raster.FromImage(img),
		cache:    palette.NewCache(conf.Palette),
		ditherer: d,
		clip:     clip,
		reporter: conf.Reporter,
		logger:   conf.Logger,
	}
	if r.reporter == nil {
		r.reporter = progress.Nop{}
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r, nil
}

// mapColors is pass 1.
func (r *run) mapColors() (*raster.Image, error) {
	out := raster.NewImage(r.src.Rect)

	err := r.pass(mappingLabel, mappingDone, func(y int, done func()) {
		for x := r.src.Rect.Min.X; x < r.src.Rect.Max.X; x++ {
			c := r.src.RGBAt(x, y)
			mapped := r.cache.Match(c.R, c.G, c.B)
			dithered := r.ditherer.Apply(x, y, mapped, mapped)
			out.SetRGB(x, y, r.toRGB(dithered))
			done()
		}
	})
	if err != nil {
		return nil, err
	}

	r.logger.Debug("palette mapping cached", "colors", r.cache.Len(), "palette", len(r.conf.Palette))
	return out, nil
}

// transferLuminance is pass 2.
func (r *run) transferLuminance(mapped *raster.Image) (*raster.Image, error) {
	start := time.Now()
	ii := integral.Compute(mapped)
	r.logger.Debug("integral image computed", "duration", time.Since(start))

	out := raster.NewImage(r.src.Rect)
	minX, minY := r.src.Rect.Min.X, r.src.Rect.Min.Y
	err := r.pass(transferLabel, transferDone, func(y int, done func()) {
		for x := minX; x < r.src.Rect.Max.X; x++ {
			c := r.src.RGBAt(x, y)
			orig := lab.FromRGB(c.R, c.G, c.B)
			avg := ii.Average(x-minX, y-minY, r.conf.Radius)
			out.SetRGB(x, y, Blend(r.toRGB(orig.WithChroma(avg)), c, r.conf.BlendFactor))
			done()
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// pass runs row(y) for every row of the image on the worker pool. Each row is
// handled by exactly one worker, so rows may be written without locking.
func (r *run) pass(label, doneMsg string, row func(y int, done func())) error {
	b := r.src.Rect
	tracker := r.reporter.Start(uint64(b.Dx()*b.Dy()), label)
	logger := r.logger.With("pass", label)

	start := time.Now()
	err := parallel.ForEach(r.conf.Workers, b.Dy(), func(i int) {
		row(b.Min.Y+i, tracker.Increment)
	})
	if err != nil {
		tracker.Finish(label + " failed")
		logger.Error("pass failed", "error", err)
		return fmt.Errorf("%w: %w", ErrWorkerFailed, err)
	}

	tracker.Finish(doneMsg)
	logger.Debug("pass complete", "duration", time.Since(start), "pixels", b.Dx()*b.Dy())
	return nil
}

func (r *run) toRGB(lc lab.Lab) raster.RGB {
	cr, cg, cb := lc.RGB(r.clip)
	return raster.RGB{R: cr, G: cg, B: cb}
}

// Blend mixes two pixels channel by channel: f*recolored + (1-f)*original,
// rounded and clamped to [0, 255].
func Blend(recolored, original raster.RGB, f float64) raster.RGB {
	return raster.RGB{
		R: mix(recolored.R, original.R, f),
		G: mix(recolored.G, original.G, f),
		B: mix(recolored.B, original.B, f),
	}
}

func mix(a, b uint8, f float64) uint8 {
	v := math.Round(f*float64(a) + (1-f)*float64(b))
	return uint8(max(0, min(255, v)))
}
