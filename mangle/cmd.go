package mangle

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"recolor/colorize"
	"recolor/palette"
	"recolor/parallel"
	"recolor/progress"

	"github.com/alecthomas/kong"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/vp8l"
	_ "golang.org/x/image/webp"
)

type CLICmd struct {
	Scan     string   `help:"Source folder to scan, or a single image" default:"."`
	Dest     string   `help:"Destination folder for processed pictures. Relative to scan dir if not absolute." default:"colorized"`
	Resize   bool     `help:"Resize image before colorizing" default:"false" group:"resize"`
	Width    int      `help:"Max width" group:"resize"`
	Height   int      `help:"Max height" group:"resize"`
	Crop     bool     `help:"Crop image to maintain requested aspect ration" default:"false" group:"resize"`
	Fill     string   `help:"If given and not cropping, will fill background with this color to maintain destination aspect ratio" group:"resize"`
	Palette  string   `help:"Palette name (${palettes}) or palette file (.pal RIFF, .gpl GIMP, or one color per line)" group:"palette"`
	Color    []string `help:"Extra palette color, #RRGGBB or lab(L,a,b). Repeatable." group:"palette"`
	Dither   float64  `help:"Dither strength, 0 disables dithering" default:"0" group:"colorize"`
	Matrix   string   `help:"Dither pattern: ${matrices}" default:"ClusteredDot4x4" group:"colorize"`
	Radius   int      `help:"Radius in pixels of the chroma averaging window" default:"4" group:"colorize"`
	Blend    float64  `help:"Weight of the recolored image against the original, 1 is fully recolored" default:"1" group:"colorize"`
	Clip     string   `help:"How out of gamut colors are brought back into sRGB" enum:"${clippers}" default:"preserve-chroma" group:"colorize"`
	L0       float64  `help:"OKLab lightness in [0, 1] the project-l0 clipper moves colors toward" default:"0.5" group:"colorize"`
	Workers  int      `help:"Pixel workers per pass, 0 for one per CPU" default:"0" group:"colorize"`
	Progress string   `help:"Progress reporting" enum:"bar,log,none" default:"bar"`
	Format   string   `help:"Output format of colorized image. If prefixed with 'unsup:' will convert only unsupported formats" enum:"same,gif,unsup:gif,jpeg,unsup:jpeg,png,unsup:png,bmp,unsup:bmp,tiff,unsup:tiff" default:"unsup:png"`

	FillColor color.Color     `kong:"-"`
	Colors    palette.Palette `kong:"-"`
	files     []string
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	scanPath, err := filepath.Abs(c.Scan)
	var info os.FileInfo
	if err == nil {
		info, err = os.Stat(scanPath)
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", c.Scan, err)
	}

	if info.IsDir() {
		c.Scan = scanPath
		c.files = nil
	} else {
		c.Scan = filepath.Dir(scanPath)
		c.files = []string{filepath.Base(scanPath)}
	}

	if !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(c.Scan, c.Dest)
	}

	if c.Resize {
		switch {
		case (c.Width < 0):
			return fmt.Errorf("invalid resize width: %d", c.Width)
		case (c.Height < 0):
			return fmt.Errorf("invalid resize height: %d", c.Height)
		case (c.Width == 0) && (c.Height == 0):
			return fmt.Errorf("no resize dimensions given")
		}
	}

	if (!c.Crop) && (c.Fill != "") {
		if c.FillColor, err = parseHexToColor(c.Fill); err != nil {
			return err
		}
	}

	c.Colors = nil
	if c.Palette != "" {
		if c.Colors, err = palette.LoadPalette(c.Palette); err != nil {
			return err
		}
	}
	extra, err := palette.Parse(c.Color)
	if err != nil {
		return err
	}
	c.Colors = append(c.Colors, extra...)

	return c.config(nil).Validate()
}

func (c *CLICmd) config(rep progress.Reporter) colorize.Config {
	return colorize.Config{
		Palette:       c.Colors,
		DitherAmount:  c.Dither,
		DitherMatrix:  c.Matrix,
		Radius:        c.Radius,
		BlendFactor:   c.Blend,
		Clip:          c.Clip,
		ClipLightness: c.L0,
		Workers:       c.Workers,
		Reporter:      rep,
	}
}

func (c *CLICmd) Run(worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	if err := os.MkdirAll(c.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	names := c.files
	if names == nil {
		files, err := os.ReadDir(c.Scan)
		if err != nil {
			return fmt.Errorf("unable to read folder %q: %w", c.Scan, err)
		}
		for _, file := range files {
			if !file.IsDir() {
				names = append(names, file.Name())
			}
		}
	}

	rep, err := progress.New(c.Progress, os.Stderr)
	if err != nil {
		return err
	}
	conf := c.config(rep)

	var processedCount, errCount atomic.Uint64
	for _, name := range names {
		worker(func(fileName string) func() {
			return func() {
				if err := c.process(conf, fileName); err != nil {
					errCount.Add(1)
					slog.Error("could not process image", "file", filepath.Join(c.Scan, fileName), "error", err)
					return
				}
				processedCount.Add(1)
			}
		}(name))
	}

	wait(true)

	processed := processedCount.Load()
	errors := errCount.Load()
	slog.Info("stats", "processed", processed, "errors", errors,
		"total", processed+errors)

	if errors > 0 {
		return fmt.Errorf("error processing %d files", errors)
	}
	return nil
}

func (c *CLICmd) process(conf colorize.Config, fileName string) error {
	filePath := filepath.Join(c.Scan, fileName)
	logger := slog.Default().With("file", filePath)

	imgFile, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("could not open image: %w", err)
	}
	defer func() {
		if closeErr := imgFile.Close(); closeErr != nil {
			logger.Error("could not close image", "error", closeErr)
		}
	}()

	img, imgType, err := image.Decode(imgFile)
	if err != nil {
		return fmt.Errorf("could not decode image: %w", err)
	}

	if c.Resize {
		img, err = resize(logger, img, c.Width, c.Height, c.Crop, c.FillColor)
		if err != nil {
			return fmt.Errorf("could not resize image: %w", err)
		}
	}

	img, err = recolor(logger, img, conf)
	if err != nil {
		return fmt.Errorf("could not colorize image: %w", err)
	}

	if err = save(img, imgType, c.Format, c.Dest, fileName); err != nil {
		return fmt.Errorf("could not save image to %q: %w", c.Dest, err)
	}
	return nil
}
