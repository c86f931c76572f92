package mangle

import (
	"image"
	"log/slog"
	"time"

	"recolor/colorize"
)

func recolor(logger *slog.Logger, img image.Image, conf colorize.Config) (image.Image, error) {
	b := img.Bounds()
	logger.Info("colorizing", "width", b.Dx(), "height", b.Dy(), "colors", len(conf.Palette))

	conf.Logger = logger
	start := time.Now()
	out, err := colorize.Colorize(img, conf)
	if err != nil {
		return nil, err
	}

	logger.Info("colorized", "duration", time.Since(start).Round(time.Millisecond))
	return out, nil
}
