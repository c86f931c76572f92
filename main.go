package main

import (
	"log/slog"
	"os"
	"strings"

	"recolor/dithering"
	"recolor/mangle"
	"recolor/okcolor"
	"recolor/palcmd"
	"recolor/palette"
	"recolor/parallel"

	"github.com/alecthomas/kong"
)

var cli struct {
	Config   kong.ConfigFlag `help:"JSON file with default flag values"`
	LogLevel string          `help:"Log level" enum:"debug,info,warn,error" default:"info"`
	Jobs     int             `help:"Images processed in parallel, 0 for one per CPU" default:"1"`

	Colorize mangle.CLICmd `cmd:"" help:"Recolor images with a palette, keeping their lightness"`
	Palette  palcmd.CLICmd `cmd:"" help:"Inspect and export palettes"`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("recolor"),
		kong.Description("Palette based image colorizer."),
		kong.UsageOnError(),
		kong.Configuration(kong.JSON),
		kong.Vars{
			"palettes": strings.Join(palette.Names(), ", "),
			"matrices": strings.Join(dithering.MatrixNames(), ", "),
			"clippers": strings.Join(okcolor.ClipperNames, ","),
		},
	)

	var level slog.Level
	if err := level.UnmarshalText([]byte(cli.LogLevel)); err != nil {
		kctx.Fatalf("invalid log level %q: %v", cli.LogLevel, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	// Several bars redrawing the same terminal line are unreadable.
	if cli.Jobs != 1 && cli.Colorize.Progress == "bar" {
		cli.Colorize.Progress = "log"
	}

	slog.Debug("starting", "command", kctx.Command(), "jobs", cli.Jobs)

	pool := parallel.Start(cli.Jobs)
	err := kctx.Run(pool.Do, pool.Wait)
	kctx.FatalIfErrorf(err)
}
