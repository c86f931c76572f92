// Package palcmd implements the palette subcommands: listing the built-in
// palettes and exporting any loadable palette as a RIFF .pal file.
package palcmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"recolor/palette"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	List struct {
		Colors bool   `help:"Print every color with its CIELAB and OKLCh coordinates"`
		Name   string `arg:"" optional:"" help:"Palette name or file. All built-ins when omitted."`
	} `cmd:"" help:"List palettes"`
	Export struct {
		Name string `arg:"" help:"Palette name or file"`
		Out  string `help:"Destination .pal file" required:"" type:"path"`
	} `cmd:"" help:"Write a palette as a RIFF .pal file"`

	out io.Writer
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	if kctx.Selected() == nil || kctx.Selected().Name != "export" {
		return nil
	}
	if ext := filepath.Ext(c.Export.Out); ext != ".pal" {
		return fmt.Errorf("export destination %q must have a .pal extension", c.Export.Out)
	}
	return nil
}

func (c *CLICmd) Run(kctx *kong.Context) error {
	switch kctx.Selected().Name {
	case "list":
		return c.list()
	case "export":
		return c.export()
	}
	return fmt.Errorf("unsupported palette command %q", kctx.Selected().Name)
}

func (c *CLICmd) writer() io.Writer {
	if c.out == nil {
		return os.Stdout
	}
	return c.out
}

func (c *CLICmd) list() error {
	names := palette.Names()
	if c.List.Name != "" {
		names = []string{c.List.Name}
	}

	w := c.writer()
	for _, name := range names {
		pal, err := palette.LoadPalette(name)
		if err != nil {
			return err
		}
		if _, err = fmt.Fprintf(w, "%s\t%d colors\n", name, len(pal)); err != nil {
			return err
		}
		if !c.List.Colors {
			continue
		}
		for i, lc := range pal {
			r, g, b := lc.RGB(nil)
			ok := lc.OKLCh()
			if _, err = fmt.Fprintf(w, "  %3d  #%02x%02x%02x  lab(%.2f, %.2f, %.2f)  oklch(%.3f %.3f %.1f)\n",
				i, r, g, b, lc.L, lc.A, lc.B, ok.L, ok.C, ok.Degrees()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *CLICmd) export() (err error) {
	pal, err := palette.LoadPalette(c.Export.Name)
	if err != nil {
		return err
	}

	if err = os.MkdirAll(filepath.Dir(c.Export.Out), 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder: %w", err)
	}

	f, err := os.Create(c.Export.Out)
	if err != nil {
		return fmt.Errorf("could not create palette file %q: %w", c.Export.Out, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("could not close palette file %q: %w", c.Export.Out, closeErr)
		}
	}()

	n, err := pal.WriteRIFF(f)
	if err != nil {
		return fmt.Errorf("could not write palette file %q: %w", c.Export.Out, err)
	}

	slog.Info("exported palette", "name", c.Export.Name, "colors", len(pal), "file", c.Export.Out, "bytes", n)
	return nil
}
