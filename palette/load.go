package palette

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"recolor/lab"
)

var ErrEmpty = errors.New("palette has no colors")

// LoadPalette resolves name as a built-in palette, or else as a file: RIFF
// .pal, GIMP .gpl, or a text file with one color per line.
func LoadPalette(name string) (Palette, error) {
	if _, ok := builtins[name]; ok {
		return Builtin(name)
	}

	f, err := os.Open(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && filepath.Ext(name) == "" {
			return nil, fmt.Errorf("unknown palette %q (built-in: %s)", name, strings.Join(Names(), ", "))
		}
		return nil, fmt.Errorf("could not open palette file %q: %w", name, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close palette file", "name", name, "error", closeErr)
		}
	}()

	var pal Palette
	if strings.EqualFold(filepath.Ext(name), ".pal") {
		if _, err = pal.ReadRIFF(f); err != nil {
			return nil, fmt.Errorf("could not read palette file %q: %w", name, err)
		}
	} else if pal, err = ReadText(f); err != nil {
		return nil, fmt.Errorf("could not read palette file %q: %w", name, err)
	}

	if len(pal) == 0 {
		return nil, fmt.Errorf("palette file %q: %w", name, ErrEmpty)
	}
	return pal, nil
}

// ReadText reads a GIMP palette, or a list with one lab.ParseColor color per
// line where blank lines and lines starting with // or ; are ignored.
func ReadText(r io.Reader) (Palette, error) {
	sc := bufio.NewScanner(r)
	var pal Palette
	gimp := false
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if n == 1 && line == "GIMP Palette" {
			gimp = true
			continue
		}
		if line == "" || strings.HasPrefix(line, "//") || strings.HasPrefix(line, ";") {
			continue
		}

		if gimp {
			if strings.HasPrefix(line, "#") || strings.Contains(line, ":") {
				continue
			}
			lc, err := parseGIMPLine(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", n, err)
			}
			pal = append(pal, lc)
			continue
		}

		lc, err := lab.ParseColor(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		pal = append(pal, lc)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return pal, nil
}

func parseGIMPLine(line string) (lab.Lab, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return lab.Lab{}, fmt.Errorf("expected R G B, got %q", line)
	}
	var rgb [3]uint8
	for i := range rgb {
		v, err := strconv.ParseUint(fields[i], 10, 8)
		if err != nil {
			return lab.Lab{}, fmt.Errorf("could not read channel %d of %q: %w", i, line, err)
		}
		rgb[i] = uint8(v)
	}
	return lab.FromRGB(rgb[0], rgb[1], rgb[2]), nil
}
