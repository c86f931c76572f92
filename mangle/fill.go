package mangle

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// parseHexToColor reads #RGB, #RGBA, #RRGGBB or #RRGGBBAA.
func parseHexToColor(s string) (color.Color, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return nil, fmt.Errorf("invalid fill color %q, should be #RGB, #RGBA, #RRGGBB or #RRGGBBAA", s)
	}

	switch len(hex) {
	case 3, 4:
		var b strings.Builder
		for _, r := range hex {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		hex = b.String()
	case 6, 8:
	default:
		return nil, fmt.Errorf("invalid fill color %q, should be #RGB, #RGBA, #RRGGBB or #RRGGBBAA", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("could not read color %q: %w", s, err)
	}

	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
