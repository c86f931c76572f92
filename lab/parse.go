package lab

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor reads a color written as #rgb, #rrggbb or lab(L, a, b).
func ParseColor(s string) (Lab, error) {
	s = strings.TrimSpace(s)

	if inner, ok := strings.CutPrefix(strings.ToLower(s), "lab("); ok {
		inner, ok = strings.CutSuffix(inner, ")")
		if !ok {
			return Lab{}, fmt.Errorf("missing closing parenthesis in %q", s)
		}
		fields := strings.FieldsFunc(inner, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		if len(fields) != 3 {
			return Lab{}, fmt.Errorf("expected 3 components in %q, got %d", s, len(fields))
		}
		var v [3]float64
		for i, f := range fields {
			var err error
			if v[i], err = strconv.ParseFloat(f, 64); err != nil {
				return Lab{}, fmt.Errorf("could not read component %d of %q: %w", i, s, err)
			}
		}
		if v[0] < 0 || v[0] > 100 {
			return Lab{}, fmt.Errorf("lightness out of range [0, 100] in %q", s)
		}
		return Lab{L: v[0], A: v[1], B: v[2]}, nil
	}

	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return Lab{}, fmt.Errorf("invalid color %q, should be #RGB, #RRGGBB or lab(L, a, b)", s)
	}

	if (len(hex) != 3 && len(hex) != 6) || strings.Trim(hex, "0123456789abcdefABCDEF") != "" {
		return Lab{}, fmt.Errorf("invalid color %q, should be #RGB, #RRGGBB or lab(L, a, b)", s)
	}

	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return Lab{}, fmt.Errorf("could not read color %q: %w", s, err)
	}
	return FromRGB(c.RGB255()), nil
}
