package palette

import (
	"fmt"
	"image/color"
	"maps"
	"slices"
)

var builtins = map[string]func() color.Palette{
	"bw": func() color.Palette {
		return hexPalette(0x000000, 0xffffff)
	},
	"gray4": func() color.Palette {
		return grayPalette(4)
	},
	"gray16": func() color.Palette {
		return grayPalette(16)
	},
	"rgb": func() color.Palette {
		return hexPalette(0xff0000, 0x00ff00, 0x0000ff)
	},
	"vga16": vga16,
	"cga16": vga16,
	// Waveshare / E Ink Spectra 6 panels.
	"spectra6": func() color.Palette {
		return hexPalette(0x000000, 0xffffff, 0xff0000, 0x00ff00, 0x0000ff, 0xffff00)
	},
	// 7 color ACeP panels.
	"eink7": func() color.Palette {
		return hexPalette(0x000000, 0xffffff, 0x0000ff, 0x00ff00, 0xff0000, 0xffff00, 0xffa500)
	},
	"pico8": func() color.Palette {
		return hexPalette(
			0x000000, 0x1d2b53, 0x7e2553, 0x008751, 0xab5236, 0x5f574f, 0xc2c3c7, 0xfff1e8,
			0xff004d, 0xffa300, 0xffec27, 0x00e436, 0x29adff, 0x83769c, 0xff77a8, 0xffccaa,
		)
	},
	"websafe": func() color.Palette {
		pal := make(color.Palette, 0, 216)
		for r := 0; r < 6; r++ {
			for g := 0; g < 6; g++ {
				for b := 0; b < 6; b++ {
					pal = append(pal, color.RGBA{R: uint8(r * 0x33), G: uint8(g * 0x33), B: uint8(b * 0x33), A: 0xff})
				}
			}
		}
		return pal
	},
}

func vga16() color.Palette {
	return hexPalette(
		0x000000, 0x0000aa, 0x00aa00, 0x00aaaa, 0xaa0000, 0xaa00aa, 0xaa5500, 0xaaaaaa,
		0x555555, 0x5555ff, 0x55ff55, 0x55ffff, 0xff5555, 0xff55ff, 0xffff55, 0xffffff,
	)
}

func hexPalette(cols ...uint32) color.Palette {
	pal := make(color.Palette, len(cols))
	for i, c := range cols {
		pal[i] = color.RGBA{R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c), A: 0xff}
	}
	return pal
}

func grayPalette(n int) color.Palette {
	pal := make(color.Palette, n)
	for i := range n {
		v := uint8(i * 255 / (n - 1))
		pal[i] = color.RGBA{R: v, G: v, B: v, A: 0xff}
	}
	return pal
}

// Names returns the built-in palette names, sorted.
func Names() []string {
	return slices.Sorted(maps.Keys(builtins))
}

// Builtin returns the built-in palette called name.
func Builtin(name string) (Palette, error) {
	f, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown palette %q", name)
	}
	return FromColors(f()), nil
}
