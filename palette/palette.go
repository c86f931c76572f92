// Package palette holds fixed color palettes in CIELAB and finds the entry a
// color should be quantized to.
package palette

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"recolor/lab"
)

// Palette is an ordered list of target colors.
type Palette []lab.Lab

var (
	_ PaletteRIFFReaderWriter = &Palette{}
	_ PaletteConverter        = &Palette{}
)

func FromColors(p color.Palette) Palette {
	pal := Palette{}
	pal.From(p)
	return pal
}

// Parse reads every entry with lab.ParseColor.
func Parse(colors []string) (Palette, error) {
	pal := make(Palette, 0, len(colors))
	for i, s := range colors {
		lc, err := lab.ParseColor(s)
		if err != nil {
			return nil, fmt.Errorf("could not read palette color %d: %w", i, err)
		}
		pal = append(pal, lc)
	}
	return pal, nil
}

// Closest returns the entry nearest to lc, or the zero color when p is empty.
func (p Palette) Closest(lc lab.Lab) lab.Lab {
	i := p.Index(lc)
	if i < 0 {
		return lab.Lab{}
	}
	return p[i]
}

// Index returns the position of the entry with the smallest CIEDE2000
// distance to lc. Ties go to the earliest entry. It returns -1 for an
// empty palette.
func (p Palette) Index(lc lab.Lab) int {
	if len(p) == 0 {
		return -1
	}
	return p.prepared().index(lab.Prepare(lc))
}

func (p Palette) prepared() prepared {
	pp := make(prepared, len(p))
	for i, lc := range p {
		pp[i] = lab.Prepare(lc)
	}
	return pp
}

// prepared caches the conversion each distance computation needs, so a
// palette used for many lookups pays for it once.
type prepared []lab.Color

func (p prepared) index(c lab.Color) int {
	ret, best := -1, math.Inf(1)
	for i, v := range p {
		d := c.Distance(v)
		if d < best {
			if d == 0 {
				return i
			}
			ret, best = i, d
		}
	}
	if ret < 0 && len(p) > 0 {
		// every distance was NaN
		ret = 0
	}
	return ret
}

func (p *Palette) From(pal color.Palette) int64 {
	for _, col := range pal {
		*p = append(*p, lab.FromColor(col))
	}

	return int64(len(pal))
}

func (p *Palette) ReadRIFF(r io.Reader) (int64, error) {
	pals, err := ReadFrom(r)
	if err != nil {
		return 0, fmt.Errorf("could not load palettes: %w", err)
	}

	var n int64
	for _, pal := range pals {
		n += p.From(pal)
	}

	return n, nil
}

// Colors converts the palette to a standard library palette of 8-bit colors.
func (p Palette) Colors() color.Palette {
	_, pal := p.To(color.RGBAModel)
	return pal
}

func (p *Palette) To(m color.Model) (int64, color.Palette) {
	pal := make(color.Palette, 0, len(*p))
	for _, lc := range *p {
		pal = append(pal, m.Convert(lc))
	}

	return int64(len(pal)), pal
}

func (p *Palette) WriteRIFF(w io.Writer) (int64, error) {
	if n, err := WriteTo(w, []color.Palette{p.Colors()}); err != nil {
		return n, fmt.Errorf("could not save palette: %w", err)
	} else {
		return n, nil
	}
}
