package palette

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"recolor/lab"
)

var (
	red   = lab.FromRGB(255, 0, 0)
	green = lab.FromRGB(0, 255, 0)
	blue  = lab.FromRGB(0, 0, 255)
)

func TestIndex(t *testing.T) {
	pal := Palette{red, green, blue}

	testCases := []struct {
		name string
		in   lab.Lab
		want int
	}{
		{"exact red", red, 0},
		{"exact blue", blue, 2},
		{"orange", lab.FromRGB(255, 120, 0), 0},
		{"navy", lab.FromRGB(0, 0, 90), 2},
		{"lime", lab.FromRGB(150, 255, 100), 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := pal.Index(tc.in); got != tc.want {
				t.Errorf("Expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestIndexTieGoesToFirst(t *testing.T) {
	pal := Palette{blue, red, red}
	if got := pal.Index(red); got != 1 {
		t.Errorf("Expected first exact match at 1, got %d", got)
	}

	pal = Palette{green, green}
	if got := pal.Index(lab.FromRGB(10, 10, 10)); got != 0 {
		t.Errorf("Expected first of equal candidates, got %d", got)
	}
}

func TestIndexEmpty(t *testing.T) {
	if got := (Palette{}).Index(red); got != -1 {
		t.Errorf("Expected -1 for empty palette, got %d", got)
	}
	if got := (Palette{}).Closest(red); got != (lab.Lab{}) {
		t.Errorf("Expected zero color for empty palette, got %v", got)
	}
}

func TestCacheMatchKeepsLightness(t *testing.T) {
	cache := NewCache(Palette{red, blue})

	got := cache.Match(200, 60, 40)
	orig := lab.FromRGB(200, 60, 40)
	if got.L != orig.L {
		t.Errorf("Expected lightness %v, got %v", orig.L, got.L)
	}
	if got.A != red.A || got.B != red.B {
		t.Errorf("Expected red chroma (%v, %v), got (%v, %v)", red.A, red.B, got.A, got.B)
	}
}

func TestCacheDeterministic(t *testing.T) {
	cache := NewCache(Palette{red, green, blue})

	first := cache.Match(12, 34, 56)
	if cache.Len() != 1 {
		t.Fatalf("Expected 1 cached entry, got %d", cache.Len())
	}
	second := cache.Match(12, 34, 56)
	if first != second {
		t.Errorf("Expected cached value %v, got %v", first, second)
	}
	if cache.Len() != 1 {
		t.Errorf("Expected hit to leave cache size at 1, got %d", cache.Len())
	}

	fresh := NewCache(Palette{red, green, blue}).Match(12, 34, 56)
	if fresh != first {
		t.Errorf("Expected fresh cache to derive %v, got %v", first, fresh)
	}
}

func TestCacheConcurrent(t *testing.T) {
	cache := NewCache(Palette{red, green, blue})
	want := NewCache(Palette{red, green, blue}).Match(90, 10, 200)

	var wg sync.WaitGroup
	for range 16 {
		wg.Go(func() {
			for i := range 256 {
				if got := cache.Match(90, 10, 200); got != want {
					t.Errorf("Expected %v, got %v", want, got)
				}
				cache.Match(uint8(i), 0, 0)
			}
		})
	}
	wg.Wait()

	if cache.Len() != 257 {
		t.Errorf("Expected 257 entries, got %d", cache.Len())
	}
}

func TestRIFFRoundTrip(t *testing.T) {
	pal, err := Builtin("pico8")
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if _, err := pal.WriteRIFF(&buf); err != nil {
		t.Fatalf("Unexpected write error: %v", err)
	}

	var got Palette
	n, err := got.ReadRIFF(&buf)
	if err != nil {
		t.Fatalf("Unexpected read error: %v", err)
	}
	if n != 16 {
		t.Errorf("Expected 16 colors read, got %d", n)
	}

	want := pal.Colors()
	for i, c := range got.Colors() {
		if c != want[i] {
			t.Errorf("Color %d: expected %v, got %v", i, want[i], c)
		}
	}
}

func TestReadRIFFRejectsOtherForms(t *testing.T) {
	var p Palette
	if _, err := p.ReadRIFF(strings.NewReader("RIFF\x04\x00\x00\x00WAVE")); err == nil {
		t.Error("Expected error for non PAL form")
	}
}

func TestBuiltins(t *testing.T) {
	for _, name := range Names() {
		pal, err := LoadPalette(name)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", name, err)
			continue
		}
		if len(pal) == 0 {
			t.Errorf("%s: expected colors", name)
		}
	}

	if pal, _ := Builtin("websafe"); len(pal) != 216 {
		t.Errorf("Expected 216 websafe colors, got %d", len(pal))
	}
	if pal, _ := Builtin("gray16"); pal.Colors()[15] != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("Expected gray16 to end in white, got %v", pal.Colors()[15])
	}
}

func TestLoadPaletteFiles(t *testing.T) {
	dir := t.TempDir()

	hexFile := filepath.Join(dir, "warm.hex")
	if err := os.WriteFile(hexFile, []byte("// warm\n#ff0000\n\n; orange\n#ff8000\nlab(50, 0, 0)\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	pal, err := LoadPalette(hexFile)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(pal) != 3 {
		t.Errorf("Expected 3 colors, got %d", len(pal))
	}

	gplFile := filepath.Join(dir, "two.gpl")
	gpl := "GIMP Palette\nName: two\nColumns: 2\n#\n255   0   0\tRed\n  0   0 255\tBlue\n"
	if err := os.WriteFile(gplFile, []byte(gpl), 0o644); err != nil {
		t.Fatal(err)
	}
	pal, err = LoadPalette(gplFile)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(pal) != 2 || pal[0] != red || pal[1] != blue {
		t.Errorf("Expected red and blue, got %v", pal)
	}

	palFile := filepath.Join(dir, "vga.pal")
	vga, _ := Builtin("vga16")
	f, err := os.Create(palFile)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := vga.WriteRIFF(f); err != nil {
		t.Fatal(err)
	}
	f.Close()
	if pal, err = LoadPalette(palFile); err != nil || len(pal) != 16 {
		t.Errorf("Expected 16 colors without error, got %d, %v", len(pal), err)
	}
}

func TestLoadPaletteErrors(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(empty, []byte("// nothing\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	bad := filepath.Join(dir, "bad.txt")
	if err := os.WriteFile(bad, []byte("#ff0000\nnot-a-color\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"nosuchpalette", filepath.Join(dir, "missing.pal"), empty, bad} {
		if _, err := LoadPalette(name); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestParse(t *testing.T) {
	pal, err := Parse([]string{"#f00", "lab(32.3, 79.19, -107.86)"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if pal[0] != red {
		t.Errorf("Expected red, got %v", pal[0])
	}
	if _, err := Parse([]string{"#f00", "oops"}); err == nil {
		t.Error("Expected error")
	}
}
