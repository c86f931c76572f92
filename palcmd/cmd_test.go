package palcmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"recolor/palette"
)

func TestListBuiltins(t *testing.T) {
	var buf bytes.Buffer
	c := &CLICmd{out: &buf}
	if err := c.list(); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(palette.Names()) {
		t.Fatalf("expected %d lines, got %d: %q", len(palette.Names()), len(lines), buf.String())
	}
	if !strings.Contains(buf.String(), "bw\t2 colors") {
		t.Errorf("expected bw with 2 colors, got %q", buf.String())
	}
}

func TestListColors(t *testing.T) {
	var buf bytes.Buffer
	c := &CLICmd{out: &buf}
	c.List.Name = "bw"
	c.List.Colors = true
	if err := c.list(); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"#000000", "#ffffff", "lab(100.00", "oklch(1.000"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got %q", want, out)
		}
	}
}

func TestListUnknown(t *testing.T) {
	c := &CLICmd{out: &bytes.Buffer{}}
	c.List.Name = "no-such-palette"
	if err := c.list(); err == nil {
		t.Error("expected error for unknown palette")
	}
}

func TestExport(t *testing.T) {
	out := filepath.Join(t.TempDir(), "sub", "pico8.pal")
	c := &CLICmd{}
	c.Export.Name = "pico8"
	c.Export.Out = out
	if err := c.export(); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	if _, err := os.Stat(out); err != nil {
		t.Fatalf("expected exported file: %v", err)
	}

	got, err := palette.LoadPalette(out)
	if err != nil {
		t.Fatalf("could not load exported palette: %v", err)
	}
	want, _ := palette.Builtin("pico8")
	if len(got) != len(want) {
		t.Fatalf("expected %d colors, got %d", len(want), len(got))
	}
	for i := range want {
		wr, wg, wb := want[i].RGB(nil)
		gr, gg, gb := got[i].RGB(nil)
		if wr != gr || wg != gg || wb != gb {
			t.Errorf("color %d: expected #%02x%02x%02x, got #%02x%02x%02x", i, wr, wg, wb, gr, gg, gb)
		}
	}
}
