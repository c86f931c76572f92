package lab

import (
	"math"
	"testing"

	"recolor/okcolor"
)

func TestFromRGBKnownValues(t *testing.T) {
	testCases := []struct {
		name    string
		r, g, b uint8
		want    Lab
	}{
		{"black", 0, 0, 0, Lab{0, 0, 0}},
		{"white", 255, 255, 255, Lab{100, 0, 0}},
		{"red", 255, 0, 0, Lab{53.24, 80.09, 67.20}},
		{"blue", 0, 0, 255, Lab{32.30, 79.19, -107.86}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := FromRGB(tc.r, tc.g, tc.b)
			if math.Abs(got.L-tc.want.L) > 0.15 || math.Abs(got.A-tc.want.A) > 0.15 ||
				math.Abs(got.B-tc.want.B) > 0.15 {
				t.Errorf("Expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestRGBRoundTrip(t *testing.T) {
	for _, c := range [][3]uint8{{0, 0, 0}, {255, 255, 255}, {12, 200, 77}, {128, 128, 128}, {255, 0, 255}} {
		r, g, b := FromRGB(c[0], c[1], c[2]).RGB(nil)
		if [3]uint8{r, g, b} != c {
			t.Errorf("Expected %v, got %v", c, [3]uint8{r, g, b})
		}
	}
}

func TestRGBClipsOutOfGamut(t *testing.T) {
	far := Lab{L: 50, A: 200, B: -200}
	for _, name := range okcolor.ClipperNames {
		clip, err := okcolor.NewClipper(name, 0.5)
		if err != nil {
			t.Fatalf("Unexpected error for %q: %v", name, err)
		}
		// Must not panic and must produce some valid pixel.
		far.RGB(clip)
	}

	_, g, b := far.RGB(nil)
	if g != 0 || b != 255 {
		t.Errorf("Expected clamped green and blue channels, got g=%d b=%d", g, b)
	}
}

func TestWithChroma(t *testing.T) {
	got := Lab{L: 40, A: 1, B: 2}.WithChroma(Lab{L: 90, A: -5, B: 7})
	want := Lab{L: 40, A: -5, B: 7}
	if got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestDistanceCIEDE2000(t *testing.T) {
	red := FromRGB(255, 0, 0)
	if d := DistanceCIEDE2000(red, red); d > 1e-9 {
		t.Errorf("Expected zero distance to itself, got %v", d)
	}

	orange := FromRGB(255, 128, 0)
	blue := FromRGB(0, 0, 255)
	if DistanceCIEDE2000(orange, red) >= DistanceCIEDE2000(orange, blue) {
		t.Error("Expected orange to be closer to red than to blue")
	}

	a, b := Prepare(orange), Prepare(blue)
	if math.Abs(a.Distance(b)-DistanceCIEDE2000(orange, blue)) > 1e-9 {
		t.Error("Expected prepared distance to match DistanceCIEDE2000")
	}
}

func TestParseColor(t *testing.T) {
	testCases := []struct {
		in      string
		want    Lab
		wantErr bool
	}{
		{in: "#fff", want: FromRGB(255, 255, 255)},
		{in: "#1Ac", want: FromRGB(0x11, 0xaa, 0xcc)},
		{in: "#FF0000", want: FromRGB(255, 0, 0)},
		{in: " #0a0b0c ", want: FromRGB(10, 11, 12)},
		{in: "lab(50, 10, -20)", want: Lab{50, 10, -20}},
		{in: "LAB(75 0 0)", want: Lab{75, 0, 0}},
		{in: "red", wantErr: true},
		{in: "#12345", wantErr: true},
		{in: "#ggg", wantErr: true},
		{in: "#12345g", wantErr: true},
		{in: "#1234567", wantErr: true},
		{in: "#", wantErr: true},
		{in: "lab(1, 2)", wantErr: true},
		{in: "lab(120, 0, 0)", wantErr: true},
		{in: "lab(1, 2, 3", wantErr: true},
	}

	for _, tc := range testCases {
		got, err := ParseColor(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("%q: expected error, got %v", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%q: expected %v, got %v", tc.in, tc.want, got)
		}
	}
}
