package raster

import (
	"image"
	"image/color"
	"testing"
)

func TestImageGetSetRGB(t *testing.T) {
	img := NewImage(image.Rect(0, 0, 10, 5))
	c := RGB{R: 100, G: 150, B: 200}
	img.SetRGB(5, 3, c)

	if got := img.RGBAt(5, 3); got != c {
		t.Errorf("Expected %v, got %v", c, got)
	}
	if got := img.RGBAt(4, 3); got != (RGB{}) {
		t.Errorf("Expected neighbour to stay black, got %v", got)
	}
	if got := img.RGBAt(50, 50); got != (RGB{}) {
		t.Errorf("Expected out of bounds read to be black, got %v", got)
	}
}

func TestImageSetColor(t *testing.T) {
	img := NewImage(image.Rect(0, 0, 2, 2))
	img.Set(1, 1, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	want := RGB{R: 10, G: 20, B: 30}
	if got := img.RGBAt(1, 1); got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestFromImageRebasesBounds(t *testing.T) {
	src := image.NewNRGBA(image.Rect(5, 7, 8, 9))
	src.Set(6, 8, color.NRGBA{R: 1, G: 2, B: 3, A: 255})

	img := FromImage(src)
	if img.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Fatalf("Expected bounds (0,0)-(3,2), got %v", img.Bounds())
	}
	want := RGB{R: 1, G: 2, B: 3}
	if got := img.RGBAt(1, 1); got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestRGBAIsOpaque(t *testing.T) {
	_, _, _, a := RGB{R: 1}.RGBA()
	if a != 0xffff {
		t.Errorf("Expected opaque alpha, got %#x", a)
	}
}
