// Package raster provides an 8-bit, three channel image without alpha, used
// for every buffer the colorizer reads or produces.
package raster

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// RGB is an opaque 24-bit color.
type RGB struct {
	R, G, B uint8
}

func (c RGB) RGBA() (uint32, uint32, uint32, uint32) {
	return uint32(c.R) * 0x101, uint32(c.G) * 0x101, uint32(c.B) * 0x101, 0xffff
}

var RGBModel = color.ModelFunc(rgbConvert)

func rgbConvert(c color.Color) color.Color {
	if _, ok := c.(RGB); ok {
		return c
	}
	r, g, b, _ := c.RGBA()
	return RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

type Image struct {
	// Pix holds the image's pixels, in R, G, B order. The pixel at
	// (x, y) starts at Pix[(y-Rect.Min.Y)*Stride + (x-Rect.Min.X)*3].
	Pix []uint8
	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride int
	// Rect is the image's bounds.
	Rect image.Rectangle
}

// bytes per pixel: r, g, b = 3

func NewImage(r image.Rectangle) *Image {
	return &Image{
		Pix:    make([]uint8, r.Dx()*r.Dy()*3),
		Stride: 3 * r.Dx(),
		Rect:   r,
	}
}

// FromImage copies src into a new Image whose bounds start at (0, 0). Alpha is
// dropped, so translucent pixels come out premultiplied against black.
func FromImage(src image.Image) *Image {
	if img, ok := src.(*Image); ok && img.Rect.Min == (image.Point{}) {
		return img
	}

	b := src.Bounds()
	dst := NewImage(image.Rect(0, 0, b.Dx(), b.Dy()))
	rgba := image.NewRGBA(dst.Rect)
	draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)
	for y := range b.Dy() {
		row := rgba.Pix[y*rgba.Stride:]
		out := dst.Pix[y*dst.Stride:]
		for x := range b.Dx() {
			copy(out[x*3:x*3+3], row[x*4:x*4+3])
		}
	}
	return dst
}

func (p *Image) ColorModel() color.Model { return RGBModel }

func (p *Image) Bounds() image.Rectangle { return p.Rect }

func (p *Image) At(x, y int) color.Color {
	return p.RGBAt(x, y)
}

func (p *Image) RGBAt(x, y int) RGB {
	if !(image.Point{x, y}.In(p.Rect)) {
		return RGB{}
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+3 : i+3]
	return RGB{R: s[0], G: s[1], B: s[2]}
}

// PixOffset returns the index of the first element of Pix that corresponds to
// the pixel at (x, y).
func (p *Image) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*3
}

func (p *Image) Set(x, y int, c color.Color) {
	p.SetRGB(x, y, RGBModel.Convert(c).(RGB))
}

func (p *Image) SetRGB(x, y int, c RGB) {
	if !(image.Point{x, y}.In(p.Rect)) {
		return
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+3 : i+3]
	s[0] = c.R
	s[1] = c.G
	s[2] = c.B
}

// Opaque always reports true: the image has no alpha channel.
func (p *Image) Opaque() bool { return true }
