package engine

import (
	"image"
	"image/color"
	"math"
)

// Channels is the number of bytes per pixel in a Frame (R, G, B).
const Channels = 3

// Frame is a row-major 8-bit RGB pixel buffer shared by tile jobs.
// Concurrent writers must touch disjoint pixels.
type Frame struct {
	Pix    []byte
	Width  int
	Height int
	Stride int // bytes per row
}

// NewFrame allocates a black frame.
func NewFrame(width, height int) *Frame {
	return &Frame{
		Pix:    make([]byte, width*height*Channels),
		Width:  width,
		Height: height,
		Stride: width * Channels,
	}
}

// PixOffset is the index of the first byte of pixel (x, y).
func (f *Frame) PixOffset(x, y int) int {
	return (x + y*f.Width) * Channels
}

// SetColor stores a linear color, clamped to [0,1].
func (f *Frame) SetColor(x, y int, c Vec3) {
	i := f.PixOffset(x, y)
	f.Pix[i] = toByte(c.X)
	f.Pix[i+1] = toByte(c.Y)
	f.Pix[i+2] = toByte(c.Z)
}

// CopyToRGBA expands the frame into dst, which must have the same size.
func (f *Frame) CopyToRGBA(dst *image.RGBA) {
	for y := 0; y < f.Height; y++ {
		src := f.Pix[y*f.Stride : y*f.Stride+f.Width*Channels]
		row := dst.Pix[y*dst.Stride : y*dst.Stride+f.Width*4]
		for x, j := 0, 0; x < f.Width; x, j = x+1, j+Channels {
			row[x*4] = src[j]
			row[x*4+1] = src[j+1]
			row[x*4+2] = src[j+2]
			row[x*4+3] = 255
		}
	}
}

// ColorModel, Bounds and At let a Frame be encoded or drawn as an image.Image.
func (f *Frame) ColorModel() color.Model { return color.RGBAModel }

func (f *Frame) Bounds() image.Rectangle { return image.Rect(0, 0, f.Width, f.Height) }

func (f *Frame) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return color.RGBA{}
	}
	i := f.PixOffset(x, y)
	return color.RGBA{R: f.Pix[i], G: f.Pix[i+1], B: f.Pix[i+2], A: 255}
}

// toByte converts a channel value to 0..255. NaN and negatives map to 0.
func toByte(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v * 255)
}
