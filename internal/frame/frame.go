// Package frame defines the decoded video frame: a fixed W×H grid of
// 3-channel 8-bit pixels stored as packed, row-major RGB bytes.
package frame

import (
	"fmt"
	"image"
	"image/color"
)

// Channels is the number of bytes per pixel.
const Channels = 3

// Frame is one decoded image. Pix holds Width*Height*Channels bytes in
// R, G, B order. Frames handed out by a source are never mutated afterwards.
type Frame struct {
	Width  int
	Height int
	Pix    []byte
}

// New returns a zeroed (black) frame.
func New(width, height int) Frame {
	return Frame{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*Channels),
	}
}

// FromBytes wraps an existing packed RGB buffer without copying.
func FromBytes(width, height int, pix []byte) (Frame, error) {
	if want := width * height * Channels; len(pix) != want {
		return Frame{}, fmt.Errorf("frame %dx%d needs %d bytes, got %d", width, height, want, len(pix))
	}
	return Frame{Width: width, Height: height, Pix: pix}, nil
}

// Filled returns a frame where every pixel has the given color.
func Filled(width, height int, rgb [3]uint8) Frame {
	f := New(width, height)
	for i := 0; i < len(f.Pix); i += Channels {
		f.Pix[i] = rgb[0]
		f.Pix[i+1] = rgb[1]
		f.Pix[i+2] = rgb[2]
	}
	return f
}

// Pixels returns Width*Height.
func (f Frame) Pixels() int { return f.Width * f.Height }

// SameSize reports whether f and o have identical dimensions.
func (f Frame) SameSize(o Frame) bool {
	return f.Width == o.Width && f.Height == o.Height
}

// Copy returns a deep copy.
func (f Frame) Copy() Frame {
	pix := make([]byte, len(f.Pix))
	copy(pix, f.Pix)
	return Frame{Width: f.Width, Height: f.Height, Pix: pix}
}

// RGB returns the pixel at (x, y).
func (f Frame) RGB(x, y int) [3]uint8 {
	i := (y*f.Width + x) * Channels
	return [3]uint8{f.Pix[i], f.Pix[i+1], f.Pix[i+2]}
}

// SetRGB sets the pixel at (x, y). Out-of-bounds writes are ignored.
func (f Frame) SetRGB(x, y int, rgb [3]uint8) {
	if x < 0 || x >= f.Width || y < 0 || y >= f.Height {
		return
	}
	i := (y*f.Width + x) * Channels
	f.Pix[i] = rgb[0]
	f.Pix[i+1] = rgb[1]
	f.Pix[i+2] = rgb[2]
}

// FromRGBA converts a packed RGBA (4 bytes per pixel) buffer into a new
// frame, dropping alpha.
func FromRGBA(width, height int, rgba []byte) (Frame, error) {
	if want := width * height * 4; len(rgba) < want {
		return Frame{}, fmt.Errorf("rgba buffer %dx%d needs %d bytes, got %d", width, height, want, len(rgba))
	}
	f := New(width, height)
	for i, j := 0, 0; i < len(f.Pix); i, j = i+Channels, j+4 {
		f.Pix[i] = rgba[j]
		f.Pix[i+1] = rgba[j+1]
		f.Pix[i+2] = rgba[j+2]
	}
	return f, nil
}

// NRGBA converts the frame into an opaque image for encoding.
func (f Frame) NRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, f.Width, f.Height))
	for i, j := 0, 0; i < len(f.Pix); i, j = i+Channels, j+4 {
		img.Pix[j] = f.Pix[i]
		img.Pix[j+1] = f.Pix[i+1]
		img.Pix[j+2] = f.Pix[i+2]
		img.Pix[j+3] = 0xff
	}
	return img
}

// FromImage converts any image into a frame.
func FromImage(img image.Image) Frame {
	b := img.Bounds()
	f := New(b.Dx(), b.Dy())
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			f.SetRGB(x, y, [3]uint8{c.R, c.G, c.B})
		}
	}
	return f
}
