package stego

import (
	"fmt"
	"image"
	"image/color"
)

// Channels is the number of samples per pixel (R, G, B).
const Channels = 3

// PixelBuffer is a row-major grid of 8-bit RGB samples.  Pix holds
// Width*Height*Channels bytes; the sample for channel c of pixel (x, y) is
// Pix[(y*Width+x)*Channels+c].
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewPixelBuffer returns a zeroed (black) buffer.
func NewPixelBuffer(width, height int) (*PixelBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidBuffer, width, height)
	}
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*Channels),
	}, nil
}

// Validate reports whether b is usable by the codecs.
func (b *PixelBuffer) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil buffer", ErrInvalidBuffer)
	}
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidBuffer, b.Width, b.Height)
	}
	if want := b.Width * b.Height * Channels; len(b.Pix) != want {
		return fmt.Errorf("%w: %d samples for %dx%d, want %d", ErrInvalidBuffer, len(b.Pix), b.Width, b.Height, want)
	}
	return nil
}

// SampleCount returns the length of the flattened sample sequence.
func (b *PixelBuffer) SampleCount() int { return len(b.Pix) }

// Clone returns a deep copy of b.
func (b *PixelBuffer) Clone() *PixelBuffer {
	pix := make([]uint8, len(b.Pix))
	copy(pix, b.Pix)
	return &PixelBuffer{Width: b.Width, Height: b.Height, Pix: pix}
}

// At returns the samples of pixel (x, y).
func (b *PixelBuffer) At(x, y int) (r, g, bl uint8) {
	i := (y*b.Width + x) * Channels
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2]
}

// Set writes the samples of pixel (x, y).
func (b *PixelBuffer) Set(x, y int, r, g, bl uint8) {
	i := (y*b.Width + x) * Channels
	b.Pix[i], b.Pix[i+1], b.Pix[i+2] = r, g, bl
}

// FromImage converts img to RGB.  Alpha is dropped without compositing
// against a background; palette and gray images are expanded to RGB.
func FromImage(img image.Image) *PixelBuffer {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	buf := &PixelBuffer{Width: w, Height: h, Pix: make([]uint8, w*h*Channels)}

	if src, ok := img.(*image.NRGBA); ok {
		for y := 0; y < h; y++ {
			row := src.Pix[src.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
			for x := 0; x < w; x++ {
				copy(buf.Pix[(y*w+x)*Channels:], row[x*4:x*4+Channels])
			}
		}
		return buf
	}

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			buf.Pix[i], buf.Pix[i+1], buf.Pix[i+2] = c.R, c.G, c.B
			i += Channels
		}
	}
	return buf
}

// Image returns b as an opaque *image.NRGBA anchored at the origin.
func (b *PixelBuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	for i, j := 0, 0; i < len(b.Pix); i, j = i+Channels, j+4 {
		img.Pix[j] = b.Pix[i]
		img.Pix[j+1] = b.Pix[i+1]
		img.Pix[j+2] = b.Pix[i+2]
		img.Pix[j+3] = 0xff
	}
	return img
}
