package stego

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// DefaultScaler resamples secret images in [ImagePlaneCodec].  Catmull-Rom
// is a bicubic filter.
var DefaultScaler draw.Scaler = draw.CatmullRom

// Resize returns src resampled to width×height with [DefaultScaler].
func Resize(src *PixelBuffer, width, height int) (*PixelBuffer, error) {
	return ResizeWith(src, width, height, DefaultScaler)
}

// ResizeWith returns src resampled to width×height with scaler.  A buffer
// that already has the target size is copied unchanged.
func ResizeWith(src *PixelBuffer, width, height int, scaler draw.Scaler) (*PixelBuffer, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: target dimensions %dx%d", ErrInvalidBuffer, width, height)
	}
	if src.Width == width && src.Height == height {
		return src.Clone(), nil
	}

	srcImg := src.Image()
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	scaler.Scale(dst, dst.Bounds(), srcImg, srcImg.Bounds(), draw.Src, nil)
	return FromImage(dst), nil
}
