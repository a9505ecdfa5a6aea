package stego

import "golang.org/x/image/draw"

const (
	// hiddenBits is how many low-order bits of each cover sample carry the
	// secret image.
	hiddenBits = 2

	hiddenMask  uint8 = 1<<hiddenBits - 1 // 0b00000011
	coverMask         = ^hiddenMask       // 0b11111100
	secretShift       = 8 - hiddenBits
)

// ImagePlaneCodec hides a secret image in the two least significant bits of
// every cover sample.  There is no framing and no encryption; the secret is
// resampled to the cover's size, so capacity is never exceeded.
//
// The zero value uses [DefaultScaler].
type ImagePlaneCodec struct {
	// Scaler resamples the secret when its size differs from the cover's.
	Scaler draw.Scaler
}

// Embed returns a copy of cover whose samples are
// (cover & 0b11111100) | (secret >> 6), with secret resampled to the cover's
// dimensions.
func (c ImagePlaneCodec) Embed(cover, secret *PixelBuffer) (*PixelBuffer, error) {
	if err := cover.Validate(); err != nil {
		return nil, err
	}
	scaler := c.Scaler
	if scaler == nil {
		scaler = DefaultScaler
	}
	resized, err := ResizeWith(secret, cover.Width, cover.Height, scaler)
	if err != nil {
		return nil, err
	}

	out := cover.Clone()
	for i, s := range resized.Pix {
		out.Pix[i] = out.Pix[i]&coverMask | s>>secretShift
	}
	return out, nil
}

// Extract recovers the hidden image: every sample becomes
// (stego & 0b00000011) << 6, so only four levels per channel remain.
func (ImagePlaneCodec) Extract(stego *PixelBuffer) (*PixelBuffer, error) {
	if err := stego.Validate(); err != nil {
		return nil, err
	}
	out := &PixelBuffer{Width: stego.Width, Height: stego.Height, Pix: make([]uint8, len(stego.Pix))}
	for i, s := range stego.Pix {
		out.Pix[i] = (s & hiddenMask) << secretShift
	}
	return out, nil
}

var defaultImagePlane ImagePlaneCodec

// EmbedImage hides secret in cover with the default [ImagePlaneCodec].
func EmbedImage(cover, secret *PixelBuffer) (*PixelBuffer, error) {
	return defaultImagePlane.Embed(cover, secret)
}

// ExtractImage recovers a hidden image with the default [ImagePlaneCodec].
func ExtractImage(stego *PixelBuffer) (*PixelBuffer, error) {
	return defaultImagePlane.Extract(stego)
}
