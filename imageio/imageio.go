// Package imageio converts between encoded raster files and
// [stego.PixelBuffer].
//
// Decoding accepts PNG, JPEG, GIF, BMP, TIFF and WebP.  Encoding is limited
// to lossless formats (PNG, BMP, TIFF): a lossy encoder would destroy the
// low-order bits the stego codecs write.
package imageio

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/hasbyte1/go-stego-utils/stego"
)

var (
	// ErrUnsupportedFormat is returned for formats this package cannot
	// decode or encode.
	ErrUnsupportedFormat = errors.New("imageio: unsupported image format")

	// ErrLossyFormat is returned when asked to encode with a format that
	// would not preserve every sample exactly.
	ErrLossyFormat = errors.New("imageio: refusing lossy output format")
)

// Format names an image container, matching the names registered with
// image.RegisterFormat.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	GIF  Format = "gif"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
	WebP Format = "webp"
)

var extensions = map[string]Format{
	".png":  PNG,
	".jpg":  JPEG,
	".jpeg": JPEG,
	".gif":  GIF,
	".bmp":  BMP,
	".tif":  TIFF,
	".tiff": TIFF,
	".webp": WebP,
}

// Lossless reports whether f can be written without altering samples.
func (f Format) Lossless() bool {
	switch f {
	case PNG, BMP, TIFF:
		return true
	}
	return false
}

// ParseFormat maps a name such as "png" or "JPG" to a Format.
func ParseFormat(name string) (Format, error) {
	n := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "."))
	if f, ok := extensions["."+n]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// FormatFromPath derives the format from a file extension.  A path without
// an extension maps to PNG.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return PNG, nil
	}
	return ParseFormat(ext)
}

// Decode reads any registered format into an RGB buffer.
func Decode(r io.Reader) (*stego.PixelBuffer, Format, error) {
	img, name, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, "", fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
		}
		return nil, "", fmt.Errorf("imageio: decode: %w", err)
	}
	buf := stego.FromImage(img)
	if err := buf.Validate(); err != nil {
		return nil, "", err
	}
	return buf, Format(name), nil
}

// Encode writes buf to w in format f, which must be lossless.
func Encode(w io.Writer, buf *stego.PixelBuffer, f Format) error {
	if err := buf.Validate(); err != nil {
		return err
	}
	img := buf.Image()
	switch f {
	case PNG:
		return png.Encode(w, img)
	case BMP:
		return bmp.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case JPEG, GIF, WebP:
		return fmt.Errorf("%w: %s", ErrLossyFormat, f)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// Load decodes the image file at path.
func Load(path string) (*stego.PixelBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, _, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return buf, nil
}

// Save encodes buf to path using the format implied by its extension.
// The file is only created once the format has been accepted.
func Save(path string, buf *stego.PixelBuffer) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if !format.Lossless() {
		return fmt.Errorf("%w: %s", ErrLossyFormat, format)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, buf, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
