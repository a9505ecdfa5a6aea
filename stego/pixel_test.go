package stego_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hasbyte1/go-stego-utils/stego"
)

func TestNewPixelBuffer(t *testing.T) {
	buf, err := stego.NewPixelBuffer(4, 3)
	require.NoError(t, err)
	assert.Equal(t, 36, buf.SampleCount())
	require.NoError(t, buf.Validate())

	for _, dims := range [][2]int{{0, 1}, {1, 0}, {-1, 5}} {
		_, err := stego.NewPixelBuffer(dims[0], dims[1])
		assert.ErrorIs(t, err, stego.ErrInvalidBuffer)
	}
}

func TestPixelBuffer_AtSet(t *testing.T) {
	buf, err := stego.NewPixelBuffer(3, 2)
	require.NoError(t, err)
	buf.Set(2, 1, 10, 20, 30)

	r, g, b := buf.At(2, 1)
	assert.Equal(t, [3]uint8{10, 20, 30}, [3]uint8{r, g, b})
	assert.Equal(t, []uint8{10, 20, 30}, buf.Pix[15:18])
}

func TestPixelBuffer_Clone(t *testing.T) {
	buf := noisyBuffer(t, 3, 3, 30)
	c := buf.Clone()
	assert.Equal(t, buf, c)
	c.Pix[0] ^= 0xff
	assert.NotEqual(t, buf.Pix[0], c.Pix[0])
}

func TestFromImage_DropsAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 0})
	img.SetNRGBA(1, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 128})

	buf := stego.FromImage(img)
	assert.Equal(t, []uint8{200, 100, 50, 1, 2, 3}, buf.Pix)
}

func TestFromImage_OffsetBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 20, 12, 21))
	img.SetRGBA(10, 20, color.RGBA{R: 7, G: 8, B: 9, A: 255})
	img.SetRGBA(11, 20, color.RGBA{R: 4, G: 5, B: 6, A: 255})

	buf := stego.FromImage(img)
	assert.Equal(t, 2, buf.Width)
	assert.Equal(t, 1, buf.Height)
	assert.Equal(t, []uint8{7, 8, 9, 4, 5, 6}, buf.Pix)
}

func TestFromImage_Gray(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 1, 1))
	img.SetGray(0, 0, color.Gray{Y: 77})
	assert.Equal(t, []uint8{77, 77, 77}, stego.FromImage(img).Pix)
}

func TestPixelBuffer_ImageRoundTrip(t *testing.T) {
	buf := noisyBuffer(t, 5, 4, 31)
	img := buf.Image()
	assert.Equal(t, image.Rect(0, 0, 5, 4), img.Bounds())
	assert.Equal(t, uint8(0xff), img.NRGBAAt(3, 2).A)
	assert.Equal(t, buf, stego.FromImage(img))
}

func TestResize(t *testing.T) {
	buf := noisyBuffer(t, 4, 4, 32)

	same, err := stego.Resize(buf, 4, 4)
	require.NoError(t, err)
	assert.Equal(t, buf, same)

	bigger, err := stego.Resize(buf, 9, 7)
	require.NoError(t, err)
	assert.Equal(t, 9, bigger.Width)
	assert.Equal(t, 7, bigger.Height)
	require.NoError(t, bigger.Validate())

	_, err = stego.Resize(buf, 0, 3)
	assert.ErrorIs(t, err, stego.ErrInvalidBuffer)
}

func TestResize_UniformColourPreserved(t *testing.T) {
	buf, err := stego.NewPixelBuffer(3, 3)
	require.NoError(t, err)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			buf.Set(x, y, 120, 60, 30)
		}
	}
	out, err := stego.Resize(buf, 8, 5)
	require.NoError(t, err)
	for i := 0; i < len(out.Pix); i += 3 {
		assert.InDelta(t, 120, out.Pix[i], 1)
		assert.InDelta(t, 60, out.Pix[i+1], 1)
		assert.InDelta(t, 30, out.Pix[i+2], 1)
	}
}
