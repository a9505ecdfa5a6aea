package stego_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hasbyte1/go-stego-utils/stego"
)

// noisyBuffer returns a buffer filled with deterministic pseudo-random samples.
func noisyBuffer(t testing.TB, w, h int, seed int64) *stego.PixelBuffer {
	t.Helper()
	buf, err := stego.NewPixelBuffer(w, h)
	require.NoError(t, err)
	r := rand.New(rand.NewSource(seed))
	r.Read(buf.Pix)
	return buf
}

// lsbs returns the least significant bit of the first n samples.
func lsbs(buf *stego.PixelBuffer, n int) []uint8 {
	out := make([]uint8, n)
	for i := range out {
		out[i] = buf.Pix[i] & 1
	}
	return out
}
