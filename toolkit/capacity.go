package toolkit

import (
	"sort"

	"github.com/hasbyte1/go-stego-utils/stego"
)

// CapacityReport describes how much a cover can carry.
type CapacityReport struct {
	Width   int
	Height  int
	Samples int

	// FrameBytes is the largest raw payload the bit-plane codec accepts.
	FrameBytes int

	// MessageBytes is the longest message, in bytes, that still fits once
	// encrypted.  Zero when not even an empty message's token fits.
	MessageBytes int
}

// Capacity reports the raw and encrypted capacity of cover.
func (t *Toolkit) Capacity(cover *stego.PixelBuffer) (CapacityReport, error) {
	if err := cover.Validate(); err != nil {
		return CapacityReport{}, err
	}
	frame := t.bits.Capacity(cover)

	// TokenSize is non-decreasing, so the first n whose token overflows the
	// frame bounds the answer.
	n := sort.Search(frame+1, func(n int) bool {
		return t.cipher.TokenSize(n) > frame
	})

	r := CapacityReport{
		Width:      cover.Width,
		Height:     cover.Height,
		Samples:    cover.SampleCount(),
		FrameBytes: frame,
	}
	if n > 0 {
		r.MessageBytes = n - 1
	}
	return r, nil
}
