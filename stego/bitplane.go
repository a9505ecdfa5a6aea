package stego

import (
	"encoding/binary"
	"fmt"
	"math"
)

// lengthPrefixBits is the size of the frame header: a big-endian uint32
// holding the number of payload bits that follow.
const lengthPrefixBits = 32

// BitPlaneCodec embeds byte payloads in the least significant bit of
// consecutive samples.  Channel boundaries are ignored; the buffer is one
// flat sample sequence.
//
// Frame layout, one bit per sample starting at sample 0:
//
//	uint32 BE bit count N || N payload bits, each byte most significant bit first
//
// The zero value is ready to use.
type BitPlaneCodec struct{}

// Capacity returns the largest payload in bytes that Embed accepts for cover.
func (BitPlaneCodec) Capacity(cover *PixelBuffer) int {
	if cover == nil || len(cover.Pix) <= lengthPrefixBits {
		return 0
	}
	return (len(cover.Pix) - lengthPrefixBits) / 8
}

// Embed returns a copy of cover carrying payload.  Only the least
// significant bit of the first 32+8*len(payload) samples can differ from
// cover.
func (BitPlaneCodec) Embed(cover *PixelBuffer, payload []byte) (*PixelBuffer, error) {
	if err := cover.Validate(); err != nil {
		return nil, err
	}
	payloadBits := uint64(len(payload)) * 8
	if payloadBits > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d payload bits do not fit the 32-bit length prefix", ErrCapacity, payloadBits)
	}
	if need := lengthPrefixBits + payloadBits; need > uint64(len(cover.Pix)) {
		return nil, fmt.Errorf("%w: need %d samples, cover has %d", ErrCapacity, need, len(cover.Pix))
	}

	out := cover.Clone()
	var prefix [4]byte
	binary.BigEndian.PutUint32(prefix[:], uint32(payloadBits))
	next := writeBits(out.Pix, 0, prefix[:])
	writeBits(out.Pix, next, payload)
	return out, nil
}

// Extract reads a frame written by Embed.
//
// A bit count that is not a multiple of 8 leaves a trailing partial group,
// which is dropped.  Extract performs no integrity check: a buffer that never
// carried a frame yields garbage or ErrTruncatedData.
func (BitPlaneCodec) Extract(stego *PixelBuffer) ([]byte, error) {
	if err := stego.Validate(); err != nil {
		return nil, err
	}
	if len(stego.Pix) < lengthPrefixBits {
		return nil, fmt.Errorf("%w: %d samples cannot hold the length prefix", ErrTruncatedData, len(stego.Pix))
	}
	n := binary.BigEndian.Uint32(readBits(stego.Pix, 0, 4))
	if need := uint64(lengthPrefixBits) + uint64(n); need > uint64(len(stego.Pix)) {
		return nil, fmt.Errorf("%w: frame declares %d bits, buffer has room for %d", ErrTruncatedData, n, len(stego.Pix)-lengthPrefixBits)
	}
	return readBits(stego.Pix, lengthPrefixBits, int(n/8)), nil
}

// writeBits stores data MSB-first in the LSBs of samples starting at offset
// and returns the offset after the last written sample.
func writeBits(samples []uint8, offset int, data []byte) int {
	for _, b := range data {
		for shift := 7; shift >= 0; shift-- {
			samples[offset] = samples[offset]&^1 | (b>>uint(shift))&1
			offset++
		}
	}
	return offset
}

// readBits collects nbytes bytes from the LSBs of samples starting at offset.
func readBits(samples []uint8, offset, nbytes int) []byte {
	out := make([]byte, nbytes)
	for i := range out {
		var b byte
		for _, s := range samples[offset : offset+8] {
			b = b<<1 | s&1
		}
		out[i] = b
		offset += 8
	}
	return out
}

var defaultBitPlane BitPlaneCodec

// EmbedBytes embeds payload in cover with the default [BitPlaneCodec].
func EmbedBytes(cover *PixelBuffer, payload []byte) (*PixelBuffer, error) {
	return defaultBitPlane.Embed(cover, payload)
}

// ExtractBytes extracts a payload with the default [BitPlaneCodec].
func ExtractBytes(stego *PixelBuffer) ([]byte, error) {
	return defaultBitPlane.Extract(stego)
}

// Capacity returns the payload capacity of cover in bytes.
func Capacity(cover *PixelBuffer) int {
	return defaultBitPlane.Capacity(cover)
}
