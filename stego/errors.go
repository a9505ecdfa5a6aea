package stego

import "errors"

var (
	// ErrCapacity is returned when a framed payload needs more samples than
	// the cover buffer has.
	ErrCapacity = errors.New("stego: payload exceeds cover capacity")

	// ErrTruncatedData is returned when the bit count read from a stego
	// buffer exceeds the samples actually present.
	ErrTruncatedData = errors.New("stego: embedded data is truncated")

	// ErrInvalidBuffer is returned for nil buffers, non-positive dimensions,
	// or a sample slice whose length is not Width*Height*3.
	ErrInvalidBuffer = errors.New("stego: invalid pixel buffer")
)
