// Package stego hides data in the low-order bits of RGB pixel buffers.
//
// Two codecs are provided:
//
//   - [BitPlaneCodec] writes an arbitrary byte payload into the least
//     significant bit of consecutive samples, framed by a 32-bit big-endian
//     count of payload bits.
//   - [ImagePlaneCodec] hides a whole secret image in the two least
//     significant bits of every sample of a cover image.  Only the secret's
//     top two bits per channel survive.
//
// Buffers are treated as immutable: every operation returns a new
// [PixelBuffer] and never writes to its inputs.  All functions are safe for
// concurrent use on distinct or shared read-only buffers.
//
// LSB data does not survive lossy re-encoding, resizing or cropping.  Write
// results with a lossless format (see package imageio).
package stego
