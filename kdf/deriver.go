package kdf

// Deriver is the interface satisfied by all key-derivation drivers.
//
// Implementations must be deterministic (identical inputs always yield the
// same key) and safe for concurrent use by multiple goroutines.
type Deriver interface {
	// Derive stretches password with salt into a fixed-length key.
	Derive(password string, salt []byte) ([]byte, error)

	// SaltSize returns the exact salt length Derive accepts.
	SaltSize() int

	// KeySize returns the length of keys produced by Derive.
	KeySize() int
}
