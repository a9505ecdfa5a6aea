package kdf

import "errors"

// Sentinel errors returned by key derivation.
//
// Callers should use errors.Is for comparisons:
//
//	_, err := kdf.Derive(password, salt)
//	if errors.Is(err, kdf.ErrInvalidSalt) {
//	    // salt was not SaltSize bytes
//	}
var (
	// ErrInvalidSalt is returned when the salt length does not match the
	// deriver's configured SaltLen.
	ErrInvalidSalt = errors.New("kdf: invalid salt length")

	// ErrInvalidOption is returned when a deriver is constructed with
	// out-of-range parameters.
	ErrInvalidOption = errors.New("kdf: invalid option")
)
