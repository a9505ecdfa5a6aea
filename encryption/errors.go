package encryption

import "errors"

// Sentinel errors returned by encryption operations.
//
// Callers should use errors.Is for comparisons:
//
//	_, err := encryption.DecryptWithPassword(token, password)
//	if errors.Is(err, encryption.ErrAuthentication) {
//	    // wrong password, or the token was corrupted
//	}
var (
	// ErrAuthentication is returned for every failure to verify or decrypt
	// a token: wrong key or password, bad base64, unknown version byte,
	// truncated data, HMAC mismatch, bad padding, or an expired TTL.
	// The error does not say which check failed.
	ErrAuthentication = errors.New("encryption: authentication failed (wrong password or corrupted data)")

	// ErrMalformedToken is returned by password decryption when the token is
	// too short to contain a salt.  No key derivation is attempted.
	ErrMalformedToken = errors.New("encryption: malformed token")

	// ErrInvalidKey is returned when an encoded key cannot be base64-decoded.
	ErrInvalidKey = errors.New("encryption: invalid key encoding")

	// ErrInvalidKeyLength is returned when a raw key is not [KeySize] bytes.
	ErrInvalidKeyLength = errors.New("encryption: invalid key length")

	// ErrEmptyKey is returned when a nil or zero-length key is provided.
	ErrEmptyKey = errors.New("encryption: key must not be empty")
)
