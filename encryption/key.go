package encryption

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
)

// KeySize is the length of a Fernet key in bytes: a 16-byte HMAC-SHA256
// signing key followed by a 16-byte AES-128 encryption key.
const KeySize = 32

// GenerateKey returns a random [KeySize]-byte key from crypto/rand, ready to
// pass to [NewFernet].
func GenerateKey() ([]byte, error) {
	return randomBytes(rand.Reader, KeySize)
}

// EncodeKey returns the URL-safe base64 encoding (with padding) of key.
// This is the textual key format used by every Fernet implementation.
//
//	encoded := encryption.EncodeKey(key) // 44 characters
func EncodeKey(key []byte) string {
	return base64.URLEncoding.EncodeToString(key)
}

// DecodeKey decodes a key produced by [EncodeKey].  The URL-safe alphabet is
// tried first, then the standard one.
func DecodeKey(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	key, err := base64.URLEncoding.DecodeString(encoded)
	if err == nil {
		return key, nil
	}
	key, err = base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return key, nil
}

// randomBytes returns n bytes read from r.  It is used for keys and IVs.
func randomBytes(r io.Reader, n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, fmt.Errorf("encryption: failed to generate %d random bytes: %w", n, err)
	}
	return b, nil
}

// zeroBytes overwrites b with zeros.  Used on derived keys once a call is done.
func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
