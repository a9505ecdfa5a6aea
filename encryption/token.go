package encryption

import (
	"crypto/aes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"strings"
	"time"
)

// Fernet token layout, before base64:
//
//	version (1) || timestamp (8, big-endian seconds) || IV (16) || ciphertext (n×16) || HMAC-SHA256 (32)
//
// The HMAC covers everything before it.
const (
	tokenVersion  byte = 0x80
	timestampSize      = 8
	ivSize             = aes.BlockSize
	macSize            = sha256.Size

	headerSize    = 1 + timestampSize + ivSize
	tokenOverhead = headerSize + macSize
)

// token is a decoded Fernet token.  Fields alias the decoded buffer.
type token struct {
	raw        []byte
	timestamp  uint64
	iv         []byte
	ciphertext []byte
	mac        []byte
}

// signed returns the bytes covered by the HMAC.
func (t *token) signed() []byte { return t.raw[:len(t.raw)-macSize] }

// issuedAt returns the token's timestamp.
func (t *token) issuedAt() time.Time { return time.Unix(int64(t.timestamp), 0) }

// verify reports whether the token's HMAC matches signingKey.
// hmac.Equal compares in constant time.
func (t *token) verify(signingKey []byte) bool {
	return hmac.Equal(computeMAC(t.signed(), signingKey), t.mac)
}

// sealToken assembles and base64-encodes a token from its parts.
func sealToken(ts uint64, iv, ciphertext, signingKey []byte) []byte {
	raw := make([]byte, 0, tokenOverhead+len(ciphertext))
	raw = append(raw, tokenVersion)
	raw = binary.BigEndian.AppendUint64(raw, ts)
	raw = append(raw, iv...)
	raw = append(raw, ciphertext...)
	raw = append(raw, computeMAC(raw, signingKey)...)

	out := make([]byte, base64.URLEncoding.EncodedLen(len(raw)))
	base64.URLEncoding.Encode(out, raw)
	return out
}

// parseToken decodes the base64 text and checks the structure only; the HMAC
// is verified separately so that every key can be tried.
func parseToken(encoded []byte) (*token, error) {
	s := strings.TrimSpace(string(encoded))
	if s == "" {
		return nil, ErrAuthentication
	}
	raw, err := base64.URLEncoding.DecodeString(s)
	if err != nil {
		return nil, ErrAuthentication
	}
	if len(raw) < tokenOverhead || raw[0] != tokenVersion {
		return nil, ErrAuthentication
	}
	ciphertext := raw[headerSize : len(raw)-macSize]
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, ErrAuthentication
	}
	return &token{
		raw:        raw,
		timestamp:  binary.BigEndian.Uint64(raw[1 : 1+timestampSize]),
		iv:         raw[1+timestampSize : headerSize],
		ciphertext: ciphertext,
		mac:        raw[len(raw)-macSize:],
	}, nil
}

// encodedTokenSize returns the base64 length of a token carrying n plaintext
// bytes.  PKCS#7 always adds between 1 and 16 bytes.
func encodedTokenSize(n int) int {
	padded := (n/aes.BlockSize + 1) * aes.BlockSize
	return base64.URLEncoding.EncodedLen(tokenOverhead + padded)
}

// computeMAC returns HMAC-SHA256 of data under key.
func computeMAC(data, key []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(data)
	return h.Sum(nil)
}
