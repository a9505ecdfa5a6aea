// Package encryption provides password-based authenticated encryption for
// payloads hidden by package stego.
//
// # Token format
//
// The key-based layer is a Fernet implementation: AES-128 in CBC mode with
// PKCS#7 padding, authenticated with HMAC-SHA256 over the whole token, and
// serialised as URL-safe base64.  Tokens interoperate with any Fernet
// library, including Python's cryptography.fernet.
//
// The password layer prepends the 16-byte key-derivation salt:
//
//	salt (16 raw bytes) || fernet token (base64 text)
//
// # Quick start
//
//	token, err := encryption.EncryptWithPassword([]byte("hello"), "pw123")
//	plaintext, err := encryption.DecryptWithPassword(token, "pw123")
//
// # Security notes
//
//   - A fresh salt and a fresh IV are generated for every encryption.
//   - The HMAC is verified in constant time before the ciphertext is touched.
//   - Every decryption failure is reported as [ErrAuthentication].
package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
	"time"
)

// maxClockSkew is how far in the future a token's timestamp may be before a
// TTL-enforcing Fernet rejects it.
const maxClockSkew = 60 * time.Second

// Option is a functional option for configuring a [Fernet].
type Option func(*fernetOptions)

type fernetOptions struct {
	// previousKeys are tried after the primary key during decryption.  They
	// are never used for encryption.
	previousKeys [][]byte
	ttl          time.Duration
	rand         io.Reader
	now          func() time.Time
}

// WithPreviousKeys registers fallback keys to try during decryption.
// Encrypt always uses the primary key, so re-encrypting old tokens migrates
// them to the new key.
//
// Example:
//
//	f, _ := encryption.NewFernet(newKey, encryption.WithPreviousKeys(oldKey))
func WithPreviousKeys(keys ...[]byte) Option {
	return func(o *fernetOptions) {
		for _, k := range keys {
			o.previousKeys = append(o.previousKeys, cloneBytes(k))
		}
	}
}

// WithTTL rejects tokens older than ttl, and tokens stamped more than a
// minute in the future.  A zero ttl disables the check (the default).
func WithTTL(ttl time.Duration) Option {
	return func(o *fernetOptions) { o.ttl = ttl }
}

// WithRandom sets the IV source.  Defaults to crypto/rand.Reader.
func WithRandom(r io.Reader) Option {
	return func(o *fernetOptions) { o.rand = r }
}

// WithClock sets the time source used for token timestamps and TTL checks.
func WithClock(now func() time.Time) Option {
	return func(o *fernetOptions) { o.now = now }
}

// Fernet encrypts and decrypts Fernet tokens.
//
// A Fernet is immutable after construction and safe for concurrent use.
type Fernet struct {
	key  []byte
	opts fernetOptions
}

var _ Encrypter = (*Fernet)(nil)

// NewFernet constructs a [Fernet] from a raw [KeySize]-byte key.
// Previous keys passed through [WithPreviousKeys] are length-checked too.
func NewFernet(key []byte, opts ...Option) (*Fernet, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	f := &Fernet{
		key: cloneBytes(key),
		opts: fernetOptions{
			rand: rand.Reader,
			now:  time.Now,
		},
	}
	for _, o := range opts {
		o(&f.opts)
	}
	for _, k := range f.opts.previousKeys {
		if err := checkKey(k); err != nil {
			return nil, fmt.Errorf("previous key: %w", err)
		}
	}
	return f, nil
}

// NewFernetFromString is [NewFernet] for a key in its base64 text form.
func NewFernetFromString(encoded string, opts ...Option) (*Fernet, error) {
	key, err := DecodeKey(encoded)
	if err != nil {
		return nil, err
	}
	return NewFernet(key, opts...)
}

func checkKey(key []byte) error {
	if len(key) == 0 {
		return ErrEmptyKey
	}
	if len(key) != KeySize {
		return fmt.Errorf("%w: need %d bytes, got %d", ErrInvalidKeyLength, KeySize, len(key))
	}
	return nil
}

// Encrypt returns a token for value stamped with the current time.
func (f *Fernet) Encrypt(value []byte) ([]byte, error) {
	return f.EncryptAtTime(value, f.opts.now())
}

// EncryptAtTime returns a token for value stamped with t.
func (f *Fernet) EncryptAtTime(value []byte, t time.Time) ([]byte, error) {
	iv, err := randomBytes(f.opts.rand, ivSize)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(encryptionKey(f.key))
	if err != nil {
		return nil, fmt.Errorf("encryption: failed to create AES cipher: %w", err)
	}
	padded := pkcs7Pad(value, aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return sealToken(uint64(t.Unix()), iv, ciphertext, signingKey(f.key)), nil
}

// Decrypt verifies token and returns its plaintext, checking the TTL against
// the current time when one is configured.
func (f *Fernet) Decrypt(token []byte) ([]byte, error) {
	return f.DecryptAtTime(token, f.opts.now())
}

// DecryptAtTime is [Fernet.Decrypt] with an explicit current time.
//
// The primary key is tried first, then each previous key in registration
// order.  Any failure returns [ErrAuthentication].
func (f *Fernet) DecryptAtTime(token []byte, now time.Time) ([]byte, error) {
	tok, err := parseToken(token)
	if err != nil {
		return nil, err
	}
	if err := f.checkTTL(tok, now); err != nil {
		return nil, err
	}
	for _, key := range f.allKeys() {
		if tok.verify(signingKey(key)) {
			return decryptCBC(tok.ciphertext, tok.iv, encryptionKey(key))
		}
	}
	return nil, ErrAuthentication
}

// ExtractTimestamp returns the time a token was issued.  The HMAC is
// verified first; the TTL is not checked.
func (f *Fernet) ExtractTimestamp(token []byte) (time.Time, error) {
	tok, err := parseToken(token)
	if err != nil {
		return time.Time{}, err
	}
	for _, key := range f.allKeys() {
		if tok.verify(signingKey(key)) {
			return tok.issuedAt(), nil
		}
	}
	return time.Time{}, ErrAuthentication
}

func (f *Fernet) checkTTL(tok *token, now time.Time) error {
	if f.opts.ttl <= 0 {
		return nil
	}
	issued := tok.issuedAt()
	if issued.Add(f.opts.ttl).Before(now) {
		return ErrAuthentication
	}
	if now.Add(maxClockSkew).Before(issued) {
		return ErrAuthentication
	}
	return nil
}

func (f *Fernet) allKeys() [][]byte {
	keys := make([][]byte, 0, 1+len(f.opts.previousKeys))
	keys = append(keys, f.key)
	keys = append(keys, f.opts.previousKeys...)
	return keys
}

// decryptCBC performs the raw AES-CBC decryption and strips PKCS#7 padding.
func decryptCBC(ciphertext, iv, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, ErrAuthentication
	}
	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)
	return pkcs7Unpad(plaintext, aes.BlockSize)
}

func signingKey(key []byte) []byte    { return key[:KeySize/2] }
func encryptionKey(key []byte) []byte { return key[KeySize/2:] }

// cloneBytes returns a fresh copy of b.
func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
