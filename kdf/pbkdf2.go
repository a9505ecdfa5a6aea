package kdf

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultIterations is the PBKDF2 iteration count used by [Derive].
	DefaultIterations = 100_000

	// KeySize is the length in bytes of keys produced by [Derive].
	KeySize = 32

	// SaltSize is the salt length in bytes accepted by [Derive] and
	// produced by [NewSalt].
	SaltSize = 16
)

// Options configures a [PBKDF2Deriver].
type Options struct {
	// Iterations is the PBKDF2 round count.
	// Minimum: 1.  Default: [DefaultIterations].
	Iterations int

	// KeyLen is the length of the derived key in bytes.
	// Minimum: 1.  Default: [KeySize].
	KeyLen int

	// SaltLen is the exact salt length Derive accepts.
	// Minimum: 1.  Default: [SaltSize].
	SaltLen int
}

// DefaultOptions returns the parameters that define the token wire format.
func DefaultOptions() Options {
	return Options{
		Iterations: DefaultIterations,
		KeyLen:     KeySize,
		SaltLen:    SaltSize,
	}
}

func validateOptions(opts Options) error {
	if opts.Iterations < 1 {
		return fmt.Errorf("%w: pbkdf2 iterations must be ≥ 1, got %d", ErrInvalidOption, opts.Iterations)
	}
	if opts.KeyLen < 1 {
		return fmt.Errorf("%w: pbkdf2 key_len must be ≥ 1, got %d", ErrInvalidOption, opts.KeyLen)
	}
	if opts.SaltLen < 1 {
		return fmt.Errorf("%w: pbkdf2 salt_len must be ≥ 1, got %d", ErrInvalidOption, opts.SaltLen)
	}
	return nil
}

// PBKDF2Deriver derives keys with PBKDF2 over HMAC-SHA256.
//
// PBKDF2Deriver is immutable after construction and safe for concurrent use.
type PBKDF2Deriver struct {
	opts Options
}

var _ Deriver = (*PBKDF2Deriver)(nil)

// NewPBKDF2Deriver constructs a PBKDF2Deriver with the given options.
// Use [DefaultOptions] for the parameters that interoperate with tokens
// produced elsewhere.
func NewPBKDF2Deriver(opts Options) (*PBKDF2Deriver, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}
	return &PBKDF2Deriver{opts: opts}, nil
}

// Options returns the current parameter set.
func (d *PBKDF2Deriver) Options() Options { return d.opts }

// SaltSize returns the configured salt length.
func (d *PBKDF2Deriver) SaltSize() int { return d.opts.SaltLen }

// KeySize returns the configured key length.
func (d *PBKDF2Deriver) KeySize() int { return d.opts.KeyLen }

// Derive stretches password with salt.  The password is used as its UTF-8
// bytes; the salt must be exactly SaltSize bytes.
func (d *PBKDF2Deriver) Derive(password string, salt []byte) ([]byte, error) {
	if len(salt) != d.opts.SaltLen {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidSalt, d.opts.SaltLen, len(salt))
	}
	return pbkdf2.Key([]byte(password), salt, d.opts.Iterations, d.opts.KeyLen, sha256.New), nil
}

// NewSalt returns a salt of the configured length from crypto/rand.
func (d *PBKDF2Deriver) NewSalt() ([]byte, error) {
	return randomSalt(d.opts.SaltLen)
}

// defaultDeriver backs the package-level helpers.
var defaultDeriver = &PBKDF2Deriver{opts: DefaultOptions()}

// Default returns the deriver used by [Derive].
func Default() *PBKDF2Deriver { return defaultDeriver }

// Derive returns the 32-byte PBKDF2-HMAC-SHA256 key for password and a
// 16-byte salt, using 100,000 iterations.
func Derive(password string, salt []byte) ([]byte, error) {
	return defaultDeriver.Derive(password, salt)
}

// DeriveEncoded is [Derive] followed by URL-safe base64 encoding (with
// padding), the textual key form used by Fernet.
func DeriveEncoded(password string, salt []byte) (string, error) {
	key, err := Derive(password, salt)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(key), nil
}

// NewSalt returns SaltSize cryptographically random bytes.
func NewSalt() ([]byte, error) {
	return randomSalt(SaltSize)
}

func randomSalt(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, fmt.Errorf("kdf: failed to generate salt: %w", err)
	}
	return b, nil
}
