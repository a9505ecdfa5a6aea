package kdf

import (
	"fmt"

	"golang.org/x/crypto/argon2"
)

// ──────────────────────────────────────────────────────────────────────────────
// Options
// ──────────────────────────────────────────────────────────────────────────────

const (
	DefaultArgon2Memory  uint32 = 64 * 1024 // KiB
	DefaultArgon2Time    uint32 = 3
	DefaultArgon2Threads uint8  = 2
)

// Argon2Options configures an [Argon2idDeriver].
//
// None of these parameters are stored in the token, so a token can only be
// opened by a deriver built with the same options.
type Argon2Options struct {
	Memory  uint32 // KiB, at least 8 per thread
	Time    uint32 // passes over memory, at least 1
	Threads uint8  // lanes, at least 1
	KeyLen  int    // derived key bytes, at least 4
	SaltLen int    // exact salt bytes Derive accepts, at least 8
}

// DefaultArgon2Options returns 64 MiB, 3 passes and 2 lanes, with key and
// salt sizes matching the PBKDF2 defaults.
func DefaultArgon2Options() Argon2Options {
	return Argon2Options{
		Memory:  DefaultArgon2Memory,
		Time:    DefaultArgon2Time,
		Threads: DefaultArgon2Threads,
		KeyLen:  KeySize,
		SaltLen: SaltSize,
	}
}

func validateArgon2Options(opts Argon2Options) error {
	switch {
	case opts.Time < 1:
		return fmt.Errorf("%w: argon2id time %d, need at least 1", ErrInvalidOption, opts.Time)
	case opts.Threads < 1:
		return fmt.Errorf("%w: argon2id threads %d, need at least 1", ErrInvalidOption, opts.Threads)
	case opts.Memory < 8*uint32(opts.Threads):
		return fmt.Errorf("%w: argon2id memory %d KiB, need at least %d for %d threads",
			ErrInvalidOption, opts.Memory, 8*uint32(opts.Threads), opts.Threads)
	case opts.KeyLen < 4:
		return fmt.Errorf("%w: argon2id key length %d, need at least 4", ErrInvalidOption, opts.KeyLen)
	case opts.SaltLen < 8:
		return fmt.Errorf("%w: argon2id salt length %d, need at least 8", ErrInvalidOption, opts.SaltLen)
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Argon2idDeriver
// ──────────────────────────────────────────────────────────────────────────────

// Argon2idDeriver derives keys with Argon2id (RFC 9106).
//
// It is a memory-hard alternative to [PBKDF2Deriver] for callers who do not
// need tokens readable by other Fernet implementations.
type Argon2idDeriver struct {
	opts Argon2Options
}

var _ Deriver = (*Argon2idDeriver)(nil)

// NewArgon2idDeriver constructs an Argon2idDeriver with the given options.
func NewArgon2idDeriver(opts Argon2Options) (*Argon2idDeriver, error) {
	if err := validateArgon2Options(opts); err != nil {
		return nil, err
	}
	return &Argon2idDeriver{opts: opts}, nil
}

// Options returns the current parameter set.
func (d *Argon2idDeriver) Options() Argon2Options { return d.opts }

func (d *Argon2idDeriver) SaltSize() int { return d.opts.SaltLen }

func (d *Argon2idDeriver) KeySize() int { return d.opts.KeyLen }

// Derive stretches password with salt, which must be exactly SaltSize bytes.
func (d *Argon2idDeriver) Derive(password string, salt []byte) ([]byte, error) {
	if len(salt) != d.opts.SaltLen {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidSalt, d.opts.SaltLen, len(salt))
	}
	return argon2.IDKey([]byte(password), salt, d.opts.Time, d.opts.Memory, d.opts.Threads, uint32(d.opts.KeyLen)), nil
}

// NewSalt returns a salt of the configured length from crypto/rand.
func (d *Argon2idDeriver) NewSalt() ([]byte, error) {
	return randomSalt(d.opts.SaltLen)
}
